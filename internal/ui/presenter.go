// internal/ui/presenter.go
package ui

import (
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/models"
)

// Presenter is the injected presentation capability: confirmation prompts,
// toast notifications, and scroll resets. Components never touch a real UI
// directly, which keeps them testable.
type Presenter interface {
	Confirm(message string) bool
	Notify(title, message, severity string)
	ScrollToTop()
}

// LogPresenter satisfies Presenter for headless hosts. Confirmations resolve
// to a fixed answer; notifications land in the log.
type LogPresenter struct {
	log         logger.Logger
	autoConfirm bool
}

func NewLogPresenter(log logger.Logger, autoConfirm bool) *LogPresenter {
	return &LogPresenter{log: log, autoConfirm: autoConfirm}
}

func (p *LogPresenter) Confirm(message string) bool {
	p.log.Info("confirmation requested", map[string]interface{}{
		"message":  message,
		"answered": p.autoConfirm,
	})
	return p.autoConfirm
}

func (p *LogPresenter) Notify(title, message, severity string) {
	fields := map[string]interface{}{
		"title":    title,
		"message":  message,
		"severity": severity,
	}
	if severity == models.SeverityError {
		p.log.Warn("user notification", fields)
		return
	}
	p.log.Info("user notification", fields)
}

func (p *LogPresenter) ScrollToTop() {}
