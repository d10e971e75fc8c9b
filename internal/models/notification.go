// internal/models/notification.go
package models

// Notification severities surfaced to the user.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
)

// Notification is a user-visible toast-style message.
type Notification struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}
