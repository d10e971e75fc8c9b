// internal/server/wizard_handlers.go
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/components/wizard"
	"fostercare-intake/internal/notify"
	"fostercare-intake/internal/platform"
	"fostercare-intake/internal/ui"
	"fostercare-intake/pkg/registry"
)

// patchRequest carries ordered field patches. Order matters because a role
// change can move the wizard back to the first step.
type patchRequest struct {
	Patches []fieldPatch `json:"patches" binding:"required"`
}

type fieldPatch struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// CreateSession opens a fresh intake session and returns its initial state.
func CreateSession(store *SessionStore, svc platform.ApplicationService, presenter ui.Presenter, schemas *registry.Registry, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := wizard.New(svc, presenter, schemas, log)
		session := store.Create(w)
		c.JSON(http.StatusCreated, newWizardView(session.ID, w))
	}
}

// GetSession returns the current wizard state.
func GetSession(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, store, func(session *Session) {
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// DiscardSession abandons an in-flight draft.
func DiscardSession(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, store, func(session *Session) {
			session.Wizard.Reset()
			store.Delete(session.ID)
			c.JSON(http.StatusOK, gin.H{"status": "discarded", "sessionId": session.ID})
		})
	}
}

// PatchApplicant applies field edits to the applicant step.
func PatchApplicant(store *SessionStore) gin.HandlerFunc {
	return patchHandler(store, func(session *Session, field, value string) {
		session.Wizard.PatchApplicant(field, value)
	})
}

// PatchHousehold applies field edits to the household step.
func PatchHousehold(store *SessionStore) gin.HandlerFunc {
	return patchHandler(store, func(session *Session, field, value string) {
		session.Wizard.PatchHousehold(field, value)
	})
}

// PatchMemberDraft applies field edits to the member draft row.
func PatchMemberDraft(store *SessionStore) gin.HandlerFunc {
	return patchHandler(store, func(session *Session, field, value string) {
		session.Wizard.PatchMemberDraft(field, value)
	})
}

func patchHandler(store *SessionStore, apply func(session *Session, field, value string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch payload"})
			return
		}
		withSession(c, store, func(session *Session) {
			for _, p := range req.Patches {
				apply(session, p.Field, p.Value)
			}
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// AdvanceStep moves the wizard forward, validating the current step.
func AdvanceStep(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, store, func(session *Session) {
			if err := session.Wizard.Next(); err != nil {
				c.JSON(statusForError(err), newWizardView(session.ID, session.Wizard))
				return
			}
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// RetreatStep moves the wizard backward. Never fails.
func RetreatStep(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, store, func(session *Session) {
			session.Wizard.Previous()
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// AddFamilyMember promotes the member draft into the session member list.
func AddFamilyMember(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, store, func(session *Session) {
			if err := session.Wizard.AddMember(); err != nil {
				c.JSON(statusForError(err), newWizardView(session.ID, session.Wizard))
				return
			}
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// RemoveFamilyMember drops a drafted member by temp id.
func RemoveFamilyMember(store *SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tempID := c.Param("tempId")
		withSession(c, store, func(session *Session) {
			for i, m := range session.Wizard.Members() {
				if m.TempID == tempID {
					session.Wizard.RemoveMember(i)
					break
				}
			}
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// SubmitApplication submits the assembled payload and, on success, sends the
// applicant a confirmation email. The email is best-effort.
func SubmitApplication(store *SessionStore, notifier *notify.AgencyNotifier, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, store, func(session *Session) {
			if err := session.Wizard.Submit(c.Request.Context()); err != nil {
				c.JSON(statusForError(err), newWizardView(session.ID, session.Wizard))
				return
			}
			if session.Wizard.Submitted() && notifier != nil {
				applicant := session.Wizard.Applicant()
				if err := notifier.SendSubmissionConfirmation(c.Request.Context(), applicant.Email, applicant.FirstName); err != nil {
					log.Warn("submission confirmation not sent", map[string]interface{}{
						"sessionId": session.ID,
						"error":     err.Error(),
					})
				}
			}
			c.JSON(http.StatusOK, newWizardView(session.ID, session.Wizard))
		})
	}
}

// withSession resolves the :sessionId param, holds the session lock for the
// callback, and answers 404 for unknown or expired sessions.
func withSession(c *gin.Context, store *SessionStore, fn func(session *Session)) {
	session := store.Get(c.Param("sessionId"))
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	session.Lock()
	defer session.Unlock()
	fn(session)
}

// statusForError maps domain errors onto HTTP statuses.
func statusForError(err error) int {
	var stdErr *apierrors.StandardError
	if !errors.As(err, &stdErr) {
		return http.StatusBadGateway
	}
	switch stdErr.Code {
	case apierrors.ErrCodeMemberValidationFailed, apierrors.ErrCodeApplicationValidationFailed, apierrors.ErrCodeSchemaInvalid:
		return http.StatusUnprocessableEntity
	case apierrors.ErrCodeMutationInFlight:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
