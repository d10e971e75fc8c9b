// internal/server/household_handlers.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/components/members"
	"fostercare-intake/internal/components/overview"
	"fostercare-intake/internal/notify"
	"fostercare-intake/internal/platform"
	"fostercare-intake/internal/ui"
)

// Household handlers host the overview and member components per request.
// Each request builds a fresh component, binds it to its subscription, pulls
// the first delivery, and drives one operation end to end. Component state is
// never shared between requests; the remote record service is the source of
// truth.

type assignRequest struct {
	CaseworkerID string `json:"caseworkerId" binding:"required"`
}

// GetOverview returns the decorated overview projection for a household.
func GetOverview(svc platform.RecordService, presenter ui.Presenter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reader, sub := buildReader(c.Param("accountId"), svc, presenter, log)
		sub.Deliver(c.Request.Context())

		view := newOverviewView(reader)
		if view.Error != "" {
			c.JSON(http.StatusBadGateway, view)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// ListCandidates returns the transient caseworker candidate list.
func ListCandidates(svc platform.AssignmentService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates, err := svc.FetchCandidates(c.Request.Context())
		if err != nil {
			log.Error("candidate fetch failed", map[string]interface{}{"error": err.Error()})
			c.JSON(http.StatusBadGateway, gin.H{"error": apierrors.UserMessage(err)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"candidates": candidates})
	}
}

// AssignCaseworker runs the full assignment workflow for one request: open,
// select, confirm. Success additionally publishes the assignment event.
func AssignCaseworker(svc platform.RecordService, presenter ui.Presenter, notifier *notify.AgencyNotifier, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req assignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "caseworkerId is required"})
			return
		}
		accountID := c.Param("accountId")
		ctx := c.Request.Context()

		reader, sub := buildReader(accountID, svc, presenter, log)
		sub.Deliver(ctx)
		if err := reader.OpenAssignment(ctx); err != nil {
			c.JSON(statusForError(err), gin.H{"error": reader.AssignmentError()})
			return
		}
		reader.SelectCandidate(req.CaseworkerID)
		if err := reader.ConfirmAssignment(ctx); err != nil {
			c.JSON(statusForError(err), gin.H{"error": apierrors.UserMessage(err)})
			return
		}

		if notifier != nil {
			if err := notifier.PublishAssignment(ctx, accountID, req.CaseworkerID); err != nil {
				log.Warn("assignment event not published", map[string]interface{}{
					"accountId": accountID,
					"error":     err.Error(),
				})
			}
		}
		c.JSON(http.StatusOK, newOverviewView(reader))
	}
}

// GetPrimaryContact returns the primary contact bound to the current case.
func GetPrimaryContact(svc platform.ContactService, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var view struct {
			Contact interface{} `json:"contact,omitempty"`
			Error   string      `json:"error,omitempty"`
		}
		sub := platform.NewContactSubscription(svc, func(d platform.ContactDelivery) {
			if d.Err != nil {
				view.Error = apierrors.UserMessage(d.Err)
				return
			}
			view.Contact = d.Data
		})
		sub.Deliver(c.Request.Context())

		if view.Error != "" {
			c.JSON(http.StatusBadGateway, view)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// ListFamilyMembers returns the household's member collection.
func ListFamilyMembers(svc platform.MemberService, presenter ui.Presenter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		editor, sub := buildEditor(c.Param("accountId"), svc, presenter, log)
		sub.Deliver(c.Request.Context())

		view := newMemberListView(editor)
		if view.Error != "" {
			c.JSON(http.StatusBadGateway, view)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// CreateFamilyMember drives the add flow: open the modal, patch each field,
// save.
func CreateFamilyMember(svc platform.MemberService, presenter ui.Presenter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member payload"})
			return
		}
		ctx := c.Request.Context()
		editor, sub := buildEditor(c.Param("accountId"), svc, presenter, log)
		sub.Deliver(ctx)

		editor.OpenAdd()
		for _, p := range req.Patches {
			editor.PatchField(p.Field, p.Value)
		}
		if err := editor.Save(ctx); err != nil {
			c.JSON(statusForError(err), gin.H{"error": apierrors.UserMessage(err)})
			return
		}
		c.JSON(http.StatusCreated, newMemberListView(editor))
	}
}

// UpdateFamilyMember drives the edit flow for one existing member.
func UpdateFamilyMember(svc platform.MemberService, presenter ui.Presenter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member payload"})
			return
		}
		ctx := c.Request.Context()
		editor, sub := buildEditor(c.Param("accountId"), svc, presenter, log)
		sub.Deliver(ctx)

		if err := editor.OpenEdit(c.Param("memberId")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		for _, p := range req.Patches {
			editor.PatchField(p.Field, p.Value)
		}
		if err := editor.Save(ctx); err != nil {
			c.JSON(statusForError(err), gin.H{"error": apierrors.UserMessage(err)})
			return
		}
		c.JSON(http.StatusOK, newMemberListView(editor))
	}
}

// DeleteFamilyMember removes one member. The host auto-confirms the prompt;
// the interactive confirmation happened on the client.
func DeleteFamilyMember(svc platform.MemberService, presenter ui.Presenter, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		editor, sub := buildEditor(c.Param("accountId"), svc, presenter, log)
		sub.Deliver(ctx)

		if err := editor.Delete(ctx, c.Param("memberId")); err != nil {
			c.JSON(statusForError(err), gin.H{"error": apierrors.UserMessage(err)})
			return
		}
		c.JSON(http.StatusOK, newMemberListView(editor))
	}
}

func buildReader(accountID string, svc platform.RecordService, presenter ui.Presenter, log logger.Logger) (*overview.Reader, *platform.OverviewSubscription) {
	reader := overview.NewReader(accountID, svc, presenter, log)
	sub := platform.NewOverviewSubscription(accountID, svc, reader.OnDelivery)
	reader.BindRefresh(sub.Refresh)
	return reader, sub
}

func buildEditor(accountID string, svc platform.MemberService, presenter ui.Presenter, log logger.Logger) (*members.Editor, *platform.MemberListSubscription) {
	editor := members.NewEditor(accountID, svc, presenter, log)
	sub := platform.NewMemberListSubscription(accountID, svc, editor.OnDelivery)
	editor.BindRefresh(sub.Refresh)
	return editor, sub
}
