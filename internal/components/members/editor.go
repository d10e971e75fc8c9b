// internal/components/members/editor.go
package members

import (
	"context"
	"fmt"
	"strconv"

	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/common/validation"
	"fostercare-intake/internal/models"
	"fostercare-intake/internal/platform"
	"fostercare-intake/internal/ui"
)

// Editor owns the ordered family-member collection for one household. All
// add/edit traffic funnels through a single draft buffer and a single modal;
// the collection itself is replaced wholesale after every successful
// mutation via a forced subscription re-pull.
type Editor struct {
	log       logger.Logger
	svc       platform.MemberService
	presenter ui.Presenter
	accountID string
	refresh   func(context.Context)

	items       []models.FamilyMember
	deliveryErr error

	draft     models.FamilyMember
	modalOpen bool
	editMode  bool
	busy      bool
}

func NewEditor(accountID string, svc platform.MemberService, presenter ui.Presenter, log logger.Logger) *Editor {
	return &Editor{
		log:       log.WithFields(map[string]interface{}{"component": "members", "accountId": accountID}),
		svc:       svc,
		presenter: presenter,
		accountID: accountID,
	}
}

// BindRefresh wires the forced re-pull issued after each successful mutation.
func (e *Editor) BindRefresh(refresh func(context.Context)) {
	e.refresh = refresh
}

// OnDelivery replaces the collection with the delivered list. No local patch
// survives a round trip.
func (e *Editor) OnDelivery(d platform.MemberListDelivery) {
	if d.Err != nil {
		e.log.Error("member list delivery failed", map[string]interface{}{"error": d.Err.Error()})
		e.deliveryErr = d.Err
		e.items = nil
		return
	}
	e.items = d.Data
	e.deliveryErr = nil
}

func (e *Editor) Items() []models.FamilyMember { return e.items }
func (e *Editor) Err() error                   { return e.deliveryErr }
func (e *Editor) Draft() models.FamilyMember   { return e.draft }
func (e *Editor) ModalOpen() bool              { return e.modalOpen }
func (e *Editor) EditMode() bool               { return e.editMode }
func (e *Editor) Busy() bool                   { return e.busy }

// OpenAdd resets the draft to an empty record and opens the modal in add
// mode.
func (e *Editor) OpenAdd() {
	e.draft = models.FamilyMember{}
	e.editMode = false
	e.modalOpen = true
}

// OpenEdit copies the identified item into the draft by value and opens the
// modal in edit mode. Edits against the draft never reach the collection
// until Save commits them.
func (e *Editor) OpenEdit(memberID string) error {
	for _, item := range e.items {
		if item.ID == memberID {
			e.draft = item
			e.editMode = true
			e.modalOpen = true
			return nil
		}
	}
	return fmt.Errorf("family member %q not found", memberID)
}

// Cancel closes the modal and discards the draft.
func (e *Editor) Cancel() {
	e.modalOpen = false
	e.draft = models.FamilyMember{}
}

// PatchField applies one named field edit to the draft, replacing the draft
// value rather than mutating any published item. Boolean fields accept
// "true"/"false" strings from the field event.
func (e *Editor) PatchField(field, value string) {
	next := e.draft
	switch field {
	case "firstName":
		next.FirstName = value
	case "lastName":
		next.LastName = value
	case "email":
		next.Email = value
	case "phone":
		next.Phone = value
	case "mobilePhone":
		next.MobilePhone = value
	case "birthdate":
		next.Birthdate = value
	case "relationship":
		next.Relationship = value
	case "backgroundCheckStatus":
		next.BackgroundCheckStatus = value
	case "trainingCompleted":
		next.TrainingCompleted, _ = strconv.ParseBool(value)
	case "homeStudyCompleted":
		next.HomeStudyCompleted, _ = strconv.ParseBool(value)
	default:
		e.log.Warn("unknown member field ignored", map[string]interface{}{"field": field})
		return
	}
	e.draft = next
}

// Save validates the draft and issues a create or update depending on the
// modal mode. Validation failure blocks the remote call and keeps the modal
// open; remote failure keeps the modal open for retry.
func (e *Editor) Save(ctx context.Context) error {
	if e.busy {
		return apierrors.NewMutationInFlightError("member-save")
	}

	var fieldErrs []validation.FieldError
	fieldErrs = validation.Required(fieldErrs, "firstName", e.draft.FirstName)
	fieldErrs = validation.Required(fieldErrs, "lastName", e.draft.LastName)
	fieldErrs = validation.Required(fieldErrs, "relationship", e.draft.Relationship)
	if len(fieldErrs) > 0 {
		valErr := apierrors.NewMemberValidationFailedError(validation.Summarize(fieldErrs))
		e.presenter.Notify("Family Member", valErr.Message, models.SeverityError)
		return valErr
	}

	e.busy = true
	defer func() { e.busy = false }()

	var err error
	if e.editMode {
		err = e.svc.UpdateFamilyMember(ctx, e.accountID, e.draft)
	} else {
		err = e.svc.CreateFamilyMember(ctx, e.accountID, e.draft)
	}
	if err != nil {
		e.log.Error("member save failed", map[string]interface{}{
			"editMode": e.editMode,
			"error":    err.Error(),
		})
		e.presenter.Notify("Family Member", apierrors.UserMessage(err), models.SeverityError)
		return err
	}

	if e.refresh != nil {
		e.refresh(ctx)
	}
	e.modalOpen = false
	e.draft = models.FamilyMember{}
	e.presenter.Notify("Family Member", "Family member saved", models.SeveritySuccess)
	return nil
}

// Delete removes a member after an explicit confirmation. Declining the
// prompt is a no-op; success forces the same wholesale re-pull as Save.
func (e *Editor) Delete(ctx context.Context, memberID string) error {
	if e.busy {
		return apierrors.NewMutationInFlightError("member-delete")
	}
	if !e.presenter.Confirm("Remove this family member? This cannot be undone.") {
		return nil
	}

	e.busy = true
	defer func() { e.busy = false }()

	if err := e.svc.DeleteFamilyMember(ctx, memberID); err != nil {
		e.log.Error("member delete failed", map[string]interface{}{
			"memberId": memberID,
			"error":    err.Error(),
		})
		e.presenter.Notify("Family Member", apierrors.UserMessage(err), models.SeverityError)
		return err
	}

	if e.refresh != nil {
		e.refresh(ctx)
	}
	e.presenter.Notify("Family Member", "Family member removed", models.SeveritySuccess)
	return nil
}
