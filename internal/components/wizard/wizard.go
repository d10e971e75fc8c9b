// internal/components/wizard/wizard.go
package wizard

import (
	"context"
	"strconv"

	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/common/validation"
	"fostercare-intake/internal/models"
	"fostercare-intake/internal/platform"
	"fostercare-intake/internal/ui"
	"fostercare-intake/pkg/registry"

	"github.com/google/uuid"
)

// Wizard drives the public intake form. All drafts live in memory until the
// final submit; nothing is persisted step by step. Caseworker applicants
// skip the household and family steps in both directions, and their payload
// carries an empty member list and empty household info.
type Wizard struct {
	log       logger.Logger
	svc       platform.ApplicationService
	presenter ui.Presenter
	schemas   *registry.Registry

	step      Step
	applicant models.Applicant
	household models.HouseholdInfo

	members     []models.FamilyMemberDraft
	memberDraft models.FamilyMemberDraft

	errMsg    string
	busy      bool
	submitted bool
}

func New(svc platform.ApplicationService, presenter ui.Presenter, schemas *registry.Registry, log logger.Logger) *Wizard {
	return &Wizard{
		log:       log.WithFields(map[string]interface{}{"component": "wizard"}),
		svc:       svc,
		presenter: presenter,
		schemas:   schemas,
		step:      StepApplicant,
	}
}

func (w *Wizard) Step() Step                            { return w.step }
func (w *Wizard) Submitted() bool                       { return w.submitted }
func (w *Wizard) Busy() bool                            { return w.busy }
func (w *Wizard) ErrMsg() string                        { return w.errMsg }
func (w *Wizard) Applicant() models.Applicant           { return w.applicant }
func (w *Wizard) Household() models.HouseholdInfo       { return w.household }
func (w *Wizard) Members() []models.FamilyMemberDraft   { return w.members }
func (w *Wizard) MemberDraft() models.FamilyMemberDraft { return w.memberDraft }

// ==========================
// Field edits
// ==========================

// PatchApplicant applies one applicant field edit. Changing the role away
// from its stored value snaps the cursor back to the first step so a stale
// step index can never survive a mid-navigation role change.
func (w *Wizard) PatchApplicant(field, value string) {
	next := w.applicant
	switch field {
	case "firstName":
		next.FirstName = value
	case "lastName":
		next.LastName = value
	case "email":
		next.Email = value
	case "phone":
		next.Phone = value
	case "role":
		if value != w.applicant.Role {
			w.step = StepApplicant
		}
		next.Role = value
	default:
		w.log.Warn("unknown applicant field ignored", map[string]interface{}{"field": field})
		return
	}
	w.applicant = next
}

// PatchHousehold applies one household field edit. Numeric and boolean
// fields parse leniently; unparseable input leaves zero values.
func (w *Wizard) PatchHousehold(field, value string) {
	next := w.household
	switch field {
	case "address":
		next.Address = value
	case "city":
		next.City = value
	case "state":
		next.State = value
	case "postalCode":
		next.PostalCode = value
	case "bedrooms":
		next.Bedrooms, _ = strconv.Atoi(value)
	case "hasOtherChildren":
		next.HasOtherChildren, _ = strconv.ParseBool(value)
	default:
		w.log.Warn("unknown household field ignored", map[string]interface{}{"field": field})
		return
	}
	w.household = next
}

// PatchMemberDraft applies one field edit to the pending member entry.
func (w *Wizard) PatchMemberDraft(field, value string) {
	next := w.memberDraft
	switch field {
	case "firstName":
		next.FirstName = value
	case "lastName":
		next.LastName = value
	case "relationship":
		next.Relationship = value
	case "birthdate":
		next.Birthdate = value
	default:
		w.log.Warn("unknown member field ignored", map[string]interface{}{"field": field})
		return
	}
	w.memberDraft = next
}

// ==========================
// Navigation
// ==========================

// Next advances the cursor. Leaving the first step validates the applicant
// and applies the role skip: caseworker applicants jump straight to review.
func (w *Wizard) Next() error {
	switch w.step {
	case StepApplicant:
		if err := w.validateApplicant(); err != nil {
			w.errMsg = apierrors.UserMessage(err)
			w.presenter.Notify("Intake Application", w.errMsg, models.SeverityError)
			return err
		}
		if w.applicant.Role == models.RoleCaseworker {
			w.transitionTo(StepReview)
		} else {
			w.transitionTo(StepHousehold)
		}
	case StepHousehold:
		w.transitionTo(StepFamily)
	case StepFamily:
		w.transitionTo(StepReview)
	}
	return nil
}

// Previous moves the cursor back, mirroring the forward skip from review.
func (w *Wizard) Previous() {
	switch w.step {
	case StepHousehold:
		w.transitionTo(StepApplicant)
	case StepFamily:
		w.transitionTo(StepHousehold)
	case StepReview:
		if w.applicant.Role == models.RoleCaseworker {
			w.transitionTo(StepApplicant)
		} else {
			w.transitionTo(StepFamily)
		}
	}
}

// transitionTo performs the shared side effects of every step change: the
// error message clears and the viewport scrolls to top.
func (w *Wizard) transitionTo(step Step) {
	w.step = step
	w.errMsg = ""
	w.presenter.ScrollToTop()
}

func (w *Wizard) validateApplicant() error {
	var fieldErrs []validation.FieldError
	fieldErrs = validation.Required(fieldErrs, "firstName", w.applicant.FirstName)
	fieldErrs = validation.Required(fieldErrs, "lastName", w.applicant.LastName)
	fieldErrs = validation.Required(fieldErrs, "email", w.applicant.Email)
	fieldErrs = validation.Required(fieldErrs, "phone", w.applicant.Phone)
	fieldErrs = validation.Required(fieldErrs, "role", w.applicant.Role)
	fieldErrs = validation.Email(fieldErrs, "email", w.applicant.Email)
	fieldErrs = validation.Phone(fieldErrs, "phone", w.applicant.Phone)
	if len(fieldErrs) > 0 {
		return apierrors.NewApplicationValidationFailedError(validation.Summarize(fieldErrs))
	}
	return nil
}

// ==========================
// Local member list
// ==========================

// AddMember validates the pending entry, stamps a locally-unique identifier,
// appends it, and resets the draft buffer. No remote call is made.
func (w *Wizard) AddMember() error {
	var fieldErrs []validation.FieldError
	fieldErrs = validation.Required(fieldErrs, "firstName", w.memberDraft.FirstName)
	fieldErrs = validation.Required(fieldErrs, "lastName", w.memberDraft.LastName)
	if len(fieldErrs) > 0 {
		valErr := apierrors.NewMemberValidationFailedError(validation.Summarize(fieldErrs))
		w.errMsg = "First and last name are required"
		w.presenter.Notify("Family Members", w.errMsg, models.SeverityError)
		return valErr
	}

	entry := w.memberDraft
	entry.TempID = uuid.NewString()
	w.members = append(w.members, entry)
	w.memberDraft = models.FamilyMemberDraft{}
	w.errMsg = ""
	return nil
}

// RemoveMember deletes an entry by positional index. Out-of-range indexes
// are ignored.
func (w *Wizard) RemoveMember(index int) {
	if index < 0 || index >= len(w.members) {
		return
	}
	w.members = append(w.members[:index], w.members[index+1:]...)
}

// ==========================
// Submission
// ==========================

// BuildPayload assembles the submit document. For caseworker applicants the
// member list and household info are sent empty regardless of what was
// drafted before the role changed.
func (w *Wizard) BuildPayload() models.ApplicationPayload {
	payload := models.ApplicationPayload{
		Applicant:     w.applicant,
		FamilyMembers: []models.FamilyMemberDraft{},
	}
	if w.applicant.Role != models.RoleCaseworker {
		if len(w.members) > 0 {
			payload.FamilyMembers = append(payload.FamilyMembers, w.members...)
		}
		payload.HouseholdInfo = w.household
	}
	return payload
}

// Submit validates the payload against the record schema and posts it. On
// success the terminal submitted view replaces the form; on failure the
// wizard stays on the review step, resubmittable.
func (w *Wizard) Submit(ctx context.Context) error {
	if w.busy {
		return apierrors.NewMutationInFlightError("submit")
	}
	if w.submitted || w.step != StepReview {
		return nil
	}

	payload := w.BuildPayload()
	if w.schemas != nil {
		if err := w.schemas.ValidateValue("application", payload); err != nil {
			schemaErr := apierrors.NewSchemaInvalidError("application", err.Error())
			w.errMsg = schemaErr.Message
			w.presenter.Notify("Intake Application", w.errMsg, models.SeverityError)
			return schemaErr
		}
	}

	w.busy = true
	defer func() { w.busy = false }()

	if err := w.svc.SubmitApplication(ctx, payload); err != nil {
		w.log.Error("application submit failed", map[string]interface{}{"error": err.Error()})
		w.errMsg = apierrors.UserMessage(err)
		w.presenter.Notify("Intake Application", w.errMsg, models.SeverityError)
		return err
	}

	w.log.Info("application submitted", map[string]interface{}{
		"role":        w.applicant.Role,
		"memberCount": len(payload.FamilyMembers),
	})
	w.submitted = true
	w.errMsg = ""
	w.presenter.ScrollToTop()
	w.presenter.Notify("Intake Application", "Application submitted", models.SeveritySuccess)
	return nil
}

// Reset clears every draft and returns the cursor to the first step so a new
// application can begin.
func (w *Wizard) Reset() {
	w.applicant = models.Applicant{}
	w.household = models.HouseholdInfo{}
	w.members = nil
	w.memberDraft = models.FamilyMemberDraft{}
	w.step = StepApplicant
	w.errMsg = ""
	w.submitted = false
	w.presenter.ScrollToTop()
}
