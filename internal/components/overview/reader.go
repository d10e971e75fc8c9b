// internal/components/overview/reader.go
package overview

import (
	"context"

	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/models"
	"fostercare-intake/internal/platform"
	"fostercare-intake/internal/ui"
)

// Reader owns the household overview view-model. It consumes deliveries from
// an overview subscription and carries the caseworker-assignment workflow as
// a sub-state with its own busy flag and error message.
//
// The view-model and the delivery error are mutually exclusive: a data
// delivery clears the error, an error delivery clears the view-model.
type Reader struct {
	log       logger.Logger
	svc       platform.AssignmentService
	presenter ui.Presenter
	accountID string
	refresh   func(context.Context)

	projection  *models.OverviewProjection
	deliveryErr error

	assignOpen  bool
	candidates  []models.CaseworkerCandidate
	selectedID  string
	assignBusy  bool
	assignError string
}

func NewReader(accountID string, svc platform.AssignmentService, presenter ui.Presenter, log logger.Logger) *Reader {
	return &Reader{
		log:       log.WithFields(map[string]interface{}{"component": "overview", "accountId": accountID}),
		svc:       svc,
		presenter: presenter,
		accountID: accountID,
	}
}

// BindRefresh wires the forced re-pull issued after a successful assignment.
// The subscription needs the reader's OnDelivery to exist first, so this is
// set after construction.
func (r *Reader) BindRefresh(refresh func(context.Context)) {
	r.refresh = refresh
}

// OnDelivery consumes one subscription delivery. The delivered projection is
// copied before any presentation field is derived; the platform's value is
// never touched.
func (r *Reader) OnDelivery(d platform.OverviewDelivery) {
	if d.Err != nil {
		r.log.Error("overview delivery failed", map[string]interface{}{"error": d.Err.Error()})
		r.deliveryErr = d.Err
		r.projection = nil
		return
	}
	if d.Data == nil {
		return
	}
	owned := copyProjection(d.Data)
	decorate(owned)
	r.projection = owned
	r.deliveryErr = nil
}

// Projection returns the current view-model, nil while in the error state.
func (r *Reader) Projection() *models.OverviewProjection {
	return r.projection
}

// Err returns the current delivery error, nil while data is displayed.
func (r *Reader) Err() error {
	return r.deliveryErr
}

// ==========================
// Assignment workflow
// ==========================

// OpenAssignment fetches the transient candidate list and defaults the
// selection to the household's current assignee when one exists.
func (r *Reader) OpenAssignment(ctx context.Context) error {
	if r.assignBusy {
		return apierrors.NewMutationInFlightError("assignment")
	}
	r.assignOpen = true
	r.assignError = ""
	r.assignBusy = true
	defer func() { r.assignBusy = false }()

	candidates, err := r.svc.FetchCandidates(ctx)
	if err != nil {
		r.assignError = apierrors.UserMessage(err)
		r.presenter.Notify("Assign Caseworker", r.assignError, models.SeverityError)
		return err
	}

	r.candidates = candidates
	r.selectedID = ""
	if r.projection != nil && r.projection.Household.CaseworkerID != "" {
		r.selectedID = r.projection.Household.CaseworkerID
	}
	return nil
}

// SelectCandidate records the pending selection. Ignored while the workflow
// is closed.
func (r *Reader) SelectCandidate(caseworkerID string) {
	if !r.assignOpen {
		return
	}
	r.selectedID = caseworkerID
}

// ConfirmAssignment issues the assignment mutation. Success forces a re-pull
// of the overview subscription and closes the workflow; failure keeps the
// workflow open for retry.
func (r *Reader) ConfirmAssignment(ctx context.Context) error {
	if !r.assignOpen {
		return nil
	}
	if r.assignBusy {
		return apierrors.NewMutationInFlightError("assignment")
	}
	if r.selectedID == "" {
		r.assignError = "A caseworker must be selected"
		r.presenter.Notify("Assign Caseworker", r.assignError, models.SeverityError)
		return nil
	}

	r.assignBusy = true
	defer func() { r.assignBusy = false }()

	if err := r.svc.AssignCaseworker(ctx, r.accountID, r.selectedID); err != nil {
		r.log.Error("assignment failed", map[string]interface{}{
			"caseworkerId": r.selectedID,
			"error":        err.Error(),
		})
		r.assignError = apierrors.UserMessage(err)
		r.presenter.Notify("Assign Caseworker", r.assignError, models.SeverityError)
		return err
	}

	r.log.Info("caseworker assigned", map[string]interface{}{"caseworkerId": r.selectedID})
	r.presenter.Notify("Assign Caseworker", "Caseworker assigned", models.SeveritySuccess)
	if r.refresh != nil {
		r.refresh(ctx)
	}
	r.CloseAssignment()
	return nil
}

// CloseAssignment clears all transient assignment state. Nothing from one
// open may leak into the next.
func (r *Reader) CloseAssignment() {
	r.assignOpen = false
	r.candidates = nil
	r.selectedID = ""
	r.assignError = ""
}

func (r *Reader) AssignmentOpen() bool                     { return r.assignOpen }
func (r *Reader) AssignmentBusy() bool                     { return r.assignBusy }
func (r *Reader) AssignmentError() string                  { return r.assignError }
func (r *Reader) Candidates() []models.CaseworkerCandidate { return r.candidates }
func (r *Reader) SelectedCandidate() string                { return r.selectedID }
