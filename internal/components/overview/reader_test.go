// internal/components/overview/reader_test.go
package overview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
	"fostercare-intake/internal/models"
	"fostercare-intake/internal/platform"
)

// ==========================
// Test Helper Functions
// ==========================

type spyAssignmentService struct {
	overview   *models.OverviewProjection
	candidates []models.CaseworkerCandidate

	assigned [][2]string

	overviewErr   error
	candidatesErr error
	assignErr     error

	// during, when set, runs while the assignment call is in flight.
	during func()
}

func (s *spyAssignmentService) FetchOverview(ctx context.Context, accountID string) (*models.OverviewProjection, error) {
	if s.overviewErr != nil {
		return nil, s.overviewErr
	}
	return s.overview, nil
}

func (s *spyAssignmentService) FetchCandidates(ctx context.Context) ([]models.CaseworkerCandidate, error) {
	if s.candidatesErr != nil {
		return nil, s.candidatesErr
	}
	return s.candidates, nil
}

func (s *spyAssignmentService) AssignCaseworker(ctx context.Context, accountID, caseworkerID string) error {
	if s.during != nil {
		s.during()
	}
	if s.assignErr != nil {
		return s.assignErr
	}
	s.assigned = append(s.assigned, [2]string{accountID, caseworkerID})
	if s.overview != nil {
		s.overview.Household.CaseworkerID = caseworkerID
	}
	return nil
}

type recordingPresenter struct {
	notifications []string
}

func (p *recordingPresenter) Confirm(message string) bool { return true }

func (p *recordingPresenter) Notify(title, message, severity string) {
	p.notifications = append(p.notifications, severity+": "+message)
}

func (p *recordingPresenter) ScrollToTop() {}

func sampleProjection() *models.OverviewProjection {
	return &models.OverviewProjection{
		Household: models.Household{
			ID:           "acct-1",
			Name:         "Reyes Household",
			City:         "Spokane",
			Status:       "Active",
			CaseworkerID: "cw-9",
		},
		Contacts: []models.Contact{
			{ID: "ct-1", FirstName: "Dana", LastName: "Reyes", RecordType: models.RoleFosterParent, TrainingCompleted: true},
			{ID: "ct-2", FirstName: "Theo", LastName: "Reyes", RecordType: "Child"},
		},
	}
}

func sampleCandidates() []models.CaseworkerCandidate {
	return []models.CaseworkerCandidate{
		{ID: "cw-9", Name: "Alex Kim", CurrentCaseLoad: 4, MaximumCaseLoad: 10, AvailabilityStatus: models.AvailabilityAvailable},
		{ID: "cw-12", Name: "Sam Okafor", CurrentCaseLoad: 10, MaximumCaseLoad: 10, AvailabilityStatus: models.AvailabilityAtCapacity},
	}
}

func newTestReader(t *testing.T, svc *spyAssignmentService) (*Reader, *platform.OverviewSubscription, *recordingPresenter) {
	presenter := &recordingPresenter{}
	reader := NewReader("acct-1", svc, presenter, logger.NewTestLogger(t))
	sub := platform.NewOverviewSubscription("acct-1", svc, reader.OnDelivery)
	reader.BindRefresh(sub.Refresh)
	return reader, sub, presenter
}

// ==========================
// Delivery Tests
// ==========================

func TestReader_OnDelivery_DecoratesTheCopy(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection()}
	reader, sub, _ := newTestReader(t, svc)

	sub.Deliver(context.Background())

	projection := reader.Projection()
	require.NotNil(t, projection)
	assert.NoError(t, reader.Err())

	first := projection.Contacts[0]
	assert.Equal(t, "/household/contact/ct-1", first.LinkPath)
	assert.Equal(t, "standard:household", first.IconName)
	assert.Equal(t, "utility:check", first.TrainingIcon)
	assert.Equal(t, "utility:close", first.HomeStudyIcon)

	second := projection.Contacts[1]
	assert.Equal(t, "standard:person_account", second.IconName)
	assert.Equal(t, "utility:close", second.TrainingIcon)
}

func TestReader_OnDelivery_NeverTouchesTheSource(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection()}
	reader, sub, _ := newTestReader(t, svc)

	sub.Deliver(context.Background())

	// The delivered value keeps its wire shape.
	assert.Empty(t, svc.overview.Contacts[0].LinkPath)
	assert.Empty(t, svc.overview.Contacts[0].IconName)

	// And later source mutations never reach the view-model.
	svc.overview.Contacts[0].FirstName = "CHANGED"
	assert.Equal(t, "Dana", reader.Projection().Contacts[0].FirstName)
}

func TestReader_OnDelivery_ErrorAndDataAreMutuallyExclusive(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection()}
	reader, sub, _ := newTestReader(t, svc)
	sub.Deliver(context.Background())
	require.NotNil(t, reader.Projection())

	svc.overviewErr = errors.New("service unavailable")
	sub.Deliver(context.Background())
	assert.Error(t, reader.Err())
	assert.Nil(t, reader.Projection())

	// Recovery swaps back.
	svc.overviewErr = nil
	sub.Deliver(context.Background())
	assert.NoError(t, reader.Err())
	assert.NotNil(t, reader.Projection())
}

// ==========================
// Assignment Workflow Tests
// ==========================

func TestReader_OpenAssignment_DefaultsToCurrentAssignee(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection(), candidates: sampleCandidates()}
	reader, sub, _ := newTestReader(t, svc)
	sub.Deliver(context.Background())

	require.NoError(t, reader.OpenAssignment(context.Background()))

	assert.True(t, reader.AssignmentOpen())
	assert.Len(t, reader.Candidates(), 2)
	assert.Equal(t, "cw-9", reader.SelectedCandidate())
}

func TestReader_OpenAssignment_NoCurrentAssignee(t *testing.T) {
	projection := sampleProjection()
	projection.Household.CaseworkerID = ""
	svc := &spyAssignmentService{overview: projection, candidates: sampleCandidates()}
	reader, sub, _ := newTestReader(t, svc)
	sub.Deliver(context.Background())

	require.NoError(t, reader.OpenAssignment(context.Background()))

	assert.Empty(t, reader.SelectedCandidate())
}

func TestReader_OpenAssignment_FetchFailure(t *testing.T) {
	svc := &spyAssignmentService{candidatesErr: errors.New("staffing service down")}
	reader, _, presenter := newTestReader(t, svc)

	err := reader.OpenAssignment(context.Background())

	assert.Error(t, err)
	assert.NotEmpty(t, reader.AssignmentError())
	assert.NotEmpty(t, presenter.notifications)
}

func TestReader_SelectCandidate_IgnoredWhileClosed(t *testing.T) {
	reader, _, _ := newTestReader(t, &spyAssignmentService{})

	reader.SelectCandidate("cw-12")

	assert.Empty(t, reader.SelectedCandidate())
}

func TestReader_ConfirmAssignment_RequiresSelection(t *testing.T) {
	projection := sampleProjection()
	projection.Household.CaseworkerID = ""
	svc := &spyAssignmentService{overview: projection, candidates: sampleCandidates()}
	reader, sub, presenter := newTestReader(t, svc)
	sub.Deliver(context.Background())
	require.NoError(t, reader.OpenAssignment(context.Background()))

	require.NoError(t, reader.ConfirmAssignment(context.Background()))

	assert.Empty(t, svc.assigned)
	assert.True(t, reader.AssignmentOpen())
	assert.NotEmpty(t, reader.AssignmentError())
	assert.NotEmpty(t, presenter.notifications)
}

func TestReader_ConfirmAssignment_Success(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection(), candidates: sampleCandidates()}
	reader, sub, presenter := newTestReader(t, svc)
	sub.Deliver(context.Background())
	require.NoError(t, reader.OpenAssignment(context.Background()))
	reader.SelectCandidate("cw-12")

	require.NoError(t, reader.ConfirmAssignment(context.Background()))

	require.Len(t, svc.assigned, 1)
	assert.Equal(t, [2]string{"acct-1", "cw-12"}, svc.assigned[0])

	// The forced re-pull surfaced the new assignee.
	assert.Equal(t, "cw-12", reader.Projection().Household.CaseworkerID)

	// The workflow closed and left nothing behind.
	assert.False(t, reader.AssignmentOpen())
	assert.Nil(t, reader.Candidates())
	assert.Empty(t, reader.SelectedCandidate())
	assert.Empty(t, reader.AssignmentError())
	assert.Contains(t, presenter.notifications, "success: Caseworker assigned")
}

func TestReader_ConfirmAssignment_BusyGuardBlocksOverlap(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection(), candidates: sampleCandidates()}
	reader, sub, _ := newTestReader(t, svc)
	sub.Deliver(context.Background())
	require.NoError(t, reader.OpenAssignment(context.Background()))
	reader.SelectCandidate("cw-12")

	var sawBusy bool
	var overlapped error
	svc.during = func() {
		sawBusy = reader.AssignmentBusy()
		overlapped = reader.ConfirmAssignment(context.Background())
	}

	require.NoError(t, reader.ConfirmAssignment(context.Background()))

	assert.True(t, sawBusy)
	var stdErr *apierrors.StandardError
	require.True(t, errors.As(overlapped, &stdErr))
	assert.Equal(t, apierrors.ErrCodeMutationInFlight, stdErr.Code)

	assert.Len(t, svc.assigned, 1)
	assert.False(t, reader.AssignmentBusy())
}

func TestReader_ConfirmAssignment_FailureKeepsWorkflowOpen(t *testing.T) {
	svc := &spyAssignmentService{
		overview:   sampleProjection(),
		candidates: sampleCandidates(),
		assignErr:  apierrors.NewAssignmentFailedError("cw-12", errors.New("at capacity")),
	}
	reader, sub, _ := newTestReader(t, svc)
	sub.Deliver(context.Background())
	require.NoError(t, reader.OpenAssignment(context.Background()))
	reader.SelectCandidate("cw-12")

	err := reader.ConfirmAssignment(context.Background())

	assert.Error(t, err)
	assert.True(t, reader.AssignmentOpen())
	assert.Equal(t, "cw-12", reader.SelectedCandidate())
	assert.Equal(t, "Caseworker assignment failed", reader.AssignmentError())
	assert.False(t, reader.AssignmentBusy())
}

func TestReader_ConfirmAssignment_NoOpWhileClosed(t *testing.T) {
	svc := &spyAssignmentService{}
	reader, _, _ := newTestReader(t, svc)

	require.NoError(t, reader.ConfirmAssignment(context.Background()))

	assert.Empty(t, svc.assigned)
}

func TestReader_CloseAssignment_ClearsTransientState(t *testing.T) {
	svc := &spyAssignmentService{overview: sampleProjection(), candidates: sampleCandidates()}
	reader, sub, _ := newTestReader(t, svc)
	sub.Deliver(context.Background())
	require.NoError(t, reader.OpenAssignment(context.Background()))
	reader.SelectCandidate("cw-12")

	reader.CloseAssignment()

	assert.False(t, reader.AssignmentOpen())
	assert.Nil(t, reader.Candidates())
	assert.Empty(t, reader.SelectedCandidate())

	// A reopen starts clean, defaulting back to the stored assignee.
	require.NoError(t, reader.OpenAssignment(context.Background()))
	assert.Equal(t, "cw-9", reader.SelectedCandidate())
}
