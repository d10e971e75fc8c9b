// internal/platform/subscription_test.go
package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fostercare-intake/internal/models"
)

type stubSource struct {
	overview   *models.OverviewProjection
	members    []models.FamilyMember
	contact    *models.ContactSummary
	err        error
	fetchCount int
}

func (s *stubSource) FetchOverview(ctx context.Context, accountID string) (*models.OverviewProjection, error) {
	s.fetchCount++
	return s.overview, s.err
}

func (s *stubSource) FetchFamilyMembers(ctx context.Context, accountID string) ([]models.FamilyMember, error) {
	s.fetchCount++
	return s.members, s.err
}

func (s *stubSource) CreateFamilyMember(ctx context.Context, accountID string, member models.FamilyMember) error {
	return nil
}

func (s *stubSource) UpdateFamilyMember(ctx context.Context, accountID string, member models.FamilyMember) error {
	return nil
}

func (s *stubSource) DeleteFamilyMember(ctx context.Context, memberID string) error {
	return nil
}

func (s *stubSource) FetchPrimaryContact(ctx context.Context) (*models.ContactSummary, error) {
	s.fetchCount++
	return s.contact, s.err
}

func TestOverviewSubscription_DeliversExactlyOneOfDataOrError(t *testing.T) {
	source := &stubSource{overview: &models.OverviewProjection{
		Household: models.Household{ID: "acct-1", Name: "Reyes Household"},
	}}

	var deliveries []OverviewDelivery
	sub := NewOverviewSubscription("acct-1", source, func(d OverviewDelivery) {
		deliveries = append(deliveries, d)
	})

	sub.Deliver(context.Background())
	require.Len(t, deliveries, 1)
	assert.NotNil(t, deliveries[0].Data)
	assert.NoError(t, deliveries[0].Err)

	source.err = errors.New("service unavailable")
	source.overview = nil
	sub.Deliver(context.Background())
	require.Len(t, deliveries, 2)
	assert.Nil(t, deliveries[1].Data)
	assert.Error(t, deliveries[1].Err)
}

func TestOverviewSubscription_RefreshRePulls(t *testing.T) {
	source := &stubSource{overview: &models.OverviewProjection{}}
	sub := NewOverviewSubscription("acct-1", source, func(OverviewDelivery) {})

	sub.Deliver(context.Background())
	sub.Refresh(context.Background())

	assert.Equal(t, 2, source.fetchCount)
}

func TestMemberListSubscription_Deliver(t *testing.T) {
	source := &stubSource{members: []models.FamilyMember{{ID: "fm-1", FirstName: "Theo"}}}

	var last MemberListDelivery
	sub := NewMemberListSubscription("acct-1", source, func(d MemberListDelivery) { last = d })

	sub.Deliver(context.Background())
	require.NoError(t, last.Err)
	require.Len(t, last.Data, 1)

	source.err = errors.New("service unavailable")
	sub.Deliver(context.Background())
	assert.Error(t, last.Err)
	assert.Nil(t, last.Data)
}

func TestContactSubscription_Deliver(t *testing.T) {
	source := &stubSource{contact: &models.ContactSummary{ID: "ct-1", FirstName: "Dana"}}

	var last ContactDelivery
	sub := NewContactSubscription(source, func(d ContactDelivery) { last = d })

	sub.Deliver(context.Background())

	require.NoError(t, last.Err)
	require.NotNil(t, last.Data)
	assert.Equal(t, "Dana", last.Data.FirstName)
}
