// internal/platform/subscription.go
package platform

import (
	"context"

	"fostercare-intake/internal/common/metrics"
	"fostercare-intake/internal/models"
)

// OverviewDelivery is pushed to the subscriber on every pull: exactly one of
// Data or Err is set.
type OverviewDelivery struct {
	Data *models.OverviewProjection
	Err  error
}

// MemberListDelivery carries the latest family-member list or a fetch error.
type MemberListDelivery struct {
	Data []models.FamilyMember
	Err  error
}

// ContactDelivery carries the primary-contact summary or a fetch error.
type ContactDelivery struct {
	Data *models.ContactSummary
	Err  error
}

// OverviewSubscription is a live binding to a household overview record.
// Deliver pulls the latest server state and invokes the callback;
// Refresh is the forced re-pull issued after a mutation succeeds.
type OverviewSubscription struct {
	accountID  string
	source     OverviewService
	onDelivery func(OverviewDelivery)
}

func NewOverviewSubscription(accountID string, source OverviewService, onDelivery func(OverviewDelivery)) *OverviewSubscription {
	return &OverviewSubscription{accountID: accountID, source: source, onDelivery: onDelivery}
}

func (s *OverviewSubscription) Deliver(ctx context.Context) {
	data, err := s.source.FetchOverview(ctx, s.accountID)
	if err != nil {
		metrics.SubscriptionDeliveries.WithLabelValues("overview", "error").Inc()
		s.onDelivery(OverviewDelivery{Err: err})
		return
	}
	metrics.SubscriptionDeliveries.WithLabelValues("overview", "ok").Inc()
	s.onDelivery(OverviewDelivery{Data: data})
}

// Refresh re-pulls the record. It is a request for fresh state, not a
// guaranteed-synchronous UI refresh; callers must tolerate the gap between a
// mutation succeeding and the next delivery.
func (s *OverviewSubscription) Refresh(ctx context.Context) {
	s.Deliver(ctx)
}

// MemberListSubscription is a live binding to the family-member list of an
// account.
type MemberListSubscription struct {
	accountID  string
	source     MemberService
	onDelivery func(MemberListDelivery)
}

func NewMemberListSubscription(accountID string, source MemberService, onDelivery func(MemberListDelivery)) *MemberListSubscription {
	return &MemberListSubscription{accountID: accountID, source: source, onDelivery: onDelivery}
}

func (s *MemberListSubscription) Deliver(ctx context.Context) {
	data, err := s.source.FetchFamilyMembers(ctx, s.accountID)
	if err != nil {
		metrics.SubscriptionDeliveries.WithLabelValues("members", "error").Inc()
		s.onDelivery(MemberListDelivery{Err: err})
		return
	}
	metrics.SubscriptionDeliveries.WithLabelValues("members", "ok").Inc()
	s.onDelivery(MemberListDelivery{Data: data})
}

func (s *MemberListSubscription) Refresh(ctx context.Context) {
	s.Deliver(ctx)
}

// ContactSubscription is a live binding to the primary contact record.
type ContactSubscription struct {
	source     ContactService
	onDelivery func(ContactDelivery)
}

func NewContactSubscription(source ContactService, onDelivery func(ContactDelivery)) *ContactSubscription {
	return &ContactSubscription{source: source, onDelivery: onDelivery}
}

func (s *ContactSubscription) Deliver(ctx context.Context) {
	data, err := s.source.FetchPrimaryContact(ctx)
	if err != nil {
		metrics.SubscriptionDeliveries.WithLabelValues("contact", "error").Inc()
		s.onDelivery(ContactDelivery{Err: err})
		return
	}
	metrics.SubscriptionDeliveries.WithLabelValues("contact", "ok").Inc()
	s.onDelivery(ContactDelivery{Data: data})
}

func (s *ContactSubscription) Refresh(ctx context.Context) {
	s.Deliver(ctx)
}
