// internal/platform/service.go
package platform

import (
	"context"

	"fostercare-intake/internal/models"
)

// OverviewService pulls the household overview projection for an account.
type OverviewService interface {
	FetchOverview(ctx context.Context, accountID string) (*models.OverviewProjection, error)
}

// AssignmentService covers the caseworker-assignment workflow.
type AssignmentService interface {
	FetchCandidates(ctx context.Context) ([]models.CaseworkerCandidate, error)
	AssignCaseworker(ctx context.Context, accountID, caseworkerID string) error
}

// ContactService pulls the primary contact bound to the current case.
type ContactService interface {
	FetchPrimaryContact(ctx context.Context) (*models.ContactSummary, error)
}

// MemberService covers the family-member record CRUD.
type MemberService interface {
	FetchFamilyMembers(ctx context.Context, accountID string) ([]models.FamilyMember, error)
	CreateFamilyMember(ctx context.Context, accountID string, member models.FamilyMember) error
	UpdateFamilyMember(ctx context.Context, accountID string, member models.FamilyMember) error
	DeleteFamilyMember(ctx context.Context, memberID string) error
}

// ApplicationService accepts the final intake payload. Server-side triggers
// convert the payload into records; that conversion is not our concern.
type ApplicationService interface {
	SubmitApplication(ctx context.Context, payload models.ApplicationPayload) error
}

// RecordService is the full remote data-service surface.
type RecordService interface {
	OverviewService
	AssignmentService
	ContactService
	MemberService
	ApplicationService
}
