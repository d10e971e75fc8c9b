// internal/models/application.go
package models

// Applicant roles accepted by the public intake form. The role drives which
// steps of the form apply: caseworker applicants have no household of their
// own to describe.
const (
	RoleFosterParent   = "Foster Parent"
	RoleAdoptiveParent = "Adoptive Parent"
	RoleVolunteer      = "Volunteer"
	RoleCaseworker     = "Caseworker"
)

// Applicant is the primary-applicant portion of an intake draft.
type Applicant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// HouseholdInfo is the household portion of an intake draft.
type HouseholdInfo struct {
	Address          string `json:"address,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	Bedrooms         int    `json:"bedrooms,omitempty"`
	HasOtherChildren bool   `json:"hasOtherChildren,omitempty"`
}

// FamilyMemberDraft is a member entry held only client-side during intake.
// TempID is a locally-unique identifier stamped on add; it never reaches the
// data service.
type FamilyMemberDraft struct {
	TempID       string `json:"tempId,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Relationship string `json:"relationship,omitempty"`
	Birthdate    string `json:"birthdate,omitempty"`
}

// ApplicationPayload is the single document assembled at final submit.
// FamilyMembers is always present (empty for caseworker applicants) so the
// receiving trigger sees a stable shape.
type ApplicationPayload struct {
	Applicant     Applicant           `json:"applicant"`
	FamilyMembers []FamilyMemberDraft `json:"familyMembers"`
	HouseholdInfo HouseholdInfo       `json:"householdInfo"`
}
