// internal/models/household.go
package models

// Household is the account-level record a case is anchored to.
type Household struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postalCode,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Status       string `json:"status,omitempty"`
	CaseworkerID string `json:"caseworkerId,omitempty"`
}

// Contact is a person record attached to a household. The link and icon
// fields are presentation-only and are never present on the wire; they are
// derived locally after a projection is delivered.
type Contact struct {
	ID                 string `json:"id"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	RecordType         string `json:"recordType"`
	Relationship       string `json:"relationship,omitempty"`
	TrainingCompleted  bool   `json:"trainingCompleted"`
	HomeStudyCompleted bool   `json:"homeStudyCompleted"`

	LinkPath      string `json:"linkPath,omitempty"`
	IconName      string `json:"iconName,omitempty"`
	TrainingIcon  string `json:"trainingIcon,omitempty"`
	HomeStudyIcon string `json:"homeStudyIcon,omitempty"`
}

// ContactSummary is the reduced shape returned by the primary-contact binding.
type ContactSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OverviewProjection is the read-mostly aggregate delivered by the household
// overview binding. Components must copy it before deriving anything.
type OverviewProjection struct {
	Household Household `json:"household"`
	Contacts  []Contact `json:"contacts"`
}
