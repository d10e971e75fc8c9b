// internal/models/member.go
package models

// Background check statuses used by the licensing workflow.
const (
	BackgroundCheckPending = "Pending"
	BackgroundCheckCleared = "Cleared"
	BackgroundCheckFlagged = "Flagged"
	BackgroundCheckNotRun  = "Not Run"
)

// FamilyMember is a persisted household member record. ID is empty until the
// record has been created remotely.
type FamilyMember struct {
	ID                    string `json:"id,omitempty"`
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	MobilePhone           string `json:"mobilePhone,omitempty"`
	Birthdate             string `json:"birthdate,omitempty"`
	Relationship          string `json:"relationship"`
	BackgroundCheckStatus string `json:"backgroundCheckStatus,omitempty"`
	TrainingCompleted     bool   `json:"trainingCompleted"`
	HomeStudyCompleted    bool   `json:"homeStudyCompleted"`
}

// FullName joins first and last name for display and notifications.
func (m FamilyMember) FullName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
