// internal/models/caseworker.go
package models

// Availability statuses reported by the staffing service.
const (
	AvailabilityAvailable   = "Available"
	AvailabilityAtCapacity  = "At Capacity"
	AvailabilityUnavailable = "Unavailable"
)

// CaseworkerCandidate is fetched on demand when the assignment workflow opens
// and discarded when it closes.
type CaseworkerCandidate struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	CurrentCaseLoad    int    `json:"currentCaseLoad"`
	MaximumCaseLoad    int    `json:"maximumCaseLoad"`
	AvailabilityStatus string `json:"availabilityStatus"`
}

// HasCapacity reports whether the candidate can take another case.
func (c CaseworkerCandidate) HasCapacity() bool {
	return c.CurrentCaseLoad < c.MaximumCaseLoad
}
