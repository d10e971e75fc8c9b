// internal/components/overview/models.go
package overview

import "fostercare-intake/internal/models"

// Icon names consumed by the record page shell.
const (
	iconHousehold = "standard:household"
	iconChild     = "standard:person_account"
	iconContact   = "standard:contact"

	iconFlagDone    = "utility:check"
	iconFlagPending = "utility:close"
)

// copyProjection produces a deep, independently-owned copy of a delivered
// projection. The delivered value is owned by the platform and must never be
// mutated.
func copyProjection(src *models.OverviewProjection) *models.OverviewProjection {
	dst := &models.OverviewProjection{
		Household: src.Household,
		Contacts:  make([]models.Contact, len(src.Contacts)),
	}
	copy(dst.Contacts, src.Contacts)
	return dst
}

// decorate fills the presentation-only fields on every contact of an owned
// copy.
func decorate(projection *models.OverviewProjection) {
	for i := range projection.Contacts {
		c := &projection.Contacts[i]
		c.LinkPath = "/household/contact/" + c.ID
		c.IconName = iconForRecordType(c.RecordType)
		c.TrainingIcon = flagIcon(c.TrainingCompleted)
		c.HomeStudyIcon = flagIcon(c.HomeStudyCompleted)
	}
}

func iconForRecordType(recordType string) string {
	switch recordType {
	case models.RoleFosterParent, models.RoleAdoptiveParent:
		return iconHousehold
	case "Child":
		return iconChild
	default:
		return iconContact
	}
}

func flagIcon(done bool) string {
	if done {
		return iconFlagDone
	}
	return iconFlagPending
}
