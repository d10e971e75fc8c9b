// internal/components/wizard/steps.go
package wizard

// Step identifies one page of the intake form.
type Step int

const (
	StepApplicant Step = iota + 1
	StepHousehold
	StepFamily
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepApplicant:
		return "applicant"
	case StepHousehold:
		return "household"
	case StepFamily:
		return "family"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}
