// internal/common/validation/fields.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Predefined patterns
var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// E.164 format: optional +, must start with 1-9, then 6-14 more digits
	phoneRegex = regexp.MustCompile(`^[\+]?[1-9][\d]{6,14}$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s\-\']{1,100}$`)

	phoneStrip = regexp.MustCompile(`[^\d\+]`)
)

// FieldError describes a single failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Required checks that value is non-blank and appends an error to errs when it
// is not. Returns the (possibly grown) slice.
func Required(errs []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, FieldError{
			Field:   field,
			Code:    "MISSING_REQUIRED",
			Message: fmt.Sprintf("%s is required", field),
		})
	}
	return errs
}

// Email checks format after trimming. Blank values are left to Required.
func Email(errs []FieldError, field, value string) []FieldError {
	value = strings.TrimSpace(value)
	if value != "" && !emailRegex.MatchString(value) {
		errs = append(errs, FieldError{
			Field:   field,
			Code:    "INVALID_FORMAT",
			Message: "Invalid email format",
		})
	}
	return errs
}

// Phone strips separators and checks the digits. Blank values are left to
// Required.
func Phone(errs []FieldError, field, value string) []FieldError {
	value = phoneStrip.ReplaceAllString(strings.TrimSpace(value), "")
	if value != "" && !phoneRegex.MatchString(value) {
		errs = append(errs, FieldError{
			Field:   field,
			Code:    "INVALID_FORMAT",
			Message: "Invalid phone format (E.164 recommended)",
		})
	}
	return errs
}

// PersonName checks permitted characters and length.
func PersonName(errs []FieldError, field, value string) []FieldError {
	value = strings.TrimSpace(value)
	if value != "" && !nameRegex.MatchString(value) {
		errs = append(errs, FieldError{
			Field:   field,
			Code:    "INVALID_FORMAT",
			Message: "Name may contain letters, spaces, hyphens, or apostrophes",
		})
	}
	return errs
}

// Summarize renders a compact single-line description of errs for logging and
// error details.
func Summarize(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Code))
	}
	return strings.Join(parts, "; ")
}
