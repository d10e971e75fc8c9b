// Package errors provides standardized error handling for the case-management
// components and the data-service client.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeOverviewFetchFailed  ErrorCode = "OVERVIEW_FETCH_FAILED"
	ErrCodeContactFetchFailed   ErrorCode = "CONTACT_FETCH_FAILED"
	ErrCodeCandidateFetchFailed ErrorCode = "CANDIDATE_FETCH_FAILED"
	ErrCodeAssignmentFailed     ErrorCode = "ASSIGNMENT_FAILED"

	ErrCodeMemberListFailed   ErrorCode = "MEMBER_LIST_FAILED"
	ErrCodeMemberSaveFailed   ErrorCode = "MEMBER_SAVE_FAILED"
	ErrCodeMemberDeleteFailed ErrorCode = "MEMBER_DELETE_FAILED"

	ErrCodeMemberValidationFailed      ErrorCode = "MEMBER_VALIDATION_FAILED"
	ErrCodeApplicationValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"
	ErrCodeApplicationSubmitFailed     ErrorCode = "APPLICATION_SUBMIT_FAILED"

	ErrCodeCacheUnavailable   ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeMutationInFlight   ErrorCode = "MUTATION_IN_FLIGHT"
	ErrCodeSchemaInvalid      ErrorCode = "SCHEMA_INVALID"
	ErrCodeNotificationFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// RemoteError carries the message extracted from a structured data-service
// error body. Constructors promote it to the user-facing message; plain
// errors keep the constructor's generic message instead.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// messageOr returns the remote body message when err carries one, else the
// generic fallback.
func messageOr(fallback string, err error) string {
	if remote, ok := err.(*RemoteError); ok && remote.Message != "" {
		return remote.Message
	}
	return fallback
}

// ==========================
// 2. Error Constructors
// ==========================

// NewOverviewFetchFailedError creates a retryable overview delivery error.
func NewOverviewFetchFailedError(accountID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOverviewFetchFailed,
		Message:   messageOr("Household overview could not be loaded", err),
		Details:   fmt.Sprintf("accountId: %s, error: %s", accountID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewContactFetchFailedError creates a retryable primary-contact fetch error.
func NewContactFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeContactFetchFailed,
		Message:   messageOr("Primary contact could not be loaded", err),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCandidateFetchFailedError creates a retryable staffing lookup error.
func NewCandidateFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCandidateFetchFailed,
		Message:   messageOr("Caseworker candidates could not be loaded", err),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssignmentFailedError creates a retryable assignment mutation error.
func NewAssignmentFailedError(caseworkerID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAssignmentFailed,
		Message:   messageOr("Caseworker assignment failed", err),
		Details:   fmt.Sprintf("caseworkerId: %s, error: %s", caseworkerID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMemberListFailedError creates a retryable member-list delivery error.
func NewMemberListFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMemberListFailed,
		Message:   messageOr("Family members could not be loaded", err),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMemberSaveFailedError creates a retryable create/update mutation error.
func NewMemberSaveFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMemberSaveFailed,
		Message:   messageOr("Family member could not be saved", err),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMemberDeleteFailedError creates a retryable delete mutation error.
func NewMemberDeleteFailedError(memberID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMemberDeleteFailed,
		Message:   messageOr("Family member could not be removed", err),
		Details:   fmt.Sprintf("memberId: %s, error: %s", memberID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMemberValidationFailedError creates a non-retryable local validation
// error. No remote call is issued when this is returned.
func NewMemberValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMemberValidationFailed,
		Message:   "First name, last name, and relationship are required",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationValidationFailedError creates a non-retryable intake
// validation error.
func NewApplicationValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationValidationFailed,
		Message:   "Application data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewApplicationSubmitFailedError creates a retryable submission error. The
// wizard stays on the review step so the user can resubmit.
func NewApplicationSubmitFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeApplicationSubmitFailed,
		Message:   messageOr("Application could not be submitted", err),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMutationInFlightError creates a non-retryable busy-guard error.
func NewMutationInFlightError(workflow string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMutationInFlight,
		Message:   "Another change is still being saved",
		Details:   fmt.Sprintf("workflow: %s", workflow),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaInvalidError creates a non-retryable schema validation error.
func NewSchemaInvalidError(schemaName, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSchemaInvalid,
		Message:   fmt.Sprintf("Record does not match the '%s' schema", schemaName),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error. Callers treat the
// cache as best-effort and fall through to the data service.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Record cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationFailedError creates a retryable notification delivery error.
func NewNotificationFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsRetryable reports whether err carries a retryable StandardError. Plain
// non-nil errors are treated as retryable remote failures.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return err != nil
}

// UserMessage extracts the message to surface for err. Structured errors keep
// their message; anything else falls back to a generic string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Message
	}
	return "An unexpected error occurred. Please try again."
}

// ExtractRemoteMessage pulls a human-readable message out of a structured
// error body. Bodies of the form {"message": ...} or {"error": ...} are
// honored; anything else yields the fallback.
func ExtractRemoteMessage(body []byte, fallback string) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := strings.TrimSpace(envelope.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(envelope.Error); msg != "" {
			return msg
		}
	}
	return fallback
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "OVERVIEW") || strings.Contains(codeStr, "CONTACT"):
		return "OVERVIEW"
	case strings.Contains(codeStr, "CANDIDATE") || strings.Contains(codeStr, "ASSIGNMENT"):
		return "ASSIGNMENT"
	case strings.Contains(codeStr, "MEMBER"):
		return "MEMBERS"
	case strings.Contains(codeStr, "APPLICATION"):
		return "INTAKE"
	case strings.Contains(codeStr, "SCHEMA"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
