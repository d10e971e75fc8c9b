// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_Error(t *testing.T) {
	err := NewOverviewFetchFailedError("acct-1", errors.New("boom"))

	assert.Contains(t, err.Error(), string(ErrCodeOverviewFetchFailed))
	assert.Contains(t, err.Error(), err.Message)
	assert.Contains(t, err.Details, "boom")
	assert.True(t, err.Retryable)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "retryable fetch", err: NewOverviewFetchFailedError("acct-1", errors.New("boom")), want: true},
		{name: "validation is terminal", err: NewMemberValidationFailedError("firstName: MISSING_REQUIRED"), want: false},
		{name: "busy guard is terminal", err: NewMutationInFlightError("submit"), want: false},
		{name: "plain error defaults to retryable", err: errors.New("boom"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Caseworker assignment failed",
		UserMessage(NewAssignmentFailedError("cw-1", errors.New("boom"))))
	assert.Equal(t, "An unexpected error occurred. Please try again.",
		UserMessage(errors.New("raw transport failure")))
}

func TestUserMessage_RemoteBodyMessageWins(t *testing.T) {
	remote := &RemoteError{StatusCode: 400, Message: "Birthdate cannot be in the future"}

	saveErr := NewMemberSaveFailedError(remote)
	assert.Equal(t, "Birthdate cannot be in the future", UserMessage(saveErr))
	assert.Equal(t, ErrCodeMemberSaveFailed, saveErr.Code)

	// A plain transport error keeps the generic message.
	assert.Equal(t, "Family member could not be saved",
		UserMessage(NewMemberSaveFailedError(errors.New("connection reset"))))

	// An empty remote message also falls back.
	assert.Equal(t, "Application could not be submitted",
		UserMessage(NewApplicationSubmitFailedError(&RemoteError{StatusCode: 502})))
}

func TestExtractRemoteMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message field", body: `{"message": "Record is locked"}`, want: "Record is locked"},
		{name: "error field", body: `{"error": "Record is locked"}`, want: "Record is locked"},
		{name: "message wins over error", body: `{"message": "A", "error": "B"}`, want: "A"},
		{name: "blank message falls through", body: `{"message": "  ", "error": "B"}`, want: "B"},
		{name: "empty envelope", body: `{}`, want: "fallback"},
		{name: "not json", body: `<html>bad gateway</html>`, want: "fallback"},
		{name: "empty body", body: ``, want: "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRemoteMessage([]byte(tt.body), "fallback"))
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeOverviewFetchFailed, "OVERVIEW"},
		{ErrCodeContactFetchFailed, "OVERVIEW"},
		{ErrCodeCandidateFetchFailed, "ASSIGNMENT"},
		{ErrCodeAssignmentFailed, "ASSIGNMENT"},
		{ErrCodeMemberSaveFailed, "MEMBERS"},
		{ErrCodeApplicationSubmitFailed, "INTAKE"},
		{ErrCodeSchemaInvalid, "VALIDATION"},
		{ErrCodeCacheUnavailable, "CACHE"},
		{ErrCodeNotificationFailed, "NOTIFICATION"},
		{ErrorCode("SOMETHING_ELSE"), "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

func TestErrorsAs_FindsStandardError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewMemberSaveFailedError(errors.New("boom")))

	var stdErr *StandardError
	assert.True(t, errors.As(wrapped, &stdErr))
	assert.Equal(t, ErrCodeMemberSaveFailed, stdErr.Code)
}
