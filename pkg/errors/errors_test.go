package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() *AppError
		expected string
	}{
		{
			name: "ErrorWithoutCause",
			setup: func() *AppError {
				return New(ErrorTypeValidation, "test validation error")
			},
			expected: "VALIDATION_ERROR: test validation error",
		},
		{
			name: "ErrorWithCause",
			setup: func() *AppError {
				cause := fmt.Errorf("no route to host")
				return NewConnectivityError("network unreachable", cause)
			},
			expected: "CONNECTIVITY_UNAVAILABLE: network unreachable (caused by: no route to host)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup()
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("original error")
	err := NewLocationTimeoutError("fix timed out", cause)
	assert.Equal(t, cause, err.Unwrap())

	assert.Nil(t, NewNotFoundError("resource not found").Unwrap())
}

func TestTypeOf_WrappedChain(t *testing.T) {
	appErr := NewNotificationError("channel create failed", nil)
	wrapped := fmt.Errorf("schedule notification: %w", appErr)

	assert.Equal(t, ErrorTypeNotificationScheduling, TypeOf(wrapped))
	assert.True(t, IsNotificationError(wrapped))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain")))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(nil))
}

func TestErrorTypeCheckers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		checker func(error) bool
		want    bool
	}{
		{"validation", NewValidationError("bad"), IsValidationError, true},
		{"not_found", NewNotFoundError("missing"), IsNotFoundError, true},
		{"connectivity", NewConnectivityError("offline", nil), IsConnectivityError, true},
		{"permission_denied", NewPermissionDeniedError("denied", nil), IsPermissionError, true},
		{"permission_permanent", NewPermissionPermanentlyDeniedError("never ask again"), IsPermissionError, true},
		{"location_timeout", NewLocationTimeoutError("timeout", nil), IsLocationError, true},
		{"location_hardware", NewLocationHardwareError("no gps", nil), IsLocationError, true},
		{"database", NewDatabaseError("db", nil), IsDatabaseError, true},
		{"configuration", NewConfigurationError("cfg", nil), IsConfigurationError, true},
		{"mismatch", NewValidationError("bad"), IsLocationError, false},
		{"nil", nil, IsValidationError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checker(tt.err))
		})
	}
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "PERMISSION_PERMANENTLY_DENIED", ErrorTypePermissionPermanentlyDenied.String())
	assert.Equal(t, "LOCATION_HARDWARE_ERROR", ErrorTypeLocationHardware.String())
	assert.Equal(t, "UNKNOWN_ERROR", ErrorType(999).String())
}
