package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Workflow errors - raised while acquiring data for the home screen
	ErrorTypeConnectivityUnavailable
	ErrorTypePermissionDenied
	ErrorTypePermissionPermanentlyDenied
	ErrorTypeLocationTimeout
	ErrorTypeLocationHardware
	ErrorTypeNotificationScheduling

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeExternalAPI

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeConnectivityUnavailable:
		return "CONNECTIVITY_UNAVAILABLE"
	case ErrorTypePermissionDenied:
		return "PERMISSION_DENIED"
	case ErrorTypePermissionPermanentlyDenied:
		return "PERMISSION_PERMANENTLY_DENIED"
	case ErrorTypeLocationTimeout:
		return "LOCATION_TIMEOUT"
	case ErrorTypeLocationHardware:
		return "LOCATION_HARDWARE_ERROR"
	case ErrorTypeNotificationScheduling:
		return "NOTIFICATION_SCHEDULING_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

// Workflow Error Constructors
func NewConnectivityError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConnectivityUnavailable, message, cause)
}

func NewPermissionDeniedError(message string, cause error) *AppError {
	return Wrap(ErrorTypePermissionDenied, message, cause)
}

func NewPermissionPermanentlyDeniedError(message string) *AppError {
	return New(ErrorTypePermissionPermanentlyDenied, message)
}

func NewLocationTimeoutError(message string, cause error) *AppError {
	return Wrap(ErrorTypeLocationTimeout, message, cause)
}

func NewLocationHardwareError(message string, cause error) *AppError {
	return Wrap(ErrorTypeLocationHardware, message, cause)
}

func NewNotificationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeNotificationScheduling, message, cause)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ErrorTypeExternalAPI, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func isType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

func IsConnectivityError(err error) bool {
	return isType(err, ErrorTypeConnectivityUnavailable)
}

func IsPermissionError(err error) bool {
	return isType(err, ErrorTypePermissionDenied) || isType(err, ErrorTypePermissionPermanentlyDenied)
}

func IsLocationError(err error) bool {
	return isType(err, ErrorTypeLocationTimeout) || isType(err, ErrorTypeLocationHardware)
}

func IsNotificationError(err error) bool {
	return isType(err, ErrorTypeNotificationScheduling)
}

func IsDatabaseError(err error) bool {
	return isType(err, ErrorTypeDatabase)
}

func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}
