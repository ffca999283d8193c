package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline errors so callers can react per stage
type ErrorType string

const (
	// ErrorTypeConfiguration indicates required connection settings are absent
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeNoValidLocations indicates criteria yielded zero canonical location codes
	ErrorTypeNoValidLocations ErrorType = "NO_VALID_LOCATIONS"

	// ErrorTypeTranslation indicates the completion service failed or returned unusable text
	ErrorTypeTranslation ErrorType = "TRANSLATION"

	// ErrorTypeUnsafeQuery indicates the safety validator rejected a generated query
	ErrorTypeUnsafeQuery ErrorType = "UNSAFE_QUERY"

	// ErrorTypeExecution indicates the analytical store rejected or failed the query
	ErrorTypeExecution ErrorType = "EXECUTION"

	// ErrorTypeTimeout indicates a network call exceeded its deadline
	ErrorTypeTimeout ErrorType = "TIMEOUT"

	// ErrorTypeExport indicates a normalized table could not be encoded
	ErrorTypeExport ErrorType = "EXPORT"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates invalid caller input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error with a stable kind
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// TypeOf returns the error type of err, or ErrorTypeInternal for foreign errors
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewNoValidLocationsError creates a new no-valid-locations error
func NewNoValidLocationsError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNoValidLocations,
		Message: message,
	}
}

// NewTranslationError creates a new translation service error
func NewTranslationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTranslation,
		Message: message,
		Err:     err,
	}
}

// NewUnsafeQueryError creates a new unsafe query error
func NewUnsafeQueryError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnsafeQuery,
		Message: message,
	}
}

// NewExecutionError creates a new execution error
func NewExecutionError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExecution,
		Message: message,
		Err:     err,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: message,
		Err:     err,
	}
}

// NewExportError creates a new export error
func NewExportError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExport,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
