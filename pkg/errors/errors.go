// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown                  = "UNKNOWN_ERROR"
	CodeSchemaValidation         = "SCHEMA_VALIDATION"
	CodeInvalidNodeID            = "INVALID_NODE_ID"
	CodePropertyTypeMismatch     = "PROPERTY_TYPE_MISMATCH"
	CodePropertyColumnOutOfRange = "PROPERTY_COLUMN_OUT_OF_BOUNDS"
	CodeUnsupportedPropertyType  = "UNSUPPORTED_PROPERTY_TYPE"
	CodeTaskError                = "TASK_ERROR"
	CodeTerminated               = "TERMINATED"
	CodeConfigError              = "CONFIG_ERROR"
	CodeCapacityError            = "CAPACITY_ERROR"
	CodeInvariantViolation       = "INVARIANT_VIOLATION"
	CodeTaskStoreError           = "TASK_STORE_ERROR"
	CodeStorageError             = "STORAGE_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message.
func Newf(code string, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances, one per failure mode named in the error handling design.
var (
	ErrSchemaValidation         = New(CodeSchemaValidation, "schema validation failed")
	ErrInvalidNodeID            = New(CodeInvalidNodeID, "node id not present in id map")
	ErrPropertyTypeMismatch     = New(CodePropertyTypeMismatch, "property value type mismatch")
	ErrPropertyColumnOutOfRange = New(CodePropertyColumnOutOfRange, "property column index out of range")
	ErrUnsupportedPropertyType  = New(CodeUnsupportedPropertyType, "unsupported property value type")
	ErrTaskError                = New(CodeTaskError, "task execution error")
	ErrTerminated               = New(CodeTerminated, "operation terminated")
	ErrConfigError              = New(CodeConfigError, "configuration error")
	ErrCapacityError            = New(CodeCapacityError, "capacity exceeded")
	ErrInvariantViolation       = New(CodeInvariantViolation, "invariant violation")
	ErrTaskStoreError           = New(CodeTaskStoreError, "task store error")
	ErrStorageError             = New(CodeStorageError, "storage error")
)

// IsInvalidNodeID checks if the error represents a dangling node reference.
func IsInvalidNodeID(err error) bool {
	return errors.Is(err, ErrInvalidNodeID)
}

// IsSchemaValidation checks if the error is a schema validation failure.
func IsSchemaValidation(err error) bool {
	return errors.Is(err, ErrSchemaValidation)
}

// IsTerminated checks if the error represents a clean user-initiated termination.
func IsTerminated(err error) bool {
	return errors.Is(err, ErrTerminated)
}

// IsTaskError checks if the error is a task/pool execution failure.
func IsTaskError(err error) bool {
	return errors.Is(err, ErrTaskError)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
