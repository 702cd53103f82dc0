package errors

import (
	"fmt"
	"net/http"
)

// Error codes surfaced in error envelopes.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeBadInput   = "BAD_REQUEST"
	CodeInternal   = "INTERNAL_SERVER_ERROR"
)

// Common application errors
var (
	ErrUserNotFound  = NewNotFoundError("user", "User not found")
	ErrEmailConflict = NewConflictError("user", "User with this email already exists")
)

// HTTPStatuser is implemented by errors that map to an HTTP status code.
type HTTPStatuser interface {
	HTTPStatus() int
	ErrorCode() string
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Message string
	Details map[string][]string
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details map[string][]string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// ErrorCode returns the envelope error code for this error
func (e *ValidationError) ErrorCode() string { return CodeValidation }

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: message}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }

// ErrorCode returns the envelope error code for this error
func (e *NotFoundError) ErrorCode() string { return CodeNotFound }

// ConflictError represents a uniqueness conflict with an existing resource
type ConflictError struct {
	Resource string
	Message  string
}

// NewConflictError creates a new conflict error
func NewConflictError(resource, message string) *ConflictError {
	return &ConflictError{Resource: resource, Message: message}
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *ConflictError) HTTPStatus() int { return http.StatusConflict }

// ErrorCode returns the envelope error code for this error
func (e *ConflictError) ErrorCode() string { return CodeConflict }

// BadInputError represents malformed client input outside schema validation,
// such as a non-numeric id path parameter
type BadInputError struct {
	Message string
}

// NewBadInputError creates a new bad input error
func NewBadInputError(message string) *BadInputError {
	return &BadInputError{Message: message}
}

// Error implements the error interface
func (e *BadInputError) Error() string { return e.Message }

// HTTPStatus returns the HTTP status for this error
func (e *BadInputError) HTTPStatus() int { return http.StatusBadRequest }

// ErrorCode returns the envelope error code for this error
func (e *BadInputError) ErrorCode() string { return CodeBadInput }

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{Message: message, Err: err}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error { return e.Err }

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int { return http.StatusInternalServerError }

// ErrorCode returns the envelope error code for this error
func (e *InternalError) ErrorCode() string { return CodeInternal }
