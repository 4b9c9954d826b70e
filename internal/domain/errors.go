// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the operation is not permitted by business rules.
	ErrForbidden = errors.New("forbidden")

	// ErrPersistence indicates the persistence service failed to carry out an operation.
	ErrPersistence = errors.New("persistence failure")
)

// credentialsInURL matches the userinfo part of a connection string.
var credentialsInURL = regexp.MustCompile(`://[^/@\s]+@`)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ValidationDetails flattens every ValidationError found in err (including
// errors joined with errors.Join) into a field -> message map.
// Errors without a field are collected under "_".
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)
	collectValidation(err, details)

	return details
}

func collectValidation(err error, into map[string]string) {
	if err == nil {
		return
	}

	if ve, ok := err.(*ValidationError); ok { //nolint:errorlint // walking the tree manually
		field := ve.Field
		if field == "" {
			field = "_"
		}

		if _, exists := into[field]; !exists {
			into[field] = ve.Message
		}

		return
	}

	switch u := err.(type) { //nolint:errorlint // walking the tree manually
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			collectValidation(inner, into)
		}
	case interface{ Unwrap() error }:
		collectValidation(u.Unwrap(), into)
	}
}

// ForbiddenError provides context for forbidden errors.
type ForbiddenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// PersistenceError wraps a driver, connection or timeout fault raised while
// talking to the persistence service. The message never contains credentials.
type PersistenceError struct {
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	msg := fmt.Sprintf("persistence failure during %s", e.Operation)
	if e.Cause != nil {
		msg += ": " + RedactCredentials(e.Cause.Error())
	}

	return msg
}

// Unwrap exposes both the sentinel and the underlying cause, so
// errors.Is(err, ErrPersistence) and errors.Is(err, context.DeadlineExceeded) both work.
func (e *PersistenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistence}
	}

	return []error{ErrPersistence, e.Cause}
}

// NewPersistenceError creates a persistence error for the named operation.
func NewPersistenceError(operation string, cause error) error {
	return &PersistenceError{Operation: operation, Cause: cause}
}

// RedactCredentials masks the userinfo section of any URL-like substring.
func RedactCredentials(s string) string {
	return credentialsInURL.ReplaceAllString(s, "://***@")
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsPersistence checks if an error is a persistence error.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
