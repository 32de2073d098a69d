package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling at the
// handler boundary without per-error switch growth.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// InvalidTransitionError indicates a status edge that is not in the
// lifecycle transition table. It names both statuses so the caller can see
// exactly which edge was rejected.
type InvalidTransitionError struct {
	Entity    string // "project" or "sprint"
	From      string
	Requested string
}

// Error implements the error interface
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s status transition: %s -> %s", e.Entity, e.From, e.Requested)
}

// StatusCode implements the HTTPError interface
func (e *InvalidTransitionError) StatusCode() int {
	return http.StatusBadRequest
}

// Is allows errors.Is() to match against ErrValidation
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError wraps a failure from the planning provider. The upstream
// message is surfaced verbatim to the caller per the error-handling policy;
// compensating actions are the engine's responsibility, not the handler's.
type UpstreamError struct {
	Op  string // operation that failed, e.g. "generate plan"
	Err error
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// StatusCode implements the HTTPError interface
func (e *UpstreamError) StatusCode() int {
	return http.StatusInternalServerError
}

// Unwrap exposes the upstream cause for errors.Is/As
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project, sprint, client)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
