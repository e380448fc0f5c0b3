// Package errors provides the shared error taxonomy for the Linear MCP server.
// Every failure crossing the tool boundary is one of these kinds; handlers and
// the tool registry classify before surfacing anything to the caller.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the classified category of a failure.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuth           Kind = "auth"
	KindNotFound       Kind = "not_found"
	KindUpstream       Kind = "upstream"
	KindPartialFailure Kind = "partial_failure"
)

// ValidationError indicates malformed or incomplete tool arguments.
// It is raised before any gateway call is made.
type ValidationError struct {
	Field   string // field name that failed validation, may include an index path
	Message string // human-readable message, includes a corrective example where helpful
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthError indicates there is no valid Linear session. It short-circuits
// before argument validation and before any gateway call.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not authenticated with Linear: set LINEAR_API_KEY or store a credential first"
}

// NewAuthError creates an AuthError.
func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

// NotFoundError indicates a referenced entity does not exist upstream.
type NotFoundError struct {
	EntityType string // "issue", "project", "team", "user"
	Identifier string
}

func (e *NotFoundError) Error() string {
	if e.EntityType != "" {
		return fmt.Sprintf("%s not found: %s", e.EntityType, e.Identifier)
	}
	return fmt.Sprintf("not found: %s", e.Identifier)
}

// NewNotFoundError creates a NotFoundError for an entity lookup.
func NewNotFoundError(entityType, identifier string) *NotFoundError {
	return &NotFoundError{EntityType: entityType, Identifier: identifier}
}

// UpstreamError wraps any other failure signaled by the Linear gateway,
// preserving the upstream detail and naming the operation being attempted.
type UpstreamError struct {
	Operation string // gateway operation, e.g. "issueCreate"
	Code      string // structured error code when the gateway provided one
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s failed (%s): %v", e.Operation, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps err as an UpstreamError for the named operation.
func NewUpstreamError(operation string, err error) *UpstreamError {
	return &UpstreamError{Operation: operation, Err: err}
}

// PartialFailureError reports a multi-step operation where an earlier step
// succeeded and a later step failed. CreatedIDs and CreatedURLs reference the
// entities that already exist so the caller can resume manually; there is no
// automatic rollback.
type PartialFailureError struct {
	FailedStep  string
	CreatedIDs  []string
	CreatedURLs []string
	Err         error
}

func (e *PartialFailureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step %q failed after earlier steps succeeded", e.FailedStep)
	if len(e.CreatedIDs) > 0 {
		fmt.Fprintf(&b, "; already created: %s", strings.Join(e.CreatedIDs, ", "))
	}
	if len(e.CreatedURLs) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.CreatedURLs, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

// IsValidation returns true if the error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth returns true if the error is an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsPartialFailure returns true if the error is a PartialFailureError.
func IsPartialFailure(err error) bool {
	var pf *PartialFailureError
	return errors.As(err, &pf)
}
