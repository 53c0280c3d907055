// internal/apperrors/errors.go
package apperrors

import "fmt"

// The catalog core reports four failure classes. Handlers map each one to an
// HTTP status; services never return raw strings for expected failures.

// ValidationError is a recoverable input failure with a field-level message.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AuthorizationError means the actor lacks the privilege for the operation.
type AuthorizationError struct {
	Message string `json:"message"`
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// StateConflictError means the record is not in a state the operation allows.
// The caller must re-fetch before retrying.
type StateConflictError struct {
	Current   string `json:"current"`
	Operation string `json:"operation"`
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("cannot %s: product is %s", e.Operation, e.Current)
}

func NewStateConflictError(operation, current string) *StateConflictError {
	return &StateConflictError{Operation: operation, Current: current}
}

// NotFoundError wraps a lookup miss for a named resource.
type NotFoundError struct {
	Resource string `json:"resource"`
	ID       string `json:"id,omitempty"`
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}
