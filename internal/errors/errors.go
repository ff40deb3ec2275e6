package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "card", "settings"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// AmbiguousError indicates a reference matched more than one resource.
type AmbiguousError struct {
	Resource string
	Ref      string
	Matches  []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s reference %q is ambiguous (matches: %v)", e.Resource, e.Ref, e.Matches)
}

func (e *AmbiguousError) Unwrap() error {
	return ErrInvalidInput
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper constructors for common cases

func CardNotFound(id string) error {
	return &NotFoundError{Resource: "card", ID: id}
}

func AmbiguousCard(ref string, matches []string) error {
	return &AmbiguousError{Resource: "card", Ref: ref, Matches: matches}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func EmptyTitle() error {
	return &ValidationError{Field: "title", Message: "must not be empty"}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
