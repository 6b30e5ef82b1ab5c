// Package errors defines the error kinds surfaced by planner commands.
// Every error here is expected to be presentable to an end user; there is
// no fatal class and no automatic retry.
package errors

import (
	"errors"
	"fmt"
)

// Kind sentinels, usable with errors.Is regardless of the concrete type.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidation(field, reason string) error {
	return ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a reference to an entity id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFound(entity, id string) error {
	return NotFoundError{Entity: entity, ID: id}
}

// InvalidTransitionError reports a phase transition attempted out of order
// or with an unmet precondition. The meeting state is left unchanged.
type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

func (e InvalidTransitionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
	}
	return fmt.Sprintf("cannot transition from %s to %s: %s", e.From, e.To, e.Reason)
}

func (e InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func NewInvalidTransition(from, to, reason string) error {
	return InvalidTransitionError{From: from, To: to, Reason: reason}
}
