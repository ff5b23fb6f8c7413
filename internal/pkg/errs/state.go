package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStateTransition          = errors.New("invalid state transition")
	ErrConfigurationInvariantViolation = errors.New("configuration invariant violation")
	ErrConcurrentModification          = errors.New("concurrent modification")
)

// InvalidStateTransitionError is returned when an action's precondition on the current
// status of an aggregate does not hold. Callers are expected to re-read the aggregate and
// pick a valid action; the error is never corrected automatically.
type InvalidStateTransitionError struct {
	Entity string
	ID     any
	From   string
	Action string
}

func NewInvalidStateTransitionError(entity string, id any, from, action string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{
		Entity: entity,
		ID:     id,
		From:   from,
		Action: action,
	}
}

func (e *InvalidStateTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: cannot %s %s %v in status %s",
		ErrInvalidStateTransition, e.Action, e.Entity, e.ID, e.From))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// ConfigurationInvariantError signals data that can only exist because of a bug
// elsewhere, e.g. a production order that has no source at all.
type ConfigurationInvariantError struct {
	Subject string
	Detail  string
}

func NewConfigurationInvariantError(subject, detail string) *ConfigurationInvariantError {
	return &ConfigurationInvariantError{Subject: subject, Detail: detail}
}

func (e *ConfigurationInvariantError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s: %s", ErrConfigurationInvariantViolation, e.Subject, e.Detail))
}

func (e *ConfigurationInvariantError) Unwrap() error {
	return ErrConfigurationInvariantViolation
}

// NewConcurrentModificationError wraps ErrConcurrentModification with the entity that lost the race.
func NewConcurrentModificationError(entity string, id any, version int64) error {
	return fmt.Errorf("%w: %s %v at version %d", ErrConcurrentModification, entity, id, version)
}
