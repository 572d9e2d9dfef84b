package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource id does not resolve
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller does not own the resource
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned for malformed options, count mismatches and empty id lists
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransactionFailure is returned when the store fails during a write phase
	ErrTransactionFailure = errors.New("transaction failure")

	// ErrMigrationNotInProgress is returned when a terminal status is written to a record that already has one
	ErrMigrationNotInProgress = errors.New("migration record is not in progress")
)

var kinds = []error{ErrNotFound, ErrForbidden, ErrInvalidInput, ErrTransactionFailure}

// Error carries one of the error kinds together with a detailed message
type Error struct {
	Kind error
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.err}
}

// Errorf builds an error of the given kind. The format supports %w.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, err: fmt.Errorf(format, args...)}
}

// KindOf returns the error kind carried by err.
// Errors without a kind are reported as ErrTransactionFailure.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrTransactionFailure
}

// AsTransactionFailure tags an unclassified error as a transaction failure and leaves classified errors untouched
func AsTransactionFailure(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return err
		}
	}
	return Errorf(ErrTransactionFailure, "%w", err)
}

// KindName returns a stable snake_case label for the kind of err, used in metrics and logs
func KindName(err error) string {
	switch KindOf(err) {
	case nil:
		return "success"
	case ErrNotFound:
		return "not_found"
	case ErrForbidden:
		return "forbidden"
	case ErrInvalidInput:
		return "invalid_input"
	default:
		return "transaction_failure"
	}
}
