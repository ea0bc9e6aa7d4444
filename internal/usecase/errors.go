package usecase

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures so adapters can map them onto their own
// protocol (HTTP status codes, chat replies) without string matching.
type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidWindow Kind = "invalid_window"
	KindInvalidState  Kind = "invalid_state"
	KindForbidden     Kind = "forbidden"
	KindConflict      Kind = "conflict"
	KindUnavailable   Kind = "unavailable"
)

// Error is the engine's error type. Conflict errors additionally carry the
// quantity still available, so callers can tell the requester what would fit.
type Error struct {
	Kind      Kind
	Message   string
	Available int
	err       error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func conflictError(available int, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Available: available}
}

func unavailableError(op string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: op + ": booking storage unavailable", err: err}
}

// KindOf extracts the failure kind, or "" for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// AvailableOf returns the available-quantity context carried by a conflict
// error, 0 otherwise.
func AvailableOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Available
	}
	return 0
}
