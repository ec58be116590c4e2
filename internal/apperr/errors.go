package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The HTTP layer maps kinds to
// response codes; services and the database layer only pick kinds.
type Kind int

const (
	// KindUnexpected is anything not classified explicitly.
	KindUnexpected Kind = iota
	// KindNotFound covers missing entities and visibility denials.
	// Denials deliberately look like missing entities so that callers
	// cannot probe for existence.
	KindNotFound
	// KindInvalidOperation is a domain rule violation between existing
	// entities: booking your own item, re-deciding an approved booking,
	// commenting without a completed booking.
	KindInvalidOperation
	// KindInvalidRequest is structurally bad input that passed the
	// transport layer: unavailable item, unknown list state, bad paging.
	KindInvalidRequest
	// KindConflict is a uniqueness or concurrent-update conflict.
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

func InvalidOperation(format string, args ...any) *Error {
	return newf(KindInvalidOperation, format, args...)
}

func InvalidRequest(format string, args ...any) *Error {
	return newf(KindInvalidRequest, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newf(KindConflict, format, args...)
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from err, or KindUnexpected when err does
// not carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
