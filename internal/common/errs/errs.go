package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of the transport that reports it
type Kind string

const (
	// KindNotFound means a round or answer is absent, or a stats request hit a round with no answers
	KindNotFound Kind = "not_found"

	// KindInvalidInput means a malformed user name or answer value
	KindInvalidInput Kind = "invalid_input"

	// KindRoundClosed means a submission was attempted against a round that is not open
	KindRoundClosed Kind = "round_closed"

	// KindConflict means a concurrent administrative change was detected
	KindConflict Kind = "conflict"

	// KindInternal means a storage failure or anything unexpected
	KindInternal Kind = "internal"
)

// Error is a typed failure carrying a kind and a message safe to show to a user
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an error of the given kind with a formatted message
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to a lower level error
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps a storage or unexpected failure
func Internal(err error, message string) *Error {
	return Wrap(KindInternal, err, message)
}

// KindOf reports the kind of err. Untyped errors are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
