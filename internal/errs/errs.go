// Package errs defines the error categories the data-access layer raises.
//
// Every failure that reaches a caller is an *Error carrying one of a small
// set of kinds (invalid argument, not found, already exists, internal), a
// machine-friendly code and a human-readable message naming the offending key.
//
// - Kinds are distinguishable with errors.Is against the package sentinels.
// - Field-level problems (validation) travel in Errors.
// - The original cause, when there is one, stays reachable through Unwrap.
package errs

import (
	"errors"
	"strings"
)

// Kind is the category of an Error.
type Kind int

const (
	// KindInternal is anything the caller cannot fix (driver failures, bugs).
	KindInternal Kind = iota

	// KindInvalidArgument means the caller sent malformed or empty input.
	KindInvalidArgument

	// KindNotFound means the target identifier does not exist.
	KindNotFound

	// KindAlreadyExists means a uniqueness rule rejected the write.
	KindAlreadyExists
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "Invalid Argument"
	case KindNotFound:
		return "Not Found"
	case KindAlreadyExists:
		return "Already Exists"
	default:
		return "Internal"
	}
}

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "salary", "error": "must be at least 0" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "salary").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Error is the main error type of the data-access layer.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "JOB_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Kind: category used by errors.Is.
//   - Override: tells a presentation layer the message is safe to show as-is.
//   - Errors: list of per-field errors (validation).
type Error struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Kind     Kind         `json:"-"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`

	cause error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrAlreadyExists   = &Error{Kind: KindAlreadyExists}
	ErrInternal        = &Error{Kind: KindInternal}
)

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same Kind.
//
// Code and Message are ignored, so
//
//	errors.Is(err, errs.ErrNotFound)
//
// matches every not-found error regardless of which entity raised it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithMessage returns a *copy* of this Error with Message replaced.
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Code:     e.Code,
		Message:  message,
		Kind:     e.Kind,
		Override: e.Override,
		Errors:   e.Errors,
		cause:    e.cause,
	}
}

// WithCause returns a copy of this Error wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	out := e.WithMessage(e.Message)
	out.cause = cause
	return out
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Not Found" -> "NOT_FOUND"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
