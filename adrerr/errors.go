// Package adrerr defines the error kinds shared by the governance packages.
//
// Every failure carries a Kind so callers can branch with errors.Is against
// the package sentinels without matching on message text:
//
//	if errors.Is(err, adrerr.ErrNotFound) { ... }
package adrerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a governance error.
type Kind string

// Error kinds.
const (
	KindEmptyInput      Kind = "empty_input"
	KindInvalidFormat   Kind = "invalid_format"
	KindInvalidArgument Kind = "invalid_argument"
	KindAlreadyExists   Kind = "already_exists"
	KindNotFound        Kind = "not_found"
)

// Sentinels for errors.Is matching. An *Error matches the sentinel of its Kind.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotFound        = errors.New("not found")
)

var sentinels = map[Kind]error{
	KindEmptyInput:      ErrEmptyInput,
	KindInvalidFormat:   ErrInvalidFormat,
	KindInvalidArgument: ErrInvalidArgument,
	KindAlreadyExists:   ErrAlreadyExists,
	KindNotFound:        ErrNotFound,
}

// Error is a typed governance error.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "ruleid.ParseStrict".
	Op string
	// Input is the offending value as the caller supplied it.
	Input string
	// Message is a human readable explanation.
	Message string
	// Known lists valid alternatives. Populated for KindNotFound.
	Known []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Input != "" {
		fmt.Fprintf(&sb, " (input: %q)", e.Input)
	}
	if len(e.Known) > 0 {
		fmt.Fprintf(&sb, "; known: %s", strings.Join(e.Known, ", "))
	}
	return sb.String()
}

// Is reports whether target is the sentinel for e.Kind, or an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	if s, ok := sentinels[e.Kind]; ok && target == s {
		return true
	}
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// New creates an Error of the given kind.
func New(kind Kind, op, input, message string) *Error {
	return &Error{Kind: kind, Op: op, Input: input, Message: message}
}

// EmptyInput reports a blank identifier or required string.
func EmptyInput(op, message string) *Error {
	return New(KindEmptyInput, op, "", message)
}

// InvalidFormat reports input that matches no accepted grammar.
func InvalidFormat(op, input, message string) *Error {
	return New(KindInvalidFormat, op, input, message)
}

// InvalidArgument reports a non-positive number or empty required field.
func InvalidArgument(op, message string) *Error {
	return New(KindInvalidArgument, op, "", message)
}

// AlreadyExists reports a duplicate insertion.
func AlreadyExists(op, input, message string) *Error {
	return New(KindAlreadyExists, op, input, message)
}

// NotFound reports a strict lookup miss, listing the known values.
func NotFound(op, input, message string, known []string) *Error {
	e := New(KindNotFound, op, input, message)
	e.Known = known
	return e
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
