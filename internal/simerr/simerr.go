// Package simerr provides the structured error type used across tomasim's
// config/trace/scheduler boundary, modeled on the same Op/Code/Inner shape
// ehrlich-b/go-ublk uses for its own structured errors.
package simerr

import (
	"errors"
	"fmt"
)

// Kind is one of tomasim's error kinds. Every kind except
// SchedulerInvariant terminates the process before simulation begins.
type Kind int

const (
	// ArgError is a wrong CLI argument count or malformed flag.
	ArgError Kind = iota
	// IoError is a failure to read or write a file.
	IoError
	// ParseError is malformed input text (bad hex, unparsable config line).
	ParseError
	// ConfigError is a structurally valid but semantically wrong config
	// (unknown class, non-integer field value).
	ConfigError
	// DecodeError is reserved for a tightened decoder that rejects rather
	// than skips unknown opcodes; unused by the default trace reader.
	DecodeError
	// SchedulerInvariant marks an internal bug (RS/FU state was violated)
	// and is also the kind of the cycle driver's deadlock diagnostic.
	SchedulerInvariant
)

func (k Kind) String() string {
	switch k {
	case ArgError:
		return "arg"
	case IoError:
		return "io"
	case ParseError:
		return "parse"
	case ConfigError:
		return "config"
	case DecodeError:
		return "decode"
	case SchedulerInvariant:
		return "scheduler-invariant"
	default:
		return "unknown"
	}
}

// Error is a structured diagnostic: which kind of failure, which operation
// was attempting it, and (optionally) the lower-level error it wraps.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Op)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same Kind, so
// errors.Is(err, &simerr.Error{Kind: simerr.ConfigError}) matches any error
// of that kind; KindOf extracts the kind directly.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// Wrap builds an *Error of the given kind wrapping err, with no extra detail.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Wrapf is Wrap for callers that already formatted a detailed error (e.g.
// via fmt.Errorf) and just need it tagged with a kind and operation.
func Wrapf(kind Kind, op string, err error) *Error {
	return Wrap(kind, op, err)
}

// New builds an *Error of the given kind with a detail message and no
// wrapped cause.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// KindOf reports the Kind of err if it is (or wraps) a *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
