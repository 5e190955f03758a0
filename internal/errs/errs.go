// Package errs defines the two error kinds shared by the traversal core and
// the file helpers, so callers can handle both the same way.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Other is reported by KindOf for errors that did not come from this package.
	Other Kind = iota
	// InvalidInput marks malformed or impossible parameters. Always detected
	// before any traversal or I/O step runs.
	InvalidInput
	// IOFailure marks a filesystem operation that failed.
	IOFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case IOFailure:
		return "io failure"
	default:
		return "other"
	}
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrIOFailure    = errors.New("io failure")
)

// Error carries the kind, the failing operation and the path it touched.
type Error struct {
	Kind Kind
	Op   string // e.g. "resolve", "list", "read"
	Path string // may be empty
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels so errors.Is(err, ErrIOFailure) works through
// any amount of wrapping.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == InvalidInput
	case ErrIOFailure:
		return e.Kind == IOFailure
	}
	return false
}

// Invalid builds an InvalidInput error.
func Invalid(op, path string, err error) error {
	return &Error{Kind: InvalidInput, Op: op, Path: path, Err: err}
}

// Invalidf builds an InvalidInput error with a formatted cause.
func Invalidf(op, path, format string, args ...any) error {
	return Invalid(op, path, fmt.Errorf(format, args...))
}

// IO builds an IOFailure error.
func IO(op, path string, err error) error {
	return &Error{Kind: IOFailure, Op: op, Path: path, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}
