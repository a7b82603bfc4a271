package querymap

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when a value is neither a scalar nor a list of the
	// target value type (for example an object where a string was expected).
	ErrShape = errors.New("value is neither a scalar nor a list")

	// ErrElement is returned when a scalar or a list element does not decode
	// into the target value type.
	ErrElement = errors.New("element does not decode into value type")

	// ErrSyntax is returned for malformed input: a query entry without '=',
	// an invalid percent escape, or a structured document that is not a map.
	ErrSyntax = errors.New("malformed input")

	// ErrInvalidOption is returned when an option does not fit the decode call,
	// e.g. a scalar splitter for a different value type.
	ErrInvalidOption = errors.New("invalid option")
)

// DecodeError reports the key whose value could not be decoded.
//
// errors.Is matches ErrShape, ErrElement or ErrSyntax; the original decoder
// error can be reached via errors.Unwrap / errors.As.
type DecodeError struct {
	Key   string
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("querymap: key %q: %v", e.Key, e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// ParseError reports a malformed entry in a query string.
type ParseError struct {
	// Entry is the raw "key=value" segment.
	Entry string
	// Offset is the byte offset of Entry in the input.
	Offset int
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("querymap: invalid query entry %q at offset %d: %v", e.Entry, e.Offset, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

func syntaxError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...))
}

func fmtInvalidOption(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOption, fmt.Sprintf(format, args...))
}
