package wire

import (
	"errors"
	"fmt"
)

// ErrMissingDiscriminator reports a packet whose "type" field is absent or
// not a string.
var ErrMissingDiscriminator = errors.New(`packet has no usable "type" field`)

// SyntaxError reports input that is not a well-formed JSON packet.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "malformed packet: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// MissingFieldError reports a required field absent from the packet object.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// TypeMismatchError reports a value whose JSON type or range does not match
// the schema for its field or slot.
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// ArityMismatchError reports an observation array whose length does not equal
// the schema arity for its variant.
type ArityMismatchError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("field %q: expected %d slots, got %d", e.Field, e.Expected, e.Actual)
}
