package bsonkit

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-stack/stack"
)

// ErrInvalidKey indicates that the BSON representation of a key is missing a
// null terminator.
var ErrInvalidKey = errors.New("invalid document key")

// ErrInvalidLength indicates that a length in a binary representation of a
// BSON document is invalid.
var ErrInvalidLength = errors.New("document length is invalid")

// ErrMissingNull indicates that a document's terminating null byte is absent
// or misplaced.
var ErrMissingNull = errors.New("document end is missing null byte")

// ErrInvalidString indicates that a BSON string value had an incorrect length
// or was missing its null terminator.
var ErrInvalidString = errors.New("invalid string value")

// ErrInvalidBinarySubtype indicates that a BSON binary value had an undefined
// subtype.
var ErrInvalidBinarySubtype = errors.New("invalid BSON binary Subtype")

// ErrInvalidBooleanType indicates that a BSON boolean value had an incorrect
// byte.
var ErrInvalidBooleanType = errors.New("invalid value for BSON Boolean Type")

// ErrStringLargerThanContainer indicates that the code portion of a BSON
// JavaScript code with scope value is larger than the specified length of the
// entire value.
var ErrStringLargerThanContainer = errors.New("string size is larger than the JavaScript code with scope container")

// ErrNilDocument indicates that an operation was attempted on a nil document.
var ErrNilDocument = errors.New("document is nil")

// ErrNilReader indicates that an operation was attempted on a nil io.Reader.
var ErrNilReader = errors.New("nil reader")

// ErrEmptyKey indicates that no key was provided to a Lookup method.
var ErrEmptyKey = errors.New("empty key provided")

// ErrTooDeep indicates that a document exceeds the configured maximum nesting
// depth.
var ErrTooDeep = errors.New("document is too deeply nested")

// ErrTooSmall indicates that a slice provided to write into is not large
// enough to fit the data.
type ErrTooSmall struct {
	Stack stack.CallStack
}

// NewErrTooSmall creates a new ErrTooSmall with the current stack.
func NewErrTooSmall() ErrTooSmall {
	return ErrTooSmall{Stack: stack.Trace().TrimRuntime()}
}

// Error implements the error interface.
func (e ErrTooSmall) Error() string {
	return "too small"
}

// ErrorStack returns a string representing the stack at the point where the
// error occurred.
func (e ErrTooSmall) ErrorStack() string {
	s := bytes.NewBufferString("too small: [")

	for i, call := range e.Stack {
		if i != 0 {
			s.WriteString(", ")
		}

		// go vet doesn't like %k even though it's part of stack's API, so we move the format
		// string so it doesn't complain. (We also can't make it a constant, or go vet still
		// complains.)
		callFormat := "%k.%n %v"

		s.WriteString(fmt.Sprintf(callFormat, call, call, call))
	}

	s.WriteRune(']')

	return s.String()
}

// Equals checks that err2 also is an ErrTooSmall.
func (e ErrTooSmall) Equals(err2 error) bool {
	switch err2.(type) {
	case ErrTooSmall:
		return true
	default:
		return false
	}
}

// ElementTypeError specifies that a method to obtain a BSON value of one type
// was called on a Val of another.
type ElementTypeError struct {
	Method string
	Type   Type
}

// Error implements the error interface.
func (ete ElementTypeError) Error() string {
	return "Call of " + ete.Method + " on " + ete.Type.String() + " type"
}

// UnsupportedTypeError is returned by the encoder when a value's category has
// no encoding rule. The size calculation treats the same values as
// contributing zero bytes.
type UnsupportedTypeError struct {
	Type Type
}

// Error implements the error interface.
func (ute UnsupportedTypeError) Error() string {
	return fmt.Sprintf("no encoder for BSON type %s (%#x)", ute.Type, byte(ute.Type))
}

// UnknownTagError is returned by the decoder when an element's tag byte does
// not correspond to any registered BSON type.
type UnknownTagError struct {
	Tag byte
}

// Error implements the error interface.
func (ute UnknownTagError) Error() string {
	return fmt.Sprintf("unrecognized BSON tag byte %#x", ute.Tag)
}

// InvalidBufferError is returned by the buffer adapter when an input is not a
// supported byte-bearing shape.
type InvalidBufferError struct {
	Source interface{}
}

// Error implements the error interface.
func (ibe InvalidBufferError) Error() string {
	return fmt.Sprintf("invalid buffer source %T", ibe.Source)
}

// KeyNotFound is an error type returned from the Lookup methods on Doc. This
// type contains information about which key was not found and if it was
// actually not found or if a component of the key except the last was not a
// document nor array.
type KeyNotFound struct {
	Key   []string // The keys that were searched for.
	Depth uint     // Which key either was not found or was an incorrect type.
	Type  Type     // The type of the key that was found but was an incorrect type.
}

// Error implements the error interface.
func (knf KeyNotFound) Error() string {
	depth := knf.Depth
	if depth >= uint(len(knf.Key)) {
		depth = uint(len(knf.Key)) - 1
	}

	if len(knf.Key) == 0 {
		return "no keys were provided for lookup"
	}

	if knf.Type != Type(0) {
		return fmt.Sprintf(`key "%s" was found but was not valid to traverse BSON type %s`, knf.Key[depth], knf.Type)
	}

	return fmt.Sprintf(`key "%s" was not found`, knf.Key[depth])
}
