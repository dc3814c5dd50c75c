package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedNumber is returned when a value is neither a decimal literal string nor a JSON number.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrMalformedValue is returned for integer and boolean fields with an unsupported shape.
	ErrMalformedValue = errors.New("malformed value")
	// ErrUnknownEnumVariant is returned when an enumeration tag is not recognised.
	ErrUnknownEnumVariant = errors.New("unknown enum variant")
	// ErrMissingField is returned when a required key is absent from an object.
	ErrMissingField = errors.New("missing required field")
)

// NumberError carries the raw input that failed to decode as an exact number.
type NumberError struct {
	Input string
	Err   error
}

func (e *NumberError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed number %s: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("malformed number %s", e.Input)
}

func (e *NumberError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedNumber, e.Err}
	}
	return []error{ErrMalformedNumber}
}

// ValueError reports an integer or boolean field whose JSON shape is unsupported.
type ValueError struct {
	Kind  string
	Input string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("malformed %s value %s", e.Kind, e.Input)
}

func (e *ValueError) Unwrap() error { return ErrMalformedValue }

// EnumError reports an unrecognised wire tag for a closed enumeration.
type EnumError struct {
	Enum string
	Tag  string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("unknown %s variant %q", e.Enum, e.Tag)
}

func (e *EnumError) Unwrap() error { return ErrUnknownEnumVariant }

// MissingFieldError names the absent wire key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// RecordError attributes a decode failure to the record being assembled.
type RecordError struct {
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// ElementError attributes a decode failure to one element of a sequence.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
