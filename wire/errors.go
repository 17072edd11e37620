package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Decode errors. All of them are recoverable: the decoder reports them to
// the caller and never panics on untrusted input.
var (
	// ErrTruncated means the input ended before a declared length or fixed
	// width was satisfied.
	ErrTruncated = errors.New("truncated input")

	// ErrInvalidVarint means a varint ran past its 10-byte maximum without
	// a terminating byte.
	ErrInvalidVarint = errors.New("invalid varint")

	// ErrInvalidFieldNumber means a tag carried field number zero or one
	// beyond the 29-bit range.
	ErrInvalidFieldNumber = errors.New("invalid field number")

	// ErrTrailingData means a nested message did not consume its entire
	// length-delimited sub-slice.
	ErrTrailingData = errors.New("trailing data after message")

	// ErrInvalidGroup means an end-group tag appeared without a matching
	// start-group, or the field numbers of the pair disagree.
	ErrInvalidGroup = errors.New("mismatched group tags")
)

// MissingRequiredFieldError reports a schema-required field that was absent
// when a whole-message decode completed.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// FieldError carries the dotted field path at which a decode error occurred.
type FieldError struct {
	FieldPath []string // e.g., ["user", "address", "zip_code"]
	Err       error    // underlying error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	if len(e.FieldPath) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("error at proto path %s: %v", strings.Join(e.FieldPath, "."), e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// WrapField prefixes err's field path with fieldName, starting a new path if
// err is not already a FieldError. A nil err passes through.
func WrapField(err error, fieldName string) error {
	if err == nil {
		return nil
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{
			FieldPath: append([]string{fieldName}, fe.FieldPath...),
			Err:       fe.Err,
		}
	}

	return &FieldError{
		FieldPath: []string{fieldName},
		Err:       err,
	}
}
