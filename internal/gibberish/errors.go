package gibberish

import (
	"errors"
	"fmt"
)

// Sentinel errors for every way an invocation can fail. Callers match them
// with errors.Is; the structured types below wrap them with context.
var (
	ErrFileNotFound   = errors.New("file not found")
	ErrMalformedFrame = errors.New("malformed gibberish: file too short")
	ErrKeyDerivation  = errors.New("key derivation failed")
	ErrAuthentication = errors.New("failed to decode gibberish")
	ErrEnvelopeSchema = errors.New("invalid envelope")
	ErrWrite          = errors.New("write failed")

	ErrNotAMap      = errors.New("top-level value is not a map")
	ErrMissingField = errors.New("field missing")
	ErrFieldType    = errors.New("field has wrong type")
)

// KeyDerivationError reports a failure of the underlying password hash.
type KeyDerivationError struct {
	Err error
}

func (e *KeyDerivationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrKeyDerivation, e.Err)
}

func (e *KeyDerivationError) Unwrap() []error {
	return []error{ErrKeyDerivation, e.Err}
}

// SchemaError reports a decoded envelope that does not have the expected shape.
// Err is one of ErrNotAMap, ErrMissingField or ErrFieldType, or a decoder error.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", ErrEnvelopeSchema, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrEnvelopeSchema, e.Err)
}

func (e *SchemaError) Unwrap() []error {
	return []error{ErrEnvelopeSchema, e.Err}
}

// Message returns the user-facing description of the schema failure.
func (e *SchemaError) Message() string {
	if errors.Is(e.Err, ErrMissingField) {
		switch e.Field {
		case fieldExtension:
			return "Original file extension missing"
		case fieldFile:
			return "Original file content missing"
		}
	}
	return e.Error()
}

// WriteError reports an output file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Failed to write file '%s': %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrWrite, e.Err}
}

// NotFoundError reports an input that does not exist in the store.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("File '%s' not found", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return ErrFileNotFound
}
