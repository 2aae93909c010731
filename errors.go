package parcel

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrFormat indicates literal text is malformed or out of range for its type.
	ErrFormat = errors.New("invalid format")

	// ErrUnsupportedType indicates a value kind has no codec path for the operation.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnknownMediaType indicates no serializer matched the media type or the declared type.
	ErrUnknownMediaType = errors.New("unknown media type")

	// ErrArgument indicates a required argument was nil or empty.
	ErrArgument = errors.New("invalid argument")

	// ErrDuplicateKey indicates a registry key was registered twice.
	ErrDuplicateKey = errors.New("duplicate registry key")

	// ErrNotImplemented indicates an operation deliberately has no implementation.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnmarshal indicates a codec failed to unmarshal a body.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates a codec failed to marshal a body.
	ErrMarshal = errors.New("marshal failed")
)

// FormatError represents literal text that could not be parsed.
type FormatError struct {
	Text   string // Offending input
	Type   string // Declared type name the text was parsed as
	Format string // Format hint in effect, if any
	Cause  error  // Underlying parse error, if any
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s: %q is not a valid %s", ErrFormat.Error(), e.Text, e.Type)
	if e.Format != "" {
		msg += fmt.Sprintf(" (format %s)", e.Format)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// UnsupportedTypeError represents a value kind with no codec path.
type UnsupportedTypeError struct {
	Type      string // Type or kind name
	Operation string // Operation that was attempted
}

func (e *UnsupportedTypeError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s %s for %s", ErrUnsupportedType.Error(), e.Type, e.Operation)
	}
	return fmt.Sprintf("%s %s", ErrUnsupportedType.Error(), e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// UnknownMediaTypeError represents a registry miss on both media type and declared type.
// Content is set on deserialize so callers can inspect the unparsed body.
type UnknownMediaTypeError struct {
	MediaType string
	Type      string
	Content   *Content
}

func (e *UnknownMediaTypeError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s %q (type %s)", ErrUnknownMediaType.Error(), e.MediaType, e.Type)
	}
	return fmt.Sprintf("%s %q", ErrUnknownMediaType.Error(), e.MediaType)
}

func (e *UnknownMediaTypeError) Unwrap() error {
	return ErrUnknownMediaType
}

// ArgumentError represents a nil or empty required argument at a public boundary.
type ArgumentError struct {
	Err      error  // ErrArgument or ErrDuplicateKey
	Argument string // Argument name
	Detail   string
}

func (e *ArgumentError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %s", e.Err.Error(), e.Argument, e.Detail)
	}
	return fmt.Sprintf("%s %s", e.Err.Error(), e.Argument)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newFormatError creates a FormatError for a failed literal parse.
func newFormatError(text string, t *Type, format string, cause error) error {
	return &FormatError{
		Text:   text,
		Type:   t.String(),
		Format: format,
		Cause:  cause,
	}
}

// newUnsupportedTypeError creates an UnsupportedTypeError.
func newUnsupportedTypeError(typeName, operation string) error {
	return &UnsupportedTypeError{
		Type:      typeName,
		Operation: operation,
	}
}

// newArgumentError creates an ArgumentError wrapping ErrArgument.
func newArgumentError(argument, detail string) error {
	return &ArgumentError{
		Err:      ErrArgument,
		Argument: argument,
		Detail:   detail,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
