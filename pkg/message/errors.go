package message

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField     = errors.New("missing field")
	ErrWrongType        = errors.New("wrong type")
	ErrUnregisteredType = errors.New("unregistered attachment type")
	ErrInvalidValue     = errors.New("invalid value")
)

type DecodeErrorKind int

const (
	MissingField DecodeErrorKind = iota
	WrongType
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case WrongType:
		return "wrong type"
	default:
		return "unknown"
	}
}

// DecodeError reports a required field that is absent or holds an
// incompatible JSON type. Path locates the field from the document root.
type DecodeError struct {
	Kind     DecodeErrorKind
	Path     string
	Expected string
	Got      string
}

func (e *DecodeError) Error() string {
	if e.Kind == MissingField {
		return fmt.Sprintf("decode %s: missing field", displayPath(e.Path))
	}

	return fmt.Sprintf("decode %s: expected %s, got %s", displayPath(e.Path), e.Expected, e.Got)
}

func (e *DecodeError) Unwrap() error {
	if e.Kind == MissingField {
		return ErrMissingField
	}
	return ErrWrongType
}

type EncodeErrorKind int

const (
	UnregisteredType EncodeErrorKind = iota
	InvalidValue
)

func (k EncodeErrorKind) String() string {
	switch k {
	case UnregisteredType:
		return "unregistered type"
	case InvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

// EncodeError reports a value that cannot be written to the wire.
type EncodeError struct {
	Kind   EncodeErrorKind
	Type   string
	Path   string
	Reason string
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("encode %s", displayPath(e.Path))
	if e.Type != "" {
		msg += fmt.Sprintf(" (type %q)", e.Type)
	}

	if e.Reason != "" {
		return msg + ": " + e.Reason
	}

	return msg + ": " + e.Kind.String()
}

func (e *EncodeError) Unwrap() error {
	if e.Kind == UnregisteredType {
		return ErrUnregisteredType
	}
	return ErrInvalidValue
}

func displayPath(path string) string {
	if path == "" {
		return "document"
	}
	return path
}
