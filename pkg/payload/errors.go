package payload

import "errors"

// InvalidShapeMessage is surfaced verbatim for any structural violation.
const InvalidShapeMessage = `Invalid JSON format. Expected { "data": [] }`

// ErrorKind classifies validation failures.
type ErrorKind string

const (
	// KindMalformedJSON marks text that is not syntactically valid JSON.
	KindMalformedJSON ErrorKind = "malformed_json"
	// KindInvalidShape marks valid JSON that is not a single-key data object.
	KindInvalidShape ErrorKind = "invalid_shape"
)

var (
	// ErrMalformedJSON matches any ValidationError of kind KindMalformedJSON.
	ErrMalformedJSON = errors.New("payload: malformed json")
	// ErrInvalidShape matches any ValidationError of kind KindInvalidShape.
	ErrInvalidShape = errors.New("payload: invalid shape")
)

// ValidationError is returned by Validate. Message is meant for display and is
// never prefixed.
type ValidationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets callers match on kind through the package sentinels.
func (e *ValidationError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrMalformedJSON:
		return e.Kind == KindMalformedJSON
	case ErrInvalidShape:
		return e.Kind == KindInvalidShape
	}
	return false
}

func malformed(err error) *ValidationError {
	return &ValidationError{Kind: KindMalformedJSON, Message: err.Error(), Err: err}
}

func invalidShape() *ValidationError {
	return &ValidationError{Kind: KindInvalidShape, Message: InvalidShapeMessage}
}
