package classifier

import (
	"errors"
	"fmt"
)

// FetchFailedMessage is shown whenever the service answers with a non-success
// status. The response body is not consulted.
const FetchFailedMessage = "Failed to fetch data from API"

// ErrorKind classifies a failed call.
type ErrorKind string

const (
	// KindTransportFailure is a non-2xx answer.
	KindTransportFailure ErrorKind = "transport_failure"
	// KindUnreachable means no answer was received at all.
	KindUnreachable ErrorKind = "unreachable"
	// KindMalformedResponse is a 2xx answer whose body is not a JSON object.
	KindMalformedResponse ErrorKind = "malformed_response"
)

var (
	ErrTransportFailure   = errors.New("classifier: transport failure")
	ErrUnreachable        = errors.New("classifier: service unreachable")
	ErrMalformedResponse  = errors.New("classifier: malformed response")
	errMissingEndpointURL = errors.New("classifier: endpoint url is required")
)

// TransportError is returned by Client.Classify. Message is the text meant for
// display; Err keeps the underlying cause when there is one.
type TransportError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrTransportFailure:
		return e.Kind == KindTransportFailure
	case ErrUnreachable:
		return e.Kind == KindUnreachable
	case ErrMalformedResponse:
		return e.Kind == KindMalformedResponse
	}
	return false
}

func statusFailure(status int) *TransportError {
	return &TransportError{
		Kind:    KindTransportFailure,
		Status:  status,
		Message: FetchFailedMessage,
		Err:     fmt.Errorf("classifier: unexpected status %d", status),
	}
}

func unreachable(err error) *TransportError {
	return &TransportError{Kind: KindUnreachable, Message: err.Error(), Err: err}
}

func malformedResponse(status int, err error) *TransportError {
	return &TransportError{Kind: KindMalformedResponse, Status: status, Message: err.Error(), Err: err}
}
