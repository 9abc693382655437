package errors

import (
	stdErrors "errors"
	"fmt"
)

// TransportError represents a failed round trip to a remote service: a
// non-2xx status, a network error or an undecodable body.
type TransportError struct {
	Service    string
	StatusCode int    // zero when no response was received
	Body       string // truncated response body if available
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: unexpected status %d", e.Service, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Service, e.Err)
	default:
		return e.Service + ": transport failure"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewStatusError creates a TransportError for a non-2xx response.
func NewStatusError(service string, statusCode int, body string) *TransportError {
	return &TransportError{
		Service:    service,
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewTransportError wraps a network or decoding failure.
func NewTransportError(service string, err error) *TransportError {
	return &TransportError{
		Service: service,
		Err:     err,
	}
}

// IsTransportError checks if error is a TransportError
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return stdErrors.As(err, &transportErr)
}
