// Package errors defines the typed failures surfaced by the movie catalog.
package errors

import stdErrors "errors"

// ServiceError is a logical failure reported by the catalog inside an
// otherwise successful response. Message is shown to the user verbatim.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a ServiceError with the service-supplied message.
func NewServiceError(message string) *ServiceError {
	return &ServiceError{Message: message}
}

// IsServiceError reports whether err is a ServiceError (even when wrapped).
func IsServiceError(err error) bool {
	var serviceErr *ServiceError
	return stdErrors.As(err, &serviceErr)
}

// ServiceMessage returns the service-supplied message if err is a ServiceError.
func ServiceMessage(err error) (string, bool) {
	var serviceErr *ServiceError
	if stdErrors.As(err, &serviceErr) {
		return serviceErr.Message, true
	}
	return "", false
}
