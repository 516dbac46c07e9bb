package services

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindAuthentication ErrorKind = iota + 1
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
	KindInfrastructure
)

// ServiceError is the error every service method returns to handlers.
// Message is safe to show a client; Err carries the underlying cause.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func (e *ServiceError) StatusCode() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e *ServiceError) PublicMessage() string { return e.Message }

func NewAuthenticationError(msg string) error {
	return &ServiceError{Kind: KindAuthentication, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &ServiceError{Kind: KindAuthorization, Message: msg}
}

func NewValidationError(msg string) error {
	return &ServiceError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &ServiceError{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string) error {
	return &ServiceError{Kind: KindConflict, Message: msg}
}

// NewInfrastructureError hides err behind msg.
func NewInfrastructureError(msg string, err error) error {
	return &ServiceError{Kind: KindInfrastructure, Message: msg, Err: err}
}

// KindOf returns the kind of err, or zero when err is not a ServiceError.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func IsConflict(err error) bool { return KindOf(err) == KindConflict }
