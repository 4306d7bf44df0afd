// Package apperror defines the error taxonomy returned by services and its
// mapping onto HTTP status codes and JSON bodies.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType int

const (
	InternalError ErrorType = iota
	ValidationError
	ConflictError
	InvalidCredentialsError
	UnauthenticatedError
	NotFoundError
)

// AppError is an error that knows how it should be reported to a client.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type onto an HTTP status. Conflict and bad
// credentials are reported as 400, the same as validation failures.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError, ConflictError, InvalidCredentialsError:
		return http.StatusBadRequest
	case UnauthenticatedError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

func NewValidationError(message string, underlyingError error) *AppError {
	return New(ValidationError, message, underlyingError)
}

func NewConflictError(message string, underlyingError error) *AppError {
	return New(ConflictError, message, underlyingError)
}

func NewInvalidCredentialsError(underlyingError error) *AppError {
	return New(InvalidCredentialsError, "Invalid credentials", underlyingError)
}

func NewUnauthenticatedError(message string, underlyingError error) *AppError {
	return New(UnauthenticatedError, message, underlyingError)
}

func NewNotFoundError(message string, underlyingError error) *AppError {
	return New(NotFoundError, message, underlyingError)
}

func NewInternalError(message string, underlyingError error) *AppError {
	return New(InternalError, message, underlyingError)
}

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// ToResponse never exposes the wrapped cause of an internal error.
func (e *AppError) ToResponse() ErrorResponse {
	if e.Type == InternalError {
		return ErrorResponse{Msg: "Server error"}
	}
	return ErrorResponse{Msg: e.Message}
}

// FromError returns err as an *AppError, converting anything else into an
// internal error.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError("internal server error", err)
}

func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == errType
}
