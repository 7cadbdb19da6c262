package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("authorization header is malformed")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")

	// Request context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// Common
	ErrNotFound = fmt.Errorf("record not found")
	ErrConflict = fmt.Errorf("record already exists")
)

// HttpError carries the HTTP status alongside a user-facing message and the
// wrapped cause. Controllers hand these to api.ErrorResponse unchanged.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

func BadRequest(message string, err error) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, err)
}

func NotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound)
}

func Conflict(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message, ErrConflict)
}

func Internal(message string, err error) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message, err)
}
