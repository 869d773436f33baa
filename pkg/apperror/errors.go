package apperror

import (
	"errors"
	"net/http"
)

// Sentinel errors for the business-rule taxonomy. Services wrap these;
// handlers map them to HTTP status codes exactly once, at the boundary.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrUnavailable          = errors.New("unavailable")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrInternal             = errors.New("internal server error")
)

// AppError carries a client-visible message on top of a sentinel class.
type AppError struct {
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func wrap(sentinel error, message string) *AppError {
	return &AppError{Message: message, Err: sentinel}
}

func NotFound(message string) *AppError        { return wrap(ErrNotFound, message) }
func Unauthorized(message string) *AppError    { return wrap(ErrUnauthorized, message) }
func Forbidden(message string) *AppError       { return wrap(ErrForbidden, message) }
func Conflict(message string) *AppError        { return wrap(ErrConflict, message) }
func InvalidArgument(message string) *AppError { return wrap(ErrInvalidArgument, message) }
func Unavailable(message string) *AppError     { return wrap(ErrUnavailable, message) }
func InsufficientQuantity(message string) *AppError {
	return wrap(ErrInsufficientQuantity, message)
}

// MapErrorToStatus maps an error to its HTTP status code. Business-rule
// rejections (unavailable, insufficient quantity, invalid input) are 400;
// duplicates and state violations are 409; anything unknown is 500.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrUnavailable),
		errors.Is(err, ErrInsufficientQuantity):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage returns the message safe to surface to a client. Unexpected
// failures are reported generically without leaking internals.
func ClientMessage(err error) string {
	if MapErrorToStatus(err) == http.StatusInternalServerError {
		return ErrInternal.Error()
	}
	return err.Error()
}
