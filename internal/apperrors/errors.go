package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
// Foreign ownership is reported the same way.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// Machine-readable error codes returned in API error bodies.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternalError   = "INTERNAL_ERROR"
)

// AppError is the error shape written to API clients.
type AppError struct {
	Code      int    `json:"-"`
	ErrorCode string `json:"code"`
	Message   string `json:"message"`
	Err       error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError for the given HTTP status.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Code:      status,
		ErrorCode: codeForStatus(status),
		Message:   message,
		Err:       err,
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	default:
		return CodeInternalError
	}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message, nil)
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

// FromError maps a service error onto an AppError using the sentinel it wraps.
// notFoundMsg is used for ErrNotFound so callers can name the missing resource.
func FromError(err error, notFoundMsg string) *AppError {
	var appErr *AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(notFoundMsg)
	case errors.Is(err, ErrValidation):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewConflictError(err.Error())
	case errors.Is(err, ErrUnauthorized):
		return NewUnauthorizedError("Unauthorized")
	case errors.Is(err, ErrForbidden):
		return NewForbiddenError("Forbidden")
	default:
		return NewInternalServerError("Internal server error")
	}
}
