package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// fieldErrors is optional; validation failures pass the aggregated list
// so clients see every violation in one response.
func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewValidationError creates the standard 400 response for a failed
// validation pass: message "Validation failed" plus the full error list.
func NewValidationError(fieldErrors []FieldError) *HTTPError {
	return NewBadRequestError("Validation failed", fieldErrors)
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusUnauthorized,
		Message: message,
	}
}

// NewForbiddenError creates a 403 Forbidden HTTPError. Used when the
// credential is valid but the attached role is not allowed on the route.
func NewForbiddenError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusForbidden,
		Message: message,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError. Each rate-limit route
// class supplies its own message.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Status:  http.StatusTooManyRequests,
		Message: message,
	}
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is the generic status text rather than the real internal
// error: clients do not need stack traces. The global error handler
// attaches diagnostic detail outside production.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
}
