package models

import (
	"fmt"
	"net/http"
)

// Error codes carried in API error responses.
const (
	ErrCodeValidation     = "VALIDATION"
	ErrCodeAuthentication = "AUTHENTICATION"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeInternal       = "INTERNAL"
	ErrCodeRateLimited    = "RATE_LIMITED"
)

// APIError is the error type services and middleware return for expected
// failures. The HTTP boundary translates it to its status; any other error is
// treated as internal.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewValidationError reports malformed or missing input.
func NewValidationError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: message}
}

// NewAuthenticationError reports missing, invalid or expired credentials.
func NewAuthenticationError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: ErrCodeAuthentication, Message: message}
}

// NewInvalidTokenError reports a token that failed verification for any reason
// other than expiry.
func NewInvalidTokenError() *APIError {
	return &APIError{Status: http.StatusForbidden, Code: ErrCodeAuthentication, Message: "invalid token"}
}

// NewForbiddenError reports an authenticated caller acting on a resource it
// does not own. The same error covers resources that do not exist, so a caller
// cannot probe for other users' data.
func NewForbiddenError() *APIError {
	return &APIError{Status: http.StatusForbidden, Code: ErrCodeForbidden, Message: "forbidden"}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// NewConflictError reports a uniqueness violation.
func NewConflictError(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: message}
}

// NewInternalError reports an unexpected failure. Details stay in the server
// log; the caller only sees a generic message.
func NewInternalError() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternal, Message: "internal server error"}
}

// NewRateLimitedError reports that the caller exceeded the request budget.
func NewRateLimitedError() *APIError {
	return &APIError{Status: http.StatusTooManyRequests, Code: ErrCodeRateLimited, Message: "too many requests"}
}
