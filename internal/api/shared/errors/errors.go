package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/porcinet/herdbook/internal/domain"
)

// ErrorCode is the machine readable code of an error response
type ErrorCode string

const (
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeInternalError    ErrorCode = "internal_error"
	ErrCodeDatabaseError    ErrorCode = "database_error"
)

// APIError is the body of every non 2xx response
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

func newAPIError(code ErrorCode, message string, details []string) *APIError {
	return &APIError{Code: code, Message: message, Details: strings.Join(details, ", ")}
}

func NewBadRequestError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeBadRequest, message, details)
}

func NewValidationError(details ...string) *APIError {
	return newAPIError(ErrCodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newAPIError(ErrCodeUnauthorized, message, details)
}

func NewInternalError(message string) *APIError {
	return newAPIError(ErrCodeInternalError, message, nil)
}

// domainMappings lists the engine error kinds in the order they are matched
var domainMappings = []struct {
	kind    error
	status  int
	code    ErrorCode
	message string
}{
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound, "Resource not found"},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "Access denied"},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeValidationFailed, "Validation failed"},
	{domain.ErrTransactionFailure, http.StatusInternalServerError, ErrCodeDatabaseError, "Operation rolled back"},
}

// FromDomain maps an engine error to its HTTP status and APIError.
// Errors without a domain kind are reported as internal errors without details.
func FromDomain(err error) (int, *APIError) {
	for _, m := range domainMappings {
		if errors.Is(err, m.kind) {
			return m.status, newAPIError(m.code, m.message, []string{err.Error()})
		}
	}
	return http.StatusInternalServerError, NewInternalError("Internal server error")
}
