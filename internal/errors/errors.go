package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Success *bool  `json:"success,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// WithDetail attaches a human readable cause under the "error" key.
func (e *APIError) WithDetail(detail string) *APIError {
	e.Detail = detail
	return e
}

// WithSuccessFlag adds "success": false, which the account endpoints carry
// on every response.
func (e *APIError) WithSuccessFlag() *APIError {
	success := false
	e.Success = &success
	return e
}

// respondWithError sends an error response and stops the handler chain
func respondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

// Status returns the HTTP status used for an error code.
func Status(code string) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeInvalidCredentials, ErrCodeAlreadyExists:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond sends err with the status that matches its code.
func Respond(c *gin.Context, err *APIError) {
	respondWithError(c, Status(err.Code), err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Respond(c, NewAPIError(ErrCodeUnauthorized, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Respond(c, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetail sends a 400 response carrying the underlying cause
func BadRequestWithDetail(c *gin.Context, message, detail string) {
	Respond(c, NewAPIError(ErrCodeInvalidInput, message).WithDetail(detail))
}
