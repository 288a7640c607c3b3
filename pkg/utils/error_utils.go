package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the failure form of the response envelope.
type APIError struct {
	StatusCode int    `json:"-"`              // HTTP status code, not part of the body
	Code       string `json:"code,omitempty"` // Application-specific error code
	Message    string `json:"msg"`
}

// NewAPIError creates a new APIError instance
func NewAPIError(statusCode int, code string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// RespondWithError sends the failure envelope and aborts the handler chain.
func RespondWithError(c *gin.Context, err *APIError) {
	c.AbortWithStatusJSON(err.StatusCode, gin.H{
		"success": false,
		"msg":     err.Message,
		"code":    err.Code,
	})
}

// RespondWithSuccess sends {"success": true, "msg": msg} merged with payload.
func RespondWithSuccess(c *gin.Context, statusCode int, msg string, payload gin.H) {
	body := gin.H{"success": true, "msg": msg}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Common Error Constants
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
)

// RespondValidationFailed is the shortcut for malformed payloads and path parameters.
func RespondValidationFailed(c *gin.Context, msg string) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, msg))
}

// RespondInternalError answers with the generic 500 envelope. Details belong in the log only.
func RespondInternalError(c *gin.Context) {
	RespondWithError(c, NewAPIError(http.StatusInternalServerError, ErrCodeInternalServerError, "internal server error"))
}
