package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xyz-asif/goalpath/pkg/errors"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error string `json:"error" example:"Could not find goal with id: 42"`
	Code  string `json:"code,omitempty" example:"NOT_FOUND"`
}

// MessageResponse is returned by operations that have no record to echo back
type MessageResponse struct {
	Message string `json:"message" example:"Goal deleted successfully"`
}

// Success sends a 200 OK response with the bare record as body
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message sends a 200 OK response with a message body
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusNotFound, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// ServiceUnavailable sends a 503 Service Unavailable error
func ServiceUnavailable(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusServiceUnavailable, message, errorCode...)
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format", "INVALID_JSON")
}

// FromError writes the response matching the kind of a service error.
// Unclassified errors are reported as 500 without leaking their text.
func FromError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch apperrors.KindOf(err) {
	case apperrors.ErrNotFound:
		NotFound(c, err.Error(), "NOT_FOUND")
	case apperrors.ErrUnauthorized:
		Unauthorized(c, err.Error(), "UNAUTHORIZED")
	case apperrors.ErrInternal:
		InternalServerError(c, err.Error(), "INTERNAL_ERROR")
	default:
		InternalServerError(c, "Internal server error", "INTERNAL_ERROR")
	}
}
