package apierror

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ama-impact/ama-impact/pkg/impact/errtrack"
)

// Error codes
const (
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeConflict         = "CONFLICT"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the JSON body of every error response.
type APIError struct {
	Message string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// New creates an APIError.
func New(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// Respond writes err with the given status and aborts the handler chain.
func Respond(c *gin.Context, status int, err *APIError) {
	c.AbortWithStatusJSON(status, err)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	Respond(c, http.StatusBadRequest, New(CodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with field details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	Respond(c, http.StatusBadRequest, &APIError{Code: CodeInvalidInput, Message: message, Details: details})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	Respond(c, http.StatusUnauthorized, New(CodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	Respond(c, http.StatusForbidden, New(CodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Respond(c, http.StatusNotFound, New(CodeNotFound, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	Respond(c, http.StatusConflict, New(CodeConflict, message))
}

// InvalidOperation sends a 409 response for a disallowed state transition.
func InvalidOperation(c *gin.Context, message string) {
	Respond(c, http.StatusConflict, New(CodeInvalidOperation, message))
}

// Internal logs err, reports it to the error tracker and sends a 500 whose
// body carries only message.
func Internal(c *gin.Context, err error, message string) {
	if message == "" {
		message = "Internal server error"
	}
	slog.Default().Error(message,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString("request_id"),
	)
	if err != nil {
		errtrack.Get().Report(err, map[string]interface{}{
			"message":    message,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		})
	}
	Respond(c, http.StatusInternalServerError, New(CodeInternalError, message))
}
