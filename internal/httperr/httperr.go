package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteBusiness maps a business error code to its HTTP status.
func WriteBusiness(c *gin.Context, err error) {
	code := CodeOf(err)
	msg := MessageOf(err)

	switch code {
	case CodeInvalidArguments:
		BadRequest(c, code, msg)
	case CodeAgentNotFound, CodeUnknownTool:
		NotFound(c, code, msg)
	case CodeConflict, CodeNoAvailability:
		Conflict(c, code, msg)
	case CodeRetrievalUnavailable:
		Unavailable(c, code, msg)
	default:
		Internal(c, "internal_error", "Something went wrong.")
	}
}
