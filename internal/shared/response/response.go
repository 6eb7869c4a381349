package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessBody is the envelope for every successful response.
type SuccessBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the envelope for every failure. Details carries the
// ordered field violations for validation failures.
type ErrorBody struct {
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessBody{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, statusCode int, message string, details interface{}) {
	c.JSON(statusCode, ErrorBody{
		Error:   true,
		Message: message,
		Details: details,
	})
}
