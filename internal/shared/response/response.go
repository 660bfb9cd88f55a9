package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the JSON shape every endpoint returns.
// Success: {"status":"success","data":...}
// Error:   {"status":"error","error":"short label","message":"detail"}
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{
		Status: "success",
		Data:   data,
	})
}

func Error(c *gin.Context, statusCode int, label, message string) {
	c.JSON(statusCode, Envelope{
		Status:  "error",
		Error:   label,
		Message: message,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, "Validation failed", message)
}

func NotFound(c *gin.Context, label string) {
	Error(c, 404, label, "")
}

func InternalServerError(c *gin.Context, label, message string) {
	Error(c, 500, label, message)
}
