package utils

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every gateway endpoint writes. It matches the
// upstream backend's shape, so dashboard pages handle one format regardless
// of which side produced the response.
type Response struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	StatusCode int         `json:"status_code"`
}

// Success writes a success envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Status:     "success",
		Message:    message,
		Data:       data,
		StatusCode: code,
	})
}

// Error writes an error envelope.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Status:     "error",
		Message:    message,
		StatusCode: code,
	})
}

// Forward writes an envelope produced elsewhere (the upstream client or a
// local repository) through unchanged.
func Forward(c *gin.Context, status string, message string, data json.RawMessage, code int) {
	var payload interface{}
	if len(data) > 0 {
		payload = data
	}
	c.JSON(code, Response{
		Status:     status,
		Message:    message,
		Data:       payload,
		StatusCode: code,
	})
}
