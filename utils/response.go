package utils

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response. Data is set on success, Error
// on failure.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RawEnvelope is Envelope as a client decodes it, with Data left undecoded.
type RawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data})
}

func JSONError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Success: false, Error: message})
}
