// Package response defines the JSON envelope every endpoint answers with.
//
//	{"success": true, "message": "...", "data": {...}}
//	{"success": false, "message": "...", "errors": {...}}
package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response. Error envelopes never carry Data.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Success builds a success envelope. message is optional.
func Success(data any, message ...string) Envelope {
	env := Envelope{Success: true, Data: data}
	if len(message) > 0 {
		env.Message = message[0]
	}
	return env
}

// Error builds an error envelope. errors is optional detail, e.g. per-field
// validation messages.
func Error(message string, errors ...any) Envelope {
	env := Envelope{Success: false, Message: message}
	if len(errors) > 0 && errors[0] != nil {
		env.Errors = errors[0]
	}
	return env
}

// JSON writes a success envelope with the given status.
func JSON(c *gin.Context, status int, data any, message ...string) {
	c.JSON(status, Success(data, message...))
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, message string, errors ...any) {
	c.AbortWithStatusJSON(status, Error(message, errors...))
}
