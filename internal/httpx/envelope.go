// Package httpx holds the HTTP plumbing shared by every handler: the
// response envelope convention and the gin middleware.
package httpx

import "github.com/gin-gonic/gin"

// Envelope is the response shape of every endpoint: a success flag, an
// optional data payload and an optional error.
type Envelope struct {
	IsSuccessful bool      `json:"isSuccessful"`
	Data         any       `json:"data,omitempty"`
	Error        *APIError `json:"error,omitempty"`
}

// APIError carries a human-readable description and, for validation
// failures, a field name to message-list map.
type APIError struct {
	ResponseDescription string              `json:"responseDescription,omitempty"`
	Message             string              `json:"message,omitempty"`
	Errors              map[string][]string `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{IsSuccessful: true, Data: data})
}

func Fail(c *gin.Context, status int, description string) {
	c.JSON(status, Envelope{Error: &APIError{ResponseDescription: description}})
}

func FailFields(c *gin.Context, status int, message string, fields map[string][]string) {
	c.JSON(status, Envelope{Error: &APIError{Message: message, Errors: fields}})
}
