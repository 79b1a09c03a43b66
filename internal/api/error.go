package api

import (
	"encoding/json"
	"fmt"
)

// StatusError is returned for any response whose status code is not 200,
// regardless of body content. Message carries the server's message field when
// it could be decoded.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status=%d", e.StatusCode)
}

func newStatusError(statusCode int, body []byte) *StatusError {
	envelope := struct {
		Message string `json:"message"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &StatusError{StatusCode: statusCode}
	}
	return &StatusError{StatusCode: statusCode, Message: envelope.Message}
}
