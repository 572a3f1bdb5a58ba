package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError describes a non-2xx response from the scheduling service.
type APIError struct {
	Message    string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Retryable reports whether the status class is worth retrying.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	msg := fmt.Sprintf("%s %s failed", method, path)

	// The server usually wraps errors as {"error": "..."}; surface that
	// message when present.
	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if m := strings.TrimSpace(wrapped.Error); m != "" {
			msg = m
		} else if m := strings.TrimSpace(wrapped.Message); m != "" {
			msg = m
		}
	}

	return &APIError{
		Message:    msg,
		StatusCode: status,
		Body:       string(body),
	}
}
