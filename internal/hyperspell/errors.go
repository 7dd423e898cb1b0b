package hyperspell

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	// Status is the HTTP status code returned by the server.
	Status int
	// Message is the server's error detail, when the body carried one.
	Message string
	// Body contains the raw response body for diagnostics.
	Body []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("hyperspell: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("hyperspell: %d %s", e.Status, http.StatusText(e.Status))
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		Status:  status,
		Message: errorDetail(body),
		Body:    body,
	}
}

// errorDetail extracts a human-readable message from an error body.
// The API answers with {"detail": ...}; other gateways in front of it use
// "message" or "error". Validation failures carry a list of details.
func errorDetail(body []byte) string {
	var env map[string]any
	if err := json.Unmarshal(body, &env); err != nil {
		return strings.TrimSpace(string(body))
	}
	for _, key := range []string{"detail", "message", "error"} {
		switch v := env[key].(type) {
		case string:
			return v
		case []any:
			var parts []string
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					if msg, ok := m["msg"].(string); ok {
						parts = append(parts, msg)
						continue
					}
				}
				if b, err := json.Marshal(item); err == nil {
					parts = append(parts, string(b))
				}
			}
			return strings.Join(parts, "; ")
		case map[string]any:
			if msg, ok := v["message"].(string); ok {
				return msg
			}
		}
	}
	return ""
}
