package agentapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error variables
var (
	// ErrNoBaseURL indicates the server base URL is missing
	ErrNoBaseURL = errors.New("server base URL is required")

	// ErrToolNotFound indicates the requested tool doesn't exist on the server
	ErrToolNotFound = errors.New("tool not found")

	// ErrDocumentNotFound indicates the requested document doesn't exist
	ErrDocumentNotFound = errors.New("document not found")

	// ErrEmptyResponse indicates the server returned an empty response body
	ErrEmptyResponse = errors.New("empty response from server")
)

// errorBody is the wire shape of error responses. The AgentWeave backend is
// FastAPI-based and reports errors as {"detail": "..."}; some deployments use
// {"error": "..."} instead. Both are handled, and the full parsed body is
// preserved in APIError.Info.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// APIError represents a non-2xx response from the agent backend.
type APIError struct {
	StatusCode int
	Message    string
	Info       map[string]interface{}
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// IsNotFound returns true for 404 responses.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError returns true for 5xx responses.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// Is implements error matching against the not-found sentinels so callers can
// use errors.Is without caring which collection the lookup missed.
func (e *APIError) Is(target error) bool {
	if target == ErrToolNotFound || target == ErrDocumentNotFound {
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// IsNotFound checks whether err is a 404 API error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.IsNotFound()
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// API error.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
