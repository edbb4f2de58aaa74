package agentapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorDetailBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Document abc not found"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.ListTools(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Document abc not found", apiErr.Message)
	assert.Equal(t, "Document abc not found", apiErr.Info["detail"])
}

func TestHandleErrorErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"locked"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.ToggleTool(context.Background(), "x", true)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "locked", apiErr.Message)
}

func TestHandleErrorNonJSONBody(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		status      int
		wantMessage string
	}{
		{
			name:        "html body",
			body:        "<html>Bad Gateway</html>",
			status:      http.StatusBadGateway,
			wantMessage: "<html>Bad Gateway</html>",
		},
		{
			name:        "empty body",
			body:        "",
			status:      http.StatusServiceUnavailable,
			wantMessage: "Service Unavailable",
		},
		{
			name:        "truncated json",
			body:        `{"detail":`,
			status:      http.StatusInternalServerError,
			wantMessage: `{"detail":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL})
			_, err := client.ListTools(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "every non-2xx must normalize to APIError")
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Empty(t, apiErr.Info, "unparseable body must leave Info empty")
		})
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	_, err := client.ListTools(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestRequestHeaders(t *testing.T) {
	var gotRequestID, gotAccept, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"tools":[]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, UserAgent: "agentweave-test"})
	_, err := client.ListTools(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "agentweave-test", gotUserAgent)
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, defaultBaseURL, client.BaseURL())
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, defaultTimeout, client.httpClient.Timeout)
}
