package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
)

// Config holds configuration for the agent backend client
type Config struct {
	BaseURL    string        // Base URL of the agent backend
	Logger     *slog.Logger  // Logger for debugging
	Timeout    time.Duration // HTTP timeout
	HTTPClient *http.Client  // Optional custom HTTP client
	UserAgent  string        // User-Agent header value
}

// Client is the AgentWeave backend API client.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient creates a new agent backend client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "agent_client")

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
		baseURL:    config.BaseURL,
	}
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest creates a new HTTP request with the appropriate headers.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	return req, nil
}

// getJSON issues a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// doMethodJSON issues a request with a JSON body and decodes the response into out.
// A nil in sends no body; a nil out discards the response body.
func (c *Client) doMethodJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// doJSON executes the request and decodes the JSON response into out.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	logger := c.logger.With("method", req.Method, "url", req.URL.String())
	logger.Debug("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error("received error response", "status_code", resp.StatusCode)
		return c.handleError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Error("failed to decode response", "error", err)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// uploadMultipart issues a POST with a multipart body built from file content
// and plain form fields, then decodes the JSON response into out. Field order
// is preserved as given.
func (c *Client) uploadMultipart(ctx context.Context, path, fileField, filename string, content io.Reader, fields [][2]string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to write file content: %w", err)
	}

	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", field[0], err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	return c.doJSON(req, out)
}

// handleError processes error responses from the backend. The body is parsed
// best-effort: a JSON object yields a message (from "detail" or "error") and
// the full object as Info; anything else yields the raw body as the message
// with empty Info.
func (c *Client) handleError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  resp.Header.Get("X-Request-ID"),
		}
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Info:       map[string]interface{}{},
		RequestID:  resp.Header.Get("X-Request-ID"),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Detail != "":
			apiErr.Message = parsed.Detail
		case parsed.Error != "":
			apiErr.Message = parsed.Error
		}
	}

	var info map[string]interface{}
	if err := json.Unmarshal(body, &info); err == nil {
		apiErr.Info = info
	}

	if apiErr.Message == "" {
		apiErr.Message = string(bytes.TrimSpace(body))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
