package agentapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ToolsPath is the tools collection path; it doubles as the cache key for the
// tools listing.
const ToolsPath = "/api/tools/"

// toolsResponse represents the response from the tools listing endpoint.
type toolsResponse struct {
	Tools []Tool `json:"tools"`
}

// ListTools returns all tools registered on the backend.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	var resp toolsResponse
	if err := c.getJSON(ctx, ToolsPath, &resp); err != nil {
		return nil, err
	}
	return resp.Tools, nil
}

// GetTool returns a single tool by name. The backend has no per-tool read
// endpoint, so this filters the listing.
func (c *Client) GetTool(ctx context.Context, name string) (*Tool, error) {
	tools, err := c.ListTools(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i], nil
		}
	}
	return nil, fmt.Errorf("tool %s: %w", name, ErrToolNotFound)
}

// toggleRequest is the body of the toggle endpoint.
type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

// ToggleTool enables or disables a tool by name.
func (c *Client) ToggleTool(ctx context.Context, name string, enabled bool) (*ToolStatus, error) {
	path := fmt.Sprintf("/api/tools/%s/toggle", url.PathEscape(name))
	var status ToolStatus
	if err := c.doMethodJSON(ctx, http.MethodPatch, path, toggleRequest{Enabled: enabled}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ExecuteTool runs a tool on the backend with the given parameters.
func (c *Client) ExecuteTool(ctx context.Context, name string, params map[string]interface{}) (*ToolExecution, error) {
	path := fmt.Sprintf("/api/tools/%s/execute", url.PathEscape(name))
	if params == nil {
		params = map[string]interface{}{}
	}
	var result ToolExecution
	if err := c.doMethodJSON(ctx, http.MethodPost, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
