package agentapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// QueryPath is the chat query endpoint path.
const QueryPath = "/api/query"

// Query sends one chat turn to the agent. Leave req.ConversationID empty on
// the first turn; the server assigns one and returns it for threading.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.doMethodJSON(ctx, http.MethodPost, QueryPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Response == "" && resp.ConversationID == "" {
		return nil, ErrEmptyResponse
	}
	return &resp, nil
}

// GetAgentConfig returns the agent's LLM configuration.
func (c *Client) GetAgentConfig(ctx context.Context) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := c.getJSON(ctx, "/api/agent/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resetResponse represents the response from the conversation reset endpoint.
type resetResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ResetConversation clears the server-side state of a conversation.
func (c *Client) ResetConversation(ctx context.Context, conversationID string) error {
	path := fmt.Sprintf("/api/agent/reset/%s", url.PathEscape(conversationID))
	var resp resetResponse
	return c.doMethodJSON(ctx, http.MethodPost, path, nil, &resp)
}

// Health checks backend liveness.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.getJSON(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ServerInfo returns the backend's name and version.
func (c *Client) ServerInfo(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.getJSON(ctx, "/", &info); err != nil {
		return nil, err
	}
	return &info, nil
}
