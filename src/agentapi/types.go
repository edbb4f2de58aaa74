package agentapi

import "encoding/json"

// Tool describes a tool registered on the agent backend. Parameters holds the
// JSON schema of the tool's input.
type Tool struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Parameters         json.RawMessage `json:"parameters,omitempty"`
	RequiredParameters []string        `json:"required_parameters,omitempty"`
	Enabled            bool            `json:"enabled"`
}

// ToolStatus is the payload returned by the toggle endpoint.
type ToolStatus struct {
	Status  string `json:"status"`
	Tool    string `json:"tool"`
	Enabled bool   `json:"enabled"`
}

// ToolExecution is the payload returned by the execute endpoint.
type ToolExecution struct {
	Status string      `json:"status"`
	Tool   string      `json:"tool"`
	Result interface{} `json:"result,omitempty"`
}

// IngestionStatus is the backend-computed processing result for a document.
// It is opaque to this layer beyond display.
type IngestionStatus struct {
	Processed  bool   `json:"processed"`
	ChunkCount int    `json:"chunk_count"`
	Error      string `json:"error,omitempty"`
}

// Document describes an uploaded document and its server-side metadata.
type Document struct {
	ID              string           `json:"id"`
	Filename        string           `json:"filename"`
	Size            int64            `json:"size"`
	Type            string           `json:"type"`
	Description     string           `json:"description,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	Category        string           `json:"category,omitempty"`
	ChunkCount      *int             `json:"chunk_count,omitempty"`
	IngestionStatus *IngestionStatus `json:"ingestion_status,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

// DocumentFilter narrows a document listing. Zero value means no filtering.
type DocumentFilter struct {
	Category string
	Tag      string
}

// UploadResult is returned by the upload endpoint.
type UploadResult struct {
	Status   string   `json:"status"`
	Document Document `json:"document"`
}

// DeleteResult is returned by the delete endpoint.
type DeleteResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ReprocessResult is returned by the reprocess endpoint.
type ReprocessResult struct {
	Status          string           `json:"status"`
	DocumentID      string           `json:"document_id"`
	IngestionStatus *IngestionStatus `json:"ingestion_status,omitempty"`
}

// DocumentContent is the raw content of a document. Binary files arrive
// base64-encoded with Encoding set to "base64".
type DocumentContent struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	Encoding    string `json:"encoding,omitempty"`
}

// QueryRequest is a single chat turn sent to the agent. ConversationID is
// empty on the first turn; the server assigns one and the client threads it
// on subsequent turns.
type QueryRequest struct {
	Query          string                 `json:"query"`
	ConversationID string                 `json:"conversation_id,omitempty"`
	Context        map[string]interface{} `json:"context,omitempty"`
}

// QueryResponse is the agent's answer to a query.
type QueryResponse struct {
	Response       string         `json:"response"`
	ConversationID string         `json:"conversation_id"`
	Metadata       *QueryMetadata `json:"metadata,omitempty"`
}

// QueryMetadata carries display-only execution details for a query.
type QueryMetadata struct {
	ExecutionSteps []ExecutionStep        `json:"execution_steps,omitempty"`
	Extra          map[string]interface{} `json:"extra,omitempty"`
}

// Step types recorded in query metadata.
const (
	StepTypeLLMCall  = "llm_call"
	StepTypeToolCall = "tool_call"
)

// Step statuses.
const (
	StepStatusSuccess = "success"
	StepStatusError   = "error"
)

// ExecutionStep records one unit of agent reasoning or tool invocation.
// Slice order reflects actual execution order.
type ExecutionStep struct {
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Input     json.RawMessage `json:"input,omitempty"`
	Output    json.RawMessage `json:"output,omitempty"`
	Error     string          `json:"error,omitempty"`
	ToolCall  *ToolCallRecord `json:"tool_call,omitempty"`
}

// ToolCallRecord is the tool-invocation sub-record of an execution step.
type ToolCallRecord struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
}

// AgentConfig is the agent's LLM configuration as reported by the backend.
type AgentConfig struct {
	LLMProvider string                 `json:"llm_provider"`
	Model       string                 `json:"model"`
	Temperature float64                `json:"temperature"`
	MaxTokens   *int                   `json:"max_tokens,omitempty"`
	OtherParams map[string]interface{} `json:"other_params,omitempty"`
}

// HealthStatus is the health check payload.
type HealthStatus struct {
	Status string `json:"status"`
}

// ServerInfo is the root endpoint payload.
type ServerInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}
