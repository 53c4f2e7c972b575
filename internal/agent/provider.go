package agent

import "context"

// ModelMessage is one entry of the dialogue replayed to the model.
// Role is "user" or "assistant".
type ModelMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolDefinition describes a tool offered to the model, with a JSON-schema
// parameter contract.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ModelToolCall is a tool invocation requested by the model. Arguments is
// the serialized argument object exactly as the model emitted it.
type ModelToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ModelRequest is a single synchronous exchange with the model.
type ModelRequest struct {
	System   string           `json:"system"`
	Messages []ModelMessage   `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// ModelReply is the model's answer: free text, tool calls, or both.
type ModelReply struct {
	Content   string          `json:"content"`
	ToolCalls []ModelToolCall `json:"tool_calls,omitempty"`
}

// ModelClient is the language model collaborator. Implementations must be
// safe for concurrent use; one configured client is shared across turns.
type ModelClient interface {
	Complete(ctx context.Context, req *ModelRequest) (*ModelReply, error)
}
