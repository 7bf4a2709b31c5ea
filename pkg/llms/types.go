// Package llms defines the message types shared between the agent loop and
// the language model providers, plus the Anthropic provider itself.
package llms

import "context"

// Message is one turn of the agent conversation. Role is one of "system",
// "user", "assistant" or "tool".
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// ToolDefinition describes a callable tool in the provider's wire format.
// Parameters is a JSON Schema object.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Provider is a language model capable of native tool calling.
type Provider interface {
	// Generate runs one model turn. It returns the assistant text, any tool
	// calls the model requested, and the total tokens consumed.
	Generate(ctx context.Context, messages []Message, tools []ToolDefinition) (string, []ToolCall, int, error)

	GetModelName() string

	Close() error
}
