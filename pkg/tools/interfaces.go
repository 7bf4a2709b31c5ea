// Package tools implements the agent's callable capabilities as a closed,
// name-discriminated set. Every tool converts its failures into a ToolResult
// with a descriptive error string; nothing raises past the tool boundary.
package tools

import (
	"context"
	"time"
)

type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters,omitempty"`
}

type ToolParameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
}

type ToolResult struct {
	Success       bool                   `json:"success"`
	Content       string                 `json:"content,omitempty"`
	Error         string                 `json:"error,omitempty"`
	ToolName      string                 `json:"tool_name"`
	ExecutionTime time.Duration          `json:"execution_time,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

type Tool interface {
	// GetInfo returns metadata about the tool
	GetInfo() ToolInfo

	// Execute runs the tool with the given arguments
	Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error)

	// GetName returns the tool name (convenience method)
	GetName() string

	// GetDescription returns the tool description (convenience method)
	GetDescription() string
}

// ToolSource represents a source of tools (currently only the local set).
type ToolSource interface {
	GetName() string

	GetType() string

	ListTools() []ToolInfo

	GetTool(name string) (Tool, bool)
}

// Schema assembles the JSON Schema object for the tool's input, in the shape
// LLM providers expect for native function calling.
func (i ToolInfo) Schema() map[string]interface{} {
	properties := make(map[string]interface{}, len(i.Parameters))
	required := []string{}

	for _, param := range i.Parameters {
		prop := map[string]interface{}{
			"type":        param.Type,
			"description": param.Description,
		}
		if len(param.Enum) > 0 {
			prop["enum"] = param.Enum
		}
		properties[param.Name] = prop

		if param.Required {
			required = append(required, param.Name)
		}
	}

	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
