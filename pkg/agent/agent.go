// Package agent drives the bounded tool-calling loop: feed the conversation
// to the model, execute the tools it asks for, feed the results back, and
// stop when the model answers without tool calls or the round cap runs out.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/inkwell-ai/inkwell/pkg/llms"
	"github.com/inkwell-ai/inkwell/pkg/tools"
)

const defaultMaxIterations = 15

// mdxFileName matches a quoted .mdx file name in free text, used as a
// fallback when no write tool invocation was recorded.
var mdxFileName = regexp.MustCompile(`'([^']*\.mdx)'|"([^"]*\.mdx)"`)

// Result is the outcome of one agent run.
type Result struct {
	// Output is the final assistant text, or the last text produced before
	// the iteration cap ran out.
	Output string `json:"output"`

	// FileName is the normalized name of the post file the agent saved, if
	// any.
	FileName string `json:"file_name,omitempty"`

	// Iterations is the number of model rounds consumed.
	Iterations int `json:"iterations"`

	// TokensUsed is the total tokens reported by the provider across all
	// rounds.
	TokensUsed int `json:"tokens_used"`
}

// Config tunes the loop.
type Config struct {
	// MaxIterations caps the number of model rounds per run. Defaults to 15.
	MaxIterations int

	// SystemPrompt overrides the built-in blog assistant system prompt.
	SystemPrompt string
}

// Agent is a single-conversation loop driver. Each Run starts a fresh
// conversation; no state carries over between runs, so one Agent can serve
// concurrent requests.
type Agent struct {
	provider      llms.Provider
	tools         *tools.ToolRegistry
	maxIterations int
	systemPrompt  string
}

func New(provider llms.Provider, registry *tools.ToolRegistry, cfg Config) *Agent {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = systemPrompt
	}

	return &Agent{
		provider:      provider,
		tools:         registry,
		maxIterations: cfg.MaxIterations,
		systemPrompt:  cfg.SystemPrompt,
	}
}

// Run executes the loop on a single instruction. Transport-level model
// errors are fed back into the conversation and the loop continues; only
// context cancellation aborts early. Exhausting the iteration cap is not an
// error: the last assistant text is returned as partial output.
func (a *Agent) Run(ctx context.Context, instruction string) (*Result, error) {
	if instruction == "" {
		return nil, errors.New("instruction must not be empty")
	}

	defs := toolDefinitions(a.tools)
	messages := []llms.Message{
		{Role: "system", Content: a.systemPrompt},
		{Role: "user", Content: instruction},
	}

	result := &Result{}
	writtenFile := ""

	for result.Iterations < a.maxIterations {
		result.Iterations++

		text, calls, tokens, err := a.provider.Generate(ctx, messages, defs)
		result.TokensUsed += tokens

		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("agent run aborted: %w", ctx.Err())
			}

			slog.Warn("model call failed, feeding error back into conversation",
				"iteration", result.Iterations,
				"error", err)
			messages = append(messages, llms.Message{
				Role:    "user",
				Content: fmt.Sprintf("The previous request failed with: %v. Please continue with the task.", err),
			})
			continue
		}

		if text != "" {
			result.Output = text
		}

		if len(calls) == 0 {
			result.FileName = fileNameFor(writtenFile, result.Output)
			return result, nil
		}

		messages = append(messages, llms.Message{
			Role:      "assistant",
			Content:   text,
			ToolCalls: calls,
		})

		for _, call := range calls {
			msg, written := a.executeCall(ctx, call)
			if written != "" {
				writtenFile = written
			}
			messages = append(messages, msg)
		}
	}

	slog.Warn("iteration cap reached, returning partial output",
		"max_iterations", a.maxIterations)

	result.FileName = fileNameFor(writtenFile, result.Output)
	return result, nil
}

// executeCall runs one tool call and wraps the outcome as a tool message.
// Unknown tools and failed executions become error text the model sees on
// the next round. The second return value is the normalized file name when
// the call was a successful post write.
func (a *Agent) executeCall(ctx context.Context, call llms.ToolCall) (llms.Message, string) {
	slog.Debug("executing tool", "tool", call.Name, "call_id", call.ID)

	toolResult, err := a.tools.ExecuteTool(ctx, call.Name, call.Args)

	content := toolResult.Content
	written := ""

	switch {
	case err != nil:
		content = fmt.Sprintf("Tool error: %v", err)
	case !toolResult.Success:
		content = fmt.Sprintf("Tool error: %s", toolResult.Error)
	case call.Name == tools.WritePostToolName:
		written = writtenFileName(call)
	}

	msg := llms.Message{
		Role:       "tool",
		Content:    content,
		ToolCallID: call.ID,
		Name:       call.Name,
	}
	return msg, written
}

// writtenFileName recovers the normalized file name from a successful write
// call's arguments.
func writtenFileName(call llms.ToolCall) string {
	raw, ok := call.Args["file_name"].(string)
	if !ok {
		return ""
	}
	name, err := tools.NormalizePostName(raw)
	if err != nil {
		return ""
	}
	return name
}

// fileNameFor prefers the recorded write invocation over regex extraction
// from the final text.
func fileNameFor(written, output string) string {
	if written != "" {
		return written
	}
	return ExtractFileName(output)
}

func toolDefinitions(registry *tools.ToolRegistry) []llms.ToolDefinition {
	infos := registry.ListTools()
	defs := make([]llms.ToolDefinition, 0, len(infos))
	for _, info := range infos {
		defs = append(defs, llms.ToolDefinition{
			Name:        info.Name,
			Description: info.Description,
			Parameters:  info.Schema(),
		})
	}
	return defs
}

// ExtractFileName pulls a quoted .mdx file name out of free text. Returns
// the empty string when none is present.
func ExtractFileName(text string) string {
	m := mdxFileName.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}
