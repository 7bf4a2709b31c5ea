package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReadPostTool reads an existing post file from the content directory.
type ReadPostTool struct {
	config PostFileConfig
}

func NewReadPostTool(cfg PostFileConfig) *ReadPostTool {
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content/blog"
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = 10485760 // 10MB
	}

	return &ReadPostTool{config: cfg}
}

func (t *ReadPostTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        ReadPostToolName,
		Description: "Read the content of an existing blog post file from the content directory. Useful to check style or avoid duplicating an earlier post.",
		Parameters: []ToolParameter{
			{
				Name:        "file_name",
				Type:        "string",
				Description: "The name of the file to read (should end with .mdx)",
				Required:    true,
			},
		},
	}
}

func (t *ReadPostTool) GetName() string {
	return ReadPostToolName
}

func (t *ReadPostTool) GetDescription() string {
	return "Read the content of an existing blog post file"
}

func (t *ReadPostTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	fileName, ok := args["file_name"].(string)
	if !ok || fileName == "" {
		return t.errorResult("file_name parameter is required", start), nil
	}

	name, err := NormalizePostName(fileName)
	if err != nil {
		return t.errorResult(err.Error(), start), nil
	}

	path := filepath.Join(t.config.ContentDir, name)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Not an error for the agent: a readable answer it can act on.
			return ToolResult{
				Success:       true,
				Content:       fmt.Sprintf("File '%s' does not exist.", name),
				ToolName:      t.GetName(),
				ExecutionTime: time.Since(start),
			}, nil
		}
		return t.errorResult(fmt.Sprintf("error reading file: %v", err), start), nil
	}

	if info.Size() > int64(t.config.MaxFileSize) {
		return t.errorResult(
			fmt.Sprintf("file too large: %d bytes (max: %d)", info.Size(), t.config.MaxFileSize),
			start), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return t.errorResult(fmt.Sprintf("error reading file: %v", err), start), nil
	}

	return ToolResult{
		Success:       true,
		Content:       string(content),
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
		Metadata:      map[string]interface{}{"file_name": name, "path": path},
	}, nil
}

func (t *ReadPostTool) errorResult(message string, start time.Time) ToolResult {
	return ToolResult{
		Success:       false,
		Error:         message,
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
	}
}

var _ Tool = (*ReadPostTool)(nil)
