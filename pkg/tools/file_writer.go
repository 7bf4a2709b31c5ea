package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const postExtension = ".mdx"

// PostFileConfig configures the post file tools.
type PostFileConfig struct {
	// ContentDir is where generated posts live. Created on first write.
	ContentDir string

	// MaxFileSize bounds the content accepted by write_post.
	MaxFileSize int
}

// WritePostTool saves a finished post to an MDX file under the content
// directory. It always answers with a human-readable status string.
type WritePostTool struct {
	config PostFileConfig
}

func NewWritePostTool(cfg PostFileConfig) *WritePostTool {
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content/blog"
	}
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = 1048576 // 1MB
	}

	return &WritePostTool{config: cfg}
}

func (t *WritePostTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        WritePostToolName,
		Description: "Save the completed blog post content to an MDX file in the content directory. Use this to save the final result, including the frontmatter.",
		Parameters: []ToolParameter{
			{
				Name:        "file_name",
				Type:        "string",
				Description: "The name of the file to save (should end with .mdx)",
				Required:    true,
			},
			{
				Name:        "content",
				Type:        "string",
				Description: "The complete blog post content including frontmatter and body",
				Required:    true,
			},
		},
	}
}

func (t *WritePostTool) GetName() string {
	return WritePostToolName
}

func (t *WritePostTool) GetDescription() string {
	return "Save the completed blog post content to an MDX file"
}

func (t *WritePostTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	fileName, ok := args["file_name"].(string)
	if !ok || strings.TrimSpace(fileName) == "" {
		return t.errorResult("file_name parameter is required", start), nil
	}

	content, ok := args["content"].(string)
	if !ok || content == "" {
		return t.errorResult("content parameter is required", start), nil
	}

	name, err := NormalizePostName(fileName)
	if err != nil {
		return t.errorResult(err.Error(), start), nil
	}

	if len(content) > t.config.MaxFileSize {
		return t.errorResult(
			fmt.Sprintf("content too large: %d bytes (max: %d)", len(content), t.config.MaxFileSize),
			start), nil
	}

	if err := os.MkdirAll(t.config.ContentDir, 0755); err != nil {
		return t.errorResult(fmt.Sprintf("error creating content directory: %v", err), start), nil
	}

	path := filepath.Join(t.config.ContentDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return t.errorResult(fmt.Sprintf("error saving file: %v", err), start), nil
	}

	return ToolResult{
		Success:       true,
		Content:       fmt.Sprintf("File '%s' saved successfully at %s", name, path),
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
		Metadata:      map[string]interface{}{"file_name": name, "path": path, "bytes": len(content)},
	}, nil
}

func (t *WritePostTool) errorResult(message string, start time.Time) ToolResult {
	return ToolResult{
		Success:       false,
		Error:         message,
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
	}
}

// NormalizePostName validates a post file name and ensures the .mdx
// extension. Writing "n" and writing "n.mdx" address the same file. Names
// must be bare file names: no separators, no traversal, no absolute paths.
func NormalizePostName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("file name cannot be empty")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute paths not allowed: %s", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("path separators not allowed in file name: %s", name)
	}
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("directory traversal not allowed: %s", name)
	}

	if !strings.HasSuffix(name, postExtension) {
		name += postExtension
	}

	return name, nil
}

var _ Tool = (*WritePostTool)(nil)
