package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/httpclient"
)

const pexelsDefaultHost = "https://api.pexels.com"

// ImageSearchConfig configures the image search tool. With an empty APIKey
// the tool returns a deterministic placeholder URL derived from the topic.
type ImageSearchConfig struct {
	APIKey  string
	Host    string
	Timeout time.Duration
}

// ImageSearchTool finds royalty-free cover images through the Pexels API.
type ImageSearchTool struct {
	config     ImageSearchConfig
	httpClient *httpclient.Client
}

type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func NewImageSearchTool(cfg ImageSearchConfig) *ImageSearchTool {
	if cfg.Host == "" {
		cfg.Host = pexelsDefaultHost
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &ImageSearchTool{
		config: cfg,
		httpClient: httpclient.New(
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithUserAgent("inkwell/1.0"),
		),
	}
}

func (t *ImageSearchTool) GetInfo() ToolInfo {
	return ToolInfo{
		Name:        ImageSearchToolName,
		Description: "Find a high-quality, royalty-free stock image related to the given topic, suitable as a blog post cover image. Returns the image URL.",
		Parameters: []ToolParameter{
			{
				Name:        "topic",
				Type:        "string",
				Description: "The topic or description of the image to search for",
				Required:    true,
			},
		},
	}
}

func (t *ImageSearchTool) GetName() string {
	return ImageSearchToolName
}

func (t *ImageSearchTool) GetDescription() string {
	return "Find a royalty-free stock image for a topic"
}

func (t *ImageSearchTool) Execute(ctx context.Context, args map[string]interface{}) (ToolResult, error) {
	start := time.Now()

	topic, ok := args["topic"].(string)
	if !ok || strings.TrimSpace(topic) == "" {
		return ToolResult{
			Success:       false,
			Error:         "topic parameter is required",
			ToolName:      t.GetName(),
			ExecutionTime: time.Since(start),
		}, nil
	}

	if t.config.APIKey == "" {
		return t.fallbackResult(topic, start), nil
	}

	imageURL, err := t.search(ctx, topic)
	if err != nil || imageURL == "" {
		return t.fallbackResult(topic, start), nil
	}

	return ToolResult{
		Success:       true,
		Content:       imageURL,
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
		Metadata:      map[string]interface{}{"topic": topic, "source": "pexels"},
	}, nil
}

func (t *ImageSearchTool) search(ctx context.Context, topic string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/search?query=%s&per_page=1", t.config.Host, url.QueryEscape(topic))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", t.config.APIKey)

	resp, err := t.httpClient.Do(req)
	// Do hands back the response alongside a StatusError on non-2xx, so the
	// body must be closed on that path too.
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("image search request failed: %w", err)
	}

	var raw pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(raw.Photos) == 0 {
		return "", nil
	}

	return raw.Photos[0].Src.Large, nil
}

// FallbackImageURL derives a stable placeholder image URL from the topic:
// the same topic always maps to the same URL.
func FallbackImageURL(topic string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(topic))
	return fmt.Sprintf("https://picsum.photos/1200/630?random=%d", h.Sum32()%1000)
}

func (t *ImageSearchTool) fallbackResult(topic string, start time.Time) ToolResult {
	return ToolResult{
		Success:       true,
		Content:       FallbackImageURL(topic),
		ToolName:      t.GetName(),
		ExecutionTime: time.Since(start),
		Metadata:      map[string]interface{}{"topic": topic, "source": "fallback"},
	}
}

var _ Tool = (*ImageSearchTool)(nil)
