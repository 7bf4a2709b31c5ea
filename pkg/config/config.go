// Package config holds the environment-sourced service configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultModel         = "claude-3-5-sonnet-20241022"
	DefaultMaxIterations = 15
	DefaultContentDir    = "content/blog"
	DefaultVectorDir     = "./inkwell_db"
	DefaultListenAddr    = ":8000"
)

// Config carries everything the service needs. It is built once in main and
// passed down explicitly; nothing reads the environment after Load returns.
type Config struct {
	// AnthropicAPIKey is the only required credential.
	AnthropicAPIKey string

	// TavilyAPIKey enables real web search. Optional; the search tool falls
	// back to a canned result without it.
	TavilyAPIKey string

	// PexelsAPIKey enables real image search. Optional; the image tool falls
	// back to a deterministic placeholder URL without it.
	PexelsAPIKey string

	// OpenAIAPIKey enables OpenAI embeddings for the post store. Optional;
	// without it a local deterministic embedder is used.
	OpenAIAPIKey string

	Model         string
	Temperature   float64
	MaxTokens     int
	MaxIterations int

	ContentDir string
	VectorDir  string
	ListenAddr string
	LogLevel   string

	// LLMTimeout bounds a single Anthropic call. ToolTimeout bounds a single
	// outbound call made by a tool (Tavily, Pexels).
	LLMTimeout  time.Duration
	ToolTimeout time.Duration
}

// Load builds a Config from the process environment, applying defaults for
// everything except credentials. Call LoadDotEnv first if .env support is
// wanted.
func Load() *Config {
	cfg := &Config{
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		TavilyAPIKey:    os.Getenv("TAVILY_API_KEY"),
		PexelsAPIKey:    os.Getenv("PEXELS_API_KEY"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		Model:           envOr("INKWELL_MODEL", DefaultModel),
		Temperature:     envFloatOr("INKWELL_TEMPERATURE", 0.7),
		MaxTokens:       envIntOr("INKWELL_MAX_TOKENS", 4096),
		MaxIterations:   envIntOr("INKWELL_MAX_ITERATIONS", DefaultMaxIterations),
		ContentDir:      envOr("INKWELL_CONTENT_DIR", DefaultContentDir),
		VectorDir:       envOr("INKWELL_VECTOR_DIR", DefaultVectorDir),
		ListenAddr:      envOr("INKWELL_ADDR", DefaultListenAddr),
		LogLevel:        envOr("INKWELL_LOG_LEVEL", "info"),
		LLMTimeout:      envDurationOr("INKWELL_LLM_TIMEOUT", 120*time.Second),
		ToolTimeout:     envDurationOr("INKWELL_TOOL_TIMEOUT", 10*time.Second),
	}
	return cfg
}

// Validate checks the invariants that cannot be defaulted away.
func (c *Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.ContentDir == "" {
		return fmt.Errorf("content directory cannot be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
