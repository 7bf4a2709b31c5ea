package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/agent"
	"github.com/inkwell-ai/inkwell/pkg/config"
	"github.com/inkwell-ai/inkwell/pkg/embedders"
	"github.com/inkwell-ai/inkwell/pkg/llms"
	"github.com/inkwell-ai/inkwell/pkg/server"
	"github.com/inkwell-ai/inkwell/pkg/store"
	"github.com/inkwell-ai/inkwell/pkg/tools"
	"github.com/inkwell-ai/inkwell/pkg/vector"
)

// ServeCmd starts the HTTP server.
type ServeCmd struct {
	Addr       string `help:"Listen address (overrides INKWELL_ADDR)."`
	ContentDir string `name:"content-dir" help:"Directory for generated posts (overrides INKWELL_CONTENT_DIR)." type:"path"`
	VectorDir  string `name:"vector-dir" help:"Directory for the vector database (overrides INKWELL_VECTOR_DIR)." type:"path"`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg := config.Load()
	if c.Addr != "" {
		cfg.ListenAddr = c.Addr
	}
	if c.ContentDir != "" {
		cfg.ContentDir = c.ContentDir
	}
	if c.VectorDir != "" {
		cfg.VectorDir = c.VectorDir
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}

	if err := initLogger(cfg.LogLevel); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	provider, err := llms.NewAnthropicProvider(llms.AnthropicConfig{
		APIKey:      cfg.AnthropicAPIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.LLMTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	defer func() {
		if err := provider.Close(); err != nil {
			slog.Warn("failed to close LLM provider", "error", err)
		}
	}()

	embedder, err := embedders.New(embedders.Config{OpenAIAPIKey: cfg.OpenAIAPIKey})
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	slog.Info("using embedder", "name", embedder.Name(), "dimension", embedder.Dimension())

	index, err := vector.NewChromemProvider(vector.ChromemConfig{
		Dir:       cfg.VectorDir,
		Dimension: embedder.Dimension(),
	})
	if err != nil {
		return fmt.Errorf("failed to open vector database: %w", err)
	}
	defer func() {
		if err := index.Close(); err != nil {
			slog.Warn("failed to close vector database", "error", err)
		}
	}()

	posts := store.NewPostStore(embedder, index)

	registry, err := buildToolRegistry(cfg)
	if err != nil {
		return err
	}

	blogAgent := agent.New(provider, registry, agent.Config{
		MaxIterations: cfg.MaxIterations,
	})

	srv := server.New(blogAgent, posts, server.Config{Addr: cfg.ListenAddr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}

func buildToolRegistry(cfg *config.Config) (*tools.ToolRegistry, error) {
	source := tools.NewLocalToolSource("local")

	toolSet := []tools.Tool{
		tools.NewWebSearchTool(tools.WebSearchConfig{
			APIKey:  cfg.TavilyAPIKey,
			Timeout: cfg.ToolTimeout,
		}),
		tools.NewImageSearchTool(tools.ImageSearchConfig{
			APIKey:  cfg.PexelsAPIKey,
			Timeout: cfg.ToolTimeout,
		}),
		tools.NewWritePostTool(tools.PostFileConfig{ContentDir: cfg.ContentDir}),
		tools.NewReadPostTool(tools.PostFileConfig{ContentDir: cfg.ContentDir}),
	}

	for _, tool := range toolSet {
		if err := source.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", tool.GetName(), err)
		}
	}

	registry := tools.NewToolRegistry()
	if err := registry.RegisterSource(source); err != nil {
		return nil, fmt.Errorf("failed to register tool source: %w", err)
	}

	if cfg.TavilyAPIKey == "" {
		slog.Warn("TAVILY_API_KEY not set, web search will return canned results")
	}
	if cfg.PexelsAPIKey == "" {
		slog.Warn("PEXELS_API_KEY not set, image search will return placeholder URLs")
	}

	_ = os.MkdirAll(cfg.ContentDir, 0755)

	return registry, nil
}
