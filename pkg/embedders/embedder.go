// Package embedders turns text into vectors for the similarity store.
package embedders

import "context"

// Embedder produces a fixed-dimension vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the vector size this embedder produces.
	Dimension() int

	// Name identifies the embedder ("openai", "local").
	Name() string
}

// Config selects and configures an embedder.
type Config struct {
	// OpenAIAPIKey enables the OpenAI embedder. When empty, the local
	// deterministic embedder is used so the store works without any optional
	// credential.
	OpenAIAPIKey string
	Model        string
	Host         string
}

// New picks an embedder by credential presence.
func New(cfg Config) (Embedder, error) {
	if cfg.OpenAIAPIKey != "" {
		return NewOpenAIEmbedder(OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.Model,
			Host:   cfg.Host,
		})
	}
	return NewLocalEmbedder(), nil
}
