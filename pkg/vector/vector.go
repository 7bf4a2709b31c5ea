// Package vector is the similarity index behind the post store.
package vector

import "context"

// Result is one similarity search hit. Score is cosine similarity in [0, 1].
type Result struct {
	ID       string
	Score    float32
	Content  string
	Metadata map[string]string
}

// Provider is an embedded vector index over a single collection of documents
// with pre-computed embeddings.
type Provider interface {
	Upsert(ctx context.Context, id string, vector []float32, content string, metadata map[string]string) error

	// Search returns up to topK documents ranked by similarity to the query
	// vector.
	Search(ctx context.Context, vector []float32, topK int) ([]Result, error)

	// List returns every stored document in unspecified order.
	List(ctx context.Context) ([]Result, error)

	// Delete removes one document. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)

	// Close flushes state to disk.
	Close() error
}
