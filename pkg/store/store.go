// Package store persists generated blog posts in a similarity index so they
// can be searched, listed, and deleted after generation.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-ai/inkwell/pkg/embedders"
	"github.com/inkwell-ai/inkwell/pkg/vector"
)

// ErrNotFound reports an operation on a post id the store does not hold.
var ErrNotFound = errors.New("post not found")

// StoredPost is one persisted blog post.
type StoredPost struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	FileName  string            `json:"file_name,omitempty"`
	CreatedAt string            `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// SearchResult is one similarity hit. Distance is 1 - similarity and is only
// set when the index reports a score.
type SearchResult struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Distance *float64          `json:"distance,omitempty"`
}

// PostStore embeds post content and keeps it in a vector index.
type PostStore struct {
	embedder embedders.Embedder
	index    vector.Provider

	now func() time.Time
}

func NewPostStore(embedder embedders.Embedder, index vector.Provider) *PostStore {
	return &PostStore{
		embedder: embedder,
		index:    index,
		now:      time.Now,
	}
}

// Add embeds the post content and upserts it under a fresh id, which is
// returned.
func (s *PostStore) Add(ctx context.Context, title, content, fileName, topic string) (string, error) {
	if content == "" {
		return "", errors.New("post content must not be empty")
	}

	vec, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return "", fmt.Errorf("failed to embed post: %w", err)
	}

	id := uuid.NewString()
	metadata := map[string]string{
		"title":      title,
		"created_at": s.now().UTC().Format(time.RFC3339),
	}
	if fileName != "" {
		metadata["file_name"] = fileName
	}
	if topic != "" {
		metadata["topic"] = topic
	}

	if err := s.index.Upsert(ctx, id, vec, content, metadata); err != nil {
		return "", fmt.Errorf("failed to store post: %w", err)
	}

	return id, nil
}

// Search embeds the query and returns the topK most similar posts.
func (s *PostStore) Search(ctx context.Context, query string, topK int) ([]SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		distance := 1 - float64(h.Score)
		results = append(results, SearchResult{
			Content:  h.Content,
			Metadata: h.Metadata,
			Distance: &distance,
		})
	}

	return results, nil
}

// All returns every stored post.
func (s *PostStore) All(ctx context.Context) ([]StoredPost, error) {
	docs, err := s.index.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]StoredPost, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, postFromResult(d))
	}

	return posts, nil
}

// Delete removes one post. Returns ErrNotFound for unknown ids.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	err := s.index.Delete(ctx, id)
	if errors.Is(err, vector.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// Count returns the number of stored posts.
func (s *PostStore) Count(ctx context.Context) (int, error) {
	return s.index.Count(ctx)
}

func postFromResult(r vector.Result) StoredPost {
	post := StoredPost{
		ID:      r.ID,
		Content: r.Content,
	}
	if len(r.Metadata) == 0 {
		return post
	}

	post.Title = r.Metadata["title"]
	post.FileName = r.Metadata["file_name"]
	post.CreatedAt = r.Metadata["created_at"]

	extra := make(map[string]string)
	for k, v := range r.Metadata {
		switch k {
		case "title", "file_name", "created_at":
		default:
			extra[k] = v
		}
	}
	if len(extra) > 0 {
		post.Metadata = extra
	}

	return post
}
