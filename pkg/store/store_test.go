package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inkwell-ai/inkwell/pkg/embedders"
	"github.com/inkwell-ai/inkwell/pkg/vector"
)

func newTestStore(t *testing.T) *PostStore {
	t.Helper()

	embedder := embedders.NewLocalEmbedder()
	index, err := vector.NewChromemProvider(vector.ChromemConfig{
		Collection: "test_posts",
		Dimension:  embedder.Dimension(),
	})
	if err != nil {
		t.Fatalf("NewChromemProvider() error = %v", err)
	}

	s := NewPostStore(embedder, index)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestPostStore_AddAndAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, "Go Concurrency", "Goroutines and channels make concurrency simple.", "go-concurrency.mdx", "go concurrency")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if id == "" {
		t.Fatal("Add() returned empty id")
	}

	posts, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("All() = %d posts, want 1", len(posts))
	}

	post := posts[0]
	if post.ID != id {
		t.Errorf("ID = %q, want %q", post.ID, id)
	}
	if post.Title != "Go Concurrency" {
		t.Errorf("Title = %q", post.Title)
	}
	if post.FileName != "go-concurrency.mdx" {
		t.Errorf("FileName = %q", post.FileName)
	}
	if post.CreatedAt != "2025-06-01T12:00:00Z" {
		t.Errorf("CreatedAt = %q", post.CreatedAt)
	}
	if post.Metadata["topic"] != "go concurrency" {
		t.Errorf("Metadata = %v", post.Metadata)
	}
}

func TestPostStore_AddRejectsEmptyContent(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add(context.Background(), "title", "", "", ""); err == nil {
		t.Error("Add() with empty content should fail")
	}
}

func TestPostStore_Search(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Add(ctx, "Go Concurrency", "Goroutines and channels make Go concurrency simple and safe.", "", ""); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := s.Add(ctx, "Sourdough", "Feeding a sourdough starter takes flour, water, and patience.", "", ""); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	results, err := s.Search(ctx, "concurrency with goroutines in Go", 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() = %d results, want 1", len(results))
	}
	if results[0].Metadata["title"] != "Go Concurrency" {
		t.Errorf("top result title = %q, want Go Concurrency", results[0].Metadata["title"])
	}
	if results[0].Distance == nil {
		t.Fatal("Distance should be set")
	}
	if *results[0].Distance < 0 || *results[0].Distance > 2 {
		t.Errorf("Distance = %v, out of range", *results[0].Distance)
	}
}

func TestPostStore_SearchDefaultLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, topic := range []string{"alpha", "beta", "gamma"} {
		if _, err := s.Add(ctx, topic, "post about "+topic, "", topic); err != nil {
			t.Fatalf("Add(%s) error = %v", topic, err)
		}
	}

	results, err := s.Search(ctx, "post", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Search() with zero limit = %d results, want 3", len(results))
	}
}

func TestPostStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Add(ctx, "title", "some content", "", "")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() after delete = %d, want 0", count)
	}
}

func TestPostStore_DeleteNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.Delete(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
