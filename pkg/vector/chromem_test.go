package vector

import (
	"context"
	"testing"
)

func unit(dim, axis int) []float32 {
	v := make([]float32, dim)
	v[axis] = 1
	return v
}

func newTestProvider(t *testing.T, dir string) *ChromemProvider {
	t.Helper()

	p, err := NewChromemProvider(ChromemConfig{
		Dir:        dir,
		Collection: "test_posts",
		Dimension:  8,
	})
	if err != nil {
		t.Fatalf("NewChromemProvider() error = %v", err)
	}
	return p
}

func TestChromemProvider_RequiresDimension(t *testing.T) {
	if _, err := NewChromemProvider(ChromemConfig{}); err == nil {
		t.Error("NewChromemProvider() without dimension should fail")
	}
}

func TestChromemProvider_UpsertSearch(t *testing.T) {
	p := newTestProvider(t, "")
	ctx := context.Background()

	if err := p.Upsert(ctx, "a", unit(8, 0), "first post", map[string]string{"title": "first"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := p.Upsert(ctx, "b", unit(8, 1), "second post", map[string]string{"title": "second"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	results, err := p.Search(ctx, unit(8, 0), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d results, want 1", len(results))
	}
	if results[0].ID != "a" {
		t.Errorf("top result = %q, want a", results[0].ID)
	}
	if results[0].Content != "first post" {
		t.Errorf("Content = %q", results[0].Content)
	}
	if results[0].Metadata["title"] != "first" {
		t.Errorf("Metadata = %v", results[0].Metadata)
	}
}

func TestChromemProvider_SearchLimitClampedToCount(t *testing.T) {
	p := newTestProvider(t, "")
	ctx := context.Background()

	if err := p.Upsert(ctx, "a", unit(8, 0), "only post", nil); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	results, err := p.Search(ctx, unit(8, 0), 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Search() returned %d results, want 1", len(results))
	}
}

func TestChromemProvider_SearchEmpty(t *testing.T) {
	p := newTestProvider(t, "")

	results, err := p.Search(context.Background(), unit(8, 0), 5)
	if err != nil {
		t.Fatalf("Search() on empty index error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() on empty index = %d results, want 0", len(results))
	}
}

func TestChromemProvider_ListAndCount(t *testing.T) {
	p := newTestProvider(t, "")
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		if err := p.Upsert(ctx, id, unit(8, i), "post "+id, nil); err != nil {
			t.Fatalf("Upsert(%s) error = %v", id, err)
		}
	}

	count, err := p.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	all, err := p.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() = %d results, want 3", len(all))
	}
}

func TestChromemProvider_DeleteNotFound(t *testing.T) {
	p := newTestProvider(t, "")

	if err := p.Delete(context.Background(), "missing"); err != ErrNotFound {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestChromemProvider_Delete(t *testing.T) {
	p := newTestProvider(t, "")
	ctx := context.Background()

	if err := p.Upsert(ctx, "a", unit(8, 0), "post", nil); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := p.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	count, _ := p.Count(ctx)
	if count != 0 {
		t.Errorf("Count() after delete = %d, want 0", count)
	}
}

func TestChromemProvider_PersistAndReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	p := newTestProvider(t, dir)
	if err := p.Upsert(ctx, "a", unit(8, 0), "durable post", map[string]string{"title": "durable"}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reloaded := newTestProvider(t, dir)
	count, err := reloaded.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("Count() after reload = %d, want 1", count)
	}

	results, err := reloaded.Search(ctx, unit(8, 0), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Content != "durable post" {
		t.Errorf("reloaded results = %+v", results)
	}
}
