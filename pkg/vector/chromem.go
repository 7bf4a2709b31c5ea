package vector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"
)

// ErrNotFound reports a delete of an id the index does not hold.
var ErrNotFound = errors.New("document not found")

// ChromemProvider implements Provider using chromem-go for embedded vector
// storage: pure Go, no external service, optional gob file persistence.
// Embeddings are computed externally by the embedders package; the index
// only stores and compares them.
type ChromemProvider struct {
	db          *chromem.DB
	persistPath string
	compress    bool
	dimension   int
	mu          sync.Mutex

	collection *chromem.Collection
}

// ChromemConfig configures the chromem provider.
type ChromemConfig struct {
	// Dir for file persistence. If empty, vectors live in memory only.
	Dir string

	// Collection name inside the database.
	Collection string

	// Dimension of the stored vectors. Needed to synthesize a probe vector
	// for List, which chromem has no native call for.
	Dimension int

	// Compress enables gzip compression for persistence.
	Compress bool
}

func NewChromemProvider(cfg ChromemConfig) (*ChromemProvider, error) {
	if cfg.Collection == "" {
		cfg.Collection = "blog_posts"
	}
	if cfg.Dimension <= 0 {
		return nil, fmt.Errorf("vector dimension must be positive, got %d", cfg.Dimension)
	}

	var db *chromem.DB

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create persist directory: %w", err)
		}

		db = chromem.NewDB()

		dbPath := dbFilePath(cfg.Dir, cfg.Compress)
		if _, statErr := os.Stat(dbPath); statErr == nil {
			if err := db.ImportFromFile(dbPath, ""); err != nil {
				slog.Warn("failed to load existing vector database, starting empty",
					"path", dbPath,
					"error", err)
				db = chromem.NewDB()
			} else {
				slog.Info("loaded vector database from file", "path", dbPath)
			}
		} else {
			slog.Info("created new vector database", "path", dbPath)
		}
	} else {
		db = chromem.NewDB()
		slog.Info("created in-memory vector database (no persistence)")
	}

	// Embeddings are always pre-computed; this func must never run.
	identityEmbed := func(ctx context.Context, text string) ([]float32, error) {
		return nil, fmt.Errorf("embedding function called but vectors should be pre-computed")
	}

	collection, err := db.GetOrCreateCollection(cfg.Collection, nil, identityEmbed)
	if err != nil {
		return nil, fmt.Errorf("failed to get/create collection %q: %w", cfg.Collection, err)
	}

	return &ChromemProvider{
		db:          db,
		persistPath: cfg.Dir,
		compress:    cfg.Compress,
		dimension:   cfg.Dimension,
		collection:  collection,
	}, nil
}

func (p *ChromemProvider) Upsert(ctx context.Context, id string, vector []float32, content string, metadata map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	doc := chromem.Document{
		ID:        id,
		Content:   content,
		Metadata:  metadata,
		Embedding: vector,
	}

	if err := p.collection.AddDocuments(ctx, []chromem.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	if err := p.persist(); err != nil {
		slog.Warn("failed to persist after upsert", "error", err)
	}

	return nil
}

func (p *ChromemProvider) Search(ctx context.Context, vector []float32, topK int) ([]Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := p.collection.Count()
	if count == 0 || topK <= 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := p.collection.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		out = append(out, Result{
			ID:       r.ID,
			Score:    r.Similarity,
			Content:  r.Content,
			Metadata: r.Metadata,
		})
	}

	return out, nil
}

// List queries with a unit probe vector and topK equal to the collection
// size; chromem has no native listing call.
func (p *ChromemProvider) List(ctx context.Context) ([]Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := p.collection.Count()
	if count == 0 {
		return nil, nil
	}

	probe := make([]float32, p.dimension)
	probe[0] = 1

	results, err := p.collection.QueryEmbedding(ctx, probe, count, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}

	out := make([]Result, 0, len(results))
	for _, r := range results {
		out = append(out, Result{
			ID:       r.ID,
			Content:  r.Content,
			Metadata: r.Metadata,
		})
	}

	return out, nil
}

func (p *ChromemProvider) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.collection.GetByID(ctx, id); err != nil {
		return ErrNotFound
	}

	if err := p.collection.Delete(ctx, nil, nil, id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := p.persist(); err != nil {
		slog.Warn("failed to persist after delete", "error", err)
	}

	return nil
}

func (p *ChromemProvider) Count(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.collection.Count(), nil
}

// Close persists the database and releases resources.
func (p *ChromemProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.persist()
}

func (p *ChromemProvider) persist() error {
	if p.persistPath == "" {
		return nil
	}

	dbPath := dbFilePath(p.persistPath, p.compress)

	if err := p.db.ExportToFile(dbPath, p.compress, ""); err != nil {
		return fmt.Errorf("failed to persist database: %w", err)
	}

	return nil
}

func dbFilePath(dir string, compress bool) string {
	path := filepath.Join(dir, "vectors.gob")
	if compress {
		path += ".gz"
	}
	return path
}

var _ Provider = (*ChromemProvider)(nil)
