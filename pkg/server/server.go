// Package server exposes the blog assistant over HTTP: a chi router in
// front of the agent and the post store, with logging, metrics, recovery
// and CORS middleware.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-ai/inkwell/pkg/agent"
	"github.com/inkwell-ai/inkwell/pkg/store"
)

// BlogAgent is the slice of the agent the server needs.
type BlogAgent interface {
	GenerateBlogPost(ctx context.Context, topic, extraInstructions string) (*agent.Result, error)
	Chat(ctx context.Context, message string) (string, error)
}

// PostStore is the slice of the store the server needs.
type PostStore interface {
	Add(ctx context.Context, title, content, fileName, topic string) (string, error)
	Search(ctx context.Context, query string, topK int) ([]store.SearchResult, error)
	All(ctx context.Context) ([]store.StoredPost, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Config for the HTTP server.
type Config struct {
	// Addr to listen on, e.g. ":8000".
	Addr string

	// StoreTimeout bounds the background store write after a generation.
	// Defaults to 30s.
	StoreTimeout time.Duration
}

// Server wires the handlers, middleware and metrics onto one listener.
type Server struct {
	agent        BlogAgent
	store        PostStore
	metrics      *metrics
	router       chi.Router
	httpServer   *http.Server
	storeTimeout time.Duration
}

func New(blogAgent BlogAgent, posts PostStore, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 30 * time.Second
	}

	s := &Server{
		agent:        blogAgent,
		store:        posts,
		metrics:      newMetrics(),
		storeTimeout: cfg.StoreTimeout,
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestLogging)
	r.Use(s.metrics.middleware)
	r.Use(recovery)
	r.Use(cors)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/generate-blog", s.handleGenerateBlog)
	r.Get("/search", s.handleSearch)
	r.Get("/posts", s.handlePosts)
	r.Delete("/posts/{id}", s.handleDeletePost)
	r.Post("/chat", s.handleChat)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	return r
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	slog.Info("http server listening", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
