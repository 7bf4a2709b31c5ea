package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-ai/inkwell/pkg/store"
)

const previewLimit = 500

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type blogRequest struct {
	Topic                  string `json:"topic"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

type blogResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	FileName       string `json:"file_name,omitempty"`
	ContentPreview string `json:"content_preview,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "Inkwell blog assistant API is running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Health check failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "healthy",
		Message: fmt.Sprintf("API is running. Database contains %d blog posts.", count),
	})
}

func (s *Server) handleGenerateBlog(w http.ResponseWriter, r *http.Request) {
	var req blogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "topic must not be empty")
		return
	}

	result, err := s.agent.GenerateBlogPost(r.Context(), req.Topic, req.AdditionalInstructions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Blog generation failed: %v", err))
		return
	}

	if result.FileName != "" {
		s.storeInBackground(req.Topic, result.Output, result.FileName)
	} else {
		slog.Warn("generation produced no file name, skipping persistence",
			"topic", req.Topic)
	}

	writeJSON(w, http.StatusOK, blogResponse{
		Success:        true,
		Message:        fmt.Sprintf("Blog post about '%s' generated successfully", req.Topic),
		FileName:       result.FileName,
		ContentPreview: preview(result.Output),
	})
}

// storeInBackground persists the generated post without blocking the
// response. Failures are logged, never surfaced to the caller.
func (s *Server) storeInBackground(topic, content, fileName string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.storeTimeout)
		defer cancel()

		id, err := s.store.Add(ctx, topic, content, fileName, topic)
		if err != nil {
			slog.Error("failed to store generated post",
				"topic", topic,
				"file_name", fileName,
				"error", err)
			return
		}
		slog.Info("stored generated post", "id", id, "file_name", fileName)
	}()
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	results, err := s.store.Search(r.Context(), query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Search failed: %v", err))
		return
	}
	if results == nil {
		results = []store.SearchResult{}
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.All(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve posts: %v", err))
		return
	}
	if posts == nil {
		posts = []store.StoredPost{}
	}

	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete post: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Post %s deleted successfully", id),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "message parameter is required")
		return
	}

	response, err := s.agent.Chat(r.Context(), message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Chat failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": response})
}

// preview truncates output to the first 500 characters, appending an
// ellipsis when anything was cut.
func preview(output string) string {
	runes := []rune(output)
	if len(runes) <= previewLimit {
		return output
	}
	return string(runes[:previewLimit]) + "..."
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
