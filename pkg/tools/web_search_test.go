package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebSearchTool_FallbackWithoutKey(t *testing.T) {
	tool := NewWebSearchTool(WebSearchConfig{})

	first, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "go concurrency",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !first.Success {
		t.Fatalf("fallback should succeed: %s", first.Error)
	}
	if !strings.Contains(first.Content, "go concurrency") {
		t.Errorf("fallback content should be derived from the query, got %q", first.Content)
	}

	// Deterministic: same query, same canned text.
	second, _ := tool.Execute(context.Background(), map[string]interface{}{
		"query": "go concurrency",
	})
	if first.Content != second.Content {
		t.Error("fallback content should be deterministic for a given query")
	}
}

func TestWebSearchTool_EmptyQuery(t *testing.T) {
	tool := NewWebSearchTool(WebSearchConfig{})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "  ",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Success {
		t.Error("empty query should be rejected")
	}
}

func TestWebSearchTool_RemoteResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[
			{"title":"Go blog","url":"https://go.dev","content":"goroutines explained"},
			{"title":"Other","url":"https://x","content":"more detail"}
		]}`))
	}))
	defer server.Close()

	tool := NewWebSearchTool(WebSearchConfig{APIKey: "tvly-test", Host: server.URL})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "goroutines",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Execute() failed: %s", result.Error)
	}
	if !strings.Contains(result.Content, "- Go blog: goroutines explained") {
		t.Errorf("Content = %q, want formatted result lines", result.Content)
	}
	if result.Metadata["source"] != "tavily" {
		t.Errorf("source = %v, want tavily", result.Metadata["source"])
	}
}

func TestWebSearchTool_RemoteFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tool := NewWebSearchTool(WebSearchConfig{APIKey: "tvly-test", Host: server.URL})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "goroutines",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v, failures must not escape the tool", err)
	}
	if !result.Success {
		t.Fatalf("Execute() should degrade to the fallback: %s", result.Error)
	}
	if result.Metadata["source"] != "fallback" {
		t.Errorf("source = %v, want fallback", result.Metadata["source"])
	}
}
