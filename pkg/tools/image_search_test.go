package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestImageSearchTool_FallbackWithoutKey(t *testing.T) {
	tool := NewImageSearchTool(ImageSearchConfig{})

	first, err := tool.Execute(context.Background(), map[string]interface{}{
		"topic": "mountains",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !first.Success {
		t.Fatalf("fallback should succeed: %s", first.Error)
	}
	if !strings.HasPrefix(first.Content, "https://picsum.photos/") {
		t.Errorf("fallback URL = %q, want picsum placeholder", first.Content)
	}

	second, _ := tool.Execute(context.Background(), map[string]interface{}{
		"topic": "mountains",
	})
	if first.Content != second.Content {
		t.Error("same topic must map to the same fallback URL")
	}

	other, _ := tool.Execute(context.Background(), map[string]interface{}{
		"topic": "oceans",
	})
	if other.Content == first.Content {
		t.Log("different topics collided on the same fallback URL (hash modulo allows it)")
	}
}

func TestImageSearchTool_EmptyTopic(t *testing.T) {
	tool := NewImageSearchTool(ImageSearchConfig{})

	result, err := tool.Execute(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Success {
		t.Error("missing topic should be rejected")
	}
}

func TestImageSearchTool_RemoteResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "px-test" {
			t.Errorf("Authorization = %q, want px-test", got)
		}
		if got := r.URL.Query().Get("query"); got != "mountains" {
			t.Errorf("query = %q, want mountains", got)
		}
		_, _ = w.Write([]byte(`{"photos":[{"src":{"large":"https://images.pexels.com/photo.jpg"}}]}`))
	}))
	defer server.Close()

	tool := NewImageSearchTool(ImageSearchConfig{APIKey: "px-test", Host: server.URL})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"topic": "mountains",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Content != "https://images.pexels.com/photo.jpg" {
		t.Errorf("Content = %q, want pexels URL", result.Content)
	}
}

func TestImageSearchTool_NoPhotosFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"photos":[]}`))
	}))
	defer server.Close()

	tool := NewImageSearchTool(ImageSearchConfig{APIKey: "px-test", Host: server.URL})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"topic": "mountains",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Content != FallbackImageURL("mountains") {
		t.Errorf("Content = %q, want deterministic fallback URL", result.Content)
	}
}
