package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storyforge/internal/apperr"
)

func embeddingsServer(t *testing.T, vectors [][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		data := make([]map[string]any, len(vectors))
		for i, v := range vectors {
			data[i] = map[string]any{"embedding": v}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func TestEmbedTexts(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "m", 3)
	vecs, err := client.EmbedTexts(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("EmbedTexts() error: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
	if vecs[0][1] != float32(0.2) {
		t.Errorf("vecs[0][1] = %f, want 0.2", vecs[0][1])
	}
}

func TestEmbedTextsSizeMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "m", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"one"}); !errors.Is(err, apperr.ErrIndexBackend) {
		t.Fatalf("expected ErrIndexBackend, got %v", err)
	}
}

func TestEmbedTextsCountMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2, 0.3}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "m", 3)
	if _, err := client.EmbedTexts(context.Background(), []string{"one", "two"}); !errors.Is(err, apperr.ErrIndexBackend) {
		t.Fatalf("expected ErrIndexBackend, got %v", err)
	}
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://unused", "k", "m", 3)
	if _, err := client.EmbedTexts(context.Background(), nil); !errors.Is(err, apperr.ErrIndexBackend) {
		t.Fatalf("expected ErrIndexBackend, got %v", err)
	}
}
