package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edulearn/edulearn-backend/internal/config"
	"github.com/edulearn/edulearn-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	return NewClient(testLogger(t), config.EmbedConfig{
		BaseURL:     baseURL,
		Model:       "test-embed",
		TimeoutSecs: 5,
	}, "test-key")
}

func TestEmbedOrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		// Return vectors out of order; the client must reorder by index.
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0, 1}},
				{"index": 0, "embedding": []float32{1, 0}},
			},
		})
	}))
	defer srv.Close()

	vecs, err := newTestClient(t, srv.URL).Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 || vecs[0][0] != 1 || vecs[1][1] != 1 {
		t.Fatalf("vectors misordered: %v", vecs)
	}
}

func TestEmbedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := newTestClient(t, srv.URL).Embed(context.Background(), []string{"a"}); err == nil {
		t.Fatalf("expected error on 429")
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	vecs, err := newTestClient(t, "http://unused").Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("Embed(nil): %v", err)
	}
	if len(vecs) != 0 {
		t.Fatalf("vectors = %v, want empty", vecs)
	}
}

func TestEmbedWithoutKeyErrors(t *testing.T) {
	c := NewClient(testLogger(t), config.EmbedConfig{BaseURL: "x", APIKeyEnv: "OPENAI_API_KEY"}, "")
	if _, err := c.Embed(context.Background(), []string{"hi"}); err == nil {
		t.Fatalf("expected error without API key")
	}
}
