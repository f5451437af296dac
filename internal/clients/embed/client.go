// Package embed calls an OpenAI-compatible embeddings endpoint. The model
// is configured once at startup and shared read-only by every request.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/edulearn/edulearn-backend/internal/config"
	"github.com/edulearn/edulearn-backend/internal/logger"
)

type Client interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient builds the embedding client. A missing API key is reported per
// call so semantic ranking can degrade instead of blocking startup.
func NewClient(log *logger.Logger, cfg config.EmbedConfig, apiKey string) Client {
	log = log.With("client", "Embed")
	if apiKey == "" {
		log.Warn("Embedding API key not set, semantic ranking will degrade", "env", cfg.APIKeyEnv)
	}
	return &client{
		log:        log,
		baseURL:    cfg.BaseURL,
		apiKey:     apiKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// Embed returns one vector per input, in input order. Each call is a single
// attempt; failures surface to the caller, who degrades to a fallback.
func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("embedding API key not configured")
	}
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(embeddingsRequest{Model: c.model, Input: inputs}); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embeddings http %d: %s", resp.StatusCode, string(raw))
	}
	var parsed embeddingsResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("embeddings decode: %w", err)
	}
	if len(parsed.Data) != len(inputs) {
		return nil, fmt.Errorf("embeddings count mismatch: want %d got %d", len(inputs), len(parsed.Data))
	}
	out := make([][]float32, len(inputs))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embeddings index out of range: %d", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}
