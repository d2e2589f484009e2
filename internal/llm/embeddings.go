package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storyforge/internal/apperr"
)

// EmbeddingsClient calls the embeddings API.
type EmbeddingsClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int
	client       *http.Client
}

// NewEmbeddingsClient creates an embeddings client. Every vector returned by
// EmbedTexts is validated against expectedSize, which must match the vector
// store collection dimension.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// EmbedTexts returns one vector per input text, in input order. Faults wrap
// apperr.ErrIndexBackend because embedding only happens on index paths.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, nil, "empty input array")
	}

	body, err := json.Marshal(embeddingsRequest{Model: c.Model, Input: texts})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, err, "failed to marshal request")
	}

	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, err, "failed to create request")
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, err, "failed to send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, apperr.Wrap(apperr.ErrIndexBackend, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw)), "embeddings request failed")
	}

	var embResp embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, err, "failed to decode response")
	}

	if len(embResp.Data) != len(texts) {
		return nil, apperr.Wrap(apperr.ErrIndexBackend, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embResp.Data)), "embedding count mismatch")
	}

	result := make([][]float32, len(embResp.Data))
	for i, data := range embResp.Data {
		if c.ExpectedSize > 0 && len(data.Embedding) != c.ExpectedSize {
			return nil, apperr.Wrap(apperr.ErrIndexBackend, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.ExpectedSize), "embedding size mismatch")
		}
		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[i] = vec
	}
	return result, nil
}
