// Package llm provides clients for the OpenAI-compatible completion and
// embedding HTTP APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"storyforge/internal/apperr"
)

// Client calls the chat completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	client  *http.Client
}

// NewClient creates a completion client. timeout bounds each Complete call;
// zero means no deadline beyond the caller's context.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Timeout: timeout,
		client:  http.DefaultClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends prompt to the model and returns its reply. A deadline
// overrun surfaces as apperr.ErrModelTimeout; any other transport or API
// fault wraps apperr.ErrGeneration.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	payload := chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrGeneration, err, "failed to marshal request")
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperr.Wrap(apperr.ErrGeneration, err, "failed to create request")
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("completion request: %w", apperr.ErrModelTimeout)
		}
		return "", apperr.Wrap(apperr.ErrGeneration, err, "failed to send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", apperr.Wrap(apperr.ErrGeneration, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw)), "completion request failed")
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("completion response: %w", apperr.ErrModelTimeout)
		}
		return "", apperr.Wrap(apperr.ErrGeneration, err, "failed to decode response")
	}

	if len(chatResp.Choices) == 0 {
		return "", apperr.Wrap(apperr.ErrGeneration, nil, "no choices returned")
	}
	return chatResp.Choices[0].Message.Content, nil
}
