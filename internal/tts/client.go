// Package tts is a thin streaming client for an OpenAI-compatible
// /audio/speech endpoint.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client synthesizes speech from text.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	voice   string
	client  *http.Client
}

// NewClient creates a TTS client. baseURL is the provider's API root,
// e.g. "https://api.openai.com/v1".
func NewClient(baseURL, apiKey, model, voice string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		voice:   voice,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Synthesize returns a stream of raw audio bytes for the prompt. The
// caller must close the returned reader.
func (c *Client) Synthesize(ctx context.Context, prompt string) (io.ReadCloser, error) {
	body, err := json.Marshal(speechRequest{
		Model: c.model,
		Voice: c.voice,
		Input: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal speech request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech request returned %d: %s", resp.StatusCode, msg)
	}

	return resp.Body, nil
}
