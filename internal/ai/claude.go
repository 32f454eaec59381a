// Package ai talks to the Anthropic messages API and turns raw completions
// into validated class plans.
package ai

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

const (
	defaultBaseURL = "https://api.anthropic.com"
	defaultModel   = "claude-sonnet-4-5"
	apiVersion     = "2023-06-01"

	// DefaultMaxTokens caps the completion size. 1500 comfortably fits six
	// sections of three songs with reasons.
	DefaultMaxTokens = 1500

	// temperature keeps output varied but mostly format-stable.
	temperature = 0.7
)

// GenerationError wraps any failure from the generation service: network
// errors, bad credentials, rate limits. It aborts the run without retry.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generation service: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Client issues completion requests against the Anthropic messages API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient returns a Client for the given API key. An empty baseURL selects
// the production endpoint; tests point it at a local server.
func NewClient(apiKey, baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		model:     defaultModel,
		maxTokens: DefaultMaxTokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// SetModel overrides the default model identifier.
func (c *Client) SetModel(model string) {
	if model != "" {
		c.model = model
	}
}

// SetMaxTokens overrides the completion size cap.
func (c *Client) SetMaxTokens(maxTokens int) {
	if maxTokens > 0 {
		c.maxTokens = maxTokens
	}
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends one synchronous completion request and returns the raw text
// of the reply. There is no retry and no streaming; failures surface as a
// *GenerationError.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	payload := messageRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
		System:      system,
		Messages: []message{
			{Role: "user", Content: user},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(buf))
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var data messageResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &GenerationError{Err: err}
	}
	for _, block := range data.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", &GenerationError{Err: fmt.Errorf("empty completion")}
}
