// Package openai is a minimal chat-completions client. The responder treats it
// as an optional accelerator: any failure here falls back to local generation.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrUpstream = errors.New("upstream generation unavailable")

type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool { return c != nil && c.APIKey != "" }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionReq struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type completionResp struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

// Complete sends the system preamble and user message, returning the reply
// text. Every failure mode maps to ErrUpstream so callers need one check.
func (c *Client) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	body, _ := json.Marshal(completionReq{
		Model: c.Model,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out completionResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUpstream)
	}
	return out.Choices[0].Message.Content, nil
}
