// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Groq client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeAuth
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeRateLimited
	ErrTypeModelNotFound
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrMissingAPIKey = &ClientError{Type: ErrTypeAuth, Message: "GROQ_API_KEY is not set"}
	ErrUnauthorized  = &ClientError{Type: ErrTypeAuth, Message: "Groq rejected the API key"}
	ErrTimeout       = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrRateLimited   = &ClientError{Type: ErrTypeRateLimited, Message: "rate limit exceeded"}
	ErrModelNotFound = &ClientError{Type: ErrTypeModelNotFound, Message: "model not found"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Groq client.
type ClientConfig struct {
	// BaseURL is the API base URL (default: https://api.groq.com/openai/v1)
	BaseURL string

	// APIKey authenticates every request. Required.
	APIKey string

	// Model to use if none specified (default: "llama-3.1-8b-instant")
	Model string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// MaxRetries for transient failures (default: 2)
	MaxRetries int

	// RetryDelay between retries (default: 1s)
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration. The API key must
// still be supplied by the caller.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:    "https://api.groq.com/openai/v1",
		Model:      "llama-3.1-8b-instant",
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: 1 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Groq API. It is safe for concurrent
// use, though the session layer serializes calls per session anyway.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Groq client.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "https://api.groq.com/openai/v1"
	}
	if config.Model == "" {
		config.Model = "llama-3.1-8b-instant"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 2
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 1 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// CHAT OPERATIONS
// =============================================================================

// Chat sends a chat request and returns the complete response
// (non-streaming). The caller-supplied system message must be the first
// entry of messages.
func (c *Client) Chat(ctx context.Context, messages []Message, opts *Options) (*ChatResponse, error) {
	if c.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(c.buildRequest(messages, opts, false))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &ClientError{Type: ErrTypeConnection, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// buildRequest assembles the wire request for both modes.
func (c *Client) buildRequest(messages []Message, opts *Options, stream bool) ChatRequest {
	req := ChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   stream,
	}
	if opts != nil {
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxCompletionTokens = opts.MaxTokens
	}
	return req
}

// newRequest creates an authenticated POST to the completions endpoint.
func (c *Client) newRequest(ctx context.Context, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	return req, nil
}

// checkStatus maps non-2xx responses to typed errors, reading the upstream
// error envelope when one is present.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrModelNotFound
	}

	var upstream apiError
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err == nil && upstream.Error.Message != "" {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: upstream.Error.Message}
	}
	return &ClientError{Type: ErrTypeInvalidResponse, Message: "chat request failed: " + resp.Status}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeAuth
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsRateLimited checks if an error is a rate-limit error.
func IsRateLimited(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeRateLimited
	}
	return errors.Is(err, ErrRateLimited)
}
