// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package groq provides the HTTP client for the Groq chat completions API
// (OpenAI-compatible).
package groq

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// Message is a single chat message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Options holds per-request sampling parameters.
type Options struct {
	// Temperature controls sampling randomness.
	Temperature float64

	// TopP is the nucleus sampling cutoff.
	TopP float64

	// MaxTokens caps completion length (max_completion_tokens upstream).
	MaxTokens int
}

// ChatRequest is the JSON body for POST /chat/completions.
type ChatRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	Temperature         float64   `json:"temperature,omitempty"`
	TopP                float64   `json:"top_p,omitempty"`
	MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
	Stream              bool      `json:"stream"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatResponse is the non-streaming completion response.
type ChatResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Choice is one completion alternative; Groq returns exactly one.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage reports token accounting for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Text returns the completion content, or "" when no choice came back.
func (r *ChatResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// apiError is the upstream error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// =============================================================================
// STREAMING TYPES
// =============================================================================

// StreamChunk is one decoded server-sent event from a streaming completion.
type StreamChunk struct {
	// Content is the delta text carried by this chunk (may be empty).
	Content string

	// Done is true on the terminal chunk.
	Done bool

	// FinishReason is set on the chunk that closes the choice.
	FinishReason string

	// Error is set when the stream failed; Done is true alongside it.
	Error error
}

// streamEvent is the wire format of a streamed completion chunk.
type streamEvent struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index int `json:"index"`
		Delta struct {
			Role    string `json:"role,omitempty"`
			Content string `json:"content,omitempty"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}
