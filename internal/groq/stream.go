// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package groq

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// =============================================================================
// STREAMING CHAT
// =============================================================================

// StreamCallback is called for each chunk received during streaming.
type StreamCallback func(chunk StreamChunk)

// ChatStream sends a streaming chat request and calls the callback for each
// chunk, in arrival order. The concatenation of all chunk Content values
// equals the non-streaming response content for the same inputs. Returns
// when streaming completes or an error occurs.
func (c *Client) ChatStream(ctx context.Context, messages []Message, opts *Options, callback StreamCallback) error {
	if c.config.APIKey == "" {
		return ErrMissingAPIKey
	}

	body, err := json.Marshal(c.buildRequest(messages, opts, true))
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := c.newRequest(ctx, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout for streaming; cancellation comes from the context.
	streamClient := &http.Client{}

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "stream request failed", Cause: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	reader := NewStreamReader(resp.Body)
	return reader.Process(ctx, callback)
}

// ChatStreamChan sends a streaming chat request and returns a channel of
// chunks. The channel is closed when streaming completes; errors are
// delivered as chunks with the Error field set.
func (c *Client) ChatStreamChan(ctx context.Context, messages []Message, opts *Options) <-chan StreamChunk {
	ch := make(chan StreamChunk)

	go func() {
		defer close(ch)

		err := c.ChatStream(ctx, messages, opts, func(chunk StreamChunk) {
			select {
			case ch <- chunk:
			case <-ctx.Done():
			}
		})

		if err != nil {
			select {
			case ch <- StreamChunk{Error: err, Done: true}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// =============================================================================
// STREAM READER
// =============================================================================

// StreamReader parses the text/event-stream framing of a streaming
// completion: one "data: {json}" line per chunk, terminated by
// "data: [DONE]".
type StreamReader struct {
	reader *bufio.Reader

	// PERFORMANCE: strings.Builder avoids quadratic allocations
	accumulator strings.Builder
}

// NewStreamReader creates a new stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{reader: bufio.NewReader(r)}
}

// Process reads the stream and calls the callback for each chunk. Blocks
// until the stream is complete or the context is cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			chunk, err := s.readChunk()
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}

			if chunk != nil {
				callback(*chunk)
				if chunk.Done {
					return nil
				}
			}
		}
	}
}

// readChunk reads and parses a single SSE line from the stream.
func (s *StreamReader) readChunk() (*StreamChunk, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) == "" {
			return nil, io.EOF
		}
		if strings.TrimSpace(line) == "" {
			return nil, err
		}
	}

	line = strings.TrimSpace(line)

	// Skip keep-alive blanks and comment lines
	if line == "" || strings.HasPrefix(line, ":") {
		return nil, nil
	}

	data, ok := strings.CutPrefix(line, "data:")
	if !ok {
		return nil, nil
	}
	data = strings.TrimSpace(data)

	if data == "[DONE]" {
		return &StreamChunk{Done: true}, nil
	}

	var event streamEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		// Skip malformed lines
		return nil, nil
	}

	chunk := &StreamChunk{}
	if len(event.Choices) > 0 {
		chunk.Content = event.Choices[0].Delta.Content
		chunk.FinishReason = event.Choices[0].FinishReason
	}

	if chunk.Content != "" {
		s.accumulator.WriteString(chunk.Content)
	}

	return chunk, nil
}

// Accumulated returns all content received so far.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// =============================================================================
// STREAM ACCUMULATOR
// =============================================================================

// StreamAccumulator collects streaming chunks into the final reply text.
// Classification happens only on the completed string, never on a partial
// prefix.
type StreamAccumulator struct {
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	content strings.Builder
	done    bool
	err     error
}

// NewStreamAccumulator creates a new accumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{}
}

// Add processes a new chunk.
func (a *StreamAccumulator) Add(chunk StreamChunk) {
	if chunk.Error != nil {
		a.err = chunk.Error
		a.done = true
		return
	}

	a.content.WriteString(chunk.Content)

	if chunk.Done {
		a.done = true
	}
}

// Content returns the accumulated content.
func (a *StreamAccumulator) Content() string {
	return a.content.String()
}

// IsDone returns whether streaming is complete.
func (a *StreamAccumulator) IsDone() bool {
	return a.done
}

// Err returns any error that occurred.
func (a *StreamAccumulator) Err() error {
	return a.err
}
