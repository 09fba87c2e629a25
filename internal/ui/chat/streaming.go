// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

// StreamingBuffer collects reply fragments arriving from the completion
// goroutine so the render loop can drain them at a capped frame rate instead
// of repainting per token.
//
// Thread-safety: writes happen in the streaming goroutine, drains in the main
// Bubble Tea loop, so every operation takes the mutex.
type StreamingBuffer struct {
	mu     sync.Mutex
	buffer strings.Builder
}

// NewStreamingBuffer creates an empty streaming buffer.
func NewStreamingBuffer() *StreamingBuffer {
	return &StreamingBuffer{}
}

// Write appends a fragment to the buffer.
func (sb *StreamingBuffer) Write(fragment string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.buffer.WriteString(fragment)
}

// Drain returns everything buffered since the last drain and resets the
// buffer. Returns ("", false) when nothing arrived.
func (sb *StreamingBuffer) Drain() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buffer.Len() == 0 {
		return "", false
	}

	content := sb.buffer.String()
	sb.buffer.Reset()
	return content, true
}

// Reset discards any buffered content.
func (sb *StreamingBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.buffer.Reset()
}

// =============================================================================
// STREAMING TICK COMMAND
// =============================================================================

// streamTickInterval caps streaming repaints at roughly 30fps.
const streamTickInterval = 33 * time.Millisecond

// streamTickCmd schedules the next streaming drain tick.
func streamTickCmd() tea.Cmd {
	return tea.Tick(streamTickInterval, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
