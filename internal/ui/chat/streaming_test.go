// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamingBuffer_WriteDrain(t *testing.T) {
	sb := NewStreamingBuffer()

	_, ok := sb.Drain()
	assert.False(t, ok, "empty buffer has nothing to drain")

	sb.Write("hello ")
	sb.Write("world")

	content, ok := sb.Drain()
	require.True(t, ok)
	assert.Equal(t, "hello world", content)

	_, ok = sb.Drain()
	assert.False(t, ok, "drain resets the buffer")
}

func TestStreamingBuffer_Reset(t *testing.T) {
	sb := NewStreamingBuffer()
	sb.Write("discarded")
	sb.Reset()

	_, ok := sb.Drain()
	assert.False(t, ok)
}

func TestStreamingBuffer_ConcurrentWrites(t *testing.T) {
	sb := NewStreamingBuffer()

	const writers = 8
	const perWriter = 100

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				sb.Write("x")
			}
		}()
	}
	wg.Wait()

	content, ok := sb.Drain()
	require.True(t, ok)
	assert.Len(t, content, writers*perWriter, "no writes lost under concurrency (got %s)", strconv.Itoa(len(content)))
}

func TestStreamingBuffer_OrderPreservedSingleWriter(t *testing.T) {
	sb := NewStreamingBuffer()
	for i := 0; i < 10; i++ {
		sb.Write(strconv.Itoa(i))
	}

	content, ok := sb.Drain()
	require.True(t, ok)
	assert.Equal(t, "0123456789", content)
}
