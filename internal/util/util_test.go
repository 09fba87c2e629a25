// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"multibyte preserved", "日本語のテキスト", 5, "日本..."},
		{"tiny max", "hello", 2, "he"},
		{"zero max", "hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateRunes(tt.input, tt.max))
		})
	}
}

func TestTruncateWidth_CountsDoubleWidth(t *testing.T) {
	// Each CJK character occupies two columns.
	assert.Equal(t, 6, StringWidth("日本語"))
	assert.Equal(t, "hello", TruncateWidth("hello", 10))
	assert.LessOrEqual(t, StringWidth(TruncateWidth("日本語のテキスト", 8)), 8)
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}

func TestRuneLen(t *testing.T) {
	assert.Equal(t, 5, RuneLen("hello"))
	assert.Equal(t, 3, RuneLen("日本語"))
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	require.NoError(t, AtomicWriteFile(path, []byte("first"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// Overwrite leaves no temp files behind.
	require.NoError(t, AtomicWriteFile(path, []byte("second"), 0600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
