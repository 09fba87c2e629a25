// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

func TestTurnBubble_RendersBothRoles(t *testing.T) {
	theme := testTheme()

	user := NewTurnBubble(model.NewUserTurn("hello there"), theme)
	assert.Contains(t, user.View(), "hello there")
	assert.Contains(t, user.View(), "You")

	assistant := NewTurnBubble(model.NewAssistantTurn("hi, how are you feeling?", model.CategoryProbe), theme)
	assert.Contains(t, assistant.View(), "how are you feeling?")
	assert.Contains(t, assistant.View(), "Assistant")
}

func TestTurnBubble_NilTurn(t *testing.T) {
	assert.Empty(t, NewTurnBubble(nil, testTheme()).View())
}

func TestTurnList_RendersAllTurns(t *testing.T) {
	list := NewTurnList(testTheme())
	list.SetTurns([]*model.Turn{
		model.NewUserTurn("first"),
		model.NewAssistantTurn("second", model.CategoryNone),
		model.NewUserTurn("third"),
	})

	view := list.View()
	assert.Contains(t, view, "first")
	assert.Contains(t, view, "second")
	assert.Contains(t, view, "third")
}

func TestTurnList_Empty(t *testing.T) {
	assert.Empty(t, NewTurnList(testTheme()).View())
}

func TestCrisisBanner_VisibilityAndMessage(t *testing.T) {
	banner := NewCrisisBanner(testTheme())
	banner.SetWidth(120)

	assert.Empty(t, banner.View())
	assert.Zero(t, banner.Height())

	banner.Show()
	require.True(t, banner.Visible())
	assert.Contains(t, banner.View(), "988")
	assert.Positive(t, banner.Height())

	banner.Hide()
	assert.Empty(t, banner.View())
}

func TestStatusBar_ShowsModeAndShortcuts(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(120)
	bar.SetModel("llama-3.1-8b-instant")
	bar.SetTurnCount(4)

	view := bar.View()
	assert.Contains(t, view, "Therapist (concise)")
	assert.Contains(t, view, "llama-3.1-8b-instant")
	assert.Contains(t, view, "4 turns")
	assert.Contains(t, view, "mode")
}

func TestStatusBar_NarrowFallback(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.SetWidth(40)
	bar.SetPending(true)

	view := bar.View()
	assert.Contains(t, view, "thinking")
}

func TestWelcome_ListsKeybindings(t *testing.T) {
	w := NewWelcome(testTheme())
	w.SetSize(100, 40)
	w.SetModel("llama-3.1-8b-instant")

	view := w.View()
	assert.Contains(t, view, "ctrl+t")
	assert.Contains(t, view, "ctrl+e")
	assert.Contains(t, view, "llama-3.1-8b-instant")
	assert.Contains(t, view, "Not a substitute")
}

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("one two three four five six seven", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, "short", wordWrap("short", 40))
}
