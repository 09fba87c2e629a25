// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tombot/chat-therapy-tui/internal/prompt"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
	"github.com/tombot/chat-therapy-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar renders the bottom status line: reply mode, model name, turn
// count, and keyboard shortcuts.
type StatusBar struct {
	theme *styles.Theme
	width int

	mode      prompt.Mode
	modelName string
	turnCount int
	pending   bool
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		theme: theme,
		width: 80,
	}
}

// SetWidth updates the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetMode updates the displayed reply mode.
func (s *StatusBar) SetMode(mode prompt.Mode) {
	s.mode = mode
}

// SetModel updates the displayed model name.
func (s *StatusBar) SetModel(name string) {
	s.modelName = name
}

// SetTurnCount updates the displayed turn count.
func (s *StatusBar) SetTurnCount(n int) {
	s.turnCount = n
}

// SetPending marks whether a reply is in flight.
func (s *StatusBar) SetPending(pending bool) {
	s.pending = pending
}

// View renders the status bar.
func (s *StatusBar) View() string {
	if s.width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

func (s *StatusBar) viewNarrow() string {
	left := s.theme.ModeBadge.Render(s.mode.Label())
	if s.pending {
		left += " " + s.theme.ThinkingText.Render("thinking")
	}
	return s.theme.StatusBar.Width(s.width).Render(util.TruncateWidth(left, s.width-2))
}

func (s *StatusBar) viewWide() string {
	var parts []string

	parts = append(parts, s.theme.ModeBadge.Render(s.mode.Label()))

	if s.modelName != "" {
		parts = append(parts, s.theme.ShortcutDesc.Render(s.modelName))
	}

	if s.turnCount > 0 {
		parts = append(parts, s.theme.ShortcutDesc.Render(turnCountLabel(s.turnCount)))
	}

	if s.pending {
		parts = append(parts, s.theme.ThinkingText.Render("thinking..."))
	}

	left := strings.Join(parts, "  ")
	right := s.renderShortcuts()

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderShortcuts renders the keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"^T", "mode"},
		{"^N", "new"},
		{"^E", "export"},
		{"^C", "quit"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.key)+s.theme.ShortcutDesc.Render(" "+sc.desc))
	}
	return strings.Join(parts, "  ")
}

func turnCountLabel(n int) string {
	if n == 1 {
		return "1 turn"
	}
	return strconv.Itoa(n) + " turns"
}
