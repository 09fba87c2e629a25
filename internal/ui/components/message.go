// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the tombot TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
	"github.com/tombot/chat-therapy-tui/internal/util"
)

// =============================================================================
// TURN BUBBLE COMPONENT
// =============================================================================

// TurnBubble renders a single conversation turn as a styled bubble. Assistant
// turns carry a colored marker showing how the reply was classified.
type TurnBubble struct {
	turn      *model.Turn
	theme     *styles.Theme
	width     int
	streaming bool
}

// NewTurnBubble creates a bubble for the given turn.
func NewTurnBubble(turn *model.Turn, theme *styles.Theme) *TurnBubble {
	return &TurnBubble{
		turn:  turn,
		theme: theme,
		width: 80,
	}
}

// SetWidth updates the available render width.
func (b *TurnBubble) SetWidth(width int) {
	b.width = width
}

// SetStreaming marks the bubble as still receiving content.
func (b *TurnBubble) SetStreaming(streaming bool) {
	b.streaming = streaming
}

// View renders the bubble.
func (b *TurnBubble) View() string {
	if b.turn == nil {
		return ""
	}

	switch b.turn.Role {
	case model.RoleUser:
		return b.renderUserBubble()
	case model.RoleAssistant:
		return b.renderAssistantBubble()
	default:
		return ""
	}
}

func (b *TurnBubble) renderUserBubble() string {
	label := b.theme.UserLabel.Render(b.turn.Role.DisplayName())
	meta := label + " " + b.theme.Timestamp.Render(formatTime(b.turn.Timestamp))

	content := wordWrap(b.turn.Content, b.contentWidth())
	bubble := b.theme.UserBubble.Render(content)

	return lipgloss.JoinVertical(lipgloss.Right, meta, bubble)
}

func (b *TurnBubble) renderAssistantBubble() string {
	marker := b.categoryMarker()
	label := b.theme.AssistantLabel.Render(b.turn.Role.DisplayName())
	meta := marker + " " + label + " " + b.theme.Timestamp.Render(formatTime(b.turn.Timestamp))

	content := b.turn.Content
	if b.streaming {
		content += " ▋"
	}
	content = wordWrap(content, b.contentWidth())
	bubble := b.theme.AssistantBubble.Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, meta, bubble)
}

// categoryMarker returns the colored glyph for the turn's reply category.
// The refusal/solution distinction is also carried by the glyph color so it
// survives monochrome terminals as a plain dot.
func (b *TurnBubble) categoryMarker() string {
	switch b.turn.Category {
	case model.CategoryRefusal:
		return b.theme.MarkerRefusal.Render("●")
	case model.CategorySolution:
		return b.theme.MarkerSolution.Render("●")
	default:
		return b.theme.MarkerNeutral.Render("●")
	}
}

func (b *TurnBubble) contentWidth() int {
	// Bubble padding and margin eat into the available width.
	w := b.width - 10
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// TURN LIST COMPONENT
// =============================================================================

// TurnList renders the full conversation as a vertical sequence of bubbles.
type TurnList struct {
	turns []*model.Turn
	theme *styles.Theme
	width int

	// streamingSeq is the Seq of the turn still receiving content, or -1.
	streamingSeq int
}

// NewTurnList creates an empty turn list.
func NewTurnList(theme *styles.Theme) *TurnList {
	return &TurnList{
		theme:        theme,
		width:        80,
		streamingSeq: -1,
	}
}

// SetTurns replaces the rendered turns.
func (l *TurnList) SetTurns(turns []*model.Turn) {
	l.turns = turns
}

// SetWidth updates the available render width.
func (l *TurnList) SetWidth(width int) {
	l.width = width
}

// SetStreamingSeq marks the turn with the given Seq as streaming (-1 for none).
func (l *TurnList) SetStreamingSeq(seq int) {
	l.streamingSeq = seq
}

// View renders all turns.
func (l *TurnList) View() string {
	if len(l.turns) == 0 {
		return ""
	}

	var sections []string
	for _, turn := range l.turns {
		bubble := NewTurnBubble(turn, l.theme)
		bubble.SetWidth(l.width)
		bubble.SetStreaming(turn.Seq == l.streamingSeq && turn.Role == model.RoleAssistant)
		sections = append(sections, bubble.View())
	}

	return strings.Join(sections, "\n\n")
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// wordWrap wraps text to the given display width, preserving existing
// line breaks.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if util.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}

		var current string
		for _, word := range strings.Fields(line) {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if util.StringWidth(candidate) > width && current != "" {
				out = append(out, current)
				current = word
				continue
			}
			current = candidate
		}
		if current != "" {
			out = append(out, current)
		}
	}

	return strings.Join(out, "\n")
}

// formatTime formats a turn timestamp for display.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}
