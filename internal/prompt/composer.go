// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"strings"

	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/sanitize"
	"github.com/tombot/chat-therapy-tui/internal/window"
)

// NoHistoryPlaceholder is rendered in place of the history block when the
// windowed history is empty, so the prompt is never structurally ambiguous
// between "no history" and "history omitted by a formatting bug".
const NoHistoryPlaceholder = "(none)"

// =============================================================================
// COMPOSER
// =============================================================================

// Composer assembles the single text blob sent to the model: persona line,
// mode-selected style rules, the windowed history, and the latest query
// behind a final delimiter. Compose is pure and deterministic; identical
// inputs always produce a byte-identical prompt.
type Composer struct {
	// MaxTurns bounds the serialized history window. Zero means
	// window.DefaultMaxTurns.
	MaxTurns int
}

// NewComposer creates a composer with the given history window size.
func NewComposer(maxTurns int) *Composer {
	if maxTurns <= 0 {
		maxTurns = window.DefaultMaxTurns
	}
	return &Composer{MaxTurns: maxTurns}
}

// Compose builds the prompt text. history holds the prior turns (not the
// latest query, which is passed separately and rendered behind the final
// delimiter). Turn content and the latest query are sanitized before
// serialization.
func (c *Composer) Compose(history []*model.Turn, latest string, mode Mode) string {
	windowed := window.Select(history, c.MaxTurns)

	var sb strings.Builder
	sb.WriteString(personaLine)
	sb.WriteString("\nStyle rules: ")
	sb.WriteString(StyleRules(mode))
	sb.WriteString("\n\nPrevious conversation:\n")
	sb.WriteString(serializeHistory(windowed))
	sb.WriteString("\n\nLatest query:\n")
	sb.WriteString(sanitize.StripLine(latest))

	return sb.String()
}

// serializeHistory renders the windowed turns as alternating
// "User:"/"Assistant:" lines.
func serializeHistory(turns []*model.Turn) string {
	if len(turns) == 0 {
		return NoHistoryPlaceholder
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		label := "User"
		if turn.Role == model.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, label+": "+sanitize.StripLine(turn.Content))
	}
	return strings.Join(lines, "\n")
}
