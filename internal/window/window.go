// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package window bounds the conversation history included in a prompt.
//
// Older turns are dropped, not summarized: context loss past the window is
// accepted by design in exchange for a bounded prompt size.
package window

import "github.com/tombot/chat-therapy-tui/internal/model"

// DefaultMaxTurns is the number of recent turns kept when no explicit limit
// is configured.
const DefaultMaxTurns = 24

// Select returns the most recent maxTurns conversational turns from history,
// oldest of the kept turns first. Turns whose role is neither user nor
// assistant are filtered out before the limit is applied.
//
// Pure function: the input slice is never modified.
func Select(history []*model.Turn, maxTurns int) []*model.Turn {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}

	pruned := make([]*model.Turn, 0, len(history))
	for _, turn := range history {
		if turn == nil || !turn.Role.IsConversational() {
			continue
		}
		pruned = append(pruned, turn)
	}

	if len(pruned) > maxTurns {
		pruned = pruned[len(pruned)-maxTurns:]
	}

	return pruned
}
