// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"time"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the ordered, append-only log of turns for one session. It is
// the single source of truth for rendering and export.
//
// Appending is the only mutation path for individual turns: no updates, no
// deletes, no reordering. Clear discards the whole log and resets the
// sequence counter; it backs the explicit "new chat" action only.
//
// A Transcript is owned by exactly one session. The mutex exists so the
// streaming goroutine's final append cannot race a render read, not to
// support sharing across sessions.
type Transcript struct {
	mu        sync.Mutex
	turns     []*Turn
	nextSeq   int
	createdAt time.Time
	updatedAt time.Time
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		turns:     make([]*Turn, 0),
		createdAt: now,
		updatedAt: now,
	}
}

// =============================================================================
// MUTATION
// =============================================================================

// Append assigns the next sequence index to the turn and adds it to the log.
// Returns the appended turn for convenience.
func (tr *Transcript) Append(turn *Turn) *Turn {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	turn.Seq = tr.nextSeq
	tr.nextSeq++
	tr.turns = append(tr.turns, turn)
	tr.updatedAt = time.Now()
	return turn
}

// AppendUser creates and appends a user turn.
func (tr *Transcript) AppendUser(content string) *Turn {
	return tr.Append(NewUserTurn(content))
}

// AppendAssistant creates and appends an assistant turn with its category.
func (tr *Transcript) AppendAssistant(content string, category Category) *Turn {
	return tr.Append(NewAssistantTurn(content, category))
}

// Clear discards all turns and resets the sequence counter to zero.
func (tr *Transcript) Clear() {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.turns = make([]*Turn, 0)
	tr.nextSeq = 0
	tr.updatedAt = time.Now()
}

// =============================================================================
// READS
// =============================================================================

// All returns the ordered turns. The returned slice is a copy, so callers
// can iterate safely while new turns are appended from the session's own
// execution context.
func (tr *Transcript) All() []*Turn {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	out := make([]*Turn, len(tr.turns))
	copy(out, tr.turns)
	return out
}

// Len returns the number of turns.
func (tr *Transcript) Len() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.turns)
}

// IsEmpty returns true if there are no turns.
func (tr *Transcript) IsEmpty() bool {
	return tr.Len() == 0
}

// LastUser returns the most recent user turn, or nil.
func (tr *Transcript) LastUser() *Turn {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	for i := len(tr.turns) - 1; i >= 0; i-- {
		if tr.turns[i].Role == RoleUser {
			return tr.turns[i]
		}
	}
	return nil
}

// LastAssistant returns the most recent assistant turn, or nil.
func (tr *Transcript) LastAssistant() *Turn {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	for i := len(tr.turns) - 1; i >= 0; i-- {
		if tr.turns[i].Role == RoleAssistant {
			return tr.turns[i]
		}
	}
	return nil
}

// CreatedAt returns when the transcript was created.
func (tr *Transcript) CreatedAt() time.Time {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.createdAt
}

// UpdatedAt returns when the transcript last changed.
func (tr *Transcript) UpdatedAt() time.Time {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.updatedAt
}

// Preview returns a short preview of the conversation for display.
func (tr *Transcript) Preview() string {
	first := tr.LastUser()
	if first == nil {
		return "Empty conversation"
	}
	return first.Preview(100)
}
