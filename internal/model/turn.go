// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// IsConversational reports whether the role participates in prompt history.
func (r Role) IsConversational() bool {
	return r == RoleUser || r == RoleAssistant
}

// =============================================================================
// CATEGORY TYPE
// =============================================================================

// Category is the derived classification of an assistant reply. It drives
// presentation only (avatar glyph selection); it is assigned once when the
// turn is created and never recomputed.
type Category string

const (
	CategoryNone     Category = "none"
	CategoryRefusal  Category = "refusal"
	CategoryProbe    Category = "probe"
	CategorySolution Category = "solution"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn represents a single message in a conversation. Turns are immutable
// once appended to a Transcript.
type Turn struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Seq is the position within the conversation; assigned by the
	// Transcript on append, strictly increasing and dense.
	Seq int `json:"seq"`

	// Content may contain presentation markup when produced by a rendering
	// layer; readers sanitize at replay/export time.
	Content string `json:"content"`

	// Category is set only on assistant turns.
	Category Category `json:"category,omitempty"`
}

// NewUserTurn creates a new user turn.
func NewUserTurn(content string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleUser,
		Content:   content,
		Category:  CategoryNone,
		Timestamp: time.Now(),
	}
}

// NewAssistantTurn creates a new assistant turn with its derived category.
func NewAssistantTurn(content string, category Category) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleAssistant,
		Content:   content,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Preview returns a truncated preview of the turn content.
// Uses rune-based truncation to handle Unicode correctly.
func (t *Turn) Preview(maxLen int) string {
	runes := []rune(t.Content)
	if len(runes) <= maxLen {
		return t.Content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the turn has no content.
func (t *Turn) IsEmpty() bool {
	return len(t.Content) == 0
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "turn_" + hex.EncodeToString(bytes)
}
