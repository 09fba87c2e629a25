// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt builds the text sent to the model for each submission.
package prompt

import "fmt"

// =============================================================================
// MODE TYPE
// =============================================================================

// Mode selects the style-rule block injected into the composed prompt. It is
// read once per submission; changing it never affects already-stored turns.
type Mode int

const (
	// ModeConcise is the short, empathetic therapist reply style.
	ModeConcise Mode = iota

	// ModeSegmented is the structured TL;DR/Key Points/Steps/Next Actions
	// reply style.
	ModeSegmented
)

// Label returns the user-facing name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeSegmented:
		return "Segmented explainer"
	default:
		return "Therapist (concise)"
	}
}

// String returns a short identifier for logs and config.
func (m Mode) String() string {
	switch m {
	case ModeSegmented:
		return "segmented"
	default:
		return "concise"
	}
}

// ParseMode resolves a mode from its label or short identifier.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "concise", "Therapist (concise)":
		return ModeConcise, nil
	case "segmented", "Segmented explainer":
		return ModeSegmented, nil
	default:
		return ModeConcise, fmt.Errorf("unknown mode %q", s)
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeConcise {
		return ModeSegmented
	}
	return ModeConcise
}
