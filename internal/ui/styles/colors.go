// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the tombot TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, assistant messages, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, info, user highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states, solution replies
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors, refusal replies, crisis notices
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// RoseDeep - Darker rose for the crisis banner background
var RoseDeep = lipgloss.AdaptiveColor{Light: "#BE123C", Dark: "#881337"}

// Amber - Warnings, caution states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FDE7EC"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Blue tones
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#E0F2FE"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#3B82F6"}

// Assistant message bubble - Soft purple/violet tones
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#5B4B8A", Dark: "#E9E4F5"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#C4B5FD", Dark: "#A78BFA"}

// =============================================================================
// REPLY CATEGORY COLORS
// =============================================================================

// Refusal replies render with a red marker, solutions with green, everything
// else with the neutral accent. The glyph carries the signal alongside the
// color for colorblind users.

var CategoryRefusal = Rose
var CategorySolution = Emerald
var CategoryNeutral = Purple

// =============================================================================
// ACCESSIBILITY HELPERS
// =============================================================================

// RenderError renders an error message with an X mark indicator.
func RenderError(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	return style.Render("[X] " + message)
}

// RenderWarning renders a warning message with a caution indicator.
func RenderWarning(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)
	return style.Render("[!] " + message)
}

// RenderInfo renders an info message with an info indicator.
func RenderInfo(message string) string {
	style := lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	return style.Render("[i] " + message)
}
