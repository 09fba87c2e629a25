// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tombot/chat-therapy-tui/internal/classify"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
)

// =============================================================================
// CRISIS BANNER COMPONENT
// =============================================================================

// CrisisBanner displays the crisis support notice as a full-width line at the
// top of the conversation. It is shown in addition to the normal reply, never
// instead of it.
type CrisisBanner struct {
	theme   *styles.Theme
	width   int
	visible bool
}

// NewCrisisBanner creates a hidden crisis banner.
func NewCrisisBanner(theme *styles.Theme) *CrisisBanner {
	return &CrisisBanner{
		theme: theme,
		width: 80,
	}
}

// SetWidth updates the banner width for full-width rendering.
func (b *CrisisBanner) SetWidth(width int) {
	b.width = width
}

// Show makes the banner visible.
func (b *CrisisBanner) Show() {
	b.visible = true
}

// Hide hides the banner.
func (b *CrisisBanner) Hide() {
	b.visible = false
}

// Visible reports whether the banner is currently shown.
func (b *CrisisBanner) Visible() bool {
	return b.visible
}

// View renders the banner, or an empty string when hidden.
func (b *CrisisBanner) View() string {
	if !b.visible {
		return ""
	}

	return b.theme.CrisisBanner.
		Width(b.width).
		MaxWidth(b.width).
		Align(lipgloss.Center).
		Render(classify.CrisisMessage)
}

// Height returns the rendered height in lines.
func (b *CrisisBanner) Height() int {
	if !b.visible {
		return 0
	}
	return lipgloss.Height(b.View())
}
