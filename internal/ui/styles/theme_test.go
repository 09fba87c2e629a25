// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme_InitializesStyles(t *testing.T) {
	theme := NewTheme()

	// A few spot checks that initStyles ran.
	assert.True(t, theme.UserLabel.GetBold())
	assert.True(t, theme.CrisisBanner.GetBold())
	assert.True(t, theme.MarkerRefusal.GetBold())
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width    int
		expected LayoutMode
	}{
		{40, LayoutCompact},
		{59, LayoutCompact},
		{60, LayoutNormal},
		{99, LayoutNormal},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		assert.Equal(t, tt.expected, theme.GetLayoutMode(), "width %d", tt.width)
	}
}

func TestRenderHelpers_IncludeShapeIndicators(t *testing.T) {
	assert.Contains(t, RenderError("boom"), "[X]")
	assert.Contains(t, RenderWarning("careful"), "[!]")
	assert.Contains(t, RenderInfo("fyi"), "[i]")
}
