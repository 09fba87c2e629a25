// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	Timestamp       lipgloss.Style

	// Reply category markers
	MarkerRefusal  lipgloss.Style
	MarkerSolution lipgloss.Style
	MarkerNeutral  lipgloss.Style

	// ==========================================================================
	// CRISIS BANNER STYLES
	// ==========================================================================

	CrisisBanner lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ModeBadge    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// ==========================================================================
	// ERROR AND NOTICE STYLES
	// ==========================================================================

	ErrorBox   lipgloss.Style
	ErrorTitle lipgloss.Style
	NoticeText lipgloss.Style

	// ==========================================================================
	// WELCOME SCREEN STYLES
	// ==========================================================================

	WelcomeBox      lipgloss.Style
	WelcomeLogo     lipgloss.Style
	WelcomeInfo     lipgloss.Style
	WelcomeKey      lipgloss.Style
	WelcomePressKey lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Category markers
	t.MarkerRefusal = lipgloss.NewStyle().
		Foreground(CategoryRefusal).
		Bold(true)

	t.MarkerSolution = lipgloss.NewStyle().
		Foreground(CategorySolution).
		Bold(true)

	t.MarkerNeutral = lipgloss.NewStyle().
		Foreground(CategoryNeutral).
		Bold(true)

	// Crisis banner
	t.CrisisBanner = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(RoseDeep).
		Bold(true).
		Padding(0, 2).
		Align(lipgloss.Center)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ModeBadge = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Errors and notices
	t.ErrorBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Rose).
		BorderLeft(true).
		PaddingLeft(2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.NoticeText = lipgloss.NewStyle().
		Foreground(Amber)

	// Welcome screen
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.WelcomeLogo = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.WelcomeInfo = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.WelcomeKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.WelcomePressKey = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the layout mode for the current width.
func (t *Theme) GetLayoutMode() LayoutMode {
	switch {
	case t.Width < 60:
		return LayoutCompact
	case t.Width < 100:
		return LayoutNormal
	default:
		return LayoutWide
	}
}

// LayoutMode describes how much horizontal space the UI has to work with.
type LayoutMode int

const (
	LayoutCompact LayoutMode = iota
	LayoutNormal
	LayoutWide
)
