// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
	"github.com/tombot/chat-therapy-tui/internal/util"
)

// =============================================================================
// WELCOME SCREEN COMPONENT
// =============================================================================

const welcomeLogo = `
  __  __     _____            ___      _
 |  \/  |_ _|_   _|__ _ __ | _ ) ___| |_
 | |\/| | '_| | |/ _ \ '  \| _ \/ _ \  _|
 |_|  |_|_|   |_|\___/_|_|_|___/\___/\__|
`

// Welcome renders the empty-transcript welcome card with the keybinding
// cheat sheet and the standing disclaimer.
type Welcome struct {
	theme     *styles.Theme
	width     int
	height    int
	modelName string
}

// NewWelcome creates a welcome screen.
func NewWelcome(theme *styles.Theme) *Welcome {
	return &Welcome{
		theme:  theme,
		width:  80,
		height: 24,
	}
}

// SetSize updates the available render area.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// SetModel sets the model name shown in the card.
func (w *Welcome) SetModel(name string) {
	w.modelName = name
}

// View renders the welcome card centered in the available area.
func (w *Welcome) View() string {
	var b strings.Builder

	b.WriteString(w.theme.WelcomeLogo.Render(strings.TrimLeft(welcomeLogo, "\n")))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeInfo.Render("A supportive space to talk things through."))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomeInfo.Render("Not a substitute for professional mental health care."))
	b.WriteString("\n\n")
	b.WriteString(w.theme.WelcomeInfo.Render("What's on your mind today?"))
	b.WriteString("\n")
	b.WriteString(w.theme.WelcomePressKey.Render(`Try: "I've been feeling overwhelmed at work lately."`))
	b.WriteString("\n\n")

	keys := []struct {
		key  string
		desc string
	}{
		{"enter", "send message"},
		{"ctrl+t", "toggle reply mode"},
		{"ctrl+n", "new conversation"},
		{"ctrl+e", "export markdown"},
		{"ctrl+p", "export pdf"},
		{"ctrl+c", "quit"},
	}
	for _, k := range keys {
		b.WriteString(w.theme.WelcomeKey.Render(util.PadRight(k.key, 8)))
		b.WriteString(w.theme.WelcomeInfo.Render("  " + k.desc))
		b.WriteString("\n")
	}

	if w.modelName != "" {
		b.WriteString("\n")
		b.WriteString(w.theme.WelcomePressKey.Render("model: " + w.modelName))
	}

	card := w.theme.WelcomeBox.Render(b.String())
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, card)
}
