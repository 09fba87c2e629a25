// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the conversation view.
type KeyMap struct {
	Submit     key.Binding
	NewChat    key.Binding
	ToggleMode key.Binding
	ExportMD   key.Binding
	ExportPDF  key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send message"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new conversation"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "toggle reply mode"),
		),
		ExportMD: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export markdown"),
		),
		ExportPDF: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "export pdf"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "page down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}
