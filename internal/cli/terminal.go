// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for the tombot CLI.
//
// TTY detection keeps the non-interactive paths clean: piped output gets no
// colors and no markdown rendering, and NO_COLOR is respected.
package cli

import (
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// =============================================================================
// TERMINAL WIDTH
// =============================================================================

const (
	// DefaultWidth is used when the terminal width cannot be detected.
	DefaultWidth = 80

	// MaxRenderWidth caps markdown word wrap on very wide terminals.
	MaxRenderWidth = 100
)

// TerminalWidth returns the current terminal width, falling back to
// DefaultWidth when stdout is not a terminal.
func TerminalWidth() int {
	if !IsStdoutTTY() {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// RenderWidth returns the width to wrap rendered markdown at.
func RenderWidth() int {
	width := TerminalWidth()
	if width > MaxRenderWidth {
		width = MaxRenderWidth
	}
	return width
}

// =============================================================================
// COLOR CONTROL
// =============================================================================

var (
	colorsOnce    sync.Once
	colorsEnabled bool
)

// ColorsEnabled reports whether colored output should be used. Colors are
// disabled for piped output and when NO_COLOR is set.
func ColorsEnabled() bool {
	colorsOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}
		colorsEnabled = IsStdoutTTY()
	})
	return colorsEnabled
}

// renderError renders an error line, plain when colors are off.
func renderError(message string) string {
	if !ColorsEnabled() {
		return "[X] " + message
	}
	return styles.RenderError(message)
}

// renderWarning renders a warning line, plain when colors are off.
func renderWarning(message string) string {
	if !ColorsEnabled() {
		return "[!] " + message
	}
	return styles.RenderWarning(message)
}

// renderInfo renders an info line, plain when colors are off.
func renderInfo(message string) string {
	if !ColorsEnabled() {
		return "[i] " + message
	}
	return styles.RenderInfo(message)
}
