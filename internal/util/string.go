// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the application: UTF-8
// safe string shaping for terminal display and crash-safe file writing.
package util

import (
	"github.com/mattn/go-runewidth"
)

// TruncateRunes truncates a string to a maximum number of runes.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates a string to a maximum display width, accounting
// for double-width characters.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads a string with spaces to the given display width.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// StringWidth returns the display width of a string. Double-width
// characters count as 2 columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// RuneLen returns the number of runes in a string.
func RuneLen(s string) int {
	return len([]rune(s))
}
