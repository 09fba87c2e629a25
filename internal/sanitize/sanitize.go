// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sanitize strips presentation markup from stored message content.
//
// Rendered chat content may carry Markdown emphasis, code fences, or stray
// HTML from the rendering layer. Before that content is replayed into a
// prompt or written to an export, it is reduced to plain text here.
// Stripping is best-effort: malformed markup is never an error, and the
// worst case is returning the input with only whitespace normalization.
package sanitize

import (
	"regexp"
	"strings"
)

// =============================================================================
// PATTERN TABLES
// =============================================================================

// PERFORMANCE: Pre-compiled regex (compiled once at startup)
var (
	htmlTagRe    = regexp.MustCompile(`<[^>\n]*>`)
	codeFenceRe  = regexp.MustCompile("(?m)^```[^\n]*$")
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s?`)
	emphasisRe   = regexp.MustCompile(`(\*{1,3}|_{1,3}|~{2})([^*_~\n]+)(\*{1,3}|_{1,3}|~{2})`)
	inlineCodeRe = regexp.MustCompile("`([^`\n]*)`")
	linkRe       = regexp.MustCompile(`\[([^\]\n]*)\]\([^)\n]*\)`)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
)

// =============================================================================
// STRIPPING
// =============================================================================

// Strip returns s with presentation markup removed.
//
// Handled: inline HTML tags, Markdown code fences, headings, blockquote
// prefixes, bold/italic/strikethrough wrappers, inline code backticks, and
// links (link text is kept, the target dropped). Carriage returns and tabs
// are normalized the way the exporters expect. Anything the patterns do not
// recognize passes through unchanged.
func Strip(s string) string {
	if s == "" {
		return s
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")

	s = codeFenceRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = headingRe.ReplaceAllString(s, "")
	s = blockquoteRe.ReplaceAllString(s, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = inlineCodeRe.ReplaceAllString(s, "$1")

	// Emphasis wrappers can nest (***bold italic***); strip repeatedly until
	// the text stops changing.
	for {
		next := emphasisRe.ReplaceAllString(s, "$2")
		if next == s {
			break
		}
		s = next
	}

	s = multiBlankRe.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// StripLine flattens s to a single sanitized line, for contexts such as
// "User:"/"Assistant:" prompt serialization where newlines would break the
// line-oriented history format.
func StripLine(s string) string {
	s = Strip(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}
