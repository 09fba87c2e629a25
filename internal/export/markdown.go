// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/sanitize"
)

// TurnSeparator joins the per-turn sections of a Markdown export.
const TurnSeparator = "\n---\n"

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports the transcript to Markdown: one section per turn,
// role label bolded, sections separated by horizontal rules.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts the turns to Markdown (UTF-8).
func (e *MarkdownExporter) Export(turns []*model.Turn) ([]byte, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("transcript has no turns")
	}

	sections := make([]string, 0, len(turns))
	for _, turn := range turns {
		sections = append(sections, fmt.Sprintf("**%s:**\n\n%s\n",
			roleLabel(turn.Role),
			sanitize.Strip(turn.Content)))
	}

	return []byte(strings.Join(sections, TurnSeparator)), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}
