// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export serializes the transcript into portable documents.
//
// Two formats are supported: a paginated PDF report and a plain Markdown
// rendering. Both are pure functions of the full ordered turn sequence at
// call time; neither mutates the transcript, and repeated exports in the
// same session get collision-free timestamped filenames.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts the ordered turn sequence to the target format.
	Export(turns []*model.Turn) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// Title is the document title. Default: "Chat Therapy"
	Title string

	// FontPath is an optional TTF with extended-glyph coverage for the PDF
	// exporter. When the file is absent the exporter falls back to a core
	// font and replaces unsupported characters instead of failing.
	FontPath string

	// Now supplies the generation timestamp; defaults to time.Now.
	// Tests pin it for deterministic output.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		Title:     "Chat Therapy",
		Now:       time.Now,
	}
}

// clock returns the configured timestamp source.
func (o *Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports the turns to a file using the given exporter.
// Returns the output file path.
func ExportToFile(turns []*model.Turn, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(turns)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	// Timestamped filename avoids overwrite collisions across exports in
	// the same session.
	timestamp := opts.clock()().Format("20060102_150405")
	filename := "chat_therapy_" + timestamp + exporter.FileExtension()

	// Atomic write: no partial export file is ever left behind.
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// ExportMarkdown exports to Markdown format.
func ExportMarkdown(turns []*model.Turn, opts *Options) (string, error) {
	return ExportToFile(turns, NewMarkdownExporter(opts), opts)
}

// ExportPDF exports to PDF format.
func ExportPDF(turns []*model.Turn, opts *Options) (string, error) {
	return ExportToFile(turns, NewPDFExporter(opts), opts)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// roleLabel returns the export label for a role.
func roleLabel(r model.Role) string {
	return r.DisplayName()
}
