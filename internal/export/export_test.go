// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombot/chat-therapy-tui/internal/model"
)

func sampleTurns() []*model.Turn {
	return []*model.Turn{
		model.NewUserTurn("I feel stuck at work"),
		model.NewAssistantTurn("That sounds draining. What part feels heaviest?", model.CategoryProbe),
		model.NewUserTurn("The deadlines, mostly"),
		model.NewAssistantTurn("Try breaking one deadline into three smaller steps.", model.CategorySolution),
	}
}

func pinnedOptions(dir string) *Options {
	opts := DefaultOptions()
	opts.OutputDir = dir
	opts.Now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	}
	return opts
}

// =============================================================================
// MARKDOWN
// =============================================================================

func TestMarkdownExport_OneSectionPerTurn(t *testing.T) {
	turns := sampleTurns()

	out, err := NewMarkdownExporter(nil).Export(turns)
	require.NoError(t, err)

	sections := strings.Split(string(out), TurnSeparator)
	require.Len(t, sections, len(turns))

	for i, section := range sections {
		assert.Contains(t, section, "**"+turns[i].Role.DisplayName()+":**")
		assert.Contains(t, section, turns[i].Content)
	}
}

func TestMarkdownExport_SanitizesContent(t *testing.T) {
	turns := []*model.Turn{
		model.NewUserTurn("look at <b>this</b>"),
		model.NewAssistantTurn("# Heading\n\nplain advice", model.CategoryNone),
	}

	out, err := NewMarkdownExporter(nil).Export(turns)
	require.NoError(t, err)

	text := string(out)
	assert.NotContains(t, text, "<b>")
	assert.NotContains(t, text, "# Heading")
	assert.Contains(t, text, "look at this")
	assert.Contains(t, text, "plain advice")
}

func TestMarkdownExport_EmptyTranscriptFails(t *testing.T) {
	_, err := NewMarkdownExporter(nil).Export(nil)
	require.Error(t, err)
}

func TestMarkdownExport_Deterministic(t *testing.T) {
	turns := sampleTurns()
	exporter := NewMarkdownExporter(nil)

	first, err := exporter.Export(turns)
	require.NoError(t, err)
	second, err := exporter.Export(turns)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// =============================================================================
// PDF
// =============================================================================

func TestPDFExport_ProducesDocumentWithoutFontFile(t *testing.T) {
	opts := pinnedOptions(t.TempDir())
	opts.FontPath = filepath.Join(t.TempDir(), "missing", "DejaVuSans.ttf")

	out, err := NewPDFExporter(opts).Export(sampleTurns())
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "output should be a PDF document")
}

func TestPDFExport_DegradesOnUnparsableFontFile(t *testing.T) {
	opts := pinnedOptions(t.TempDir())
	opts.FontPath = filepath.Join(t.TempDir(), "DejaVuSans.ttf")
	require.NoError(t, os.WriteFile(opts.FontPath, []byte("not a truetype font"), 0o644))

	out, err := NewPDFExporter(opts).Export(sampleTurns())
	require.NoError(t, err, "an unusable font must degrade to the core font, not fail the export")
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFExport_HandlesNonLatin1Content(t *testing.T) {
	turns := []*model.Turn{
		model.NewUserTurn("I feel 😔 about everything — 本当に"),
		model.NewAssistantTurn("That is a lot to carry.", model.CategoryNone),
	}

	out, err := NewPDFExporter(pinnedOptions(t.TempDir())).Export(turns)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestPDFExport_EmptyTranscriptFails(t *testing.T) {
	_, err := NewPDFExporter(nil).Export(nil)
	require.Error(t, err)
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

func TestExportToFile_TimestampedFilename(t *testing.T) {
	dir := t.TempDir()
	opts := pinnedOptions(dir)

	path, err := ExportMarkdown(sampleTurns(), opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "chat_therapy_20250314_092653.md"), path)
	assert.FileExists(t, path)
}

func TestExportToFile_PDFExtension(t *testing.T) {
	dir := t.TempDir()
	opts := pinnedOptions(dir)

	path, err := ExportPDF(sampleTurns(), opts)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.FileExists(t, path)
}

func TestSafeText_ReplacesOutsideLatin1(t *testing.T) {
	assert.Equal(t, "café ?", safeText("café 本", true))
	assert.Equal(t, "café 本", safeText("café 本", false))
}
