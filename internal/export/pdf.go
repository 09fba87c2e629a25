// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/sanitize"
)

// =============================================================================
// PDF EXPORTER
// =============================================================================

// PDFExporter exports the transcript to a paginated A4 report: title header
// with generation timestamp, one labeled block per turn, page-number footer.
//
// Unicode coverage needs a TTF resource (Options.FontPath). When that file
// is absent the exporter degrades to the Helvetica core font and replaces
// characters outside latin-1 rather than failing the export.
type PDFExporter struct {
	options *Options
}

// NewPDFExporter creates a new PDF exporter.
func NewPDFExporter(opts *Options) *PDFExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &PDFExporter{options: opts}
}

// Export converts the turns to a PDF document.
func (e *PDFExporter) Export(turns []*model.Turn) ([]byte, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("transcript has no turns")
	}

	title := e.options.Title
	if title == "" {
		title = "Chat Therapy"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 18)

	family, latin1 := e.selectFont(pdf)

	pdf.SetTitle(title, !latin1)
	pdf.SetAuthor("Chat Therapy", false)

	subtitle := e.options.clock()().Format("Exported 2006-01-02 15:04")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(family, "B", 15)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
		pdf.SetFont(family, "", 9)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 6, subtitle, "", 1, "L", false, 0, "")
		pdf.Ln(2)
	})

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(family, "", 9)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	for _, turn := range turns {
		content := sanitize.Strip(turn.Content)
		if content == "" {
			continue
		}

		pdf.SetFont(family, "B", 11)
		pdf.SetTextColor(20, 20, 20)
		pdf.MultiCell(0, 6, safeText(roleLabel(turn.Role)+":", latin1), "", "L", false)

		pdf.SetFont(family, "", 10)
		pdf.MultiCell(0, 6, safeText(content, latin1), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns the file extension for PDF.
func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

// MimeType returns the MIME type for PDF.
func (e *PDFExporter) MimeType() string {
	return "application/pdf"
}

// =============================================================================
// FONT HANDLING
// =============================================================================

// selectFont registers the configured UTF-8 font when it is usable,
// otherwise falls back to the always-available Helvetica core font.
// Returns the family name and whether latin-1 replacement is required.
func (e *PDFExporter) selectFont(pdf *fpdf.Fpdf) (family string, latin1 bool) {
	path := e.options.FontPath
	if path != "" && fontUsable(path) {
		pdf.AddUTF8Font("DejaVu", "", path)
		pdf.AddUTF8Font("DejaVu", "B", path)
		return "DejaVu", false
	}
	return "Helvetica", true
}

// fontUsable reports whether the TTF at path can be registered. The probe
// runs on a throwaway document: fpdf errors are sticky, so a failed
// AddUTF8Font on the real document would fail the whole export instead of
// degrading to the core font.
func fontUsable(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	probe := fpdf.New("P", "mm", "A4", "")
	probe.AddUTF8Font("DejaVu", "", path)
	return probe.Error() == nil
}

// safeText prepares text for the selected font. Core fonts only cover
// latin-1, so unsupported characters are replaced rather than aborting the
// export.
func safeText(s string, latin1 bool) string {
	if !latin1 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r > 0xFF {
			sb.WriteRune('?')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
