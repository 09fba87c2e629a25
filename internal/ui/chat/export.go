// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tombot/chat-therapy-tui/internal/export"
)

// exportCmd writes the transcript to a timestamped file in the configured
// output directory.
func (m Model) exportCmd(pdf bool) tea.Cmd {
	if m.sess.Transcript().IsEmpty() {
		return func() tea.Msg {
			return ExportDoneMsg{Err: fmt.Errorf("nothing to export yet")}
		}
	}

	turns := m.sess.Transcript().All()
	opts := export.DefaultOptions()
	opts.OutputDir = m.cfg.Export.OutputDir
	opts.FontPath = m.cfg.Export.FontPath

	return func() tea.Msg {
		var path string
		var err error
		if pdf {
			path, err = export.ExportPDF(turns, opts)
		} else {
			path, err = export.ExportMarkdown(turns, opts)
		}
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func (m Model) handleExportDone(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m.showNotice("export failed: " + msg.Err.Error())
	}
	return m.showNotice("exported " + msg.Path)
}
