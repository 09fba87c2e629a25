// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if banner := m.crisisBanner.View(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if m.sess.Transcript().IsEmpty() && m.state == StateIdle {
		b.WriteString(m.welcome.View())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	b.WriteString(m.renderInput())
	b.WriteString("\n")

	b.WriteString(m.statusBar.View())

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Mr.TomBot")
	subtitle := m.theme.HeaderSubtitle.Render("chat therapy")

	line := title + "  " + subtitle
	if m.notice != "" {
		notice := m.theme.NoticeText.Render(m.notice)
		gap := m.width - lipgloss.Width(line) - lipgloss.Width(notice) - 4
		if gap > 0 {
			line += strings.Repeat(" ", gap) + notice
		}
	}

	return m.theme.Header.Width(m.width).Render(line)
}

func (m Model) renderInput() string {
	if m.state == StatePending {
		waiting := m.spinner.View() + " " + m.theme.ThinkingText.Render("Mr.TomBot is thinking...")
		return m.theme.InputContainer.Width(m.width).Render(waiting)
	}
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}
