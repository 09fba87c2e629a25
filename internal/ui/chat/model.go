// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/tombot/chat-therapy-tui/internal/config"
	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/session"
	"github.com/tombot/chat-therapy-tui/internal/ui/components"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
	"github.com/tombot/chat-therapy-tui/internal/util"
)

// =============================================================================
// STATE
// =============================================================================

// State describes what the conversation view is doing.
type State int

const (
	// StateIdle - waiting for user input
	StateIdle State = iota
	// StatePending - a reply is in flight; input is blocked
	StatePending
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view.
type Model struct {
	theme  *styles.Theme
	keys   KeyMap
	sess   *session.Session
	cfg    *config.Config
	logger *zap.Logger

	// Widgets
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Components
	turnList     *components.TurnList
	statusBar    *components.StatusBar
	crisisBanner *components.CrisisBanner
	welcome      *components.Welcome

	// Streaming state
	streamBuf  *StreamingBuffer
	streamText string

	// Rendering
	renderer *glamour.TermRenderer

	state  State
	width  int
	height int
	ready  bool
	notice string
}

// New creates the conversation view around an existing session.
func New(sess *session.Session, cfg *config.Config, theme *styles.Theme, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "What's on your mind?"
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.Spinner

	statusBar := components.NewStatusBar(theme)
	statusBar.SetMode(sess.Mode())
	statusBar.SetModel(cfg.Groq.Model)

	welcome := components.NewWelcome(theme)
	welcome.SetModel(cfg.Groq.Model)

	return Model{
		theme:        theme,
		keys:         DefaultKeyMap(),
		sess:         sess,
		cfg:          cfg,
		logger:       logger,
		input:        ti,
		spinner:      sp,
		turnList:     components.NewTurnList(theme),
		statusBar:    statusBar,
		crisisBanner: components.NewCrisisBanner(theme),
		welcome:      welcome,
		streamBuf:    NewStreamingBuffer(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StreamTickMsg:
		return m.handleStreamTick()

	case TurnDoneMsg:
		return m.handleTurnDone(msg)

	case ExportDoneMsg:
		return m.handleExportDone(msg)

	case noticeExpireMsg:
		m.notice = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateWidgets(msg)
}

// updateWidgets forwards unhandled messages to the focused widgets.
func (m Model) updateWidgets(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.state == StateIdle {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.turnList.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.crisisBanner.SetWidth(msg.Width)
	m.input.Width = msg.Width - 8

	viewportHeight := m.viewportHeight()
	if !m.ready {
		m.viewport = viewport.New(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}

	m.welcome.SetSize(msg.Width, viewportHeight)

	// Reflow markdown to the new width.
	if m.cfg.UI.RenderMarkdown {
		wrap := msg.Width - 12
		if wrap < 20 {
			wrap = 20
		}
		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		); err == nil {
			m.renderer = r
		}
	}

	m.refreshViewport()
	return m, nil
}

// viewportHeight returns the transcript area height: everything minus the
// header, crisis banner, input row, and status bar.
func (m Model) viewportHeight() int {
	h := m.height - 2 - m.crisisBanner.Height() - 3 - 1
	if h < 3 {
		h = 3
	}
	return h
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.NewChat):
		return m.newConversation()

	case key.Matches(msg, m.keys.ToggleMode):
		mode := m.sess.ToggleMode()
		m.statusBar.SetMode(mode)
		return m.showNotice("reply mode: " + mode.Label())

	case key.Matches(msg, m.keys.ExportMD):
		return m, m.exportCmd(false)

	case key.Matches(msg, m.keys.ExportPDF):
		return m, m.exportCmd(true)
	}

	return m.updateWidgets(msg)
}

// submit sends the current input through the session engine.
// Ignored while a reply is already pending.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == StatePending {
		return m, nil
	}

	text := m.input.Value()
	if len(text) == 0 {
		return m, nil
	}

	m.state = StatePending
	m.input.Reset()
	m.input.Blur()
	m.streamBuf.Reset()
	m.streamText = ""
	m.statusBar.SetPending(true)

	m.logger.Debug("submitting turn", zap.Int("chars", util.RuneLen(text)))

	return m, tea.Batch(m.processTurnCmd(text), streamTickCmd(), m.spinner.Tick)
}

// newConversation clears the transcript and the crisis banner.
func (m Model) newConversation() (tea.Model, tea.Cmd) {
	if m.state == StatePending {
		return m, nil
	}

	m.sess.Reset()
	m.crisisBanner.Hide()
	// The banner line returns to the transcript area.
	m.viewport.Height = m.viewportHeight()
	m.statusBar.SetMode(m.sess.Mode())
	m.statusBar.SetTurnCount(0)
	m.refreshViewport()
	return m.showNotice("new conversation started")
}

// =============================================================================
// TURN PROCESSING
// =============================================================================

// processTurnCmd runs the session engine in a command goroutine. Streamed
// fragments land in the buffer; the tick loop drains them.
func (m Model) processTurnCmd(input string) tea.Cmd {
	sess := m.sess
	buf := m.streamBuf
	return func() tea.Msg {
		result, err := sess.ProcessTurn(context.Background(), input, buf.Write)
		return TurnDoneMsg{Result: result, Err: err}
	}
}

func (m Model) handleStreamTick() (tea.Model, tea.Cmd) {
	if m.state != StatePending {
		return m, nil
	}

	if fragment, ok := m.streamBuf.Drain(); ok {
		m.streamText += fragment
	}
	m.refreshViewport()

	return m, streamTickCmd()
}

func (m Model) handleTurnDone(msg TurnDoneMsg) (tea.Model, tea.Cmd) {
	m.state = StateIdle
	m.streamText = ""
	m.streamBuf.Reset()
	m.statusBar.SetPending(false)
	m.input.Focus()

	if msg.Err != nil {
		m.refreshViewport()
		return m.showNotice("error: " + msg.Err.Error())
	}

	result := msg.Result
	if result.Crisis {
		m.crisisBanner.Show()
		// The banner takes a line away from the transcript.
		m.viewport.Height = m.viewportHeight()
	}

	m.statusBar.SetTurnCount(m.sess.Transcript().Len())
	m.refreshViewport()

	if result.UpstreamErr != nil {
		return m.showNotice("model unavailable, recorded error reply")
	}

	return m, textinput.Blink
}

// =============================================================================
// VIEWPORT
// =============================================================================

// refreshViewport rebuilds the transcript view, appending the streaming
// preview while a segmented reply is arriving.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	turns := m.sess.Transcript().All()
	display := make([]*model.Turn, 0, len(turns)+1)

	for _, turn := range turns {
		if turn.Role == model.RoleAssistant && m.renderer != nil {
			rendered := *turn
			if out, err := m.renderer.Render(turn.Content); err == nil {
				rendered.Content = trimBlankEdges(out)
			}
			display = append(display, &rendered)
			continue
		}
		display = append(display, turn)
	}

	streamingSeq := -1
	if m.state == StatePending && m.streamText != "" {
		streamingSeq = len(turns)
		display = append(display, &model.Turn{
			Role:      model.RoleAssistant,
			Content:   m.streamText,
			Seq:       streamingSeq,
			Timestamp: time.Now(),
		})
	}

	m.turnList.SetTurns(display)
	m.turnList.SetStreamingSeq(streamingSeq)
	m.viewport.SetContent(m.turnList.View())
	m.viewport.GotoBottom()
}

// =============================================================================
// NOTICES
// =============================================================================

// showNotice displays a transient line in the status area.
func (m Model) showNotice(text string) (tea.Model, tea.Cmd) {
	m.notice = text
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return noticeExpireMsg{}
	})
}

// trimBlankEdges strips the blank lines glamour pads around rendered output.
func trimBlankEdges(s string) string {
	for len(s) > 0 && (s[0] == '\n' || s[0] == '\r') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
