// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat in the plain terminal.
//
// "tombot chat" is the no-TUI conversation loop: a liner-backed prompt with
// persistent input history, slash commands, and the same session engine the
// TUI uses.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/tombot/chat-therapy-tui/internal/classify"
	"github.com/tombot/chat-therapy-tui/internal/config"
	"github.com/tombot/chat-therapy-tui/internal/export"
	"github.com/tombot/chat-therapy-tui/internal/prompt"
	"github.com/tombot/chat-therapy-tui/internal/session"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	chatPromptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	chatWelcomeStyle = lipgloss.NewStyle().
				Foreground(styles.Purple).
				Bold(true)

	chatInfoStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)

	chatCommandStyle = lipgloss.NewStyle().
				Foreground(styles.Emerald)

	chatCrisisStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
)

// historyFileName is the input history file under the config directory.
const historyFileName = "chat_history"

// =============================================================================
// LINE EDITOR
// =============================================================================

// ChatCLI wraps liner with persistent history for the chat loop.
type ChatCLI struct {
	line        *liner.State
	historyPath string
}

// NewChatCLI creates a line editor with history loaded from the config
// directory. History persistence is best-effort.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	cli := &ChatCLI{line: line}
	if dir, err := config.ConfigDir(); err == nil {
		cli.historyPath = filepath.Join(dir, historyFileName)
		cli.loadHistory()
	}
	return cli
}

func (c *ChatCLI) loadHistory() {
	if c.historyPath == "" {
		return
	}
	f, err := os.Open(c.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.ReadHistory(f)
}

// ReadInput reads one line, recording non-empty input in the history.
func (c *ChatCLI) ReadInput(promptText string) (string, error) {
	input, err := c.line.Prompt(promptText)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists the input history. History can contain personal
// content, so the file is kept private.
func (c *ChatCLI) SaveHistory() {
	if c.historyPath == "" {
		return
	}
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves the history and releases the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat handles the chat command. Returns the process exit code.
func HandleChat(args *Args, logger *zap.Logger) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError("failed to load config: "+err.Error()))
		return 1
	}

	sess, err := NewSession(cfg, args, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
		return 1
	}

	cli := NewChatCLI()
	defer cli.Close()

	printChatWelcome(cfg.Groq.Model, sess.Mode())

	for {
		input, err := cli.ReadInput(chatPromptStyle.Render("you> ") + " ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the conversation.
			fmt.Println()
			return 0
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := handleChatCommand(input, sess, cfg); quit {
				return 0
			}
			continue
		}

		if code := runChatTurn(os.Stdout, os.Stderr, sess, input); code != 0 {
			// Upstream failures are recorded in the transcript; keep chatting.
			continue
		}
	}
}

// printChatWelcome prints the chat banner and command hints.
func printChatWelcome(model string, mode prompt.Mode) {
	fmt.Println(chatWelcomeStyle.Render("Mr.TomBot") + chatInfoStyle.Render("  -  a supportive space to talk things through"))
	fmt.Println(chatInfoStyle.Render("Not a substitute for professional mental health care."))
	fmt.Println(chatInfoStyle.Render(fmt.Sprintf("model: %s   mode: %s", model, mode.Label())))
	fmt.Println(chatInfoStyle.Render("commands: /new /mode /export [md|pdf] /help /quit"))
	fmt.Println()
}

// runChatTurn sends one message through the session and prints the reply.
func runChatTurn(out, errOut io.Writer, sess *session.Session, input string) int {
	// Segmented replies stream token by token; concise replies print whole.
	var onDelta func(string)
	streaming := sess.Mode() == prompt.ModeSegmented
	if streaming {
		onDelta = func(delta string) {
			fmt.Fprint(out, delta)
		}
		fmt.Fprint(out, chatCommandStyle.Render("tombot>")+" ")
	}

	result, err := sess.ProcessTurn(context.Background(), input, onDelta)
	if err != nil {
		fmt.Fprintln(errOut, renderError(err.Error()))
		return 1
	}

	if streaming {
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, chatCommandStyle.Render("tombot>")+" "+result.AssistantTurn.Content)
	}

	if result.Crisis {
		fmt.Fprintln(out, chatCrisisStyle.Render(classify.CrisisMessage))
	}
	fmt.Fprintln(out)

	if result.UpstreamErr != nil {
		if streaming {
			// A failed stream may have printed little or nothing; the
			// recorded error reply must still reach the user.
			fmt.Fprintln(errOut, renderError(result.AssistantTurn.Content))
		}
		return 1
	}
	return 0
}

// handleChatCommand executes a slash command. Returns true when the loop
// should exit.
func handleChatCommand(input string, sess *session.Session, cfg *config.Config) bool {
	fields := strings.Fields(input)
	cmd := fields[0]

	switch cmd {
	case "/quit", "/exit", "/q":
		fmt.Println(chatInfoStyle.Render("take care."))
		return true

	case "/new":
		sess.Reset()
		fmt.Println(chatInfoStyle.Render("new conversation started"))

	case "/mode":
		if len(fields) < 2 {
			fmt.Println(chatInfoStyle.Render("reply mode: " + sess.Mode().Label()))
			break
		}
		mode, err := prompt.ParseMode(fields[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, renderError(err.Error()))
			break
		}
		sess.SetMode(mode)
		fmt.Println(chatInfoStyle.Render("reply mode: " + mode.Label()))

	case "/export":
		handleChatExport(fields, sess, cfg)

	case "/help", "/?":
		fmt.Println(chatInfoStyle.Render("/new                start a new conversation"))
		fmt.Println(chatInfoStyle.Render("/mode [concise|segmented]  show or switch the reply mode"))
		fmt.Println(chatInfoStyle.Render("/export [md|pdf]    export the transcript"))
		fmt.Println(chatInfoStyle.Render("/quit               exit"))

	default:
		fmt.Fprintln(os.Stderr, renderError("unknown command: "+cmd+" (try /help)"))
	}

	return false
}

// handleChatExport writes the transcript to a file in the configured output
// directory.
func handleChatExport(fields []string, sess *session.Session, cfg *config.Config) {
	if sess.Transcript().IsEmpty() {
		fmt.Fprintln(os.Stderr, renderWarning("nothing to export yet"))
		return
	}

	format := "md"
	if len(fields) > 1 {
		format = strings.ToLower(fields[1])
	}

	opts := export.DefaultOptions()
	opts.OutputDir = cfg.Export.OutputDir
	opts.FontPath = cfg.Export.FontPath

	var path string
	var err error
	switch format {
	case "md", "markdown":
		path, err = export.ExportMarkdown(sess.Transcript().All(), opts)
	case "pdf":
		path, err = export.ExportPDF(sess.Transcript().All(), opts)
	default:
		fmt.Fprintln(os.Stderr, renderError("unknown export format: "+format+" (md or pdf)"))
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError("export failed: "+err.Error()))
		return
	}
	fmt.Println(renderInfo("exported " + path))
}
