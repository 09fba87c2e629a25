// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command.
//
// "tombot ask" runs a single turn through the session engine and prints the
// reply. Markdown rendering only happens on a TTY so piped output stays clean.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/tombot/chat-therapy-tui/internal/classify"
	"github.com/tombot/chat-therapy-tui/internal/config"
	"github.com/tombot/chat-therapy-tui/internal/prompt"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// newMarkdownRenderer builds a glamour renderer wrapped to the terminal.
// Returns nil when rendering should be skipped.
func newMarkdownRenderer() *glamour.TermRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(RenderWidth()),
	)
	if err != nil {
		return nil
	}
	return renderer
}

// renderMarkdown renders markdown for terminal display, returning the input
// unchanged when the renderer is unavailable or fails.
func renderMarkdown(renderer *glamour.TermRenderer, content string) string {
	if renderer == nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayReply prints a reply, rendered as markdown when appropriate.
func displayReply(content string, plain bool) {
	if !plain && IsStdoutTTY() {
		fmt.Print(renderMarkdown(newMarkdownRenderer(), content))
		return
	}
	fmt.Println(content)
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk handles the ask command. Returns the process exit code.
func HandleAsk(args *Args, logger *zap.Logger) int {
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

	// Segmented replies stream straight to stdout; partial fragments are
	// never run through the markdown renderer.
	var onDelta func(string)
	streaming := sess.Mode() == prompt.ModeSegmented && IsStdoutTTY()
	if streaming {
		onDelta = func(delta string) {
			fmt.Print(delta)
		}
	}

	result, err := sess.ProcessTurn(context.Background(), args.Query, onDelta)
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
		return 1
	}

	if result.Crisis {
		fmt.Fprintln(os.Stderr, renderWarning(classify.CrisisMessage))
	}

	if streaming {
		fmt.Println()
	} else {
		displayReply(result.AssistantTurn.Content, args.Plain)
	}

	if result.UpstreamErr != nil {
		if streaming {
			// The stream may have stopped mid-reply or produced nothing;
			// the recorded error reply must still reach the user.
			fmt.Fprintln(os.Stderr, renderError(result.AssistantTurn.Content))
		}
		return 1
	}
	return 0
}
