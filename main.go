// tombot - a wellbeing chat companion for your terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tombot/chat-therapy-tui/internal/cli"
	"github.com/tombot/chat-therapy-tui/internal/config"
	"github.com/tombot/chat-therapy-tui/internal/ui/chat"
	"github.com/tombot/chat-therapy-tui/internal/ui/styles"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	cmd, args, parseErr := cli.Parse(argv)

	switch cmd {
	case cli.CmdHelp:
		return cli.HandleHelp(parseErr)
	case cli.CmdVersion:
		return cli.HandleVersion()
	case cli.CmdConfig:
		return cli.HandleConfig(args)
	}

	if parseErr != nil {
		return cli.HandleHelp(parseErr)
	}

	logger, sync := newLogger()
	defer sync()

	switch cmd {
	case cli.CmdAsk:
		return cli.HandleAsk(args, logger)
	case cli.CmdChat:
		return cli.HandleChat(args, logger)
	default:
		return runTUI(args, logger)
	}
}

// runTUI starts the full-screen conversation view.
func runTUI(args *cli.Args, logger *zap.Logger) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	sess, err := cli.NewSession(cfg, args, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	model := chat.New(sess, cfg, styles.NewTheme(), logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tombot crashed: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds the debug logger. Logging is off unless a debug path is
// configured; the TUI owns the terminal, so logs only ever go to a file.
func newLogger() (*zap.Logger, func()) {
	path := os.Getenv("TOMBOT_DEBUG_LOG")
	if path == "" {
		if cfg, err := config.Load(); err == nil {
			path = cfg.Log.DebugPath
		}
	}
	if path == "" {
		return zap.NewNop(), func() {}
	}

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop(), func() {}
	}
	return logger, func() { _ = logger.Sync() }
}
