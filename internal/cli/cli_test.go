// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombot/chat-therapy-tui/internal/config"
)

func TestParse_DefaultsToTUI(t *testing.T) {
	cmd, _, err := Parse([]string{"tombot"})
	require.NoError(t, err)
	assert.Equal(t, CmdTUI, cmd)
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"help", []string{"tombot", "help"}, CmdHelp},
		{"help flag", []string{"tombot", "--help"}, CmdHelp},
		{"version", []string{"tombot", "version"}, CmdVersion},
		{"version short flag", []string{"tombot", "-v"}, CmdVersion},
		{"chat", []string{"tombot", "chat"}, CmdChat},
		{"config", []string{"tombot", "config"}, CmdConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, err := Parse(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParse_AskJoinsQueryWords(t *testing.T) {
	cmd, args, err := Parse([]string{"tombot", "ask", "I", "can't", "sleep"})
	require.NoError(t, err)
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "I can't sleep", args.Query)
	assert.Equal(t, "concise", args.Mode)
}

func TestParse_AskFlags(t *testing.T) {
	cmd, args, err := Parse([]string{
		"tombot", "ask", "--mode", "segmented", "--plain", "--model", "llama-3.3-70b-versatile", "rough", "week",
	})
	require.NoError(t, err)
	assert.Equal(t, CmdAsk, cmd)
	assert.Equal(t, "rough week", args.Query)
	assert.Equal(t, "segmented", args.Mode)
	assert.Equal(t, "llama-3.3-70b-versatile", args.Model)
	assert.True(t, args.Plain)
}

func TestParse_AskRequiresQuery(t *testing.T) {
	_, _, err := Parse([]string{"tombot", "ask"})
	assert.Error(t, err)

	_, _, err = Parse([]string{"tombot", "ask", "--plain"})
	assert.Error(t, err)
}

func TestParse_AskMissingFlagValue(t *testing.T) {
	_, _, err := Parse([]string{"tombot", "ask", "question", "--mode"})
	assert.Error(t, err)
}

func TestParse_UnknownCommand(t *testing.T) {
	cmd, _, err := Parse([]string{"tombot", "bogus"})
	assert.Equal(t, CmdHelp, cmd)
	assert.Error(t, err)
}

func TestParse_ConfigSubcommands(t *testing.T) {
	_, args, err := Parse([]string{"tombot", "config", "set", "groq.model", "llama-3.1-8b-instant"})
	require.NoError(t, err)
	assert.Equal(t, "set", args.Subcommand)
	assert.Equal(t, "groq.model", args.ConfigKey)
	assert.Equal(t, "llama-3.1-8b-instant", args.ConfigVal)

	_, args, err = Parse([]string{"tombot", "config"})
	require.NoError(t, err)
	assert.Equal(t, "show", args.Subcommand)
}

func TestApplyConfigKey(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, applyConfigKey(cfg, "groq.model", "llama-3.3-70b-versatile"))
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)

	require.NoError(t, applyConfigKey(cfg, "groq.temperature", "0.8"))
	assert.Equal(t, 0.8, cfg.Groq.Temperature)

	require.NoError(t, applyConfigKey(cfg, "context.max_turns", "12"))
	assert.Equal(t, 12, cfg.Context.MaxTurns)

	require.NoError(t, applyConfigKey(cfg, "ui.render_markdown", "false"))
	assert.False(t, cfg.UI.RenderMarkdown)

	assert.Error(t, applyConfigKey(cfg, "groq.temperature", "warm"))
	assert.Error(t, applyConfigKey(cfg, "nonsense.key", "value"))
}

func TestNewSession_RequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.Groq.APIKey = ""

	_, err := NewSession(cfg, nil, nil)
	assert.Error(t, err)
}

func TestNewSession_RejectsBadMode(t *testing.T) {
	cfg := config.Default()
	cfg.Groq.APIKey = "gsk_test"

	_, err := NewSession(cfg, &Args{Mode: "verbose"}, nil)
	assert.Error(t, err)

	sess, err := NewSession(cfg, &Args{Mode: "segmented"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Segmented explainer", sess.Mode().Label())
}
