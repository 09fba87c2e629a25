// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared wiring between the CLI commands and the session engine.
package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tombot/chat-therapy-tui/internal/config"
	"github.com/tombot/chat-therapy-tui/internal/groq"
	"github.com/tombot/chat-therapy-tui/internal/prompt"
	"github.com/tombot/chat-therapy-tui/internal/session"
)

// NewSession builds a session engine from the loaded configuration and parsed
// arguments. The returned session is ready for ProcessTurn.
func NewSession(cfg *config.Config, args *Args, logger *zap.Logger) (*session.Session, error) {
	if cfg.Groq.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set GROQ_API_KEY or groq.api_key in %s", configPathHint())
	}

	model := cfg.Groq.Model
	if args != nil && args.Model != "" {
		model = args.Model
	}

	client := groq.NewClient(&groq.ClientConfig{
		BaseURL: cfg.Groq.BaseURL,
		APIKey:  cfg.Groq.APIKey,
		Model:   model,
		Timeout: time.Duration(cfg.Groq.TimeoutSecs) * time.Second,
	})

	completer := session.NewGroqCompleter(client, &groq.Options{
		Temperature: cfg.Groq.Temperature,
		TopP:        cfg.Groq.TopP,
		MaxTokens:   cfg.Groq.MaxTokens,
	})

	sessCfg := session.Config{
		MaxTurns: cfg.Context.MaxTurns,
		Logger:   logger,
	}
	if args != nil && args.Mode != "" {
		mode, err := prompt.ParseMode(args.Mode)
		if err != nil {
			return nil, err
		}
		sessCfg.Mode = mode
	}

	return session.New(completer, sessCfg), nil
}

// configPathHint returns the config file path for error messages, falling
// back to the documented default when the home directory is unavailable.
func configPathHint() string {
	if path, err := config.ConfigPath(); err == nil {
		return path
	}
	return "~/.tombot/config.toml"
}
