// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration command handlers.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/tombot/chat-therapy-tui/internal/config"
)

// HandleConfig handles the config command. Returns the process exit code.
func HandleConfig(args *Args) int {
	switch args.Subcommand {
	case "show", "":
		return handleConfigShow()
	case "set":
		return handleConfigSet(args.ConfigKey, args.ConfigVal)
	case "path":
		fmt.Println(configPathHint())
		return 0
	default:
		fmt.Fprintln(os.Stderr, renderError("unknown config subcommand: "+args.Subcommand+" (show, set, path)"))
		return 1
	}
}

// handleConfigShow prints the active configuration with the API key redacted.
func handleConfigShow() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError("failed to load config: "+err.Error()))
		return 1
	}
	fmt.Print(cfg.String())
	return 0
}

// handleConfigSet updates one key in the config file.
func handleConfigSet(key, value string) int {
	if key == "" || value == "" {
		fmt.Fprintln(os.Stderr, renderError("usage: tombot config set KEY VALUE"))
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, renderError("failed to load config: "+err.Error()))
		return 1
	}

	if err := applyConfigKey(cfg, key, value); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
		return 1
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(os.Stderr, renderError("failed to save config: "+err.Error()))
		return 1
	}

	fmt.Println(renderInfo(key + " updated"))
	return 0
}

// applyConfigKey maps dotted config keys onto the Config struct.
func applyConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "groq.api_key":
		cfg.Groq.APIKey = value
	case "groq.model":
		cfg.Groq.Model = value
	case "groq.base_url":
		cfg.Groq.BaseURL = value
	case "groq.temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.Groq.Temperature = f
	case "groq.top_p":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.Groq.TopP = f
	case "groq.max_tokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		cfg.Groq.MaxTokens = n
	case "groq.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		cfg.Groq.TimeoutSecs = n
	case "context.max_turns":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		cfg.Context.MaxTurns = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.render_markdown":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		cfg.UI.RenderMarkdown = b
	case "export.output_dir":
		cfg.Export.OutputDir = value
	case "export.font_path":
		cfg.Export.FontPath = value
	case "log.debug_path":
		cfg.Log.DebugPath = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
