// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tombot.
//
// Configuration is TOML with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file location (in order of precedence):
//   - ~/.tombot/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tombot/chat-therapy-tui/internal/util"
	"github.com/tombot/chat-therapy-tui/internal/window"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tombot configuration.
type Config struct {
	// Groq is the completion backend configuration
	Groq GroqConfig `toml:"groq"`

	// Context controls prompt context selection
	Context ContextConfig `toml:"context"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Export configuration
	Export ExportConfig `toml:"export"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// GroqConfig contains the Groq API configuration.
type GroqConfig struct {
	// APIKey is the Groq API key. Prefer the GROQ_API_KEY environment
	// variable over storing the key on disk.
	APIKey string `toml:"api_key"`
	// Model is the model identifier to request
	Model string `toml:"model"`
	// BaseURL is the API base URL (override for proxies and testing)
	BaseURL string `toml:"base_url"`
	// Temperature is the sampling temperature (0.0-2.0)
	Temperature float64 `toml:"temperature"`
	// TopP is the nucleus sampling parameter (0.0-1.0)
	TopP float64 `toml:"top_p"`
	// MaxTokens caps the completion length (0 = provider default)
	MaxTokens int `toml:"max_tokens"`
	// TimeoutSecs is the non-streaming request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs"`
}

// ContextConfig controls how much history reaches the composed prompt.
type ContextConfig struct {
	// MaxTurns is the maximum number of prior turns included in a prompt
	MaxTurns int `toml:"max_turns"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// RenderMarkdown enables rich rendering of assistant replies
	RenderMarkdown bool `toml:"render_markdown"`
	// CompactMode uses a more compact layout
	CompactMode bool `toml:"compact_mode"`
}

// ExportConfig contains transcript export configuration.
type ExportConfig struct {
	// OutputDir is where exported files are written (empty = working dir)
	OutputDir string `toml:"output_dir"`
	// FontPath is an optional TTF for full Unicode coverage in PDF exports
	FontPath string `toml:"font_path"`
}

// LogConfig contains debug logging configuration.
type LogConfig struct {
	// DebugPath enables debug logging to the given file when set
	DebugPath string `toml:"debug_path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Groq: GroqConfig{
			Model:       "llama-3.1-8b-instant",
			BaseURL:     "https://api.groq.com/openai/v1",
			Temperature: 0.6,
			TopP:        0.9,
			MaxTokens:   512,
			TimeoutSecs: 30,
		},

		Context: ContextConfig{
			MaxTurns: window.DefaultMaxTurns,
		},

		UI: UIConfig{
			Theme:          "dark",
			RenderMarkdown: true,
			CompactMode:    false,
		},

		Export: ExportConfig{
			OutputDir: ".",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tombot configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tombot"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on the config file.
// SECURITY: The config file may hold an API key, so it must be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when none exists. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadFile(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadFile loads configuration from a specific TOML file into cfg.
func LoadFile(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems; warn and continue.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation and environment overrides applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadFile(cfg, path); err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic so a
// crash mid-save cannot truncate a config that holds the API key.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf strings.Builder
	fmt.Fprintln(&buf, "# tombot configuration file")
	fmt.Fprintln(&buf, "# Generated by tombot - edit with care")
	fmt.Fprintln(&buf, "")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, []byte(buf.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Groq.BaseURL != "" {
		if _, err := url.Parse(c.Groq.BaseURL); err != nil {
			errs = append(errs, ValidationError{
				Field:   "groq.base_url",
				Message: fmt.Sprintf("invalid URL: %v", err),
			})
		}
	}

	if c.Groq.Temperature < 0 || c.Groq.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "groq.temperature",
			Message: fmt.Sprintf("must be between 0.0 and 2.0, got %v", c.Groq.Temperature),
		})
	}

	if c.Groq.TopP < 0 || c.Groq.TopP > 1 {
		errs = append(errs, ValidationError{
			Field:   "groq.top_p",
			Message: fmt.Sprintf("must be between 0.0 and 1.0, got %v", c.Groq.TopP),
		})
	}

	if c.Groq.MaxTokens < 0 {
		errs = append(errs, ValidationError{
			Field:   "groq.max_tokens",
			Message: "must be non-negative",
		})
	}

	if c.Groq.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "groq.timeout_secs",
			Message: "must be non-negative",
		})
	}

	if c.Context.MaxTurns < 0 {
		errs = append(errs, ValidationError{
			Field:   "context.max_turns",
			Message: "must be non-negative",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Groq.Model == "" {
		c.Groq.Model = defaults.Groq.Model
	}
	if c.Groq.BaseURL == "" {
		c.Groq.BaseURL = defaults.Groq.BaseURL
	}
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = defaults.Groq.Temperature
	}
	if c.Groq.TopP == 0 {
		c.Groq.TopP = defaults.Groq.TopP
	}
	if c.Groq.MaxTokens == 0 {
		c.Groq.MaxTokens = defaults.Groq.MaxTokens
	}
	if c.Groq.TimeoutSecs == 0 {
		c.Groq.TimeoutSecs = defaults.Groq.TimeoutSecs
	}

	if c.Context.MaxTurns == 0 {
		c.Context.MaxTurns = defaults.Context.MaxTurns
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaults.Export.OutputDir
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - GROQ_API_KEY: overrides groq.api_key
//   - TOMBOT_MODEL: overrides groq.model
//   - TOMBOT_BASE_URL: overrides groq.base_url
//   - TOMBOT_MAX_TURNS: overrides context.max_turns
//   - TOMBOT_DEBUG_LOG: overrides log.debug_path
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.Groq.APIKey = key
	}

	if model := os.Getenv("TOMBOT_MODEL"); model != "" {
		c.Groq.Model = model
	}

	if base := os.Getenv("TOMBOT_BASE_URL"); base != "" {
		c.Groq.BaseURL = base
	}

	if maxTurns := os.Getenv("TOMBOT_MAX_TURNS"); maxTurns != "" {
		var n int
		if _, err := fmt.Sscanf(maxTurns, "%d", &n); err == nil && n > 0 {
			c.Context.MaxTurns = n
		}
	}

	if path := os.Getenv("TOMBOT_DEBUG_LOG"); path != "" {
		c.Log.DebugPath = path
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// String returns a string representation of the config for debugging.
// SECURITY: Redacts the API key to prevent accidental exposure in logs.
func (c *Config) String() string {
	safe := *c
	if safe.Groq.APIKey != "" {
		safe.Groq.APIKey = "[REDACTED]"
	}

	var sb strings.Builder
	encoder := toml.NewEncoder(&sb)
	if err := encoder.Encode(safe); err != nil {
		return fmt.Sprintf("config (encode error: %v)", err)
	}
	return sb.String()
}
