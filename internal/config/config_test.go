// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, 24, cfg.Context.MaxTurns)
	assert.Equal(t, 30, cfg.Groq.TimeoutSecs)
	assert.True(t, cfg.UI.RenderMarkdown)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[groq]
model = "llama-3.3-70b-versatile"
temperature = 0.4

[context]
max_turns = 10

[ui]
theme = "light"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Groq.Model)
	assert.Equal(t, 0.4, cfg.Groq.Temperature)
	assert.Equal(t, 10, cfg.Context.MaxTurns)
	assert.Equal(t, "light", cfg.UI.Theme)

	// Unset fields get defaults.
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, 30, cfg.Groq.TimeoutSecs)
}

func TestLoadFromPath_FixesInsecurePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[groq]\napi_key = \"secret\"\n"), 0644))

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"temperature too high", func(c *Config) { c.Groq.Temperature = 3.0 }},
		{"negative top_p", func(c *Config) { c.Groq.TopP = -0.1 }},
		{"negative max_turns", func(c *Config) { c.Context.MaxTurns = -1 }},
		{"unknown theme", func(c *Config) { c.UI.Theme = "solarized" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("TOMBOT_MODEL", "env-model")
	t.Setenv("TOMBOT_MAX_TURNS", "8")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "env-key", cfg.Groq.APIKey)
	assert.Equal(t, "env-model", cfg.Groq.Model)
	assert.Equal(t, 8, cfg.Context.MaxTurns)
}

func TestSaveTOML_RoundTripAndPermissions(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := Default()
	cfg.Groq.Model = "saved-model"
	cfg.Context.MaxTurns = 12

	require.NoError(t, Save(cfg))

	path := filepath.Join(dir, ".tombot", "config.toml")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-model", loaded.Groq.Model)
	assert.Equal(t, 12, loaded.Context.MaxTurns)
}

func TestString_RedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Groq.APIKey = "gsk_supersecret"

	s := cfg.String()
	assert.NotContains(t, s, "gsk_supersecret")
	assert.Contains(t, s, "[REDACTED]")
}
