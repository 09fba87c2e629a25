// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombot/chat-therapy-tui/internal/model"
)

func TestCompose_EmptyHistoryUsesPlaceholder(t *testing.T) {
	c := NewComposer(24)

	got := c.Compose(nil, "hi", ModeConcise)

	assert.Contains(t, got, NoHistoryPlaceholder)
	assert.Equal(t, 1, strings.Count(got, "hi"), "latest query must appear exactly once")
	assert.True(t, strings.HasSuffix(got, "Latest query:\nhi"))
}

func TestCompose_Deterministic(t *testing.T) {
	c := NewComposer(24)
	history := []*model.Turn{
		model.NewUserTurn("I'm stressed about work"),
		model.NewAssistantTurn("What part feels heaviest?", model.CategoryProbe),
	}

	first := c.Compose(history, "the deadlines", ModeSegmented)
	second := c.Compose(history, "the deadlines", ModeSegmented)

	assert.Equal(t, first, second)
}

func TestCompose_SerializesHistoryAsRoleLines(t *testing.T) {
	c := NewComposer(24)
	history := []*model.Turn{
		model.NewUserTurn("I can't sleep"),
		model.NewAssistantTurn("How long has this been going on?", model.CategoryProbe),
	}

	got := c.Compose(history, "about a month", ModeConcise)

	assert.Contains(t, got, "User: I can't sleep")
	assert.Contains(t, got, "Assistant: How long has this been going on?")
	assert.NotContains(t, got, NoHistoryPlaceholder)
}

func TestCompose_SanitizesHistoryAndQuery(t *testing.T) {
	c := NewComposer(24)
	history := []*model.Turn{
		model.NewUserTurn("I feel **terrible**\ntoday"),
	}

	got := c.Compose(history, "<b>still</b> bad", ModeConcise)

	assert.Contains(t, got, "User: I feel terrible today")
	assert.Contains(t, got, "Latest query:\nstill bad")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "<b>")
}

func TestCompose_StyleRulesFollowMode(t *testing.T) {
	c := NewComposer(24)

	concise := c.Compose(nil, "q", ModeConcise)
	segmented := c.Compose(nil, "q", ModeSegmented)

	assert.Contains(t, concise, "mental-wellbeing scope")
	assert.Contains(t, segmented, "TL;DR, Key Points, Steps, Next Actions")
	assert.NotEqual(t, concise, segmented)
}

func TestCompose_WindowBoundsHistory(t *testing.T) {
	c := NewComposer(2)
	history := []*model.Turn{
		model.NewUserTurn("oldest"),
		model.NewAssistantTurn("middle", model.CategoryNone),
		model.NewUserTurn("newest"),
	}

	got := c.Compose(history, "q", ModeConcise)

	assert.NotContains(t, got, "oldest")
	assert.Contains(t, got, "Assistant: middle")
	assert.Contains(t, got, "User: newest")
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"concise", ModeConcise, false},
		{"Therapist (concise)", ModeConcise, false},
		{"segmented", ModeSegmented, false},
		{"Segmented explainer", ModeSegmented, false},
		{"verbose", ModeConcise, true},
	}

	for _, tc := range tests {
		got, err := ParseMode(tc.input)
		if tc.wantErr {
			require.Error(t, err, tc.input)
			continue
		}
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestMode_Toggle(t *testing.T) {
	assert.Equal(t, ModeSegmented, ModeConcise.Toggle())
	assert.Equal(t, ModeConcise, ModeSegmented.Toggle())
}
