// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package window

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombot/chat-therapy-tui/internal/model"
)

func makeHistory(n int) []*model.Turn {
	turns := make([]*model.Turn, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			turns = append(turns, model.NewUserTurn("u"+strconv.Itoa(i)))
		} else {
			turns = append(turns, model.NewAssistantTurn("a"+strconv.Itoa(i), model.CategoryNone))
		}
	}
	return turns
}

func TestSelect_ReturnsAtMostMaxTurns(t *testing.T) {
	history := makeHistory(40)

	for _, max := range []int{1, 8, 24, 39, 40, 100} {
		got := Select(history, max)
		assert.LessOrEqual(t, len(got), max, "max=%d", max)
	}
}

func TestSelect_KeepsSuffixInOrder(t *testing.T) {
	history := makeHistory(10)

	got := Select(history, 4)

	require.Len(t, got, 4)
	assert.Equal(t, history[6:], got)
}

func TestSelect_ShortHistoryUntouched(t *testing.T) {
	history := makeHistory(5)

	got := Select(history, 24)

	assert.Equal(t, history, got)
}

func TestSelect_FiltersNonConversationalRoles(t *testing.T) {
	history := makeHistory(3)
	history = append(history, &model.Turn{Role: model.Role("system"), Content: "internal"})
	history = append(history, nil)

	got := Select(history, 24)

	require.Len(t, got, 3)
	for _, turn := range got {
		assert.True(t, turn.Role.IsConversational())
	}
}

func TestSelect_NonPositiveLimitUsesDefault(t *testing.T) {
	history := makeHistory(60)

	got := Select(history, 0)

	assert.Len(t, got, DefaultMaxTurns)
	assert.Equal(t, history[60-DefaultMaxTurns:], got)
}

func TestSelect_EmptyHistory(t *testing.T) {
	assert.Empty(t, Select(nil, 24))
}
