// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TURN TESTS
// =============================================================================

func TestRole_DisplayName(t *testing.T) {
	assert.Equal(t, "You", RoleUser.DisplayName())
	assert.Equal(t, "Assistant", RoleAssistant.DisplayName())
	assert.Equal(t, "system", Role("system").DisplayName())
}

func TestNewUserTurn(t *testing.T) {
	turn := NewUserTurn("hello")

	assert.Equal(t, RoleUser, turn.Role)
	assert.Equal(t, "hello", turn.Content)
	assert.Equal(t, CategoryNone, turn.Category)
	assert.NotEmpty(t, turn.ID)
	assert.False(t, turn.Timestamp.IsZero())
}

func TestNewAssistantTurn_CarriesCategory(t *testing.T) {
	turn := NewAssistantTurn("Here's a plan", CategorySolution)

	assert.Equal(t, RoleAssistant, turn.Role)
	assert.Equal(t, CategorySolution, turn.Category)
}

func TestTurn_Preview(t *testing.T) {
	turn := NewUserTurn("aaaaaaaaaaaaaaaaaaaa")

	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaa", turn.Preview(20))
	assert.Equal(t, "aaaaaaa...", turn.Preview(10))
}

// =============================================================================
// TRANSCRIPT TESTS
// =============================================================================

func TestTranscript_AppendAssignsDenseSequence(t *testing.T) {
	tr := NewTranscript()

	a := tr.AppendUser("one")
	b := tr.AppendAssistant("two", CategoryNone)
	c := tr.AppendUser("three")

	assert.Equal(t, 0, a.Seq)
	assert.Equal(t, 1, b.Seq)
	assert.Equal(t, 2, c.Seq)
	assert.Equal(t, 3, tr.Len())
}

func TestTranscript_ClearResetsSequence(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("a")
	tr.AppendAssistant("b", CategoryNone)

	tr.Clear()
	assert.True(t, tr.IsEmpty())

	c := tr.AppendUser("c")

	all := tr.All()
	require.Len(t, all, 1)
	assert.Same(t, c, all[0])
	assert.Equal(t, 0, c.Seq)
}

func TestTranscript_AllReturnsCopy(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("a")

	snapshot := tr.All()
	tr.AppendUser("b")

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, tr.Len())
}

func TestTranscript_LastUserAndAssistant(t *testing.T) {
	tr := NewTranscript()

	assert.Nil(t, tr.LastUser())
	assert.Nil(t, tr.LastAssistant())

	tr.AppendUser("first")
	tr.AppendAssistant("reply", CategoryProbe)
	tr.AppendUser("second")

	assert.Equal(t, "second", tr.LastUser().Content)
	assert.Equal(t, "reply", tr.LastAssistant().Content)
}

func TestTranscript_PreviewEmpty(t *testing.T) {
	tr := NewTranscript()
	assert.Equal(t, "Empty conversation", tr.Preview())
}
