// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tombot/chat-therapy-tui/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  model.Category
	}{
		{
			name:  "empty reply is refusal-equivalent",
			reply: "",
			want:  model.CategoryRefusal,
		},
		{
			name:  "whitespace-only reply is refusal-equivalent",
			reply: "   \n\t ",
			want:  model.CategoryRefusal,
		},
		{
			name:  "explicit decline",
			reply: "I can't help with that. Let's talk about stress instead.",
			want:  model.CategoryRefusal,
		},
		{
			name:  "out of scope with curly apostrophe",
			reply: "That’s outside my scope, but I can help with stress.",
			want:  model.CategoryRefusal,
		},
		{
			name:  "actionable plan",
			reply: "Here's a plan: 1. breathe 2. journal. Next actions: sleep earlier.",
			want:  model.CategorySolution,
		},
		{
			name:  "clarifying question",
			reply: "How are you feeling about that today?",
			want:  model.CategoryProbe,
		},
		{
			name:  "plain question without solution markers counts as probe",
			reply: "Did anything change at work recently?",
			want:  model.CategoryProbe,
		},
		{
			name:  "question with solution marker and no probe marker is not a probe",
			reply: "Here are three steps to try tonight. Shall I expand the plan?",
			want:  model.CategorySolution,
		},
		{
			name:  "probe marker wins over solution marker when both present",
			reply: "How do you feel about trying these steps?",
			want:  model.CategoryProbe,
		},
		{
			name:  "refusal takes precedence over solution",
			reply: "I cannot assist with tax advice. Try this plan for stress instead.",
			want:  model.CategoryRefusal,
		},
		{
			name:  "neutral statement",
			reply: "That sounds really difficult, and it makes sense you feel tired.",
			want:  model.CategoryNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.reply))
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"explicit self-harm intent", "I want to kill myself", true},
		{"hyphenated keyword", "I've been thinking about self-harm", true},
		{"case-insensitive", "SUICIDE has been on my mind", true},
		{"negated statement still triggers by policy", "I would never hurt myself", true},
		{"benign statement", "I love myself", false},
		{"empty input", "", false},
		{"ordinary stress", "work has been exhausting lately", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.input))
		})
	}
}
