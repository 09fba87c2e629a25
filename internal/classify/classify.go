// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package classify derives presentation categories from assistant replies
// and scans user input for crisis language.
//
// Classification is an ordered decision table of (category, lexicon) rules
// evaluated in fixed priority order: refusal > probe > solution > none. The
// first matching rule wins. All matching is case-insensitive substring
// matching; there is no natural-language understanding.
package classify

import (
	"strings"

	"github.com/tombot/chat-therapy-tui/internal/model"
)

// =============================================================================
// LEXICONS
// =============================================================================

// refusalLexicon marks out-of-scope/decline replies. Includes the curly
// apostrophe variants models frequently emit.
var refusalLexicon = []string{
	"out of scope",
	"outside my scope",
	"not in my scope",
	"cannot assist",
	"i can't",
	"i can’t",
	"i cannot",
	"not allowed",
	"not able to help",
	"seek professional help",
	"policy",
	"restriction",
}

// probeLexicon marks clarifying-question replies.
var probeLexicon = []string{
	"could you tell me",
	"can you share",
	"how are you",
	"how do you feel",
	"how does that",
	"what's been",
	"what’s been",
	"when did",
	"what happens when",
}

// solutionLexicon marks actionable-plan replies.
var solutionLexicon = []string{
	"steps",
	"plan",
	"checklist",
	"next actions",
	"recommend",
	"solution",
	"try this",
	"follow these",
	"here's how",
	"here’s how",
	"here is how",
	"actionable",
	"tl;dr",
}

// =============================================================================
// DECISION TABLE
// =============================================================================

// Rule is one row of the classification table: a category and the predicate
// that claims it. Rules are evaluated in order; first match wins.
type Rule struct {
	Category model.Category
	Match    func(lowered string) bool
}

// rules is the fixed-priority decision table. The probe rule is intentionally
// permissive: any reply carrying a question mark and no solution marker
// counts as probing, because avatar selection depends on exactly this
// boundary. Do not narrow it.
var rules = []Rule{
	{
		Category: model.CategoryRefusal,
		Match:    func(t string) bool { return containsAny(t, refusalLexicon) },
	},
	{
		Category: model.CategoryProbe,
		Match: func(t string) bool {
			if !strings.Contains(t, "?") {
				return false
			}
			return containsAny(t, probeLexicon) || !containsAny(t, solutionLexicon)
		},
	},
	{
		Category: model.CategorySolution,
		Match:    func(t string) bool { return containsAny(t, solutionLexicon) },
	},
}

// Classify derives the presentation category for a raw model reply.
//
// An empty or blank reply cannot be trusted to have been substantively
// answered, so it maps to the most restrictive category (refusal).
func Classify(reply string) model.Category {
	t := strings.ToLower(strings.TrimSpace(reply))
	if t == "" {
		return model.CategoryRefusal
	}

	for _, rule := range rules {
		if rule.Match(t) {
			return rule.Category
		}
	}
	return model.CategoryNone
}

// containsAny reports whether t contains any of the keywords.
func containsAny(t string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
