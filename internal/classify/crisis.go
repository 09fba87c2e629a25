// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package classify

import "strings"

// crisisKeywords trigger the safety banner. The first four entries are the
// policy minimum and must never be removed. Matching is plain substring with
// no negation handling: over-triggering a supportive banner on a negated
// statement is preferred to missing a real risk signal.
var crisisKeywords = []string{
	"suicide",
	"self-harm",
	"kill myself",
	"hurt myself",
	"end my life",
	"harm myself",
}

// CrisisMessage is the banner text shown when Detect fires.
const CrisisMessage = "If you're in danger or considering self-harm, call 988 (U.S.) or your local emergency services immediately."

// Detect reports whether user input contains crisis language. It runs on
// raw user input before the model is invoked, so the banner can never be
// skipped by an upstream failure.
func Detect(userText string) bool {
	t := strings.ToLower(userText)
	for _, k := range crisisKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
