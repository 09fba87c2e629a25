// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session orchestrates a single conversation: it owns the transcript,
// runs crisis detection on user input, composes the model prompt, calls the
// completion backend, classifies the reply, and records both sides of the
// exchange.
//
// The engine is the seam between the UI layers (TUI, one-shot ask, REPL) and
// everything below them. All of those front ends drive the same ProcessTurn
// path, so conversation semantics live here exactly once.
package session
