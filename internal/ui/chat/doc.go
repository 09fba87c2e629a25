// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// The package follows the Bubble Tea model-update-view cycle. One turn flows
// through it as: user submits input, the session engine runs in a command
// goroutine, streamed reply fragments land in a thread-safe buffer, a capped
// tick drains the buffer into the viewport, and the completed turn replaces
// the streaming preview.
//
// Input is blocked while a reply is pending. The crisis banner, once shown,
// stays up for the remainder of the conversation.
package chat
