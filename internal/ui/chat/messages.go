// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/tombot/chat-therapy-tui/internal/session"
)

// =============================================================================
// TURN MESSAGES
// =============================================================================

// TurnDoneMsg signals that the session engine finished processing a turn.
// Err is only set for local failures (e.g. empty input); upstream errors are
// carried inside Result.
type TurnDoneMsg struct {
	Result *session.TurnResult
	Err    error
}

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamTickMsg drives the periodic drain of the streaming buffer into the
// viewport while a segmented reply is arriving.
type StreamTickMsg struct {
	Time time.Time
}

// =============================================================================
// EXPORT MESSAGES
// =============================================================================

// ExportDoneMsg reports the outcome of a transcript export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// noticeExpireMsg clears the transient status notice.
type noticeExpireMsg struct{}
