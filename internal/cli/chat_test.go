// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombot/chat-therapy-tui/internal/prompt"
	"github.com/tombot/chat-therapy-tui/internal/session"
)

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

func (s *stubCompleter) CompleteStream(_ context.Context, _, _ string, onDelta func(string)) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if onDelta != nil {
		onDelta(s.reply)
	}
	return s.reply, nil
}

func TestRunChatTurn_PrintsReply(t *testing.T) {
	sess := session.New(&stubCompleter{reply: "That sounds heavy."}, session.DefaultConfig())

	var out, errOut bytes.Buffer
	code := runChatTurn(&out, &errOut, sess, "rough week")

	assert.Zero(t, code)
	assert.Contains(t, out.String(), "That sounds heavy.")
	assert.Empty(t, errOut.String())
}

func TestRunChatTurn_StreamsSegmentedReply(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Mode = prompt.ModeSegmented
	sess := session.New(&stubCompleter{reply: "TL;DR: rest."}, cfg)

	var out, errOut bytes.Buffer
	code := runChatTurn(&out, &errOut, sess, "rough week")

	assert.Zero(t, code)
	assert.Contains(t, out.String(), "TL;DR: rest.")
}

func TestRunChatTurn_StreamingFailureShowsErrorReply(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Mode = prompt.ModeSegmented
	sess := session.New(&stubCompleter{err: errors.New("connection refused")}, cfg)

	var out, errOut bytes.Buffer
	code := runChatTurn(&out, &errOut, sess, "rough week")

	assert.Equal(t, 1, code)
	// The stream produced nothing, so the recorded error turn is the only
	// visible output.
	assert.Contains(t, errOut.String(), session.ErrorReplyPrefix)
	assert.Contains(t, errOut.String(), "connection refused")

	require.Equal(t, 2, sess.Transcript().Len())
}

func TestRunChatTurn_CrisisNoticeAccompaniesReply(t *testing.T) {
	sess := session.New(&stubCompleter{reply: "You are not alone."}, session.DefaultConfig())

	var out, errOut bytes.Buffer
	code := runChatTurn(&out, &errOut, sess, "I want to hurt myself")

	assert.Zero(t, code)
	assert.Contains(t, out.String(), "You are not alone.")
	assert.Contains(t, out.String(), "988")
}
