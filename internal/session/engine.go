// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tombot/chat-therapy-tui/internal/classify"
	"github.com/tombot/chat-therapy-tui/internal/groq"
	"github.com/tombot/chat-therapy-tui/internal/model"
	"github.com/tombot/chat-therapy-tui/internal/prompt"
	"github.com/tombot/chat-therapy-tui/internal/util"
	"github.com/tombot/chat-therapy-tui/internal/window"
)

// ErrorReplyPrefix starts the synthetic assistant turn recorded when the
// completion backend fails. The transcript keeps its user-assistant
// alternation even across upstream outages.
const ErrorReplyPrefix = "[error contacting model]"

// emptyReplyPlaceholder stands in for a completion that came back blank.
const emptyReplyPlaceholder = "…"

// =============================================================================
// COMPLETION BACKEND
// =============================================================================

// Completer abstracts the completion backend so the engine can be exercised
// without the network.
type Completer interface {
	// Complete returns the full reply for the given system instructions and
	// composed prompt.
	Complete(ctx context.Context, system, promptText string) (string, error)

	// CompleteStream streams the reply, invoking onDelta for each content
	// fragment in arrival order, and returns the accumulated full text.
	CompleteStream(ctx context.Context, system, promptText string, onDelta func(string)) (string, error)
}

// GroqCompleter adapts the Groq client to the Completer interface.
type GroqCompleter struct {
	client *groq.Client
	opts   *groq.Options
}

// NewGroqCompleter creates a completer backed by the given Groq client.
func NewGroqCompleter(client *groq.Client, opts *groq.Options) *GroqCompleter {
	return &GroqCompleter{client: client, opts: opts}
}

// Complete sends a non-streaming completion request.
func (g *GroqCompleter) Complete(ctx context.Context, system, promptText string) (string, error) {
	resp, err := g.client.Chat(ctx, completionMessages(system, promptText), g.opts)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// CompleteStream sends a streaming completion request. Partial content
// reaches onDelta as it arrives; the returned string is the concatenation of
// every delta.
func (g *GroqCompleter) CompleteStream(ctx context.Context, system, promptText string, onDelta func(string)) (string, error) {
	acc := groq.NewStreamAccumulator()

	err := g.client.ChatStream(ctx, completionMessages(system, promptText), g.opts, func(chunk groq.StreamChunk) {
		acc.Add(chunk)
		if chunk.Content != "" && onDelta != nil {
			onDelta(chunk.Content)
		}
	})
	if err != nil {
		return acc.Content(), err
	}
	if accErr := acc.Err(); accErr != nil {
		return acc.Content(), accErr
	}
	return acc.Content(), nil
}

func completionMessages(system, promptText string) []groq.Message {
	return []groq.Message{
		groq.NewSystemMessage(system),
		groq.NewUserMessage(promptText),
	}
}

// =============================================================================
// SESSION ENGINE
// =============================================================================

// Config holds configuration for a conversation session.
type Config struct {
	// MaxTurns bounds how many prior turns the composed prompt may include
	// (default: window.DefaultMaxTurns).
	MaxTurns int

	// Mode is the initial reply style (default: ModeConcise).
	Mode prompt.Mode

	// Logger receives debug-level engine events (default: no-op).
	Logger *zap.Logger
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		MaxTurns: window.DefaultMaxTurns,
		Mode:     prompt.ModeConcise,
	}
}

// Session owns one conversation: the transcript, the active reply mode, and
// the completion backend.
type Session struct {
	mu sync.Mutex

	id         string
	transcript *model.Transcript
	composer   *prompt.Composer
	completer  Completer
	mode       prompt.Mode
	logger     *zap.Logger
}

// New creates a session around the given completion backend.
func New(completer Completer, cfg Config) *Session {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = window.DefaultMaxTurns
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Session{
		id:         uuid.NewString(),
		transcript: model.NewTranscript(),
		composer:   prompt.NewComposer(cfg.MaxTurns),
		completer:  completer,
		mode:       cfg.Mode,
		logger:     cfg.Logger,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Transcript returns the session transcript.
func (s *Session) Transcript() *model.Transcript {
	return s.transcript
}

// Mode returns the active reply mode.
func (s *Session) Mode() prompt.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches the reply mode for subsequent turns.
func (s *Session) SetMode(m prompt.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

// ToggleMode flips between the two reply modes and returns the new one.
func (s *Session) ToggleMode() prompt.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Toggle()
	return s.mode
}

// Reset clears the transcript and restores the default reply mode.
// Sequence numbering restarts from zero.
func (s *Session) Reset() {
	s.mu.Lock()
	s.mode = prompt.ModeConcise
	s.mu.Unlock()
	s.transcript.Clear()
	s.logger.Debug("session reset", zap.String("session_id", s.id))
}

// =============================================================================
// TURN PROCESSING
// =============================================================================

// TurnResult reports the outcome of one processed turn.
type TurnResult struct {
	// Crisis is true when the user input matched the crisis lexicon. The
	// turn is still processed normally; callers surface the support notice
	// alongside the reply.
	Crisis bool

	// UserTurn is the recorded user turn.
	UserTurn *model.Turn

	// AssistantTurn is the recorded reply turn. On upstream failure it holds
	// the synthetic error turn.
	AssistantTurn *model.Turn

	// Category is the classification of the reply.
	Category model.Category

	// UpstreamErr is the backend error, if any. The turn result is still
	// complete when it is set.
	UpstreamErr error
}

// ProcessTurn runs one full exchange: detect crisis language, record the user
// turn, compose the prompt from the history that preceded it, obtain the
// reply, classify it, and record it.
//
// onDelta, when non-nil and the mode streams, receives partial reply content
// as it arrives. Classification always happens on the completed reply, never
// on a partial prefix.
//
// Backend failures do not return an error: a synthetic assistant turn is
// recorded and the failure is reported through TurnResult.UpstreamErr, so the
// transcript stays well-formed.
func (s *Session) ProcessTurn(ctx context.Context, input string, onDelta func(string)) (*TurnResult, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, fmt.Errorf("empty input")
	}

	mode := s.Mode()
	result := &TurnResult{
		Crisis: classify.Detect(trimmed),
	}

	// Snapshot history before recording the new turn so the prompt carries
	// the latest query exactly once.
	history := s.transcript.All()
	result.UserTurn = s.transcript.AppendUser(trimmed)

	promptText := s.composer.Compose(history, trimmed, mode)

	s.logger.Debug("processing turn",
		zap.String("session_id", s.id),
		zap.Int("seq", result.UserTurn.Seq),
		zap.String("mode", mode.String()),
		zap.Bool("crisis", result.Crisis))

	reply, err := s.complete(ctx, promptText, mode, onDelta)
	if err != nil {
		s.logger.Debug("completion failed",
			zap.String("session_id", s.id),
			zap.Error(err))

		result.UpstreamErr = err
		result.Category = model.CategoryNone
		result.AssistantTurn = s.transcript.AppendAssistant(
			fmt.Sprintf("%s %v", ErrorReplyPrefix, err), model.CategoryNone)
		return result, nil
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		result.Category = model.CategoryRefusal
		result.AssistantTurn = s.transcript.AppendAssistant(emptyReplyPlaceholder, model.CategoryRefusal)
		return result, nil
	}

	result.Category = classify.Classify(reply)
	result.AssistantTurn = s.transcript.AppendAssistant(reply, result.Category)

	s.logger.Debug("turn completed",
		zap.String("session_id", s.id),
		zap.String("category", result.Category.String()),
		zap.String("reply_preview", util.TruncateRunes(reply, 80)))

	return result, nil
}

// complete dispatches to the streaming or non-streaming backend path.
// Concise mode always completes in one shot; segmented mode streams when the
// caller wants deltas.
func (s *Session) complete(ctx context.Context, promptText string, mode prompt.Mode, onDelta func(string)) (string, error) {
	if mode == prompt.ModeSegmented && onDelta != nil {
		return s.completer.CompleteStream(ctx, prompt.SystemPrompt, promptText, onDelta)
	}
	return s.completer.Complete(ctx, prompt.SystemPrompt, promptText)
}
