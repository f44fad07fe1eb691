// Package assistant is the chatbot facade: it normalizes a query, runs the
// response selector, decorates the answer and records the turn.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/faqbot/internal/app"
	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/intelligence"
	"github.com/alexanderramin/faqbot/internal/matching"
	"github.com/alexanderramin/faqbot/internal/session"
)

// DefaultSessionID is used when a caller does not name a session.
const DefaultSessionID = "default"

// recoveredConfidence is reported when a turn panicked.
const recoveredConfidence = 0.5

// historyForSelection is how many recent turns the selector sees.
const historyForSelection = 3

// Assistant implements app.Assistant. It is safe for concurrent use; turns
// of the same session are serialized.
type Assistant struct {
	selector *intelligence.Selector
	enhancer *intelligence.Enhancer
	sessions *session.Store
	log      zerolog.Logger
}

var _ app.Assistant = (*Assistant)(nil)

// Option configures an Assistant.
type Option func(*Assistant)

func WithSessions(s *session.Store) Option {
	return func(a *Assistant) { a.sessions = s }
}

func WithEnhancer(e *intelligence.Enhancer) Option {
	return func(a *Assistant) { a.enhancer = e }
}

func WithLogger(log zerolog.Logger) Option {
	return func(a *Assistant) { a.log = log }
}

// New builds an Assistant around selector.
func New(selector *intelligence.Selector, opts ...Option) *Assistant {
	a := &Assistant{
		selector: selector,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.enhancer == nil {
		a.enhancer = intelligence.NewEnhancer(nil)
	}
	if a.sessions == nil {
		a.sessions = session.NewStore()
	}
	return a
}

// Respond answers query within session sessionID. It never fails: a panic
// in any stage becomes a low-confidence response carrying the message.
func (a *Assistant) Respond(ctx context.Context, sessionID, query string) (resp domain.Response) {
	sessionID = normalizeID(sessionID)
	conv, release := a.sessions.Acquire(sessionID)
	defer release()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Str("session_id", sessionID).Interface("panic", r).Msg("response generation panicked")
			resp = domain.Response{
				Text:       fmt.Sprintf("I encountered an error: %v", r),
				Confidence: recoveredConfidence,
				References: []string{},
				Context:    map[string]string{"stage": string(domain.StageRecovered)},
			}
		}
	}()

	q := matching.NewQuery(query)
	sel := a.selector.Select(ctx, q, conv.Recent(historyForSelection))

	resp = sel.Response
	resp.Text = a.enhancer.Enhance(conv, sel.Response.Text, query, sel.Topic)
	resp.Confidence = domain.Clamp01(resp.Confidence)

	a.log.Debug().
		Str("session_id", sessionID).
		Str("stage", string(sel.Stage)).
		Str("topic", sel.Topic).
		Float64("confidence", resp.Confidence).
		Dur("elapsed", time.Since(start)).
		Msg("responded")
	return resp
}

// Greet returns one of the greeting variants.
func (a *Assistant) Greet() string {
	return a.enhancer.Greet()
}

// Farewell summarizes the session and then resets it.
func (a *Assistant) Farewell(sessionID string) string {
	conv, release := a.sessions.Acquire(normalizeID(sessionID))
	defer release()

	msg := a.enhancer.Farewell(conv)
	conv.Reset()
	return msg
}

// Reset clears a session's context.
func (a *Assistant) Reset(sessionID string) {
	a.sessions.Reset(normalizeID(sessionID))
}

// History returns a copy of the session's recent turns, oldest first.
func (a *Assistant) History(sessionID string) []domain.Turn {
	return a.sessions.History(normalizeID(sessionID))
}

// Sessions exposes the session store, mainly for the janitor.
func (a *Assistant) Sessions() *session.Store {
	return a.sessions
}

func normalizeID(id string) string {
	if id == "" {
		return DefaultSessionID
	}
	return id
}
