// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/faqbot/internal/domain"
	"github.com/alexanderramin/faqbot/internal/knowledge"
	"github.com/alexanderramin/faqbot/internal/llm"
	"github.com/alexanderramin/faqbot/internal/netgate"
)

// Knowledge loads the embedded knowledge base or fails the test.
func Knowledge(t testing.TB) *knowledge.Store {
	t.Helper()
	store, err := knowledge.LoadDefault()
	require.NoError(t, err)
	return store
}

// FixedRand always picks the same index, clamped into range.
type FixedRand int

func (r FixedRand) IntN(n int) int {
	switch {
	case int(r) < 0:
		return 0
	case int(r) >= n:
		return n - 1
	default:
		return int(r)
	}
}

// StaticGate reports a fixed network verdict and counts probes.
type StaticGate struct {
	Up     bool
	probes atomic.Int32
}

func (g *StaticGate) Available(ctx context.Context) bool {
	return g.Probe(ctx).Available
}

func (g *StaticGate) Probe(_ context.Context) netgate.Status {
	g.probes.Add(1)
	st := netgate.Status{Address: "static:0", Available: g.Up, CheckedAt: time.Now()}
	if g.Up {
		st.Latencies = []time.Duration{10 * time.Millisecond}
		st.Median = 10 * time.Millisecond
	} else {
		st.Failures = 1
	}
	return st
}

// Probes returns how many times the gate was consulted.
func (g *StaticGate) Probes() int {
	return int(g.probes.Load())
}

var _ netgate.Checker = (*StaticGate)(nil)

// ScriptedLLM replays canned responses in order, repeating the last one,
// and records every request.
type ScriptedLLM struct {
	Responses []string
	Err       error

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (s *ScriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if s.Err != nil {
		return nil, s.Err
	}
	if len(s.Responses) == 0 {
		return &llm.GenerateResponse{Model: "scripted", Attempts: 1}, nil
	}
	text := s.Responses[0]
	if len(s.Responses) > 1 {
		s.Responses = s.Responses[1:]
	}
	return &llm.GenerateResponse{Text: text, Model: "scripted", Attempts: 1}, nil
}

func (s *ScriptedLLM) Available(_ context.Context) bool { return s.Err == nil }

// Requests returns a copy of the recorded requests.
func (s *ScriptedLLM) Requests() []llm.GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.GenerateRequest(nil), s.requests...)
}

// Turn options
type TurnOption func(*domain.Turn)

func WithResponse(r string) TurnOption {
	return func(t *domain.Turn) { t.Response = r }
}

func WithTopic(topic string) TurnOption {
	return func(t *domain.Turn) { t.Topic = topic }
}

func WithTimestamp(ts time.Time) TurnOption {
	return func(t *domain.Turn) { t.Timestamp = ts }
}

// NewTurn builds a history entry with a default response.
func NewTurn(query string, opts ...TurnOption) domain.Turn {
	t := domain.Turn{
		Query:     query,
		Response:  "answer to " + query,
		Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
