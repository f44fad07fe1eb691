package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/faqbot/internal/domain"
)

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// Store maps session ids to conversations.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Conversation
	idleTTL  time.Duration
	now      func() time.Time
	log      zerolog.Logger

	// afterLookup runs between finding a conversation and locking it.
	afterLookup func()
}

// Option configures a Store.
type Option func(*Store)

// WithIdleTTL evicts sessions not used for ttl. Zero keeps them forever.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Store) { s.idleTTL = ttl }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger the janitor reports evictions to.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*Conversation),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) getOrCreate(id string) *Conversation {
	s.mu.RLock()
	c, ok := s.sessions[id]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.sessions[id]; ok {
		return c
	}
	c = NewConversation(id, s.now())
	s.sessions[id] = c
	return c
}

// Acquire returns the conversation for id, creating it if needed, and
// locks it. The caller owns the conversation until release is called.
func (s *Store) Acquire(id string) (conv *Conversation, release func()) {
	for {
		c := s.getOrCreate(id)
		if s.afterLookup != nil {
			s.afterLookup()
		}
		c.mu.Lock()
		// The janitor may have evicted c before we locked it.
		if s.live(id, c) {
			c.touch(s.now())
			return c, c.mu.Unlock
		}
		c.mu.Unlock()
	}
}

func (s *Store) live(id string, c *Conversation) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id] == c
}

// History returns a copy of the session's turns, or nil for an unknown id.
func (s *Store) History(id string) []domain.Turn {
	s.mu.RLock()
	c, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Recent(MaxHistory)
}

// Reset clears the session's context. Unknown ids are a no-op.
func (s *Store) Reset(id string) {
	s.mu.RLock()
	c, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	c.mu.Lock()
	c.Reset()
	c.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle removes sessions idle longer than the configured TTL and
// returns how many were dropped. Sessions mid-turn are skipped.
func (s *Store) EvictIdle() int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, c := range s.sessions {
		if !c.idleSince().Before(cutoff) {
			continue
		}
		if !c.mu.TryLock() {
			continue
		}
		if !c.idleSince().Before(cutoff) {
			c.mu.Unlock()
			continue
		}
		delete(s.sessions, id)
		c.mu.Unlock()
		evicted++
	}
	return evicted
}

// RunJanitor calls EvictIdle every interval until ctx is done.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if s.idleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = s.idleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(); n > 0 {
				s.log.Debug().Int("evicted", n).Int("live", s.Len()).Msg("evicted idle sessions")
			}
		}
	}
}
