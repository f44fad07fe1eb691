// Package session keeps per-session conversation context in memory.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/faqbot/internal/domain"
)

// MaxHistory bounds the number of turns a conversation remembers.
const MaxHistory = 10

// Conversation is the mutable context of one chat session. Its fields are
// only touched while the session lock from Store.Acquire is held.
type Conversation struct {
	mu       sync.Mutex
	lastSeen atomic.Int64

	ID               string
	LastQuery        string
	LastResponse     string
	InteractionCount int
	History          []domain.Turn
	CurrentTopic     string
	Preferences      map[string]string
	CreatedAt        time.Time
}

// NewConversation returns an empty conversation.
func NewConversation(id string, now time.Time) *Conversation {
	c := &Conversation{
		ID:          id,
		Preferences: make(map[string]string),
		CreatedAt:   now,
	}
	c.lastSeen.Store(now.UnixNano())
	return c
}

// Record appends a turn, dropping the oldest beyond MaxHistory, and bumps
// the interaction count.
func (c *Conversation) Record(query, response, topic string, at time.Time) {
	c.InteractionCount++
	c.LastQuery = query
	c.LastResponse = response
	if topic != "" {
		c.CurrentTopic = topic
	}
	c.History = append(c.History, domain.Turn{
		Query:     query,
		Response:  response,
		Topic:     topic,
		Timestamp: at,
	})
	if over := len(c.History) - MaxHistory; over > 0 {
		c.History = append(c.History[:0:0], c.History[over:]...)
	}
}

// Recent returns a copy of the last n turns, oldest first.
func (c *Conversation) Recent(n int) []domain.Turn {
	if n <= 0 || len(c.History) == 0 {
		return nil
	}
	if n > len(c.History) {
		n = len(c.History)
	}
	out := make([]domain.Turn, n)
	copy(out, c.History[len(c.History)-n:])
	return out
}

// Reset clears everything except the identity of the session.
func (c *Conversation) Reset() {
	c.LastQuery = ""
	c.LastResponse = ""
	c.InteractionCount = 0
	c.History = nil
	c.CurrentTopic = ""
	c.Preferences = make(map[string]string)
}

func (c *Conversation) touch(now time.Time) {
	c.lastSeen.Store(now.UnixNano())
}

func (c *Conversation) idleSince() time.Time {
	return time.Unix(0, c.lastSeen.Load())
}
