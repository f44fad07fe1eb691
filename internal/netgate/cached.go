package netgate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alexanderramin/faqbot/internal/cache"
	"github.com/rs/zerolog"
)

// CachedGate reuses a recent Status for ttl instead of probing on every
// request. Cache errors fall back to a live probe.
type CachedGate struct {
	inner Checker
	store cache.Client
	ttl   time.Duration
	key   string
	log   zerolog.Logger
}

// NewCachedGate wraps g so that verdicts are kept in store for ttl.
func NewCachedGate(g *Gate, store cache.Client, ttl time.Duration, log zerolog.Logger) *CachedGate {
	return &CachedGate{
		inner: g,
		store: store,
		ttl:   ttl,
		key:   cache.Key("netgate", g.Config().Address),
		log:   log,
	}
}

// Available returns the cached verdict or probes and stores a new one.
func (c *CachedGate) Available(ctx context.Context) bool {
	return c.Probe(ctx).Available
}

// Probe returns the cached Status when fresh.
func (c *CachedGate) Probe(ctx context.Context) Status {
	raw, err := c.store.Get(ctx, c.key)
	if err == nil {
		var st Status
		if jerr := json.Unmarshal(raw, &st); jerr == nil {
			return st
		}
		c.log.Warn().Str("key", c.key).Msg("discarding unreadable cached probe status")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.log.Warn().Err(err).Msg("probe cache read failed")
	}

	st := c.inner.Probe(ctx)
	data, err := json.Marshal(st)
	if err != nil {
		return st
	}
	if err := c.store.Set(ctx, c.key, data, c.ttl); err != nil {
		c.log.Warn().Err(err).Msg("probe cache write failed")
	}
	return st
}

// Invalidate drops the cached verdict.
func (c *CachedGate) Invalidate(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}
