// Package netgate decides whether the network path to the AI backend is
// healthy enough to attempt an escalation.
package netgate

import (
	"context"
	"net"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Config holds probe parameters.
type Config struct {
	Address   string        `yaml:"address"`   // host:port of the AI endpoint
	Attempts  int           `yaml:"attempts"`  // sequential dials per check
	Timeout   time.Duration `yaml:"timeout"`   // per dial
	Threshold time.Duration `yaml:"threshold"` // median must be strictly below
	CacheTTL  time.Duration `yaml:"cache_ttl"` // 0 probes on every request
}

// DefaultConfig returns the probe defaults: three dials of at most one
// second each against api.openai.com:443, healthy below 300ms.
func DefaultConfig() Config {
	return Config{
		Address:   "api.openai.com:443",
		Attempts:  3,
		Timeout:   time.Second,
		Threshold: 300 * time.Millisecond,
	}
}

// ProbeFunc performs one connection attempt and reports its latency.
type ProbeFunc func(ctx context.Context, addr string) (time.Duration, error)

// DialProbe returns a ProbeFunc that opens and immediately closes a TCP
// connection.
func DialProbe(timeout time.Duration) ProbeFunc {
	return func(ctx context.Context, addr string) (time.Duration, error) {
		d := net.Dialer{Timeout: timeout}
		start := time.Now()
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return 0, err
		}
		elapsed := time.Since(start)
		_ = conn.Close()
		return elapsed, nil
	}
}

// Status is the outcome of one check.
type Status struct {
	Address   string          `json:"address"`
	Available bool            `json:"available"`
	Latencies []time.Duration `json:"latencies"`
	Median    time.Duration   `json:"median"`
	Failures  int             `json:"failures"`
	CheckedAt time.Time       `json:"checked_at"`
}

// Checker reports network health.
type Checker interface {
	Available(ctx context.Context) bool
	Probe(ctx context.Context) Status
}

// Gate probes the configured address on every call.
type Gate struct {
	cfg   Config
	probe ProbeFunc
	log   zerolog.Logger
	now   func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithProbe replaces the TCP dialer, mainly for tests.
func WithProbe(p ProbeFunc) Option {
	return func(g *Gate) { g.probe = p }
}

// WithLogger sets the logger used for probe failures.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Gate) { g.log = l }
}

// New creates a Gate. Zero fields in cfg take their defaults.
func New(cfg Config, opts ...Option) *Gate {
	def := DefaultConfig()
	if cfg.Address == "" {
		cfg.Address = def.Address
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = def.Attempts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}

	g := &Gate{cfg: cfg, log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.probe == nil {
		g.probe = DialProbe(cfg.Timeout)
	}
	return g
}

// Config returns the effective configuration.
func (g *Gate) Config() Config { return g.cfg }

// Available reports whether the median latency of the successful dials is
// below the threshold. No successful dial means unavailable.
func (g *Gate) Available(ctx context.Context) bool {
	return g.Probe(ctx).Available
}

// Probe runs the dials sequentially and returns the full status.
func (g *Gate) Probe(ctx context.Context) Status {
	st := Status{Address: g.cfg.Address, CheckedAt: g.now()}
	for i := 0; i < g.cfg.Attempts; i++ {
		if ctx.Err() != nil {
			st.Failures += g.cfg.Attempts - i
			break
		}
		lat, err := g.probe(ctx, g.cfg.Address)
		if err != nil {
			st.Failures++
			g.log.Debug().Err(err).Str("addr", g.cfg.Address).Int("attempt", i+1).Msg("probe failed")
			continue
		}
		st.Latencies = append(st.Latencies, lat)
	}

	med, ok := Median(st.Latencies)
	st.Median = med
	st.Available = ok && med < g.cfg.Threshold
	return st
}

// Median returns the middle latency, averaging the two middle values for
// an even count. ok is false for an empty input.
func Median(latencies []time.Duration) (median time.Duration, ok bool) {
	if len(latencies) == 0 {
		return 0, false
	}
	sorted := slices.Clone(latencies)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
