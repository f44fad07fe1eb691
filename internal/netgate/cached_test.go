package netgate

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/faqbot/internal/cache"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedGate_ReusesVerdict(t *testing.T) {
	probe, calls := scriptedProbe(20 * time.Millisecond)
	g := New(Config{Address: "example.test:443"}, WithProbe(probe))
	store := cache.NewMemoryClient(10)
	defer store.Close()

	cg := NewCachedGate(g, store, time.Minute, zerolog.Nop())
	ctx := context.Background()

	assert.True(t, cg.Available(ctx))
	assert.True(t, cg.Available(ctx))
	assert.Equal(t, int32(3), calls.Load(), "second call served from cache")

	st := cg.Probe(ctx)
	assert.Equal(t, 20*time.Millisecond, st.Median)
}

func TestCachedGate_Invalidate(t *testing.T) {
	probe, calls := scriptedProbe(errRefused)
	g := New(Config{Address: "example.test:443"}, WithProbe(probe))
	store := cache.NewMemoryClient(10)
	defer store.Close()

	cg := NewCachedGate(g, store, time.Minute, zerolog.Nop())
	ctx := context.Background()

	assert.False(t, cg.Available(ctx))
	require.NoError(t, cg.Invalidate(ctx))
	assert.False(t, cg.Available(ctx))
	assert.Equal(t, int32(6), calls.Load())
}

func TestCachedGate_CorruptEntryReprobes(t *testing.T) {
	probe, calls := scriptedProbe(20 * time.Millisecond)
	g := New(Config{Address: "example.test:443"}, WithProbe(probe))
	store := cache.NewMemoryClient(10)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, cache.Key("netgate", "example.test:443"), []byte("{not json"), time.Minute))

	cg := NewCachedGate(g, store, time.Minute, zerolog.Nop())
	assert.True(t, cg.Available(ctx))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWatch_ReportsUntilCancelled(t *testing.T) {
	probe, _ := scriptedProbe(5 * time.Millisecond)
	g := New(Config{}, WithProbe(probe))

	ctx, cancel := context.WithCancel(context.Background())
	var reports []Status
	done := make(chan struct{})
	go func() {
		Watch(ctx, g, 10*time.Millisecond, func(st Status) {
			reports = append(reports, st)
			if len(reports) == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.GreaterOrEqual(t, len(reports), 3)
	assert.True(t, reports[0].Available)
}

func TestFresh_BypassesCachedVerdict(t *testing.T) {
	probe, calls := scriptedProbe(20*time.Millisecond, 20*time.Millisecond, 20*time.Millisecond, errRefused)
	g := New(Config{Address: "example.test:443"}, WithProbe(probe))
	store := cache.NewMemoryClient(10)
	defer store.Close()

	cg := NewCachedGate(g, store, time.Minute, zerolog.Nop())
	ctx := context.Background()

	require.True(t, cg.Available(ctx))
	st := Fresh(ctx, cg)
	assert.False(t, st.Available)
	assert.Equal(t, int32(6), calls.Load())

	assert.False(t, cg.Available(ctx), "fresh verdict is cached for other readers")
	assert.Equal(t, int32(6), calls.Load())
}

func TestWatch_DialsEveryTickThroughCache(t *testing.T) {
	probe, calls := scriptedProbe(5 * time.Millisecond)
	g := New(Config{Address: "example.test:443"}, WithProbe(probe))
	store := cache.NewMemoryClient(10)
	defer store.Close()
	cg := NewCachedGate(g, store, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	reports := 0
	done := make(chan struct{})
	go func() {
		Watch(ctx, cg, 5*time.Millisecond, func(Status) {
			reports++
			if reports == 3 {
				cancel()
			}
		})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
	assert.GreaterOrEqual(t, reports, 3)
	assert.Equal(t, int32(9), calls.Load(), "each of the first three reports dials every attempt")
}
