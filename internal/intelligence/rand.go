package intelligence

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand picks among near-duplicate canned strings. Variation is for tone
// only; tests inject a fixed source and assert on the chosen index.
type Rand interface {
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a goroutine-safe source seeded with seed. Zero seeds
// from the clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// pick returns one of options, or "" when there are none.
func pick(r Rand, options []string) string {
	switch len(options) {
	case 0:
		return ""
	case 1:
		return options[0]
	}
	i := r.IntN(len(options))
	if i < 0 || i >= len(options) {
		i = 0
	}
	return options[i]
}
