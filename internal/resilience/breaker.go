package resilience

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Breaker trips after repeated failures within a window and stays open for a
// cooldown, letting callers skip a dead upstream instead of waiting out its
// timeouts. After the cooldown the next call probes it again.
type Breaker struct {
	mu          sync.Mutex
	name        string
	threshold   int
	window      time.Duration
	cooldown    time.Duration
	failures    int
	lastFailure time.Time
	openUntil   time.Time

	now func() time.Time
}

// NewBreaker trips after threshold failures inside window, then rejects
// calls for cooldown. name only appears in logs.
func NewBreaker(name string, threshold int, window, cooldown time.Duration) *Breaker {
	return &Breaker{
		name:      name,
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed. While the cooldown is running it
// returns false; once it has elapsed the breaker lets calls through again and
// the next failure trips it immediately.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.now().Before(b.openUntil)
}

// Record feeds a call outcome into the breaker. A nil error closes it and
// clears the failure count.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.failures = 0
		b.openUntil = time.Time{}
		return
	}

	now := b.now()
	if now.Sub(b.lastFailure) > b.window {
		b.failures = 0
	}
	b.failures++
	b.lastFailure = now
	if b.failures >= b.threshold {
		b.openUntil = now.Add(b.cooldown)
		zap.L().Warn("resilience: breaker opened",
			zap.String("upstream", b.name),
			zap.Int("failures", b.failures),
			zap.Duration("cooldown", b.cooldown),
		)
	}
}

// BreakerSet hands out one Breaker per upstream name, all sharing the same
// thresholds.
type BreakerSet struct {
	mu        sync.Mutex
	breakers  map[string]*Breaker
	threshold int
	window    time.Duration
	cooldown  time.Duration
}

// NewBreakerSet creates a registry whose breakers all use the given settings.
func NewBreakerSet(threshold int, window, cooldown time.Duration) *BreakerSet {
	return &BreakerSet{
		breakers:  make(map[string]*Breaker),
		threshold: threshold,
		window:    window,
		cooldown:  cooldown,
	}
}

// Get returns the breaker for name, creating it on first use.
func (s *BreakerSet) Get(name string) *Breaker {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breakers[name]
	if !ok {
		b = NewBreaker(name, s.threshold, s.window, s.cooldown)
		s.breakers[name] = b
	}
	return b
}
