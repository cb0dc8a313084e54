// Package revgeo resolves coordinates to Thai province names through an
// ordered provider chain. Providers may fail; the Client never does: total
// failure degrades to the Unknown sentinel per slot so import pipelines
// always proceed.
package revgeo

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/internal/resilience"
)

// Unknown is the sentinel province filled in when resolution fails.
const Unknown = "Unknown"

// Coord is one coordinate pair awaiting resolution.
type Coord struct {
	Lat float64
	Lng float64
}

// Resolution is the outcome of a batch resolve. Provinces always matches the
// input in length and order. Fallback marks a degraded result in which one or
// more slots carry the Unknown sentinel because every provider failed.
type Resolution struct {
	Provinces []string
	Source    string
	Fallback  bool
}

// Provider is a single resolution backend. Implementations may return errors;
// the Client owns the fallback contract.
type Provider interface {
	Name() string
	Available() bool
	ResolveBatch(ctx context.Context, coords []Coord) ([]string, error)
}

// Cache stores resolved provinces keyed by rounded coordinates. Errors are
// treated as misses.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, province string) error
}

// CacheKey rounds a coordinate to ~110 m so nearby lookups share an entry.
func CacheKey(c Coord) string {
	return fmt.Sprintf("%.3f,%.3f", c.Lat, c.Lng)
}

// Client resolves batches through the provider chain, first hit wins.
type Client struct {
	providers []Provider
	cache     Cache
	retry     resilience.RetryConfig
	breakers  *resilience.BreakerSet
}

// Option configures the Client.
type Option func(*Client)

// WithCache enables the resolution cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithRetry overrides the per-provider retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithBreaker overrides the per-provider circuit breaker settings.
func WithBreaker(threshold int, window, cooldown time.Duration) Option {
	return func(c *Client) {
		c.breakers = resilience.NewBreakerSet(threshold, window, cooldown)
	}
}

// NewClient creates a Client that tries providers in order. Each provider
// gets its own circuit breaker: three failed batches within 30s open it for
// a minute, during which the chain skips straight to the next provider.
func NewClient(providers []Provider, opts ...Option) *Client {
	c := &Client{
		providers: providers,
		retry:     resilience.DefaultRetryConfig(),
		breakers:  resilience.NewBreakerSet(3, 30*time.Second, time.Minute),
	}
	c.retry.MaxAttempts = 2
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveBatch resolves every coordinate. Empty input returns an empty
// resolution without touching any provider. Cached slots are served locally;
// the remaining ones go to the first provider that answers with a slice of
// the right length. When the whole chain fails, unresolved slots are filled
// with Unknown and Fallback is set; no error is ever returned.
func (c *Client) ResolveBatch(ctx context.Context, coords []Coord) Resolution {
	if len(coords) == 0 {
		return Resolution{Provinces: []string{}, Source: "none"}
	}

	provinces := make([]string, len(coords))
	var missIdx []int
	for i, coord := range coords {
		if cached, ok := c.cacheGet(ctx, coord); ok {
			provinces[i] = cached
			continue
		}
		missIdx = append(missIdx, i)
	}

	if len(missIdx) == 0 {
		return Resolution{Provinces: provinces, Source: "cache"}
	}

	missCoords := make([]Coord, len(missIdx))
	for j, i := range missIdx {
		missCoords[j] = coords[i]
	}

	for _, p := range c.providers {
		if !p.Available() {
			continue
		}
		breaker := c.breakers.Get(p.Name())
		if !breaker.Allow() {
			zap.L().Debug("revgeo: provider breaker open, skipping",
				zap.String("provider", p.Name()),
			)
			continue
		}

		retry := c.retry
		if retry.OnRetry == nil {
			retry.OnRetry = resilience.RetryLogger(p.Name())
		}
		resolved, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]string, error) {
			return p.ResolveBatch(ctx, missCoords)
		})
		if err != nil {
			breaker.Record(err)
			zap.L().Warn("revgeo: provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.Int("coords", len(missCoords)),
				zap.Error(err),
			)
			continue
		}
		if len(resolved) != len(missCoords) {
			breaker.Record(eris.Errorf("revgeo: want %d provinces, got %d", len(missCoords), len(resolved)))
			zap.L().Warn("revgeo: provider returned wrong length, trying next",
				zap.String("provider", p.Name()),
				zap.Int("want", len(missCoords)),
				zap.Int("got", len(resolved)),
			)
			continue
		}
		breaker.Record(nil)

		for j, i := range missIdx {
			provinces[i] = resolved[j]
			c.cachePut(ctx, coords[i], resolved[j])
		}
		return Resolution{Provinces: provinces, Source: p.Name()}
	}

	// Every provider failed. Cached slots keep their values, the rest get
	// the sentinel.
	for _, i := range missIdx {
		provinces[i] = Unknown
	}
	return Resolution{Provinces: provinces, Source: "fallback", Fallback: true}
}

func (c *Client) cacheGet(ctx context.Context, coord Coord) (string, bool) {
	if c.cache == nil {
		return "", false
	}
	val, ok, err := c.cache.Get(ctx, CacheKey(coord))
	if err != nil || !ok || val == "" || val == Unknown {
		return "", false
	}
	return val, true
}

func (c *Client) cachePut(ctx context.Context, coord Coord, province string) {
	if c.cache == nil || province == "" || province == Unknown {
		return
	}
	if err := c.cache.Put(ctx, CacheKey(coord), province); err != nil {
		zap.L().Debug("revgeo: cache put failed", zap.Error(err))
	}
}
