package revgeo

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pergazuz/thai-map/internal/resilience"
)

// stubProvider implements Provider for chain tests.
type stubProvider struct {
	name      string
	available bool
	result    []string
	err       error
	calls     int
}

func (s *stubProvider) Name() string    { return s.name }
func (s *stubProvider) Available() bool { return s.available }
func (s *stubProvider) ResolveBatch(_ context.Context, coords []Coord) ([]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	out := make([]string, len(coords))
	for i := range out {
		out[i] = s.name
	}
	return out, nil
}

// mapCache implements Cache in memory.
type mapCache struct {
	entries map[string]string
	getErr  error
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]string{}} }

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *mapCache) Put(_ context.Context, key, province string) error {
	c.entries[key] = province
	return nil
}

func fastRetry() resilience.RetryConfig {
	return resilience.RetryConfig{MaxAttempts: 2, InitialBackoff: time.Millisecond}
}

func TestResolveBatchEmptyInput(t *testing.T) {
	p := &stubProvider{name: "a", available: true}
	c := NewClient([]Provider{p})

	res := c.ResolveBatch(context.Background(), nil)

	assert.Empty(t, res.Provinces)
	assert.False(t, res.Fallback)
	assert.Zero(t, p.calls, "empty input must not touch providers")
}

func TestResolveBatchFirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", available: true, result: []string{"Chonburi", "Phuket"}}
	second := &stubProvider{name: "second", available: true}
	c := NewClient([]Provider{first, second})

	res := c.ResolveBatch(context.Background(), []Coord{{13.36, 100.98}, {7.88, 98.39}})

	assert.Equal(t, []string{"Chonburi", "Phuket"}, res.Provinces)
	assert.Equal(t, "first", res.Source)
	assert.False(t, res.Fallback)
	assert.Zero(t, second.calls)
}

func TestResolveBatchChainAdvancesOnFailure(t *testing.T) {
	first := &stubProvider{name: "first", available: true, err: eris.New("boom")}
	second := &stubProvider{name: "second", available: true, result: []string{"Rayong"}}
	c := NewClient([]Provider{first, second}, WithRetry(fastRetry()))

	res := c.ResolveBatch(context.Background(), []Coord{{12.68, 101.28}})

	assert.Equal(t, []string{"Rayong"}, res.Provinces)
	assert.Equal(t, "second", res.Source)
	assert.False(t, res.Fallback)
	assert.Equal(t, 1, first.calls, "non-transient errors are not retried")
}

func TestResolveBatchLengthMismatchAdvancesChain(t *testing.T) {
	short := &stubProvider{name: "short", available: true, result: []string{"Chonburi"}}
	good := &stubProvider{name: "good", available: true, result: []string{"Chonburi", "Trat"}}
	c := NewClient([]Provider{short, good}, WithRetry(fastRetry()))

	res := c.ResolveBatch(context.Background(), []Coord{{13.36, 100.98}, {12.24, 102.51}})

	assert.Equal(t, []string{"Chonburi", "Trat"}, res.Provinces)
	assert.Equal(t, "good", res.Source)
}

func TestResolveBatchAllProvidersFailYieldsSentinels(t *testing.T) {
	broken := &stubProvider{name: "broken", available: true, err: eris.New("transport down")}
	c := NewClient([]Provider{broken}, WithRetry(fastRetry()))

	res := c.ResolveBatch(context.Background(), []Coord{{13.7, 100.5}, {18.7, 98.9}, {7.8, 98.3}})

	assert.Equal(t, []string{Unknown, Unknown, Unknown}, res.Provinces)
	assert.True(t, res.Fallback)
	assert.Equal(t, "fallback", res.Source)
}

func TestResolveBatchSkipsUnavailableProviders(t *testing.T) {
	off := &stubProvider{name: "off", available: false}
	on := &stubProvider{name: "on", available: true, result: []string{"Phayao"}}
	c := NewClient([]Provider{off, on})

	res := c.ResolveBatch(context.Background(), []Coord{{19.16, 99.90}})

	assert.Equal(t, "on", res.Source)
	assert.Zero(t, off.calls)
}

func TestResolveBatchRetriesTransientErrors(t *testing.T) {
	flaky := &stubProvider{
		name:      "flaky",
		available: true,
		err:       resilience.NewTransientError(eris.New("status 503"), 503),
	}
	c := NewClient([]Provider{flaky}, WithRetry(fastRetry()))

	res := c.ResolveBatch(context.Background(), []Coord{{13.7, 100.5}})

	assert.True(t, res.Fallback)
	assert.Equal(t, 2, flaky.calls)
}

func TestResolveBatchBreakerSkipsRepeatOffender(t *testing.T) {
	broken := &stubProvider{name: "broken", available: true, err: eris.New("boom")}
	good := &stubProvider{name: "good", available: true, result: []string{"Phuket"}}
	c := NewClient([]Provider{broken, good},
		WithRetry(fastRetry()),
		WithBreaker(2, time.Minute, time.Minute),
	)

	coords := []Coord{{7.88, 98.39}}
	for i := 0; i < 3; i++ {
		res := c.ResolveBatch(context.Background(), coords)
		assert.Equal(t, "good", res.Source)
	}

	assert.Equal(t, 2, broken.calls, "breaker opens after two failed batches")
	assert.Equal(t, 3, good.calls)
}

func TestResolveBatchSuccessKeepsBreakerClosed(t *testing.T) {
	p := &stubProvider{name: "p", available: true, result: []string{"Trang"}}
	c := NewClient([]Provider{p}, WithBreaker(1, time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		res := c.ResolveBatch(context.Background(), []Coord{{7.56, 99.61}})
		assert.Equal(t, "p", res.Source)
	}
	assert.Equal(t, 3, p.calls)
}

func TestResolveBatchCacheHitSkipsProvider(t *testing.T) {
	cache := newMapCache()
	cache.entries[CacheKey(Coord{13.7, 100.5})] = "Bangkok"
	p := &stubProvider{name: "p", available: true}
	c := NewClient([]Provider{p}, WithCache(cache))

	res := c.ResolveBatch(context.Background(), []Coord{{13.7, 100.5}})

	assert.Equal(t, []string{"Bangkok"}, res.Provinces)
	assert.Equal(t, "cache", res.Source)
	assert.Zero(t, p.calls)
}

func TestResolveBatchMergesCacheAndProvider(t *testing.T) {
	cache := newMapCache()
	cache.entries[CacheKey(Coord{13.7, 100.5})] = "Bangkok"
	p := &stubProvider{name: "p", available: true, result: []string{"Chiang Mai"}}
	c := NewClient([]Provider{p}, WithCache(cache))

	res := c.ResolveBatch(context.Background(), []Coord{{13.7, 100.5}, {18.78, 98.98}})

	require.Equal(t, []string{"Bangkok", "Chiang Mai"}, res.Provinces)
	assert.Equal(t, "p", res.Source)

	// The provider result landed in the cache for next time.
	assert.Equal(t, "Chiang Mai", cache.entries[CacheKey(Coord{18.78, 98.98})])
}

func TestResolveBatchDoesNotCacheSentinels(t *testing.T) {
	cache := newMapCache()
	p := &stubProvider{name: "p", available: true, result: []string{Unknown, "Phuket"}}
	c := NewClient([]Provider{p}, WithCache(cache))

	res := c.ResolveBatch(context.Background(), []Coord{{0, 0}, {7.88, 98.39}})

	assert.Equal(t, []string{Unknown, "Phuket"}, res.Provinces)
	assert.NotContains(t, cache.entries, CacheKey(Coord{0, 0}))
	assert.Equal(t, "Phuket", cache.entries[CacheKey(Coord{7.88, 98.39})])
}

func TestResolveBatchCacheErrorIsAMiss(t *testing.T) {
	cache := newMapCache()
	cache.getErr = eris.New("redis down")
	p := &stubProvider{name: "p", available: true, result: []string{"Krabi"}}
	c := NewClient([]Provider{p}, WithCache(cache))

	res := c.ResolveBatch(context.Background(), []Coord{{8.08, 98.90}})

	assert.Equal(t, []string{"Krabi"}, res.Provinces)
	assert.Equal(t, "p", res.Source)
}

func TestCacheKeyRounding(t *testing.T) {
	assert.Equal(t, "13.756,100.502", CacheKey(Coord{13.75631, 100.50177}))
	assert.Equal(t, CacheKey(Coord{13.7563, 100.5018}), CacheKey(Coord{13.75631, 100.50177}))
}
