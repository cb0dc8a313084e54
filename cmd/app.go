package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pergazuz/thai-map/internal/resilience"
	"github.com/pergazuz/thai-map/internal/state"
	"github.com/pergazuz/thai-map/internal/store"
	"github.com/pergazuz/thai-map/pkg/anthropic"
	"github.com/pergazuz/thai-map/pkg/revgeo"
)

// appEnv holds the initialized store and state service shared by the
// commands.
type appEnv struct {
	Store   store.Store
	Service *state.Service
}

// Close releases resources held by the environment.
func (ae *appEnv) Close() {
	if ae.Store != nil {
		_ = ae.Store.Close()
	}
}

// initApp validates the config for the given mode, opens and migrates the
// store, and wires the state service. Modes that resolve provinces get the
// provider chain. Callers should defer env.Close().
func initApp(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var opts []state.Option
	if mode == "resolve" || mode == "serve" {
		resolver, err := newResolver(st)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		opts = append(opts, state.WithResolver(resolver))
	}

	return &appEnv{
		Store:   st,
		Service: state.NewService(st, opts...),
	}, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return store.NewSQLite(cfg.Store.SQLitePath)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.PostgresURL, &store.PoolConfig{
			MaxConns: cfg.Store.PoolMaxConns,
			MinConns: cfg.Store.PoolMinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
}

// newResolver builds the provider chain in configured order. A provider
// missing its credentials is skipped, not an error: the chain degrades to the
// next provider at runtime anyway.
func newResolver(st store.Store) (*revgeo.Client, error) {
	var providers []revgeo.Provider
	for _, name := range cfg.Resolver.Providers {
		switch name {
		case "anthropic":
			if cfg.Resolver.Anthropic.Key == "" {
				zap.L().Debug("THAIMAP_RESOLVER_ANTHROPIC_KEY not set, anthropic provider disabled")
				continue
			}
			client := anthropic.NewClient(cfg.Resolver.Anthropic.Key)
			providers = append(providers, revgeo.NewAnthropicProvider(client, cfg.Resolver.Anthropic.Model,
				revgeo.WithAnthropicMaxTokens(cfg.Resolver.Anthropic.MaxTokens)))
		case "nominatim":
			providers = append(providers, revgeo.NewNominatimProvider(
				revgeo.WithNominatimBaseURL(cfg.Resolver.Nominatim.BaseURL),
				revgeo.WithNominatimUserAgent(cfg.Resolver.Nominatim.UserAgent),
				revgeo.WithNominatimRateLimit(cfg.Resolver.Nominatim.RateLimit),
				revgeo.WithNominatimConcurrency(cfg.Resolver.Nominatim.Concurrency),
			))
		case "static":
			providers = append(providers, revgeo.NewStaticProvider())
		default:
			return nil, eris.Errorf("unknown resolver provider: %s", name)
		}
	}

	opts := []revgeo.Option{
		revgeo.WithRetry(resilience.FromMillis(
			cfg.Resolver.Retry.MaxAttempts,
			cfg.Resolver.Retry.InitialBackoffMs,
			cfg.Resolver.Retry.MaxBackoffMs,
		)),
	}
	switch cfg.Resolver.Cache.Backend {
	case "store":
		opts = append(opts, revgeo.WithCache(store.ProvinceCache{S: st}))
	case "redis":
		ttl := time.Duration(cfg.Resolver.Cache.TTLHours) * time.Hour
		cache := revgeo.NewRedisCache(cfg.Resolver.Cache.Redis.Addr, cfg.Resolver.Cache.Redis.Password, cfg.Resolver.Cache.Redis.DB, ttl)
		opts = append(opts, revgeo.WithCache(cache))
		zap.L().Info("resolution cache using redis", zap.String("addr", cfg.Resolver.Cache.Redis.Addr))
	case "none":
	}

	return revgeo.NewClient(providers, opts...), nil
}
