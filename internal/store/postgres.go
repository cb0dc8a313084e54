package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pergazuz/thai-map/internal/db"
	"github.com/pergazuz/thai-map/internal/model"
)

// PostgresStore implements Store using pgxpool, for shared deployments.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot store operations.
var preparedStatements = map[string]string{
	"get_state":       db.GetKVSQL(stateTable),
	"upsert_state":    db.UpsertKVSQL(stateTable),
	"get_province":    db.GetKVSQL(provinceCacheTable),
	"upsert_province": db.UpsertKVSQL(provinceCacheTable),
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// Pool returns the underlying database pool for subsystems that need direct
// query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS state (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS province_cache (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_province_cache_updated_at ON province_cache(updated_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) LoadState(ctx context.Context) (model.State, error) {
	hubsRaw, _, err := db.GetKV(ctx, s.pool, stateTable, stateKeyHubs)
	if err != nil {
		return model.State{}, err
	}
	pointsRaw, _, err := db.GetKV(ctx, s.pool, stateTable, stateKeyPoints)
	if err != nil {
		return model.State{}, err
	}
	return model.State{
		Hubs:   decodeCollection[model.Hub](stateKeyHubs, hubsRaw),
		Points: decodeCollection[model.Point](stateKeyPoints, pointsRaw),
	}, nil
}

func (s *PostgresStore) SaveState(ctx context.Context, st model.State) error {
	hubsJSON, pointsJSON, err := encodeState(st)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal state")
	}
	return db.UpsertManyKV(ctx, s.pool, stateTable, []db.KV{
		{Key: stateKeyHubs, Value: hubsJSON},
		{Key: stateKeyPoints, Value: pointsJSON},
	})
}

func (s *PostgresStore) GetCachedProvince(ctx context.Context, key string) (string, bool, error) {
	return db.GetKV(ctx, s.pool, provinceCacheTable, key)
}

func (s *PostgresStore) PutCachedProvince(ctx context.Context, key, province string) error {
	return db.UpsertKV(ctx, s.pool, provinceCacheTable, key, province)
}
