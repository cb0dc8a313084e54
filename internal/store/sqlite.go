package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pergazuz/thai-map/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS province_cache (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadState(ctx context.Context) (model.State, error) {
	hubsRaw, err := s.getValue(ctx, stateTable, stateKeyHubs)
	if err != nil {
		return model.State{}, err
	}
	pointsRaw, err := s.getValue(ctx, stateTable, stateKeyPoints)
	if err != nil {
		return model.State{}, err
	}
	return model.State{
		Hubs:   decodeCollection[model.Hub](stateKeyHubs, hubsRaw),
		Points: decodeCollection[model.Point](stateKeyPoints, pointsRaw),
	}, nil
}

func (s *SQLiteStore) SaveState(ctx context.Context, st model.State) error {
	hubsJSON, pointsJSON, err := encodeState(st)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal state")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	now := time.Now().UTC()
	for _, kv := range []struct{ key, value string }{
		{stateKeyHubs, hubsJSON},
		{stateKeyPoints, pointsJSON},
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			kv.key, kv.value, now,
		); err != nil {
			return eris.Wrapf(err, "sqlite: save %s", kv.key)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit state")
}

func (s *SQLiteStore) GetCachedProvince(ctx context.Context, key string) (string, bool, error) {
	return s.getValueFound(ctx, provinceCacheTable, key)
}

func (s *SQLiteStore) PutCachedProvince(ctx context.Context, key, province string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO province_cache (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, province, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: put cached province")
}

func (s *SQLiteStore) getValue(ctx context.Context, table, key string) (string, error) {
	v, _, err := s.getValueFound(ctx, table, key)
	return v, err
}

func (s *SQLiteStore) getValueFound(ctx context.Context, table, key string) (string, bool, error) {
	var v string
	// Table names are package constants, not user input.
	err := s.db.QueryRowContext(ctx, `SELECT value FROM `+table+` WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "sqlite: get %s from %s", key, table)
	}
	return v, true, nil
}
