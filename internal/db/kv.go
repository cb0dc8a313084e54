package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// KV is one key/value row destined for a kv table.
type KV struct {
	Key   string
	Value string
}

// GetKVSQL returns the lookup statement for a kv table.
func GetKVSQL(table string) string {
	return fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, sanitizeTable(table))
}

// UpsertKVSQL returns the upsert statement for a kv table.
func UpsertKVSQL(table string) string {
	return fmt.Sprintf(
		`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		sanitizeTable(table))
}

// GetKV reads one key. A missing key returns ok=false with no error.
func GetKV(ctx context.Context, pool Pool, table, key string) (string, bool, error) {
	var value string
	err := pool.QueryRow(ctx, GetKVSQL(table), key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrapf(err, "db: kv: get %s from %s", key, table)
	}
	return value, true, nil
}

// UpsertKV writes a single key, replacing any existing value.
func UpsertKV(ctx context.Context, pool Pool, table, key, value string) error {
	_, err := pool.Exec(ctx, UpsertKVSQL(table), key, value)
	return eris.Wrapf(err, "db: kv: upsert %s into %s", key, table)
}

// UpsertManyKV writes several keys in one transaction.
func UpsertManyKV(ctx context.Context, pool Pool, table string, rows []KV) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "db: kv: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	stmt := UpsertKVSQL(table)
	for _, kv := range rows {
		if _, err := tx.Exec(ctx, stmt, kv.Key, kv.Value); err != nil {
			return eris.Wrapf(err, "db: kv: upsert %s into %s", kv.Key, table)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "db: kv: commit tx")
}

// sanitizeTable handles schema-qualified table names like "app.state".
func sanitizeTable(table string) string {
	parts := strings.SplitN(table, ".", 2)
	if len(parts) == 2 {
		return pgx.Identifier{parts[0], parts[1]}.Sanitize()
	}
	return pgx.Identifier{table}.Sanitize()
}
