package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestGetKV(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT value FROM "state" WHERE key = \$1`).
		WithArgs("hubs").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`[{"id":"h1"}]`))

	value, ok, err := GetKV(context.Background(), mock, "state", "hubs")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"h1"}]`, value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetKV_Missing(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT value FROM "state"`).
		WithArgs("points").
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := GetKV(context.Background(), mock, "state", "points")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertKV(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec(`INSERT INTO "province_cache"`).
		WithArgs("13.756,100.502", "Bangkok").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := UpsertKV(context.Background(), mock, "province_cache", "13.756,100.502", "Bangkok")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertManyKV(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "state"`).
		WithArgs("hubs", "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO "state"`).
		WithArgs("points", "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := UpsertManyKV(context.Background(), mock, "state", []KV{
		{Key: "hubs", Value: "[]"},
		{Key: "points", Value: "[]"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertManyKV_EmptyRows(t *testing.T) {
	err := UpsertManyKV(context.Background(), nil, "state", nil)
	assert.NoError(t, err)
}

func TestUpsertManyKV_RollsBackOnFailure(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "state"`).
		WithArgs("hubs", "[]").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := UpsertManyKV(context.Background(), mock, "state", []KV{{Key: "hubs", Value: "[]"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSanitizeTable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", `"simple"`},
		{"app.state", `"app"."state"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeTable(tt.input))
		})
	}
}
