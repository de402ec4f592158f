package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, DialectSQLite))
	require.NoError(t, Migrate(db, DialectSQLite))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"sessions", "steps", "plans", "user_metrics", "life_quality"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_sessions_user",
		"idx_sessions_created",
		"idx_steps_session",
		"idx_plans_session",
		"idx_life_quality_user",
		"idx_life_quality_created",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_StepsCascadeWithSession(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO sessions (id, user_id, created_at) VALUES ('s1', 'u1', '2026-01-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO steps (session_id, step_name, input_json, output_json, started_at, ended_at)
		VALUES ('s1', 'reflection', '{}', '{}', 'a', 'b')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM sessions WHERE id = 's1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM steps`).Scan(&n))
	assert.Zero(t, n)
}

func TestMigrate_LifeQualityScoreBounded(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO life_quality (session_id, user_id, score, details_json, created_at)
		VALUES ('s', 'u', 101, '{}', 'now')`)
	assert.Error(t, err)
}

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://u:p@localhost/db?sslmode=disable"))
	assert.Equal(t, DialectPostgres, DialectFor("PostgreSQL://localhost/db"))
	assert.Equal(t, DialectSQLite, DialectFor("/var/lib/wellplan/wellplan.db"))
	assert.Equal(t, DialectSQLite, DialectFor(MemoryDSN))
}

func TestRebind(t *testing.T) {
	tests := []struct{ in, want string }{
		{`SELECT 1`, `SELECT 1`},
		{`SELECT * FROM t WHERE a = ? AND b = ?`, `SELECT * FROM t WHERE a = $1 AND b = $2`},
		{`SELECT '?' FROM t WHERE a = ?`, `SELECT '?' FROM t WHERE a = $1`},
		{`INSERT INTO t VALUES (?, "x?", ?)`, `INSERT INTO t VALUES ($1, "x?", $2)`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rebind(tt.in))
	}
}

func TestBind_SQLiteIsPassthrough(t *testing.T) {
	db := openTestDB(t)
	assert.Same(t, db, Bind(DialectSQLite, db))

	bound := Bind(DialectPostgres, db)
	assert.Equal(t, bound, Bind(DialectPostgres, bound), "binding twice does not wrap twice")
}
