package db

import (
	"database/sql"
	"fmt"
)

// Timestamps are stored as fixed-width UTC text in both dialects so that
// lexical order matches time order.

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS steps (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		step_name   TEXT NOT NULL,
		input_json  TEXT NOT NULL,
		output_json TEXT NOT NULL,
		started_at  TEXT NOT NULL,
		ended_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plans (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id   TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		plan_json    TEXT NOT NULL,
		signals_json TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_metrics (
		user_id                  TEXT PRIMARY KEY,
		streak                   INTEGER NOT NULL DEFAULT 0,
		total_sessions           INTEGER NOT NULL DEFAULT 0,
		last_seen                TEXT NOT NULL,
		last_reflection_score    REAL NOT NULL DEFAULT 0,
		rolling_reflection_score REAL NOT NULL DEFAULT 0,
		updated_at               TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS life_quality (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id   TEXT NOT NULL,
		user_id      TEXT NOT NULL,
		score        REAL NOT NULL CHECK(score >= 0 AND score <= 100),
		details_json TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_steps_session ON steps(session_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_session ON plans(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_life_quality_user ON life_quality(user_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_life_quality_created ON life_quality(created_at)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS steps (
		id          BIGSERIAL PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		step_name   TEXT NOT NULL,
		input_json  TEXT NOT NULL,
		output_json TEXT NOT NULL,
		started_at  TEXT NOT NULL,
		ended_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plans (
		id           BIGSERIAL PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		plan_json    TEXT NOT NULL,
		signals_json TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_metrics (
		user_id                  TEXT PRIMARY KEY,
		streak                   INTEGER NOT NULL DEFAULT 0,
		total_sessions           INTEGER NOT NULL DEFAULT 0,
		last_seen                TEXT NOT NULL,
		last_reflection_score    DOUBLE PRECISION NOT NULL DEFAULT 0,
		rolling_reflection_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at               TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS life_quality (
		id           BIGSERIAL PRIMARY KEY,
		session_id   TEXT NOT NULL,
		user_id      TEXT NOT NULL,
		score        DOUBLE PRECISION NOT NULL CHECK(score >= 0 AND score <= 100),
		details_json TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_steps_session ON steps(session_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_plans_session ON plans(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_life_quality_user ON life_quality(user_id, id)`,
	`CREATE INDEX IF NOT EXISTS idx_life_quality_created ON life_quality(created_at)`,
}

// Migrate runs all schema migrations for dialect. Every statement is
// idempotent, so running it against an up-to-date schema is a no-op.
func Migrate(db *sql.DB, dialect Dialect) error {
	stmts := sqliteMigrations
	if dialect == DialectPostgres {
		stmts = postgresMigrations
	}
	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
