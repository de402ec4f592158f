package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/domain"
)

// SQLMetricsRepo implements MetricsRepo.
type SQLMetricsRepo struct {
	db db.DBTX
}

func NewSQLMetricsRepo(conn db.DBTX) *SQLMetricsRepo {
	return &SQLMetricsRepo{db: conn}
}

func (r *SQLMetricsRepo) Get(ctx context.Context, userID string) (*domain.UserMetrics, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, streak, total_sessions, last_seen, last_reflection_score,
		rolling_reflection_score, updated_at
		FROM user_metrics WHERE user_id = ?`, userID)

	var m domain.UserMetrics
	var lastSeen, updated string
	err := row.Scan(&m.UserID, &m.Streak, &m.TotalSessions, &lastSeen,
		&m.LastReflectionScore, &m.RollingReflectionScore, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user metrics %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user metrics: %w", err)
	}
	if m.LastSeen, err = parseTime(lastSeen); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *SQLMetricsRepo) Upsert(ctx context.Context, m *domain.UserMetrics) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_metrics (user_id, streak, total_sessions, last_seen,
			last_reflection_score, rolling_reflection_score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			streak = excluded.streak,
			total_sessions = excluded.total_sessions,
			last_seen = excluded.last_seen,
			last_reflection_score = excluded.last_reflection_score,
			rolling_reflection_score = excluded.rolling_reflection_score,
			updated_at = excluded.updated_at`,
		m.UserID, m.Streak, m.TotalSessions, formatTime(m.LastSeen),
		m.LastReflectionScore, m.RollingReflectionScore, formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting user metrics: %w", err)
	}
	return nil
}
