package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/domain"
)

// SQLSessionRepo implements SessionRepo.
type SQLSessionRepo struct {
	db db.DBTX
}

// NewSQLSessionRepo creates a SQLSessionRepo. conn must already be bound
// to its dialect with db.Bind.
func NewSQLSessionRepo(conn db.DBTX) *SQLSessionRepo {
	return &SQLSessionRepo{db: conn}
}

func (r *SQLSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, created_at) VALUES (?, ?, ?)`,
		s.ID, s.UserID, formatTime(s.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, user_id, created_at FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return s, nil
}

// ListByUser returns the user's most recent sessions, newest first.
func (r *SQLSessionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, created_at FROM sessions WHERE user_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var created string
	if err := row.Scan(&s.ID, &s.UserID, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = t
	return &s, nil
}
