package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/domain"
)

// SQLPlanRepo implements PlanRepo.
type SQLPlanRepo struct {
	db db.DBTX
}

func NewSQLPlanRepo(conn db.DBTX) *SQLPlanRepo {
	return &SQLPlanRepo{db: conn}
}

func (r *SQLPlanRepo) Save(ctx context.Context, p *domain.PlanSnapshot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (session_id, plan_json, signals_json, created_at) VALUES (?, ?, ?, ?)`,
		p.SessionID, p.Plan, p.Signals, formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// GetBySession returns the latest plan stored for the session.
func (r *SQLPlanRepo) GetBySession(ctx context.Context, sessionID string) (*domain.PlanSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT session_id, plan_json, signals_json, created_at FROM plans
		WHERE session_id = ? ORDER BY id DESC LIMIT 1`, sessionID)

	var p domain.PlanSnapshot
	var created string
	if err := row.Scan(&p.SessionID, &p.Plan, &p.Signals, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan for session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}
