package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/domain"
)

// SQLStepRepo implements StepRepo.
type SQLStepRepo struct {
	db db.DBTX
}

func NewSQLStepRepo(conn db.DBTX) *SQLStepRepo {
	return &SQLStepRepo{db: conn}
}

func (r *SQLStepRepo) Append(ctx context.Context, s *domain.StepRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO steps (session_id, step_name, input_json, output_json, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.SessionID, string(s.Name), s.Input, s.Output, formatTime(s.StartedAt), formatTime(s.EndedAt))
	if err != nil {
		return fmt.Errorf("appending step %s: %w", s.Name, err)
	}
	return nil
}

func (r *SQLStepRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.StepRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, step_name, input_json, output_json, started_at, ended_at
		FROM steps WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing steps: %w", err)
	}
	defer rows.Close()

	var out []domain.StepRecord
	for rows.Next() {
		var s domain.StepRecord
		var name, started, ended string
		if err := rows.Scan(&s.ID, &s.SessionID, &name, &s.Input, &s.Output, &started, &ended); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		s.Name = domain.StepName(name)
		if s.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if s.EndedAt, err = parseTime(ended); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
