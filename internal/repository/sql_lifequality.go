package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/domain"
)

// SQLLifeQualityRepo implements LifeQualityRepo.
type SQLLifeQualityRepo struct {
	db db.DBTX
}

func NewSQLLifeQualityRepo(conn db.DBTX) *SQLLifeQualityRepo {
	return &SQLLifeQualityRepo{db: conn}
}

func (r *SQLLifeQualityRepo) AppendLifeQuality(ctx context.Context, e domain.LifeQualityEntry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("encoding life quality details: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO life_quality (session_id, user_id, score, details_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.UserID, e.Score, string(details), formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("appending life quality: %w", err)
	}
	return nil
}

// RecentLifeQuality returns up to n entries for userID ordered oldest to
// newest.
func (r *SQLLifeQualityRepo) RecentLifeQuality(ctx context.Context, userID string, n int) ([]domain.LifeQualityEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, user_id, score, details_json, created_at FROM life_quality
		WHERE user_id = ? ORDER BY id DESC LIMIT ?`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("listing life quality: %w", err)
	}
	defer rows.Close()

	var out []domain.LifeQualityEntry
	for rows.Next() {
		var e domain.LifeQualityEntry
		var details, created string
		if err := rows.Scan(&e.SessionID, &e.UserID, &e.Score, &details, &created); err != nil {
			return nil, fmt.Errorf("scanning life quality: %w", err)
		}
		if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
			return nil, fmt.Errorf("decoding life quality details: %w", err)
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
