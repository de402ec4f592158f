package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/wellplan/internal/db"
)

// SQLRetentionRepo implements RetentionRepo. Run it inside a unit of work
// so a partial purge is rolled back.
type SQLRetentionRepo struct {
	db db.DBTX
}

func NewSQLRetentionRepo(conn db.DBTX) *SQLRetentionRepo {
	return &SQLRetentionRepo{db: conn}
}

// PurgeBefore deletes sessions created before cutoff together with their
// steps and plans, and life quality entries older than cutoff. User
// metrics are kept.
func (r *SQLRetentionRepo) PurgeBefore(ctx context.Context, cutoff time.Time) (PurgeResult, error) {
	ts := formatTime(cutoff)
	var res PurgeResult

	stmts := []struct {
		name  string
		query string
		count *int64
	}{
		{"steps", `DELETE FROM steps WHERE session_id IN (SELECT id FROM sessions WHERE created_at < ?)`, &res.Steps},
		{"plans", `DELETE FROM plans WHERE session_id IN (SELECT id FROM sessions WHERE created_at < ?)`, &res.Plans},
		{"sessions", `DELETE FROM sessions WHERE created_at < ?`, &res.Sessions},
		{"life_quality", `DELETE FROM life_quality WHERE created_at < ?`, &res.LifeQuality},
	}
	for _, s := range stmts {
		result, err := r.db.ExecContext(ctx, s.query, ts)
		if err != nil {
			return PurgeResult{}, fmt.Errorf("purging %s: %w", s.name, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return PurgeResult{}, fmt.Errorf("counting purged %s: %w", s.name, err)
		}
		*s.count = n
	}
	return res, nil
}
