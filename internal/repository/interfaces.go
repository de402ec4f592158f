package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/wellplan/internal/domain"
)

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error)
}

// StepRepo is the append-only step log, read back in insertion order.
type StepRepo interface {
	Append(ctx context.Context, s *domain.StepRecord) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.StepRecord, error)
}

type PlanRepo interface {
	Save(ctx context.Context, p *domain.PlanSnapshot) error
	GetBySession(ctx context.Context, sessionID string) (*domain.PlanSnapshot, error)
}

type MetricsRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserMetrics, error)
	Upsert(ctx context.Context, m *domain.UserMetrics) error
}

// LifeQualityRepo matches lifequality.HistoryStore.
type LifeQualityRepo interface {
	AppendLifeQuality(ctx context.Context, e domain.LifeQualityEntry) error
	RecentLifeQuality(ctx context.Context, userID string, n int) ([]domain.LifeQualityEntry, error)
}

// RetentionRepo removes rows created before a cutoff.
type RetentionRepo interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (PurgeResult, error)
}

// PurgeResult counts rows removed by a retention pass.
type PurgeResult struct {
	Sessions    int64
	Steps       int64
	Plans       int64
	LifeQuality int64
}

// Total sums all removed rows.
func (p PurgeResult) Total() int64 {
	return p.Sessions + p.Steps + p.Plans + p.LifeQuality
}
