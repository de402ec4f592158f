package service

import (
	"context"
	"time"

	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/repository"
)

type retentionService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

// NewRetentionService purges stored sessions through uow. now defaults to time.Now.
func NewRetentionService(uow db.UnitOfWork, now func() time.Time, observers ...UseCaseObserver) RetentionService {
	if now == nil {
		now = time.Now
	}
	return &retentionService{uow: uow, now: now, observer: useCaseObserverOrNoop(observers)}
}

// Purge removes sessions and history older than days. Zero or fewer days
// disables retention.
func (s *retentionService) Purge(ctx context.Context, days int) (res repository.PurgeResult, err error) {
	if days <= 0 {
		return repository.PurgeResult{}, nil
	}
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "retention", startedAt, err, map[string]any{
			"days":    days,
			"removed": res.Total(),
		})
	}()

	cutoff := s.now().AddDate(0, 0, -days)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		res, err = repository.NewSQLRetentionRepo(tx).PurgeBefore(ctx, cutoff)
		return err
	})
	if err != nil {
		return repository.PurgeResult{}, err
	}
	return res, nil
}
