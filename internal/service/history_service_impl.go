package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/lifequality"
	"github.com/alexanderramin/wellplan/internal/privacy"
	"github.com/alexanderramin/wellplan/internal/repository"
)

// maxHistoryLimit bounds how many history entries one request can read.
const maxHistoryLimit = 365

type historyService struct {
	sessions    repository.SessionRepo
	steps       repository.StepRepo
	metrics     repository.MetricsRepo
	lifeQuality repository.LifeQualityRepo
	privacy     *privacy.Policy
	observer    UseCaseObserver
}

func NewHistoryService(
	sessions repository.SessionRepo,
	steps repository.StepRepo,
	metrics repository.MetricsRepo,
	lifeQuality repository.LifeQualityRepo,
	policy *privacy.Policy,
	observers ...UseCaseObserver,
) HistoryService {
	return &historyService{
		sessions:    sessions,
		steps:       steps,
		metrics:     metrics,
		lifeQuality: lifeQuality,
		privacy:     policy,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) History(ctx context.Context, req contract.HistoryRequest) (resp *contract.HistoryResponse, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "history", startedAt, err, map[string]any{"limit": req.Limit})
	}()

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = lifequality.HistoryWindow
	}
	limit = min(limit, maxHistoryLimit)

	entries, err := s.lifeQuality.RecentLifeQuality(ctx, req.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("reading life quality history: %w", err)
	}
	snapshots := make([]domain.LifeQualitySnapshot, 0, len(entries))
	for _, e := range entries {
		snapshots = append(snapshots, domain.LifeQualitySnapshot{Timestamp: e.CreatedAt, Score: e.Score})
	}

	resp = &contract.HistoryResponse{
		UserID:    req.UserID,
		Trend:     lifequality.Trend(snapshots),
		Snapshots: snapshots,
	}
	m, err := s.metrics.Get(ctx, req.UserID)
	switch {
	case err == nil:
		resp.Metrics = m
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("reading user metrics: %w", err)
	}
	return resp, nil
}

// Steps returns the step log of a session in insertion order. Payloads
// sealed under a rotated key are returned as stored and flagged.
func (s *historyService) Steps(ctx context.Context, sessionID string) (*contract.RunLog, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	records, err := s.steps.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	log := &contract.RunLog{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		CreatedAt: sess.CreatedAt,
		Steps:     make([]contract.StepView, 0, len(records)),
	}
	for _, r := range records {
		view := contract.StepView{Name: r.Name, StartedAt: r.StartedAt, EndedAt: r.EndedAt}
		view.Input, view.Sealed = s.decode(r.Input)
		var sealed bool
		view.Output, sealed = s.decode(r.Output)
		view.Sealed = view.Sealed || sealed
		log.Steps = append(log.Steps, view)
	}
	return log, nil
}

func (s *historyService) decode(payload string) (string, bool) {
	text, err := s.privacy.Decode(payload)
	if err != nil {
		return payload, true
	}
	return text, false
}

func (s *historyService) LatestSession(ctx context.Context, userID string) (*domain.Session, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("sessions for user %s: %w", userID, repository.ErrNotFound)
	}
	return sessions[0], nil
}
