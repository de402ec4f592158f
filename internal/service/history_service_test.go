package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/repository"
	"github.com/alexanderramin/wellplan/internal/testutil"
)

func TestHistory_ListsSnapshotsAndMetrics(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for range 3 {
		_, err := h.plan.Run(ctx, stressedRequest("u1"))
		require.NoError(t, err)
	}

	hist, err := h.history.History(ctx, contract.HistoryRequest{UserID: "u1", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, hist.Snapshots, 2)
	require.NotNil(t, hist.Metrics)
	assert.Equal(t, 3, hist.Metrics.TotalSessions)
	assert.False(t, hist.Snapshots[0].Timestamp.After(hist.Snapshots[1].Timestamp), "oldest first")

	all, err := h.history.History(ctx, contract.HistoryRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, all.Snapshots, 3, "zero limit uses the default window")
}

func TestHistory_UnknownUser(t *testing.T) {
	h := newHarness(t)

	hist, err := h.history.History(context.Background(), contract.NewHistoryRequest("ghost"))
	require.NoError(t, err)
	assert.Empty(t, hist.Snapshots)
	assert.Nil(t, hist.Metrics)
	assert.Equal(t, domain.TrendSteady, hist.Trend)

	_, err = h.history.History(context.Background(), contract.HistoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestSteps_ReadsInInsertionOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	resp, err := h.plan.Run(ctx, stressedRequest("u1"))
	require.NoError(t, err)

	log, err := h.history.Steps(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "u1", log.UserID)
	require.Len(t, log.Steps, 6)
	assert.Equal(t, domain.StepReflection, log.Steps[0].Name)
	assert.Equal(t, domain.StepLifeQuality, log.Steps[5].Name)
	assert.Contains(t, log.Steps[0].Input, "piling up", "full payloads outside privacy mode")
	for _, s := range log.Steps {
		assert.False(t, s.EndedAt.Before(s.StartedAt))
	}

	_, err = h.history.Steps(ctx, "no-such-session")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSteps_SealedWithoutKeyIsFlagged(t *testing.T) {
	sealing := newHarness(t, withPolicy(testPolicy(t, false)))
	ctx := context.Background()

	resp, err := sealing.plan.Run(ctx, stressedRequest("u1"))
	require.NoError(t, err)

	// Same database read back with privacy mode off.
	reader := NewHistoryService(sealing.sessions, sealing.steps, sealing.metrics,
		repository.NewSQLLifeQualityRepo(sealing.db), nil)
	log, err := reader.Steps(ctx, resp.SessionID)
	require.NoError(t, err)
	for _, s := range log.Steps {
		assert.True(t, s.Sealed)
	}
}

func TestLatestSession(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.history.LatestSession(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	resp, err := h.plan.Run(ctx, stressedRequest("u1"))
	require.NoError(t, err)
	sess, err := h.history.LatestSession(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, sess.ID)
}

func TestRetention_PurgesOldSessions(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	h := newHarness(t, withClock(func() time.Time {
		calls++
		return start.AddDate(0, 0, calls*20)
	}))
	ctx := context.Background()

	var ids []string
	for range 3 {
		resp, err := h.plan.Run(ctx, stressedRequest("u1"))
		require.NoError(t, err)
		ids = append(ids, resp.SessionID)
	}

	// Sessions on day 20, 40, 60; now is day 75 so a 30 day window cuts at day 45.
	svc := NewRetentionService(testutil.NewTestUoW(h.db), func() time.Time { return start.AddDate(0, 0, 75) })

	none, err := svc.Purge(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, none.Total())

	res, err := svc.Purge(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Sessions)
	assert.Equal(t, int64(12), res.Steps)
	assert.Equal(t, int64(2), res.Plans)
	assert.Equal(t, int64(2), res.LifeQuality)

	_, err = h.sessions.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = h.sessions.GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = h.sessions.GetByID(ctx, ids[2])
	assert.NoError(t, err)

	m, err := h.metrics.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, m.TotalSessions)
}
