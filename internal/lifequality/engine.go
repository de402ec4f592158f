package lifequality

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// HistoryStore persists life quality entries per user.
type HistoryStore interface {
	// RecentLifeQuality returns up to n entries ordered oldest to newest.
	RecentLifeQuality(ctx context.Context, userID string, n int) ([]domain.LifeQualityEntry, error)
	AppendLifeQuality(ctx context.Context, entry domain.LifeQualityEntry) error
}

// ReportInput is one session's contribution to the index.
type ReportInput struct {
	UserID    string
	SessionID string
	Signals   domain.SignalBundle
	// Text is the user's conversation, used for adherence.
	Text string
	// Previous is the user's metrics before this session, nil on first use.
	Previous *domain.UserMetrics
	Now      time.Time
}

// Engine is the only writer of life quality history.
type Engine struct {
	store  HistoryStore
	logger *slog.Logger
}

func NewEngine(store HistoryStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{store: store, logger: logger}
}

// Report scores the session, appends exactly one history entry, and returns
// the recent window with its trend. A history read failure is treated as an
// empty history; an append failure is logged and the report still returned.
func (e *Engine) Report(ctx context.Context, in ReportInput) domain.LifeQualityReport {
	adherence := InferAdherence(in.Text)
	delta := 0.0
	if in.Previous != nil {
		delta = in.Signals.ReflectionScore - in.Previous.RollingReflectionScore
	}
	raw := RawScore(in.Signals, delta, adherence)

	history, err := e.store.RecentLifeQuality(ctx, in.UserID, HistoryWindow)
	if err != nil {
		e.logger.Warn("life quality history unavailable, starting fresh", "user_id", in.UserID, "error", err)
		history = nil
	}

	var prev *float64
	if len(history) > 0 {
		p := history[len(history)-1].Score
		prev = &p
	}
	score := CapDelta(prev, raw)

	details := domain.LifeQualityDetails{
		RawScore:       raw,
		SentimentDelta: delta,
		Adherence:      adherence,
		ThemePenalty:   ThemePenalty(in.Signals),
		PreviousScore:  prev,
	}
	entry := domain.LifeQualityEntry{
		SessionID: in.SessionID,
		UserID:    in.UserID,
		Score:     score,
		Details:   details,
		CreatedAt: in.Now,
	}
	if err := e.store.AppendLifeQuality(ctx, entry); err != nil {
		e.logger.Error("append life quality failed", "user_id", in.UserID, "error", err)
	}

	history = append(history, entry)
	if len(history) > HistoryWindow {
		history = history[len(history)-HistoryWindow:]
	}
	snapshots := make([]domain.LifeQualitySnapshot, 0, len(history))
	for _, h := range history {
		snapshots = append(snapshots, domain.LifeQualitySnapshot{Timestamp: h.CreatedAt, Score: h.Score})
	}

	return domain.LifeQualityReport{
		Score:     score,
		Trend:     Trend(snapshots),
		Snapshots: snapshots,
		Details:   details,
	}
}
