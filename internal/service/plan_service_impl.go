package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/db"
	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/lifequality"
	"github.com/alexanderramin/wellplan/internal/planner"
	"github.com/alexanderramin/wellplan/internal/privacy"
	"github.com/alexanderramin/wellplan/internal/repository"
	"github.com/alexanderramin/wellplan/internal/retrieval"
)

// explainedCandidates is how many top candidates get a snippet explanation.
const explainedCandidates = 3

// PlanDeps wires the pipeline stages and storage into a PlanService.
// Steps and Plans must be bound to the base connection; session and
// metrics writes go through UoW.
type PlanDeps struct {
	Extractor   SignalExtractor
	Ranker      ContentRanker
	Assembler   PlanAssembler
	LifeQuality LifeQualityReporter
	Steps       repository.StepRepo
	Plans       repository.PlanRepo
	UoW         db.UnitOfWork
	Privacy     *privacy.Policy
	Logger      *slog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type planService struct {
	deps     PlanDeps
	locks    *userLocks
	logger   *slog.Logger
	now      func() time.Time
	observer UseCaseObserver
}

func NewPlanService(deps PlanDeps, observers ...UseCaseObserver) PlanService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &planService{
		deps:     deps,
		locks:    newUserLocks(),
		logger:   logger,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Run executes one check-in session end to end. Only request validation
// and the session and metrics writes can fail it; every other stage
// degrades instead.
func (s *planService) Run(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "plan_session", startedAt, err, fields) }()

	uc := req.Context.WithDefaults()
	if err := domain.ValidateRequest(uc, req.Conversation); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(uc.UserID)
	defer unlock()

	now := s.now().In(uc.Location())
	session := &domain.Session{ID: uuid.New().String(), UserID: uc.UserID, CreatedAt: now}
	fields["session_id"] = session.ID

	conversation := s.deps.Privacy.Conversation(req.Conversation)
	effective := s.deps.Privacy.Context(uc)

	stepStart := time.Now()
	signals := s.deps.Extractor.Extract(ctx, conversation, effective)

	prev, cur, err := s.recordSession(ctx, session, signals.ReflectionScore, now)
	if err != nil {
		return nil, err
	}
	s.logStep(ctx, session.ID, contract.ReflectionLogEntry{
		Conversation: conversation, Context: effective, Signals: signals,
	}, stepStart)
	s.logStep(ctx, session.ID, contract.MetricsLogEntry{
		Reflection: signals.ReflectionScore, Previous: prev, Current: cur,
	}, stepStart)

	stepStart = time.Now()
	query := joinContents(conversation)
	candidates := s.deps.Ranker.Search(ctx, query, signals.Themes, retrieval.DefaultTopK)
	explanations := s.deps.Ranker.Explain(query, candidates[:min(explainedCandidates, len(candidates))])
	s.logStep(ctx, session.ID, contract.RetrievalLogEntry{
		Query: query, Themes: signals.Themes, Candidates: candidates, Explanations: explanations,
	}, stepStart)

	stepStart = time.Now()
	in := planner.AssembleInput{
		AvailableMinutes: uc.AvailableMinutes,
		Signals:          signals,
		Candidates:       candidates,
		Explanations:     explanations,
	}
	assembled := s.deps.Assembler.Assemble(ctx, in)
	s.savePlan(ctx, session.ID, assembled.Plan, signals, now)
	s.logStep(ctx, session.ID, contract.PlanLogEntry{
		AvailableMinutes: uc.AvailableMinutes,
		Prompt:           assembled.Prompt,
		Draft:            assembled.Draft.String(),
		Source:           string(assembled.Source),
		Plan:             assembled.Plan,
	}, stepStart)

	stepStart = time.Now()
	empathy, empathyPrompt := s.deps.Assembler.Empathize(ctx, in)
	s.logStep(ctx, session.ID, contract.EmpathyLogEntry{Prompt: empathyPrompt, Text: empathy}, stepStart)

	plan := planner.Backfill(assembled.Plan, candidates)
	nudge := lifequality.Nudge(prev, cur, signals.ReflectionScore)

	stepStart = time.Now()
	report := s.deps.LifeQuality.Report(ctx, lifequality.ReportInput{
		UserID:    uc.UserID,
		SessionID: session.ID,
		Signals:   signals,
		Text:      domain.MergeConversation(conversation),
		Previous:  prev,
		Now:       now,
	})
	s.logStep(ctx, session.ID, contract.LifeQualityLogEntry{
		Adherence: report.Details.Adherence, Report: report,
	}, stepStart)

	fields["plan_source"] = string(assembled.Source)
	fields["draft"] = assembled.Draft.String()
	fields["items"] = len(plan.Items)
	fields["candidates"] = len(candidates)

	return &contract.PlanResponse{
		SessionID:         session.ID,
		EmpatheticMessage: empathy,
		Plan:              plan,
		Signals:           signals,
		Candidates:        candidates,
		Explanations:      s.planExplanations(query, plan, candidates, explanations),
		PersonalizedNudge: nudge,
		LifeQuality:       &report,
	}, nil
}

// recordSession creates the session row and advances the user's metrics
// in one transaction.
func (s *planService) recordSession(ctx context.Context, session *domain.Session, reflection float64, now time.Time) (prev *domain.UserMetrics, cur domain.UserMetrics, err error) {
	err = s.deps.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLSessionRepo(tx).Create(ctx, session); err != nil {
			return err
		}
		metrics := repository.NewSQLMetricsRepo(tx)
		p, err := metrics.Get(ctx, session.UserID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			p = nil
		case err != nil:
			return err
		}
		prev = p
		cur = lifequality.UpdateMetrics(p, session.UserID, reflection, now)
		return metrics.Upsert(ctx, &cur)
	})
	if err != nil {
		return nil, domain.UserMetrics{}, fmt.Errorf("recording session: %w", err)
	}
	return prev, cur, nil
}

// logStep writes one step log row. Failures are logged and swallowed.
func (s *planService) logStep(ctx context.Context, sessionID string, entry contract.StepEntry, startedAt time.Time) {
	if !s.deps.Privacy.ShouldLog() {
		return
	}
	input, output, err := s.deps.Privacy.EncodeStep(entry)
	if err == nil {
		err = s.deps.Steps.Append(ctx, &domain.StepRecord{
			SessionID: sessionID,
			Name:      entry.Step(),
			Input:     input,
			Output:    output,
			StartedAt: startedAt,
			EndedAt:   time.Now(),
		})
	}
	if err != nil {
		s.logger.Warn("step log write failed", "session_id", sessionID, "step", entry.Step(), "error", err)
	}
}

func (s *planService) savePlan(ctx context.Context, sessionID string, plan domain.Plan, signals domain.SignalBundle, now time.Time) {
	if !s.deps.Privacy.ShouldLog() {
		return
	}
	planJSON, err := s.deps.Privacy.Encode(plan, map[string]any{"items": contract.SanitizedItems(plan)})
	if err != nil {
		s.logger.Warn("plan snapshot encode failed", "session_id", sessionID, "error", err)
		return
	}
	signalsJSON, err := s.deps.Privacy.Encode(signals, contract.SanitizedSignals(signals))
	if err != nil {
		s.logger.Warn("plan snapshot encode failed", "session_id", sessionID, "error", err)
		return
	}
	err = s.deps.Plans.Save(ctx, &domain.PlanSnapshot{
		SessionID: sessionID, Plan: planJSON, Signals: signalsJSON, CreatedAt: now,
	})
	if err != nil {
		s.logger.Warn("plan snapshot write failed", "session_id", sessionID, "error", err)
	}
}

// planExplanations explains each plan item that came from a candidate,
// falling back to the top candidate explanations.
func (s *planService) planExplanations(query string, plan domain.Plan, candidates []domain.ContentItem, fallback []domain.ContentExplanation) []domain.ContentExplanation {
	byID := make(map[string]domain.ContentItem, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	var out []domain.ContentExplanation
	for _, it := range plan.Items {
		if c, ok := byID[it.ContentID]; ok {
			out = append(out, s.deps.Ranker.Explain(query, []domain.ContentItem{c})...)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// joinContents is the retrieval query: message contents joined by spaces.
func joinContents(msgs []domain.ConversationMessage) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, " ")
}
