package service

import (
	"context"

	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/lifequality"
	"github.com/alexanderramin/wellplan/internal/planner"
	"github.com/alexanderramin/wellplan/internal/repository"
)

type PlanService interface {
	Run(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
}

type HistoryService interface {
	History(ctx context.Context, req contract.HistoryRequest) (*contract.HistoryResponse, error)
	Steps(ctx context.Context, sessionID string) (*contract.RunLog, error)
	LatestSession(ctx context.Context, userID string) (*domain.Session, error)
}

type RetentionService interface {
	Purge(ctx context.Context, days int) (repository.PurgeResult, error)
}

// Pipeline stages. The concrete implementations live in signals,
// retrieval, planner, and lifequality.

type SignalExtractor interface {
	Extract(ctx context.Context, conversation []domain.ConversationMessage, uc domain.UserContext) domain.SignalBundle
}

type ContentRanker interface {
	Search(ctx context.Context, query string, themes []string, topK int) []domain.ContentItem
	Explain(query string, items []domain.ContentItem) []domain.ContentExplanation
}

type PlanAssembler interface {
	Assemble(ctx context.Context, in planner.AssembleInput) planner.Result
	Empathize(ctx context.Context, in planner.AssembleInput) (text, prompt string)
}

type LifeQualityReporter interface {
	Report(ctx context.Context, in lifequality.ReportInput) domain.LifeQualityReport
}
