package contract

import (
	"time"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// PlanRequest is one check-in: who is asking, how they feel, how long they have.
type PlanRequest struct {
	Context      domain.UserContext           `json:"user_context"`
	Conversation []domain.ConversationMessage `json:"conversation"`
}

// NewPlanRequest builds a request for a single user message.
func NewPlanRequest(userID, message string, availableMin int) PlanRequest {
	return PlanRequest{
		Context: domain.UserContext{UserID: userID, AvailableMinutes: availableMin},
		Conversation: []domain.ConversationMessage{
			{Role: domain.RoleUser, Content: message},
		},
	}
}

type PlanResponse struct {
	SessionID         string                      `json:"session_id"`
	EmpatheticMessage string                      `json:"empathetic_message"`
	Plan              domain.Plan                 `json:"plan"`
	Signals           domain.SignalBundle         `json:"signals"`
	Candidates        []domain.ContentItem        `json:"candidates"`
	Explanations      []domain.ContentExplanation `json:"explanations"`
	PersonalizedNudge string                      `json:"personalized_nudge,omitempty"`
	LifeQuality       *domain.LifeQualityReport   `json:"life_quality,omitempty"`
}

// HistoryRequest lists life quality history for a user.
type HistoryRequest struct {
	UserID string
	Limit  int
}

func NewHistoryRequest(userID string) HistoryRequest {
	return HistoryRequest{UserID: userID, Limit: 7}
}

type HistoryResponse struct {
	UserID    string                       `json:"user_id"`
	Trend     domain.Trend                 `json:"trend"`
	Snapshots []domain.LifeQualitySnapshot `json:"snapshots"`
	Metrics   *domain.UserMetrics          `json:"metrics,omitempty"`
}

// StepView is one decoded step log row. Sealed is set when the payload
// could not be opened with the current key.
type StepView struct {
	Name      domain.StepName `json:"step_name"`
	StartedAt time.Time       `json:"started_at"`
	EndedAt   time.Time       `json:"ended_at"`
	Input     string          `json:"input"`
	Output    string          `json:"output"`
	Sealed    bool            `json:"sealed,omitempty"`
}

type RunLog struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	Steps     []StepView `json:"steps"`
}
