package contract

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/privacy"
)

// Redacted conversation excerpts keep this many runes per message.
const sanitizedExcerptLen = 40

// StepEntry is a typed step log record. Payloads is what gets stored
// normally; Sanitized is what gets stored in privacy mode.
type StepEntry interface {
	Step() domain.StepName
	Payloads() (input, output any)
	Sanitized() (input, output any)
}

type ReflectionLogEntry struct {
	Conversation []domain.ConversationMessage
	Context      domain.UserContext
	Signals      domain.SignalBundle
}

func (ReflectionLogEntry) Step() domain.StepName { return domain.StepReflection }

func (e ReflectionLogEntry) Payloads() (any, any) {
	return map[string]any{"conversation": e.Conversation, "user_context": e.Context}, e.Signals
}

func (e ReflectionLogEntry) Sanitized() (any, any) {
	msgs := make([]map[string]any, 0, len(e.Conversation))
	for _, m := range e.Conversation {
		msgs = append(msgs, map[string]any{
			"role":    m.Role,
			"content": privacy.Truncate(privacy.RedactText(m.Content), sanitizedExcerptLen),
		})
	}
	ctx := map[string]any{
		"user_id":           e.Context.UserID,
		"available_minutes": e.Context.AvailableMinutes,
	}
	if e.Context.FocusArea != "" {
		ctx["focus_area"] = e.Context.FocusArea
	}
	if len(e.Context.Preferences) > 0 {
		ctx["preferences"] = e.Context.Preferences
	}
	if e.Context.Timezone != "" {
		ctx["timezone"] = e.Context.Timezone
	}
	if e.Context.Mood != "" {
		ctx["mood"] = privacy.RedactText(e.Context.Mood)
	}
	return map[string]any{"conversation": msgs, "user_context": ctx}, e.Signals
}

type MetricsLogEntry struct {
	Reflection float64
	Previous   *domain.UserMetrics
	Current    domain.UserMetrics
}

func (MetricsLogEntry) Step() domain.StepName { return domain.StepUserMetrics }

func (e MetricsLogEntry) Payloads() (any, any) {
	return map[string]any{"reflection_score": e.Reflection, "previous": e.Previous}, e.Current
}

func (e MetricsLogEntry) Sanitized() (any, any) { return e.Payloads() }

type RetrievalLogEntry struct {
	Query        string
	Themes       []string
	Vectorizer   string
	Candidates   []domain.ContentItem
	Explanations []domain.ContentExplanation
}

func (RetrievalLogEntry) Step() domain.StepName { return domain.StepRetrieval }

func (e RetrievalLogEntry) Payloads() (any, any) {
	return map[string]any{"query": e.Query, "themes": e.Themes, "vectorizer": e.Vectorizer},
		map[string]any{"candidates": e.Candidates, "explanations": e.Explanations}
}

func (e RetrievalLogEntry) Sanitized() (any, any) {
	cands := make([]map[string]any, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		cands = append(cands, map[string]any{"id": c.ID, "score": c.Score, "tags": c.Tags})
	}
	return map[string]any{"themes": e.Themes, "vectorizer": e.Vectorizer},
		map[string]any{"candidates": cands}
}

type PlanLogEntry struct {
	AvailableMinutes int
	Prompt           string
	Draft            string
	Source           string
	Plan             domain.Plan
}

func (PlanLogEntry) Step() domain.StepName { return domain.StepPlan }

func (e PlanLogEntry) Payloads() (any, any) {
	return map[string]any{"available_minutes": e.AvailableMinutes, "prompt": e.Prompt},
		map[string]any{"plan": e.Plan, "draft": e.Draft, "source": e.Source}
}

func (e PlanLogEntry) Sanitized() (any, any) {
	return map[string]any{"available_minutes": e.AvailableMinutes},
		map[string]any{"items": SanitizedItems(e.Plan), "draft": e.Draft, "source": e.Source}
}

// SanitizedItems keeps only ids, durations, and citations.
func SanitizedItems(plan domain.Plan) []map[string]any {
	items := make([]map[string]any, 0, len(plan.Items))
	for _, it := range plan.Items {
		items = append(items, map[string]any{
			"content_id":       it.ContentID,
			"duration_minutes": it.DurationMinutes,
			"citation":         it.EvidenceCitation,
		})
	}
	return items
}

// SanitizedSignals keeps the numeric readings and themes of a bundle.
func SanitizedSignals(s domain.SignalBundle) map[string]any {
	return map[string]any{
		"raw_sentiment":        s.RawSentiment,
		"calibrated_sentiment": s.CalibratedSentiment,
		"themes":               s.Themes,
		"energy":               s.Energy,
		"reflection_score":     s.ReflectionScore,
	}
}

type EmpathyLogEntry struct {
	Prompt string
	Text   string
}

func (EmpathyLogEntry) Step() domain.StepName { return domain.StepEmpathy }

func (e EmpathyLogEntry) Payloads() (any, any) {
	return map[string]any{"prompt": e.Prompt}, map[string]any{"text": e.Text}
}

func (e EmpathyLogEntry) Sanitized() (any, any) {
	sum := sha256.Sum256([]byte(e.Text))
	return map[string]any{}, map[string]any{"text_hash": hex.EncodeToString(sum[:8])}
}

type LifeQualityLogEntry struct {
	Adherence float64
	Report    domain.LifeQualityReport
}

func (LifeQualityLogEntry) Step() domain.StepName { return domain.StepLifeQuality }

func (e LifeQualityLogEntry) Payloads() (any, any) {
	return map[string]any{"adherence": e.Adherence}, e.Report
}

func (e LifeQualityLogEntry) Sanitized() (any, any) { return e.Payloads() }
