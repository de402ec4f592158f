package contract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/privacy"
)

// Compile-time check that every entry can go through the privacy policy.
var _ = []privacy.Loggable{
	ReflectionLogEntry{}, MetricsLogEntry{}, RetrievalLogEntry{},
	PlanLogEntry{}, EmpathyLogEntry{}, LifeQualityLogEntry{},
}

func TestStepEntries_Names(t *testing.T) {
	entries := []StepEntry{
		ReflectionLogEntry{}, MetricsLogEntry{}, RetrievalLogEntry{},
		PlanLogEntry{}, EmpathyLogEntry{}, LifeQualityLogEntry{},
	}
	want := []domain.StepName{
		domain.StepReflection, domain.StepUserMetrics, domain.StepRetrieval,
		domain.StepPlan, domain.StepEmpathy, domain.StepLifeQuality,
	}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Step())
	}
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestReflectionLogEntry_SanitizedRedactsAndTruncates(t *testing.T) {
	e := ReflectionLogEntry{
		Conversation: []domain.ConversationMessage{{
			Role:    domain.RoleUser,
			Content: "Maria Lopez emailed me at maria@example.com and I could not sleep at all last night",
		}},
		Context: domain.UserContext{UserID: "u1", AvailableMinutes: 20, Mood: "call 07700 900123", Constraints: []string{"knee pain"}},
	}

	in, _ := e.Sanitized()
	text := marshal(t, in)

	assert.NotContains(t, text, "Maria")
	assert.NotContains(t, text, "example.com")
	assert.NotContains(t, text, "900123")
	assert.NotContains(t, text, "knee pain")

	msgs := in.(map[string]any)["conversation"].([]map[string]any)
	content := msgs[0]["content"].(string)
	assert.True(t, strings.HasPrefix(content, "<name> emailed me at <email>"), content)
	assert.LessOrEqual(t, len([]rune(content)), 40)

	full, _ := e.Payloads()
	assert.Contains(t, marshal(t, full), "knee pain")
}

func TestRetrievalLogEntry_SanitizedKeepsIDsOnly(t *testing.T) {
	e := RetrievalLogEntry{
		Query:  "I am stressed about my boss",
		Themes: []string{"stress"},
		Candidates: []domain.ContentItem{
			{ID: "ritual-breathing", Title: "Breathing", Body: "long body", Tags: []string{"stress"}, Score: 0.4},
		},
	}
	in, out := e.Sanitized()

	assert.NotContains(t, marshal(t, in), "boss")
	text := marshal(t, out)
	assert.Contains(t, text, "ritual-breathing")
	assert.NotContains(t, text, "long body")
}

func TestPlanLogEntry_SanitizedDropsText(t *testing.T) {
	plan := domain.Plan{Day: "today", Items: []domain.PlanItem{{
		ContentID: "wind-down", Title: "Evening Wind-Down", DurationMinutes: 10,
		WhyItHelps: "because you said you cannot sleep", EvidenceCitation: "wind-down:sleep",
	}}}
	e := PlanLogEntry{AvailableMinutes: 15, Prompt: "secret prompt", Plan: plan, Source: "generated"}

	in, out := e.Sanitized()
	assert.NotContains(t, marshal(t, in), "secret")
	text := marshal(t, out)
	assert.Contains(t, text, `"citation":"wind-down:sleep"`)
	assert.NotContains(t, text, "cannot sleep")
}

func TestEmpathyLogEntry_SanitizedHashes(t *testing.T) {
	a := EmpathyLogEntry{Text: "That sounds hard."}
	b := EmpathyLogEntry{Text: "That sounds hard."}

	_, outA := a.Sanitized()
	_, outB := b.Sanitized()
	assert.Equal(t, outA, outB)
	assert.False(t, strings.Contains(marshal(t, outA), "hard"))
}

func TestSanitizedSignals(t *testing.T) {
	s := domain.SignalBundle{RawSentiment: -0.4, Themes: []string{"sleep"}, Summary: "Sentiment -0.40."}
	got := SanitizedSignals(s)
	assert.Equal(t, -0.4, got["raw_sentiment"])
	_, hasSummary := got["summary"]
	assert.False(t, hasSummary)
}

func TestNewPlanRequest(t *testing.T) {
	req := NewPlanRequest("u1", "tired", 20)
	assert.Equal(t, "u1", req.Context.UserID)
	assert.Equal(t, 20, req.Context.AvailableMinutes)
	require.Len(t, req.Conversation, 1)
	assert.Equal(t, domain.RoleUser, req.Conversation[0].Role)

	assert.Equal(t, 7, NewHistoryRequest("u1").Limit)
}
