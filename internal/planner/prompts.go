package planner

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/llm"
)

// maxPromptCandidates bounds how many candidates a prompt describes.
const maxPromptCandidates = 5

// planPromptTemplate asks the generator for a strict JSON plan. The trailing
// marker is what the rule-based generator keys on.
const planPromptTemplate = `You are a planner. Output strictly valid JSON in a top-level object, no Markdown.

The user can spend up to %[1]d minutes today.
Signals: %[2]s
You have these candidate interventions (id, title, tags, summary): %[3]s

Return an object with:
- day: always "today"
- items: an array of 1-2 items. Each item has:
  - content_id (string)
  - title (string)
  - duration_minutes (integer <= %[1]d)
  - why_it_helps (short, concrete reason, tailored to signals/themes)
  - instructions (1-3 sentences, actionable)

Only include items that fit the time budget and align with themes.
Do not include any extra keys, comments, or trailing text.

Return JSON ONLY:

` + llm.MarkerPlan + `:
`

const empathyPromptTemplate = `You are a careful wellbeing coach. You will write an ` + llm.MarkerEmpathy + `.

Context:
- User signals: %s
- Available minutes: %d
- Candidate actions: %s

Guidelines:
- Sound human and caring; 2-4 sentences.
- Acknowledge how the user feels, reflect 1-2 themes, normalize the experience.
- Set a gentle, confident tone and motivate the plan that follows.
- Avoid moralizing; emphasize adjustability.

Write ` + llm.MarkerEmpathy + ` now.
`

// promptCandidate is the slice of a ContentItem a generator gets to see.
type promptCandidate struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

// BuildPlanPrompt renders the plan generation prompt.
func BuildPlanPrompt(availableMin int, signals domain.SignalBundle, candidates []domain.ContentItem) string {
	return fmt.Sprintf(planPromptTemplate, availableMin, mustJSON(signals), candidatesJSON(candidates))
}

// BuildEmpathyPrompt renders the empathetic message prompt.
func BuildEmpathyPrompt(availableMin int, signals domain.SignalBundle, candidates []domain.ContentItem) string {
	return fmt.Sprintf(empathyPromptTemplate, mustJSON(signals), availableMin, candidatesJSON(candidates))
}

func candidatesJSON(candidates []domain.ContentItem) string {
	n := min(len(candidates), maxPromptCandidates)
	out := make([]promptCandidate, 0, n)
	for _, c := range candidates[:n] {
		tags := c.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, promptCandidate{ID: c.ID, Title: c.Title, Tags: tags, Summary: c.Summary})
	}
	return mustJSON(out)
}

// mustJSON marshals values whose types are known to be serializable.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}
