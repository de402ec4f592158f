package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Prompt markers the rule-based client keys its canned answers on.
const (
	MarkerEmpathy = "EMPATHETIC_MESSAGE"
	MarkerPlan    = "PLAN_JSON"
)

const ruleBasedEmpathy = "I hear that today has been a lot, and thank you for sharing. " +
	"Let's keep this light and doable. I've picked one quick reset and one gentle practice " +
	"that fit your time and energy. If anything feels off, we'll tweak it together."

// ruleBasedPlan is the fixed plan returned for plan prompts.
var ruleBasedPlan = map[string]any{
	"day": "today",
	"items": []map[string]any{{
		"content_id":       "ritual-breathing",
		"title":            "5-Minute Breathing Reset",
		"duration_minutes": 5,
		"why_it_helps":     "Quick downshift for the nervous system; pairs well with low energy days.",
		"instructions":     "Inhale 4, hold 4, exhale 6 for five cycles.",
	}},
}

// ruleBasedClient is a deterministic offline generator. It lets the whole
// pipeline run without a model or network access.
type ruleBasedClient struct {
	observer Observer
}

// NewRuleBasedClient creates the offline LLMClient.
func NewRuleBasedClient(observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &ruleBasedClient{observer: observer}
}

func (c *ruleBasedClient) Generate(_ context.Context, req GenerateRequest) (*GenerateResponse, error) {
	prompt := req.SystemPrompt + "\n" + req.UserPrompt

	text := "Okay."
	switch {
	case strings.Contains(prompt, MarkerEmpathy):
		text = ruleBasedEmpathy
	case strings.Contains(prompt, MarkerPlan):
		data, err := json.Marshal(ruleBasedPlan)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}

	c.observer.OnCallComplete(LLMCallEvent{Task: req.Task, Model: "rule-based", Success: true})
	return &GenerateResponse{Text: text, Model: "rule-based"}, nil
}

func (c *ruleBasedClient) Available(context.Context) bool { return true }
