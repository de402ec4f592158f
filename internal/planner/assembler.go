package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/llm"
	"github.com/alexanderramin/wellplan/internal/retrieval"
)

const (
	defensiveRationale    = "Quick reset"
	substitutionRationale = "Simple, safe, and time-bound. Built from curated wellbeing content."
	defensiveMaxMinutes   = 5
)

// Source records which branch produced the final plan.
type Source string

const (
	SourceGenerated   Source = "generated"
	SourceFallback    Source = "fallback"
	SourceDefensive   Source = "defensive"
	SourceSubstituted Source = "substituted"
)

// Generator is the generation capability the assembler needs.
type Generator interface {
	GenerateJSON(ctx context.Context, task llm.TaskType, prompt string) (map[string]any, error)
	GenerateText(ctx context.Context, task llm.TaskType, prompt string) (string, error)
}

// AssembleInput carries everything a plan is built from.
type AssembleInput struct {
	AvailableMinutes int
	Signals          domain.SignalBundle
	Candidates       []domain.ContentItem
	Explanations     []domain.ContentExplanation
}

// Result is the assembled plan plus provenance for the step log.
type Result struct {
	Plan   domain.Plan
	Prompt string
	Draft  DraftKind
	Source Source
}

// Assembler turns ranked candidates and signals into a validated plan. It
// always returns a plan; generator failures are absorbed by fallbacks.
type Assembler struct {
	gen    Generator
	logger *slog.Logger
}

func NewAssembler(gen Generator, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assembler{gen: gen, logger: logger}
}

// Assemble runs generation, fallback construction, coercion, citation
// backfill and guardrail validation, in that order.
func (a *Assembler) Assemble(ctx context.Context, in AssembleInput) Result {
	minutes := max(1, in.AvailableMinutes)
	prompt := BuildPlanPrompt(minutes, in.Signals, in.Candidates)

	obj, genErr := a.gen.GenerateJSON(ctx, llm.TaskPlan, prompt)
	if genErr != nil {
		a.logger.Warn("plan generation failed", "error", genErr)
	}
	draft := ClassifyDraft(obj, genErr)

	res := Result{Prompt: prompt, Draft: draft.Kind, Source: SourceGenerated}
	var items []domain.PlanItem
	day := "today"
	switch draft.Kind {
	case DraftWellFormed:
		items = coerceItems(draft.Items)
		day = draft.Day
	default:
		a.logger.Info("plan draft unusable, building fallback", "reason", draft.Reason)
		items = fallbackItems(minutes, in)
		res.Source = SourceFallback
	}

	if len(items) == 0 && len(in.Candidates) > 0 {
		items = []domain.PlanItem{itemFrom(in.Candidates[0], min(defensiveMaxMinutes, minutes), defensiveRationale)}
		res.Source = SourceDefensive
	}

	plan := Backfill(domain.Plan{Day: day, Items: fitToBudget(items, minutes)}, in.Candidates)

	if ok, reason := Validate(plan); !ok {
		a.logger.Info("plan rejected by guardrail", "reason", reason)
		plan = Backfill(substitute(minutes, in.Candidates, reason), in.Candidates)
		res.Source = SourceSubstituted
	}

	res.Plan = plan
	return res
}

// fallbackItems zips PickDurations with the top candidates.
func fallbackItems(minutes int, in AssembleInput) []domain.PlanItem {
	durations := PickDurations(minutes)
	themes := strings.Join(in.Signals.Themes, ", ")

	out := make([]domain.PlanItem, 0, len(durations))
	for i, d := range durations {
		if i >= len(in.Candidates) {
			break
		}
		c := in.Candidates[i]
		rationale := c.Summary
		for _, exp := range in.Explanations {
			if exp.ContentID == c.ID {
				rationale = exp.Snippet
				break
			}
		}
		why := fmt.Sprintf("%s (themes: %s)", rationale, themes)
		out = append(out, itemFrom(c, min(d, minutes), why))
	}
	return out
}

// substitute builds the conservative plan used when validation fails.
func substitute(minutes int, candidates []domain.ContentItem, reason string) domain.Plan {
	plan := domain.Plan{Day: "today", Items: []domain.PlanItem{}, Caution: reason}
	if len(candidates) > 0 {
		plan.Items = append(plan.Items, itemFrom(candidates[0], min(defensiveMaxMinutes, minutes), substitutionRationale))
	}
	return plan
}

func itemFrom(c domain.ContentItem, minutes int, why string) domain.PlanItem {
	citation, url := retrieval.CitationFor(c)
	return domain.PlanItem{
		ContentID:        c.ID,
		Title:            c.Title,
		DurationMinutes:  minutes,
		WhyItHelps:       why,
		Instructions:     c.Body,
		EvidenceCitation: citation,
		EvidenceURL:      url,
	}
}

// Backfill fills missing citations for items whose content id matches a
// candidate. Items with unknown ids are left alone. Applying it twice gives
// the same plan as applying it once.
func Backfill(plan domain.Plan, candidates []domain.ContentItem) domain.Plan {
	byID := make(map[string]domain.ContentItem, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	out := plan.Clone()
	if out.Items == nil {
		out.Items = []domain.PlanItem{}
	}
	for i := range out.Items {
		c, ok := byID[out.Items[i].ContentID]
		if !ok {
			continue
		}
		citation, url := retrieval.CitationFor(c)
		if out.Items[i].EvidenceCitation == "" {
			out.Items[i].EvidenceCitation = citation
		}
		if out.Items[i].EvidenceURL == "" && url != "" {
			out.Items[i].EvidenceURL = url
		}
	}
	return out
}

// Empathize asks the generator for a short supportive message and returns it
// along with the prompt used. A failed or blank generation yields a fixed
// message built from the themes.
func (a *Assembler) Empathize(ctx context.Context, in AssembleInput) (text, prompt string) {
	minutes := max(1, in.AvailableMinutes)
	prompt = BuildEmpathyPrompt(minutes, in.Signals, in.Candidates)

	text, err := a.gen.GenerateText(ctx, llm.TaskEmpathy, prompt)
	if err != nil {
		a.logger.Warn("empathy generation failed", "error", err)
		return fallbackEmpathy(in.Signals), prompt
	}
	if strings.TrimSpace(text) == "" {
		return fallbackEmpathy(in.Signals), prompt
	}
	return strings.TrimSpace(text), prompt
}

func fallbackEmpathy(signals domain.SignalBundle) string {
	theme := domain.DefaultTheme
	if len(signals.Themes) > 0 {
		theme = signals.Themes[0]
	}
	return fmt.Sprintf("Thanks for sharing how things are going. It sounds like %s has been on your mind, "+
		"and that is a very normal thing to carry. Here is a small plan that fits your time; "+
		"adjust it however you need.", theme)
}
