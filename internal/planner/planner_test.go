package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wellplan/internal/domain"
)

func TestPickDurations(t *testing.T) {
	tests := []struct {
		minutes int
		want    []int
	}{
		{1, []int{5}},
		{5, []int{5}},
		{9, []int{5}},
		{10, []int{5, 10}},
		{15, []int{5, 10}},
		{480, []int{5, 10}},
		{0, []int{5}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PickDurations(tt.minutes), "minutes=%d", tt.minutes)
	}
}

func TestFitToBudget(t *testing.T) {
	items := []domain.PlanItem{{Title: "a", DurationMinutes: 5}, {Title: "b", DurationMinutes: 10}}

	got := fitToBudget(items, 12)
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].DurationMinutes)
	assert.Equal(t, 7, got[1].DurationMinutes)

	got = fitToBudget(items, 5)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].DurationMinutes)

	got = fitToBudget(items, 3)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].DurationMinutes)

	assert.Equal(t, 5, items[0].DurationMinutes, "input is not mutated")
}

func validItem(title string) domain.PlanItem {
	return domain.PlanItem{ContentID: "x", Title: title, DurationMinutes: 5, EvidenceCitation: "src"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		plan   domain.Plan
		ok     bool
		reason string
	}{
		{"valid", domain.Plan{Items: []domain.PlanItem{validItem("Walk")}}, true, ""},
		{"empty", domain.Plan{}, false, "Plan has no time allocated."},
		{"zero total", domain.Plan{Items: []domain.PlanItem{{Title: "Nap", EvidenceCitation: "s"}}}, false, "Plan has no time allocated."},
		{
			"too long",
			domain.Plan{Items: []domain.PlanItem{{Title: "Hike", DurationMinutes: 241, EvidenceCitation: "s"}}},
			false, "Invalid duration for item Hike.",
		},
		{
			"negative duration among valid",
			domain.Plan{Items: []domain.PlanItem{validItem("Walk"), {Title: "Odd", DurationMinutes: -1, EvidenceCitation: "s"}}},
			false, "Invalid duration for item Odd.",
		},
		{
			"missing citation",
			domain.Plan{Items: []domain.PlanItem{{Title: "Walk", DurationMinutes: 5}}},
			false, "Missing evidence citation for item Walk.",
		},
		{
			"unsafe title",
			domain.Plan{Items: []domain.PlanItem{validItem("Morning ICE BATH")}},
			false, "Potentially unsafe recommendation detected.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(tt.plan)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestValidate_UnsafeTermOnlyCheckedInTitle(t *testing.T) {
	it := validItem("Evening routine")
	it.Instructions = "Take a supplement before bed."
	ok, _ := Validate(domain.Plan{Items: []domain.PlanItem{it}})
	assert.True(t, ok)
}

func TestClassifyDraft(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]any
		want DraftKind
	}{
		{"no items key", map[string]any{"foo": 1.0}, DraftUnusable},
		{"items wrong type", map[string]any{"items": "walk"}, DraftUnusable},
		{"items empty", map[string]any{"items": []any{}}, DraftUnusable},
		{"raw fallback", map[string]any{"raw": "sorry"}, DraftUnusable},
		{"well formed", map[string]any{"items": []any{map[string]any{}}}, DraftWellFormed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ClassifyDraft(tt.obj, nil)
			assert.Equal(t, tt.want, d.Kind)
			if d.Kind == DraftUnusable {
				assert.NotEmpty(t, d.Reason)
			}
		})
	}

	d := ClassifyDraft(map[string]any{"items": []any{1.0}, "day": "monday"}, nil)
	assert.Equal(t, "monday", d.Day)
	assert.Equal(t, "today", ClassifyDraft(map[string]any{"items": []any{1.0}}, nil).Day)
}

func TestCoerceItems(t *testing.T) {
	good := map[string]any{
		"content_id":       "a",
		"title":            "A",
		"duration_minutes": 5.0,
		"why_it_helps":     "w",
		"instructions":     "i",
	}
	stringDuration := map[string]any{
		"content_id":        "b",
		"title":             "B",
		"duration_minutes":  " 10 ",
		"why_it_helps":      "w",
		"instructions":      "i",
		"evidence_citation": nil,
	}
	fractional := map[string]any{
		"content_id":       "c",
		"title":            "C",
		"duration_minutes": 2.5,
		"why_it_helps":     "w",
		"instructions":     "i",
	}
	missingTitle := map[string]any{"content_id": "d", "duration_minutes": 5.0, "why_it_helps": "w", "instructions": "i"}

	got := coerceItems([]any{fractional, "junk", missingTitle, good, stringDuration, good})
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ContentID)
	assert.Equal(t, 5, got[0].DurationMinutes)
	assert.Equal(t, "b", got[1].ContentID)
	assert.Equal(t, 10, got[1].DurationMinutes)

	assert.Empty(t, coerceItems([]any{fractional, missingTitle}))
}
