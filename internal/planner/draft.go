package planner

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// DraftKind tells the assembler whether generator output can be used.
type DraftKind int

const (
	DraftUnusable DraftKind = iota
	DraftWellFormed
)

func (k DraftKind) String() string {
	if k == DraftWellFormed {
		return "well_formed"
	}
	return "unusable"
}

// Draft is generator output after classification. Items is only populated
// for well-formed drafts and holds the raw item values as decoded.
type Draft struct {
	Kind   DraftKind
	Day    string
	Items  []any
	Reason string
}

// ClassifyDraft decides whether a generated object is a usable plan draft.
// It is well-formed only when "items" holds a non-empty list.
func ClassifyDraft(obj map[string]any, genErr error) Draft {
	if genErr != nil {
		return Draft{Kind: DraftUnusable, Reason: "generator error: " + genErr.Error()}
	}
	raw, ok := obj["items"]
	if !ok {
		return Draft{Kind: DraftUnusable, Reason: "missing items"}
	}
	items, ok := raw.([]any)
	if !ok {
		return Draft{Kind: DraftUnusable, Reason: "items is not a list"}
	}
	if len(items) == 0 {
		return Draft{Kind: DraftUnusable, Reason: "items is empty"}
	}

	day := "today"
	if d, ok := obj["day"].(string); ok && strings.TrimSpace(d) != "" {
		day = d
	}
	return Draft{Kind: DraftWellFormed, Day: day, Items: items}
}

// coerceItems converts raw draft items into plan items. Items that cannot be
// coerced are skipped; at most MaxPlanItems are returned.
func coerceItems(raw []any) []domain.PlanItem {
	out := make([]domain.PlanItem, 0, domain.MaxPlanItems)
	for _, r := range raw {
		if len(out) == domain.MaxPlanItems {
			break
		}
		if it, ok := coerceItem(r); ok {
			out = append(out, it)
		}
	}
	return out
}

func coerceItem(raw any) (domain.PlanItem, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return domain.PlanItem{}, false
	}

	contentID, ok1 := stringField(m, "content_id", true)
	title, ok2 := stringField(m, "title", true)
	why, ok3 := stringField(m, "why_it_helps", true)
	instructions, ok4 := stringField(m, "instructions", true)
	citation, ok5 := stringField(m, "evidence_citation", false)
	url, ok6 := stringField(m, "evidence_url", false)
	duration, ok7 := intField(m["duration_minutes"])
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7) {
		return domain.PlanItem{}, false
	}

	return domain.PlanItem{
		ContentID:        contentID,
		Title:            title,
		DurationMinutes:  duration,
		WhyItHelps:       why,
		Instructions:     instructions,
		EvidenceCitation: citation,
		EvidenceURL:      url,
	}, true
}

// stringField reads key from m. Optional keys may be absent or null.
func stringField(m map[string]any, key string, required bool) (string, bool) {
	v, present := m[key]
	if !present || v == nil {
		return "", !required
	}
	s, ok := v.(string)
	return s, ok
}

// intField accepts JSON numbers with no fractional part and numeric strings.
func intField(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
