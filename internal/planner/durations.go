package planner

import "github.com/alexanderramin/wellplan/internal/domain"

// durationLadder lists the activity lengths a fallback plan may use.
var durationLadder = []int{5, 10, 15, 20, 25, 30}

// PickDurations returns at most two durations from the ladder, in ascending
// order, that fit within max(5, availableMin).
func PickDurations(availableMin int) []int {
	limit := max(5, availableMin)

	out := make([]int, 0, domain.MaxPlanItems)
	for _, d := range durationLadder {
		if len(out) == domain.MaxPlanItems {
			break
		}
		if d <= limit {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = append(out, min(5, availableMin))
	}
	return out
}

// fitToBudget trims items so their total never exceeds availableMin. Each
// duration becomes min(duration, remaining) and items after the budget is
// spent are dropped. Non-positive durations pass through untouched so the
// guardrail can reject them.
func fitToBudget(items []domain.PlanItem, availableMin int) []domain.PlanItem {
	remaining := availableMin
	out := make([]domain.PlanItem, 0, len(items))
	for _, it := range items {
		if remaining <= 0 {
			break
		}
		if it.DurationMinutes > remaining {
			it.DurationMinutes = remaining
		}
		remaining -= max(0, it.DurationMinutes)
		out = append(out, it)
	}
	return out
}
