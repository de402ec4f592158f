package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// unsafeTitleTerms are matched case-insensitively against item titles only.
var unsafeTitleTerms = []string{"fasting", "ice bath", "supplement"}

// Validate checks a plan against the safety rules. reason is empty when ok.
// Rules are applied in a fixed order and the first failure is reported.
func Validate(plan domain.Plan) (ok bool, reason string) {
	if plan.TotalMinutes() <= 0 {
		return false, "Plan has no time allocated."
	}
	for _, it := range plan.Items {
		if it.DurationMinutes <= 0 || it.DurationMinutes > domain.MaxItemMinutes {
			return false, fmt.Sprintf("Invalid duration for item %s.", it.Title)
		}
	}
	for _, it := range plan.Items {
		if strings.TrimSpace(it.EvidenceCitation) == "" {
			return false, fmt.Sprintf("Missing evidence citation for item %s.", it.Title)
		}
	}
	for _, it := range plan.Items {
		title := strings.ToLower(it.Title)
		for _, term := range unsafeTitleTerms {
			if strings.Contains(title, term) {
				return false, "Potentially unsafe recommendation detected."
			}
		}
	}
	return true, ""
}
