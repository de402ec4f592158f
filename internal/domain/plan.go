package domain

// MaxItemMinutes is the longest single activity a plan may schedule.
const MaxItemMinutes = 240

// MaxPlanItems caps the number of activities in one plan.
const MaxPlanItems = 2

// PlanItem is one scheduled activity. ContentID may reference content that
// does not exist when a generator invents an id.
type PlanItem struct {
	ContentID        string `json:"content_id"`
	Title            string `json:"title"`
	DurationMinutes  int    `json:"duration_minutes"`
	WhyItHelps       string `json:"why_it_helps"`
	Instructions     string `json:"instructions"`
	EvidenceCitation string `json:"evidence_citation,omitempty"`
	EvidenceURL      string `json:"evidence_url,omitempty"`
}

// Plan is the set of activities proposed for today. Caution is only set when
// the proposed plan was rejected and replaced by a safer one.
type Plan struct {
	Day     string     `json:"day"`
	Items   []PlanItem `json:"items"`
	Caution string     `json:"caution,omitempty"`
}

// TotalMinutes sums the durations of all items.
func (p Plan) TotalMinutes() int {
	total := 0
	for _, it := range p.Items {
		total += it.DurationMinutes
	}
	return total
}

// Clone returns a deep copy so callers can mutate items freely.
func (p Plan) Clone() Plan {
	out := p
	out.Items = append([]PlanItem(nil), p.Items...)
	return out
}
