package domain

// ContentItem is one entry of the curated wellbeing corpus. Score is only
// meaningful on copies returned from a search.
type ContentItem struct {
	ID          string   `json:"id" yaml:"id" validate:"required"`
	Title       string   `json:"title" yaml:"title" validate:"required"`
	Summary     string   `json:"summary" yaml:"summary"`
	Body        string   `json:"body" yaml:"body"`
	Tags        []string `json:"tags" yaml:"tags"`
	SourceTitle string   `json:"source_title,omitempty" yaml:"source_title,omitempty"`
	SourceURL   string   `json:"source_url,omitempty" yaml:"source_url,omitempty" validate:"omitempty,url"`
	Score       float64  `json:"score" yaml:"-"`
}

// ContentExplanation ties a candidate to the sentence that best matched the
// query, along with how to cite it.
type ContentExplanation struct {
	ContentID string  `json:"content_id"`
	Snippet   string  `json:"snippet"`
	Citation  string  `json:"citation"`
	Score     float64 `json:"score"`
	URL       string  `json:"url,omitempty"`
}
