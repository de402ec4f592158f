package domain

// SignalBundle is the structured reading of one conversation. It is built
// once per session and never mutated afterwards.
type SignalBundle struct {
	RawSentiment        float64  `json:"raw_sentiment"`
	Confidence          float64  `json:"confidence"`
	CalibratedSentiment float64  `json:"calibrated_sentiment"`
	Backend             string   `json:"sentiment_backend"`
	ReflectionScore     float64  `json:"reflection_score"`
	Themes              []string `json:"themes"`
	Energy              Energy   `json:"energy"`
	Summary             string   `json:"summary"`
}

// HasTheme reports whether the bundle carries the named theme.
func (s SignalBundle) HasTheme(name string) bool {
	for _, t := range s.Themes {
		if t == name {
			return true
		}
	}
	return false
}
