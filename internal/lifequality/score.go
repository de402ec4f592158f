// Package lifequality maintains the per-user Life Quality Index and the
// session metrics (streak, rolling reflection score) it is derived from.
package lifequality

import (
	"math"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
)

const (
	baseScore      = 65.0
	maxChange      = 15.0
	trendThreshold = 2.0
	// HistoryWindow is how many history entries a report covers.
	HistoryWindow = 7

	stressPenalty = -10.0
	sleepPenalty  = -5.0
)

const (
	adherenceFollowed = 0.85
	adherenceMixed    = 0.55
	adherenceSkipped  = 0.35
	adherenceNeutral  = 0.6
)

var (
	followedTerms = []string{"completed", "did", "finished", "done", "stuck with", "followed"}
	skippedTerms  = []string{"skipped", "couldn't", "didn't", "avoid", "failed"}
)

// InferAdherence estimates how well the user followed earlier plans from
// substring matches in what they wrote.
func InferAdherence(text string) float64 {
	text = strings.ToLower(text)
	if strings.TrimSpace(text) == "" {
		return adherenceNeutral
	}
	followed := containsAny(text, followedTerms)
	skipped := containsAny(text, skippedTerms)
	switch {
	case followed && skipped:
		return adherenceMixed
	case followed:
		return adherenceFollowed
	case skipped:
		return adherenceSkipped
	default:
		return adherenceNeutral
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

// ThemePenalty is -10 for stress and a further -5 for sleep.
func ThemePenalty(signals domain.SignalBundle) float64 {
	p := 0.0
	if signals.HasTheme("stress") {
		p += stressPenalty
	}
	if signals.HasTheme("sleep") {
		p += sleepPenalty
	}
	return p
}

// RawScore computes the uncapped index in [0, 100].
func RawScore(signals domain.SignalBundle, sentimentDelta, adherence float64) float64 {
	score := baseScore +
		20*domain.Clamp(sentimentDelta, -1, 1) +
		25*domain.Clamp(signals.CalibratedSentiment, -1, 1) +
		ThemePenalty(signals) +
		40*(adherence-0.5)
	return domain.Clamp(score, 0, 100)
}

// CapDelta limits raw to within ±15 of prev when a previous score exists.
// The result is always in [0, 100].
func CapDelta(prev *float64, raw float64) float64 {
	if prev == nil {
		return domain.Clamp(raw, 0, 100)
	}
	capped := math.Max(*prev-maxChange, math.Min(*prev+maxChange, raw))
	return domain.Clamp(capped, 0, 100)
}

// Trend compares the newest snapshot with the oldest one.
func Trend(snapshots []domain.LifeQualitySnapshot) domain.Trend {
	if len(snapshots) < 2 {
		return domain.TrendSteady
	}
	diff := snapshots[len(snapshots)-1].Score - snapshots[0].Score
	switch {
	case diff > trendThreshold:
		return domain.TrendUp
	case diff < -trendThreshold:
		return domain.TrendDown
	default:
		return domain.TrendSteady
	}
}
