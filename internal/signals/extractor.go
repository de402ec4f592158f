package signals

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// Extractor turns a conversation and user context into a SignalBundle using
// one sentiment backend chosen at startup.
type Extractor struct {
	backend SentimentBackend
}

// NewExtractor creates an Extractor bound to backend.
func NewExtractor(backend SentimentBackend) *Extractor {
	return &Extractor{backend: backend}
}

// BackendName reports which sentiment tier is active.
func (e *Extractor) BackendName() string {
	return e.backend.Name()
}

// Extract reads sentiment, themes, energy and the composite reflection score.
func (e *Extractor) Extract(ctx context.Context, conversation []domain.ConversationMessage, uc domain.UserContext) domain.SignalBundle {
	text := domain.MergeConversation(conversation)

	var s Sentiment
	if strings.TrimSpace(text) != "" {
		s = e.backend.Score(ctx, text)
	}
	s = s.bounded()

	themes := ExtractThemes(text, uc)

	energyText := text
	if uc.Mood != "" {
		energyText = text + " " + uc.Mood
	}
	energy := InferEnergy(energyText)

	reflection := ReflectionScore(s.Calibrated, len(themes), energy)

	return domain.SignalBundle{
		RawSentiment:        s.Raw,
		Confidence:          s.Confidence,
		CalibratedSentiment: s.Calibrated,
		Backend:             e.backend.Name(),
		ReflectionScore:     reflection,
		Themes:              themes,
		Energy:              energy,
		Summary: fmt.Sprintf("Sentiment %.2f. Themes: %s. Energy: %s.",
			s.Raw, strings.Join(themes, ", "), energy),
	}
}

// ExtractThemes returns the sorted theme set for text, never empty.
func ExtractThemes(text string, uc domain.UserContext) []string {
	lowered := strings.ToLower(text)
	found := make(map[string]struct{})
	for theme, m := range themeMatchers {
		if m.matchAny(lowered) {
			found[theme] = struct{}{}
		}
	}
	if focus := strings.ToLower(strings.TrimSpace(uc.FocusArea)); focus != "" {
		found[focus] = struct{}{}
	}
	for _, p := range uc.Preferences {
		p = strings.ToLower(strings.TrimSpace(p))
		if domain.IsKnownTheme(p) {
			found[p] = struct{}{}
		}
	}
	if len(found) == 0 {
		return []string{domain.DefaultTheme}
	}
	themes := make([]string, 0, len(found))
	for t := range found {
		themes = append(themes, t)
	}
	sort.Strings(themes)
	return themes
}

// InferEnergy classifies text as low, high or medium energy. Low wins over high.
func InferEnergy(text string) domain.Energy {
	lowered := strings.ToLower(text)
	switch {
	case lowEnergy.matchAny(lowered):
		return domain.EnergyLow
	case highEnergy.matchAny(lowered):
		return domain.EnergyHigh
	default:
		return domain.EnergyMedium
	}
}

// ReflectionScore combines calibrated sentiment, theme count and energy into [0,1].
func ReflectionScore(calibrated float64, themeCount int, energy domain.Energy) float64 {
	themeBonus := math.Min(0.2, 0.05*float64(themeCount))
	var adj float64
	switch energy {
	case domain.EnergyLow:
		adj = -0.1
	case domain.EnergyHigh:
		adj = 0.08
	}
	return domain.Clamp(0.5+0.4*calibrated+themeBonus+adj, 0, 1)
}
