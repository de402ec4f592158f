package signals

import (
	"context"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// Sentiment is one backend's reading of a text.
type Sentiment struct {
	Raw        float64
	Confidence float64
	Calibrated float64
}

// bounded clamps every field into its documented range.
func (s Sentiment) bounded() Sentiment {
	return Sentiment{
		Raw:        domain.Clamp(s.Raw, -1, 1),
		Confidence: domain.Clamp(s.Confidence, 0, 1),
		Calibrated: domain.Clamp(s.Calibrated, -1, 1),
	}
}

// SentimentBackend scores free text. Implementations must never fail: a
// backend that cannot score returns a neutral Sentiment.
type SentimentBackend interface {
	Name() string
	Score(ctx context.Context, text string) Sentiment
}

const keywordStep = 0.4

var (
	positiveWords = newPhraseSet([]string{"good", "great", "calm", "happy", "okay", "content"})
	negativeWords = newPhraseSet([]string{"bad", "tired", "stressed", "sad", "anxious", "overwhelmed"})
)

// KeywordBackend is the dependency-free tier: each positive or negative
// keyword present moves the score by 0.4.
type KeywordBackend struct{}

func (KeywordBackend) Name() string { return "keyword" }

func (KeywordBackend) Score(_ context.Context, text string) Sentiment {
	if strings.TrimSpace(text) == "" {
		return Sentiment{Confidence: 0.35}
	}
	lowered := strings.ToLower(text)
	score := keywordStep * float64(positiveWords.hits(lowered)-negativeWords.hits(lowered))
	score = domain.Clamp(score, -1, 1)
	return Sentiment{
		Raw:        score,
		Confidence: 0.35,
		Calibrated: domain.Clamp(0.8*score, -1, 1),
	}
}
