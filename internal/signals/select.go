package signals

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Backend modes accepted by Config.Mode.
const (
	ModeAuto       = "auto"
	ModeClassifier = "classifier"
	ModeLexicon    = "lexicon"
	ModeKeyword    = "keyword"
)

// Config selects and configures the sentiment tier.
type Config struct {
	Mode            string `validate:"oneof=auto classifier lexicon keyword"`
	ClassifierURL   string `validate:"omitempty,url"`
	ClassifierToken string
	TimeoutMs       int `validate:"min=0"`
}

// DefaultConfig probes all tiers in order.
func DefaultConfig() Config {
	return Config{Mode: ModeAuto, TimeoutMs: 3000}
}

// SelectSentimentBackend probes the tiers once, starting at the configured
// mode, and returns the first available one. The keyword tier is always
// available, so an error means the mode itself was invalid.
func SelectSentimentBackend(ctx context.Context, cfg Config, logger *slog.Logger) (SentimentBackend, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var start int
	switch cfg.Mode {
	case ModeAuto, ModeClassifier, "":
		start = 0
	case ModeLexicon:
		start = 1
	case ModeKeyword:
		start = 2
	default:
		return nil, fmt.Errorf("unknown sentiment mode %q", cfg.Mode)
	}

	if start == 0 {
		if cfg.ClassifierURL != "" {
			cb := NewClassifierBackend(cfg.ClassifierURL, cfg.ClassifierToken,
				time.Duration(cfg.TimeoutMs)*time.Millisecond, logger)
			if cb.Available(ctx) {
				logger.Info("sentiment backend selected", "backend", cb.Name())
				return cb, nil
			}
			logger.Warn("sentiment classifier unavailable, falling back", "url", cfg.ClassifierURL)
		}
		start = 1
	}

	if start == 1 {
		lb := NewLexiconBackend()
		if lb.Available() {
			logger.Info("sentiment backend selected", "backend", lb.Name())
			return lb, nil
		}
	}

	logger.Info("sentiment backend selected", "backend", "keyword")
	return KeywordBackend{}, nil
}
