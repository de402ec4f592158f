package retrieval

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// ErrCorpusLoad means the content corpus could not be read or is invalid.
var ErrCorpusLoad = errors.New("loading content corpus")

//go:embed corpus/wellbeing_content.json
var defaultCorpus []byte

// LoadCorpus reads content items from path, choosing YAML or JSON by file
// extension. An empty path loads the bundled corpus.
func LoadCorpus(path string) ([]domain.ContentItem, error) {
	if path == "" {
		return parseCorpus(defaultCorpus, false)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusLoad, err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return parseCorpus(data, ext == ".yaml" || ext == ".yml")
}

func parseCorpus(data []byte, isYAML bool) ([]domain.ContentItem, error) {
	var items []domain.ContentItem
	var err error
	if isYAML {
		err = yaml.Unmarshal(data, &items)
	} else {
		err = json.Unmarshal(data, &items)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrCorpusLoad, err)
	}

	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if err := domain.Validator().Struct(it); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorpusLoad, i, err)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCorpusLoad, it.ID)
		}
		seen[it.ID] = true
		items[i].Score = 0
	}
	return items, nil
}

// SelectVectorizer probes the embedding server once when embeddings are
// enabled and falls back to TF-IDF if it cannot serve.
func SelectVectorizer(ctx context.Context, cfg EmbeddingConfig, logger *slog.Logger) Vectorizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Enabled {
		emb := NewOllamaEmbedder(cfg)
		err := emb.Health(ctx)
		if err == nil {
			logger.Info("vectorizer selected", "vectorizer", emb.Name())
			return emb
		}
		logger.Warn("embedding backend unavailable, using tfidf", "error", err)
	}
	logger.Info("vectorizer selected", "vectorizer", "tfidf")
	return NewTFIDFVectorizer()
}
