package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// ThemeBoost is added to a document's similarity for each theme it is tagged with.
const ThemeBoost = 0.12

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// Index is an exact, in-memory vector index over the content corpus. It is
// immutable after NewIndex returns and safe for concurrent readers.
type Index struct {
	items      []domain.ContentItem
	byID       map[string]int
	vectors    [][]float64
	sentences  [][]string
	tags       []map[string]bool
	vectorizer Vectorizer
	logger     *slog.Logger
}

// NewIndex embeds every item with vectorizer and splits bodies into sentences.
func NewIndex(ctx context.Context, items []domain.ContentItem, vectorizer Vectorizer, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	idx := &Index{
		items:      append([]domain.ContentItem(nil), items...),
		byID:       make(map[string]int, len(items)),
		sentences:  make([][]string, len(items)),
		tags:       make([]map[string]bool, len(items)),
		vectorizer: vectorizer,
		logger:     logger,
	}

	docs := make([]string, len(items))
	for i, it := range idx.items {
		idx.items[i].Score = 0
		idx.byID[it.ID] = i
		docs[i] = composeDocument(it)
		idx.sentences[i] = SplitSentences(it.Body)
		tags := make(map[string]bool, len(it.Tags))
		for _, t := range it.Tags {
			tags[strings.ToLower(t)] = true
		}
		idx.tags[i] = tags
	}

	if len(docs) > 0 {
		vecs, err := vectorizer.Fit(ctx, docs)
		if err != nil {
			return nil, fmt.Errorf("vectorizing corpus with %s: %w", vectorizer.Name(), err)
		}
		idx.vectors = vecs
	}
	return idx, nil
}

func composeDocument(it domain.ContentItem) string {
	return strings.Join([]string{it.Title, it.Summary, it.Body}, " \n")
}

// SplitSentences breaks text after '.', '!' or '?' followed by whitespace,
// keeping the terminator and dropping empty pieces.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if s := strings.TrimSpace(text[start : loc[0]+1]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Len reports the number of indexed items.
func (idx *Index) Len() int { return len(idx.items) }

// VectorizerName reports which backend embedded the corpus.
func (idx *Index) VectorizerName() string { return idx.vectorizer.Name() }

// Item returns the indexed item with the given id.
func (idx *Index) Item(id string) (domain.ContentItem, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return domain.ContentItem{}, false
	}
	return idx.items[i], true
}

// Search ranks every item by dot-product similarity to query plus the theme
// boost and returns copies of the topK best, each carrying its score. Equal
// scores keep corpus order. A query that cannot be embedded scores on theme
// overlap alone.
func (idx *Index) Search(ctx context.Context, query string, themes []string, topK int) []domain.ContentItem {
	if len(idx.items) == 0 || topK <= 0 {
		return []domain.ContentItem{}
	}

	var qvec []float64
	vecs, err := idx.vectorizer.Transform(ctx, []string{query})
	if err != nil || len(vecs) == 0 {
		idx.logger.Warn("query embedding failed, ranking by themes only",
			"vectorizer", idx.vectorizer.Name(), "error", err)
	} else {
		qvec = vecs[0]
	}

	wanted := make(map[string]bool, len(themes))
	for _, t := range themes {
		wanted[strings.ToLower(t)] = true
	}

	type scored struct {
		pos   int
		score float64
	}
	ranked := make([]scored, len(idx.items))
	for i := range idx.items {
		var sim float64
		if qvec != nil && i < len(idx.vectors) {
			sim = dot(idx.vectors[i], qvec)
		}
		overlap := 0
		for t := range wanted {
			if idx.tags[i][t] {
				overlap++
			}
		}
		ranked[i] = scored{pos: i, score: sim + ThemeBoost*float64(overlap)}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	n := min(topK, len(ranked))
	out := make([]domain.ContentItem, n)
	for i := 0; i < n; i++ {
		it := idx.items[ranked[i].pos]
		it.Tags = append([]string(nil), it.Tags...)
		it.Score = ranked[i].score
		out[i] = it
	}
	return out
}

// BestSnippet returns the item sentence that best matches query and its
// partial-match score. The first sentence wins ties. Items without sentences
// fall back to their summary, or body, with score 0.
func (idx *Index) BestSnippet(query string, item domain.ContentItem) (string, float64) {
	var sentences []string
	if i, ok := idx.byID[item.ID]; ok {
		sentences = idx.sentences[i]
	} else {
		sentences = SplitSentences(item.Body)
	}
	if len(sentences) == 0 {
		return domain.CoalesceStr(item.Summary, item.Body), 0
	}

	best, bestScore := "", -1.0
	for _, s := range sentences {
		if score := PartialRatio(query, s); score > bestScore {
			best, bestScore = s, score
		}
	}
	return best, bestScore
}
