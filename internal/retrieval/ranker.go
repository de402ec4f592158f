package retrieval

import (
	"context"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// DefaultTopK is how many candidates a search returns when not told otherwise.
const DefaultTopK = 5

// Ranker turns index hits into candidates and explanations.
type Ranker struct {
	index *Index
}

func NewRanker(index *Index) *Ranker {
	return &Ranker{index: index}
}

// Index exposes the underlying content index.
func (r *Ranker) Index() *Index { return r.index }

// Search returns up to topK ranked candidates; topK <= 0 means DefaultTopK.
func (r *Ranker) Search(ctx context.Context, query string, themes []string, topK int) []domain.ContentItem {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return r.index.Search(ctx, query, themes, topK)
}

// Explain pairs each item with its best-matching sentence and citation.
func (r *Ranker) Explain(query string, items []domain.ContentItem) []domain.ContentExplanation {
	out := make([]domain.ContentExplanation, 0, len(items))
	for _, it := range items {
		snippet, score := r.index.BestSnippet(query, it)
		citation, url := CitationFor(it)
		out = append(out, domain.ContentExplanation{
			ContentID: it.ID,
			Snippet:   snippet,
			Citation:  citation,
			Score:     score,
			URL:       url,
		})
	}
	return out
}

// CitationFor returns how to cite item. A source title is used only when a
// source URL accompanies it; otherwise the citation is "{id}:{first tag}".
func CitationFor(item domain.ContentItem) (citation, url string) {
	if item.SourceTitle != "" && item.SourceURL != "" {
		return item.SourceTitle, item.SourceURL
	}
	tag := "general"
	if len(item.Tags) > 0 {
		tag = item.Tags[0]
	}
	return item.ID + ":" + tag, item.SourceURL
}
