package retrieval

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wellplan/internal/domain"
)

func sampleItems() []domain.ContentItem {
	return []domain.ContentItem{
		{
			ID: "breath", Title: "Breathing Reset", Summary: "Slow breathing for stress.",
			Body: "Inhale for four. Exhale for six! Repeat five times?", Tags: []string{"stress", "breathing"},
			SourceTitle: "Breath Source", SourceURL: "https://example.com/breath",
		},
		{
			ID: "sleep", Title: "Wind Down", Summary: "An evening routine for better sleep.",
			Body: "Dim the lights before bedtime. Put the phone away.", Tags: []string{"Sleep"},
		},
		{
			ID: "walk", Title: "Brisk Walk", Summary: "Walk outside for energy.",
			Body: "Walk fast for ten minutes.", Tags: []string{"energy", "mood"},
		},
	}
}

func newTestIndex(t *testing.T, items []domain.ContentItem) *Index {
	t.Helper()
	idx, err := NewIndex(context.Background(), items, NewTFIDFVectorizer(), nil)
	require.NoError(t, err)
	return idx
}

func TestSearch_EmptyCorpus(t *testing.T) {
	idx := newTestIndex(t, nil)
	got := idx.Search(context.Background(), "anything", []string{"stress"}, 5)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 0, idx.Len())
}

func TestSearch_RanksBySimilarityAndThemes(t *testing.T) {
	idx := newTestIndex(t, sampleItems())
	ctx := context.Background()

	got := idx.Search(ctx, "I can't sleep at bedtime", []string{"sleep"}, 5)
	require.Len(t, got, 3)
	assert.Equal(t, "sleep", got[0].ID)
	assert.Greater(t, got[0].Score, ThemeBoost, "case-insensitive tag boost plus similarity")

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestSearch_ThemeBoostOnly(t *testing.T) {
	idx := newTestIndex(t, sampleItems())
	got := idx.Search(context.Background(), "zzz qqq", []string{"energy", "mood"}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "walk", got[0].ID)
	assert.InDelta(t, 2*ThemeBoost, got[0].Score, 1e-9)
}

func TestSearch_TiesKeepCorpusOrder(t *testing.T) {
	items := []domain.ContentItem{
		{ID: "a", Title: "Same", Body: "Same text."},
		{ID: "b", Title: "Same", Body: "Same text."},
		{ID: "c", Title: "Same", Body: "Same text."},
	}
	idx := newTestIndex(t, items)
	got := idx.Search(context.Background(), "same", nil, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestSearch_Deterministic(t *testing.T) {
	idx := newTestIndex(t, sampleItems())
	ctx := context.Background()
	first := idx.Search(ctx, "stress and breathing", []string{"stress"}, 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, idx.Search(ctx, "stress and breathing", []string{"stress"}, 3))
	}
}

func TestSearch_ReturnsCopies(t *testing.T) {
	idx := newTestIndex(t, sampleItems())
	got := idx.Search(context.Background(), "walk", nil, 1)
	require.Len(t, got, 1)
	got[0].Tags[0] = "mutated"

	orig, ok := idx.Item(got[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", orig.Tags[0])
	assert.Equal(t, 0.0, orig.Score)
}

func TestSplitSentences(t *testing.T) {
	assert.Equal(t,
		[]string{"Inhale for four.", "Exhale for six!", "Repeat five times?"},
		SplitSentences("Inhale for four. Exhale for six! Repeat five times?"))
	assert.Equal(t, []string{"No terminator"}, SplitSentences("  No terminator  "))
	assert.Nil(t, SplitSentences("   "))
	assert.Equal(t, []string{"v1.2 is out."}, SplitSentences("v1.2 is out."))
}

func TestBestSnippet(t *testing.T) {
	idx := newTestIndex(t, sampleItems())
	item, _ := idx.Item("breath")

	snippet, score := idx.BestSnippet("exhale for six", item)
	assert.Equal(t, "Exhale for six!", snippet)
	assert.InDelta(t, 1.0, score, 1e-9)

	noBody := domain.ContentItem{ID: "x", Summary: "just a summary"}
	snippet, score = idx.BestSnippet("query", noBody)
	assert.Equal(t, "just a summary", snippet)
	assert.Equal(t, 0.0, score)
}

func TestBestSnippet_FirstWinsTies(t *testing.T) {
	item := domain.ContentItem{ID: "dup", Body: "Rest now. Rest now."}
	idx := newTestIndex(t, []domain.ContentItem{item})
	snippet, _ := idx.BestSnippet("unrelated words entirely", item)
	assert.Equal(t, "Rest now.", snippet)
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 1.0, PartialRatio("breathe", "Take a moment to BREATHE deeply."))
	assert.Equal(t, 1.0, PartialRatio("", ""))
	assert.Equal(t, 0.0, PartialRatio("", "abc"))
	assert.Less(t, PartialRatio("xyz", "abcdefg"), 0.5)
	assert.InDelta(t, PartialRatio("walk outside", "go walk"), PartialRatio("go walk", "walk outside"), 1e-12)

	r := PartialRatio("sleep well tonight", "I slept well")
	assert.Greater(t, r, 0.5)
	assert.LessOrEqual(t, r, 1.0)
}

func TestTFIDFVectorizer(t *testing.T) {
	v := NewTFIDFVectorizer()
	vecs, err := v.Fit(context.Background(), []string{"calm calm breath", "breath walk"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)

	// vocabulary order: calm, breath, walk
	idfCalm := math.Log(3.0/2.0) + 1
	idfBreath := math.Log(3.0/3.0) + 1
	wCalm, wBreath := 2.0/3*idfCalm, 1.0/3*idfBreath
	norm := math.Sqrt(wCalm*wCalm + wBreath*wBreath)
	assert.InDelta(t, wCalm/norm, vecs[0][0], 1e-9)
	assert.InDelta(t, wBreath/norm, vecs[0][1], 1e-9)
	assert.Equal(t, 0.0, vecs[0][2])

	for _, vec := range vecs {
		assert.InDelta(t, 1.0, math.Sqrt(dot(vec, vec)), 1e-9)
	}

	q, err := v.Transform(context.Background(), []string{"unknown words only"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, dot(q[0], q[0]))
}
