package signals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordBackend_Score(t *testing.T) {
	kb := KeywordBackend{}
	ctx := context.Background()

	s := kb.Score(ctx, "A good and great morning")
	assert.InDelta(t, 0.8, s.Raw, 1e-9)
	assert.InDelta(t, 0.64, s.Calibrated, 1e-9)
	assert.Equal(t, 0.35, s.Confidence)

	s = kb.Score(ctx, "bad, sad, anxious and overwhelmed")
	assert.Equal(t, -1.0, s.Raw, "clamped")
	assert.InDelta(t, -0.8, s.Calibrated, 1e-9)

	s = kb.Score(ctx, "")
	assert.Equal(t, 0.0, s.Raw)
}

func TestLexiconBackend_Compound(t *testing.T) {
	lb := NewLexiconBackend()

	good := lb.Compound("good")
	assert.Greater(t, good, 0.0)
	assert.Less(t, lb.Compound("not good"), 0.0, "negation flips valence")
	assert.Greater(t, lb.Compound("very good"), good, "booster strengthens")
	assert.Less(t, lb.Compound("slightly good"), good, "dampener weakens")
	assert.Less(t, lb.Compound("good but terrible"), 0.0, "clause after but dominates")
	assert.Equal(t, 0.0, lb.Compound("ok fine"))
	assert.Equal(t, 0.0, lb.Compound(""))
}

func TestLexiconBackend_ScoreRanges(t *testing.T) {
	lb := NewLexiconBackend()
	s := lb.Score(context.Background(), "amazing wonderful fantastic awesome love joy great best happy")
	assert.LessOrEqual(t, s.Raw, 1.0)
	assert.Greater(t, s.Raw, 0.9)
	assert.InDelta(t, 1-0.25*s.Raw, s.Confidence, 1e-9)
	assert.InDelta(t, 0.9*s.Raw, s.Calibrated, 1e-9)
}

func classifierServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req classifierRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
}

func TestClassifierBackend_NestedShape(t *testing.T) {
	srv := classifierServer(t, http.StatusOK, [][]labelScore{{
		{Label: "POSITIVE", Score: 0.9},
		{Label: "NEGATIVE", Score: 0.1},
	}})
	defer srv.Close()

	cb := NewClassifierBackend(srv.URL, "", 0, nil)
	s := cb.Score(context.Background(), "lovely")
	assert.InDelta(t, 0.8, s.Raw, 1e-9)
	assert.InDelta(t, 0.9, s.Confidence, 1e-9)
	assert.InDelta(t, (0.9-0.55)/0.45, s.Calibrated, 1e-9)
	assert.True(t, cb.Available(context.Background()))
}

func TestClassifierBackend_FlatShapeAndLabelIDs(t *testing.T) {
	srv := classifierServer(t, http.StatusOK, []labelScore{
		{Label: "LABEL_0", Score: 0.7},
		{Label: "LABEL_1", Score: 0.3},
	})
	defer srv.Close()

	s := NewClassifierBackend(srv.URL, "", 0, nil).Score(context.Background(), "meh")
	assert.InDelta(t, -0.4, s.Raw, 1e-9)
	assert.InDelta(t, 0.7, s.Confidence, 1e-9)
	assert.InDelta(t, (0.3-0.55)/0.45, s.Calibrated, 1e-9)
}

func TestClassifierBackend_ErrorScoresNeutral(t *testing.T) {
	srv := classifierServer(t, http.StatusInternalServerError, map[string]string{"error": "loading"})
	defer srv.Close()

	cb := NewClassifierBackend(srv.URL, "", 0, nil)
	assert.Equal(t, Sentiment{}, cb.Score(context.Background(), "anything"))
	assert.False(t, cb.Available(context.Background()))
}

func TestClassifierBackend_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]labelScore{{Label: "positive", Score: 1}})
	}))
	defer srv.Close()

	s := NewClassifierBackend(srv.URL, "secret", 0, nil).Score(context.Background(), "x")
	assert.InDelta(t, 1.0, s.Raw, 1e-9)
}

func TestSelectSentimentBackend(t *testing.T) {
	ctx := context.Background()

	srv := classifierServer(t, http.StatusOK, []labelScore{{Label: "POSITIVE", Score: 0.6}, {Label: "NEGATIVE", Score: 0.4}})
	defer srv.Close()

	b, err := SelectSentimentBackend(ctx, Config{Mode: ModeAuto, ClassifierURL: srv.URL}, nil)
	require.NoError(t, err)
	assert.Equal(t, "classifier", b.Name())

	b, err = SelectSentimentBackend(ctx, Config{Mode: ModeAuto, ClassifierURL: "http://127.0.0.1:1", TimeoutMs: 200}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lexicon", b.Name(), "unreachable classifier falls back")

	b, err = SelectSentimentBackend(ctx, Config{Mode: ModeAuto}, nil)
	require.NoError(t, err)
	assert.Equal(t, "lexicon", b.Name())

	b, err = SelectSentimentBackend(ctx, Config{Mode: ModeKeyword}, nil)
	require.NoError(t, err)
	assert.Equal(t, "keyword", b.Name())

	_, err = SelectSentimentBackend(ctx, Config{Mode: "vibes"}, nil)
	assert.Error(t, err)
}
