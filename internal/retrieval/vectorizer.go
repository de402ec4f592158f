package retrieval

import (
	"context"
	"math"
	"regexp"
	"strings"
)

// Vectorizer turns documents into L2-normalized vectors. Fit is called once
// with the corpus; Transform embeds queries into the same space.
type Vectorizer interface {
	Name() string
	Fit(ctx context.Context, docs []string) ([][]float64, error)
	Transform(ctx context.Context, texts []string) ([][]float64, error)
}

var tfidfToken = regexp.MustCompile(`[a-zA-Z']+`)

func tokenize(text string) []string {
	return tfidfToken.FindAllString(strings.ToLower(text), -1)
}

// TFIDFVectorizer is a bag-of-words model built from the corpus itself.
// Terms are indexed in first-seen order so vectors are reproducible.
type TFIDFVectorizer struct {
	vocab map[string]int
	idf   []float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{vocab: map[string]int{}}
}

func (v *TFIDFVectorizer) Name() string { return "tfidf" }

// Fit builds the vocabulary and smoothed idf weights, ln((1+N)/(1+df)) + 1.
func (v *TFIDFVectorizer) Fit(_ context.Context, docs []string) ([][]float64, error) {
	vocab := map[string]int{}
	var df []int
	docTokens := make([][]string, len(docs))
	for i, doc := range docs {
		tokens := tokenize(doc)
		docTokens[i] = tokens
		seen := map[string]bool{}
		for _, tok := range tokens {
			idx, ok := vocab[tok]
			if !ok {
				idx = len(vocab)
				vocab[tok] = idx
				df = append(df, 0)
			}
			if !seen[tok] {
				seen[tok] = true
				df[idx]++
			}
		}
	}

	n := float64(max(1, len(docs)))
	idf := make([]float64, len(df))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
	v.vocab = vocab
	v.idf = idf

	return v.transformTokens(docTokens), nil
}

// Transform ignores terms outside the fitted vocabulary.
func (v *TFIDFVectorizer) Transform(_ context.Context, texts []string) ([][]float64, error) {
	docTokens := make([][]string, len(texts))
	for i, t := range texts {
		docTokens[i] = tokenize(t)
	}
	return v.transformTokens(docTokens), nil
}

func (v *TFIDFVectorizer) transformTokens(docTokens [][]string) [][]float64 {
	out := make([][]float64, len(docTokens))
	for row, tokens := range docTokens {
		vec := make([]float64, len(v.vocab))
		out[row] = vec
		if len(tokens) == 0 {
			continue
		}
		counts := map[string]int{}
		for _, tok := range tokens {
			counts[tok]++
		}
		total := float64(len(tokens))
		for tok, c := range counts {
			idx, ok := v.vocab[tok]
			if !ok {
				continue
			}
			vec[idx] = float64(c) / total * v.idf[idx]
		}
		normalize(vec)
	}
	return out
}

// normalize scales vec to unit length in place. Zero vectors are left alone.
func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

func dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	var s float64
	for i := 0; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}
