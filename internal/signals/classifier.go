package signals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// ClassifierBackend scores text with a remote text-classification model that
// returns label probabilities, in the shape served by Hugging Face inference
// endpoints: [[{"label":"POSITIVE","score":0.98}, ...]].
type ClassifierBackend struct {
	url     string
	token   string
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
}

// NewClassifierBackend creates a backend for the endpoint at url.
func NewClassifierBackend(url, token string, timeout time.Duration, logger *slog.Logger) *ClassifierBackend {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ClassifierBackend{
		url:     url,
		token:   token,
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 2 * time.Second}).DialContext,
			},
		},
		logger: logger,
	}
}

func (c *ClassifierBackend) Name() string { return "classifier" }

type classifierRequest struct {
	Inputs string `json:"inputs"`
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Score never fails; transport or decoding errors yield a neutral reading
// with zero confidence, meaning no evidence either way.
func (c *ClassifierBackend) Score(ctx context.Context, text string) Sentiment {
	pos, neg, err := c.classify(ctx, text)
	if err != nil {
		c.logger.Warn("sentiment classifier failed, scoring neutral", "error", err)
		return Sentiment{}
	}
	return Sentiment{
		Raw:        pos - neg,
		Confidence: max(pos, neg),
		Calibrated: domain.Clamp((pos-0.55)/0.45, -1, 1),
	}
}

// Available probes the endpoint with a short classification request.
func (c *ClassifierBackend) Available(ctx context.Context) bool {
	_, _, err := c.classify(ctx, "ok")
	return err == nil
}

func (c *ClassifierBackend) classify(ctx context.Context, text string) (pos, neg float64, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(classifierRequest{Inputs: text})
	if err != nil {
		return 0, 0, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, string(body))
	}

	scores, err := decodeLabelScores(body)
	if err != nil {
		return 0, 0, err
	}
	var sawPos, sawNeg bool
	for _, ls := range scores {
		switch labelPolarity(ls.Label) {
		case 1:
			pos, sawPos = ls.Score, true
		case -1:
			neg, sawNeg = ls.Score, true
		}
	}
	if !sawPos && !sawNeg {
		return 0, 0, fmt.Errorf("classifier response has no positive or negative label")
	}
	return pos, neg, nil
}

// decodeLabelScores accepts both the nested and the flat list shape.
func decodeLabelScores(body []byte) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 {
		return nested[0], nil
	}
	var flat []labelScore
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return flat, nil
}

func labelPolarity(label string) int {
	l := strings.ToUpper(label)
	switch {
	case strings.HasPrefix(l, "POS"), l == "LABEL_1":
		return 1
	case strings.HasPrefix(l, "NEG"), l == "LABEL_0":
		return -1
	default:
		return 0
	}
}
