package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/wellplan/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"seconds", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-72 * time.Hour), "Feb 4, 2026"},
		{"future", now.Add(2 * time.Hour), "Feb 7, 2026 14:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.input, now))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "0m", FormatMinutes(-5))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "1h", FormatMinutes(60))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestWrap(t *testing.T) {
	got := Wrap("one two three four five", 9, 2)
	assert.Equal(t, "  one two\n  three\n  four five", got)
	assert.Empty(t, Wrap("   ", 10, 2))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef1234567890")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderScore(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50.0", stripANSI(RenderScore(50, 10)))
	assert.Equal(t, "[░░]   0.0", stripANSI(RenderScore(-4, 1)))
	assert.Equal(t, "[████] 100.0", stripANSI(RenderScore(130, 4)))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "▁▄█", Sparkline([]float64{0, 50, 100}))
	assert.Empty(t, Sparkline(nil))
}

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, "▲ up", stripANSI(TrendIndicator(domain.TrendUp)))
	assert.Equal(t, "▼ down", stripANSI(TrendIndicator(domain.TrendDown)))
	assert.Equal(t, "● steady", stripANSI(TrendIndicator("")))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleGreen.Render("long cell"), "x"}, {"s"}},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          B", lines[0])
	assert.Equal(t, "long cell  x", lines[2])
	assert.Empty(t, RenderTable(nil, nil))
}
