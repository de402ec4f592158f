package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScore renders a 0..100 life quality score as a bar like [████░░░░] 45.
// Green from 66, yellow from 33, red below.
func RenderScore(score float64, width int) string {
	score = min(max(score, 0), 100)
	width = max(width, 2)

	filled := min(int(score/100*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case score < 33:
		style = StyleRed
	case score < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %5.1f", style.Render(bar), score)
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps scores on a 0..100 scale to block characters, oldest first.
func Sparkline(scores []float64) string {
	var b strings.Builder
	for _, s := range scores {
		s = min(max(s, 0), 100)
		idx := int(s / 100 * float64(len(sparkLevels)-1))
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}
