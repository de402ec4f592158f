package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wellplan/internal/contract"
)

// FormatHistory renders a user's life quality history and metrics.
func FormatHistory(resp *contract.HistoryResponse, now time.Time) string {
	var b strings.Builder

	if len(resp.Snapshots) == 0 {
		b.WriteString(Dim(fmt.Sprintf("No check-ins recorded for %s yet.", resp.UserID)))
		b.WriteString("\n")
		return RenderBox("History", b.String())
	}

	scores := make([]float64, len(resp.Snapshots))
	rows := make([][]string, len(resp.Snapshots))
	for i, s := range resp.Snapshots {
		scores[i] = s.Score
		rows[i] = []string{HumanTimestamp(s.Timestamp, now), RenderScore(s.Score, 12)}
	}

	fmt.Fprintf(&b, "%s  %s  %s\n\n", StyleBold.Render(resp.UserID), StylePurple.Render(Sparkline(scores)), TrendIndicator(resp.Trend))
	b.WriteString(RenderTable([]string{"WHEN", "SCORE"}, rows))

	if m := resp.Metrics; m != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d   %s %d   %s %s\n",
			Dim("streak"), m.Streak,
			Dim("sessions"), m.TotalSessions,
			Dim("reflection"), SentimentStyle(m.RollingReflectionScore).Render(fmt.Sprintf("%+.2f", m.RollingReflectionScore)),
		)
	}
	return RenderBox("History", b.String())
}
