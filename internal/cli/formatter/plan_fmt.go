package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/domain"
)

const wrapWidth = 64

// FormatPlan renders a plan session response for terminal output.
func FormatPlan(resp *contract.PlanResponse) string {
	var b strings.Builder

	b.WriteString(Wrap(resp.EmpatheticMessage, wrapWidth, 0))
	b.WriteString("\n\n")

	b.WriteString(formatSignals(resp.Signals))
	b.WriteString("\n")

	b.WriteString(Header(planTitle(resp.Plan)))
	b.WriteString("\n")
	if len(resp.Plan.Items) == 0 {
		b.WriteString(Dim("  Nothing scheduled today."))
		b.WriteString("\n")
	}
	for i, item := range resp.Plan.Items {
		b.WriteString(formatItem(i+1, item))
	}
	if resp.Plan.Caution != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", StyleYellow.Render("!"), StyleYellow.Render(resp.Plan.Caution))
	}

	if len(resp.Explanations) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Why these"))
		b.WriteString("\n")
		for _, e := range resp.Explanations {
			fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render(e.ContentID), Dim(fmt.Sprintf("(%.2f)", e.Score)))
			b.WriteString(StyleFg.Render(Wrap(fmt.Sprintf("%q", e.Snippet), wrapWidth, 4)))
			b.WriteString("\n")
		}
	}

	if lq := resp.LifeQuality; lq != nil {
		b.WriteString("\n")
		b.WriteString(Header("Life quality"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s  %s\n", RenderScore(lq.Score, 20), TrendIndicator(lq.Trend))
	}

	if resp.PersonalizedNudge != "" {
		b.WriteString("\n")
		b.WriteString(StyleGreen.Render(Wrap(resp.PersonalizedNudge, wrapWidth, 2)))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s %s\n", Dim("session"), TruncID(resp.SessionID))
	return b.String()
}

func planTitle(p domain.Plan) string {
	total := p.TotalMinutes()
	if total == 0 {
		return "Plan for " + p.Day
	}
	return fmt.Sprintf("Plan for %s · %s", p.Day, FormatMinutes(total))
}

func formatSignals(s domain.SignalBundle) string {
	themes := Dim("none")
	if len(s.Themes) > 0 {
		themes = StylePurple.Render(strings.Join(s.Themes, ", "))
	}
	return fmt.Sprintf("  %s  %s  %s\n",
		SentimentStyle(s.CalibratedSentiment).Render(fmt.Sprintf("sentiment %+.2f", s.CalibratedSentiment)),
		EnergyBadge(s.Energy),
		themes,
	)
}

func formatItem(n int, item domain.PlanItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s %s\n",
		StyleHeader.Render(fmt.Sprintf("%d.", n)),
		StyleBold.Render(item.Title),
		Dim(FormatMinutes(item.DurationMinutes)),
	)
	if item.WhyItHelps != "" {
		b.WriteString(StyleFg.Render(Wrap(item.WhyItHelps, wrapWidth, 5)))
		b.WriteString("\n")
	}
	if item.Instructions != "" {
		b.WriteString(Dim(Wrap(item.Instructions, wrapWidth, 5)))
		b.WriteString("\n")
	}
	if item.EvidenceCitation != "" {
		cite := item.EvidenceCitation
		if item.EvidenceURL != "" {
			cite += " " + item.EvidenceURL
		}
		fmt.Fprintf(&b, "     %s %s\n", StyleBlue.Render("source:"), Dim(cite))
	}
	return b.String()
}
