package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wellplan/internal/contract"
)

const payloadPreview = 120

// FormatRunLog renders the step log of one session.
func FormatRunLog(log *contract.RunLog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s  %s %s  %s\n\n",
		Dim("session"), StyleBold.Render(log.SessionID),
		Dim("user"), log.UserID,
		Dim(log.CreatedAt.Format("2006-01-02 15:04:05 MST")),
	)
	if len(log.Steps) == 0 {
		b.WriteString(Dim("No steps were logged for this session."))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range log.Steps {
		took := s.EndedAt.Sub(s.StartedAt).Milliseconds()
		fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render(string(s.Name)), Dim(fmt.Sprintf("%dms", took)))
		if s.Sealed {
			fmt.Fprintf(&b, "  %s\n", StyleYellow.Render("sealed with a key that is no longer available"))
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", StyleBlue.Render("in "), preview(s.Input))
		fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("out"), preview(s.Output))
	}
	return b.String()
}

func preview(payload string) string {
	r := []rune(payload)
	if len(r) <= payloadPreview {
		return payload
	}
	return string(r[:payloadPreview]) + Dim("…")
}
