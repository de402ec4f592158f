// Package privacy implements privacy mode: redaction of personal details
// before analysis, sanitised step payloads, and sealing of stored payloads.
package privacy

import (
	"regexp"

	"github.com/alexanderramin/wellplan/internal/domain"
)

// Applied in order. Phone runs before the generic number rule so that
// grouped digits collapse into one token. A phone match starts on a digit
// or a leading + and ends on a digit, so surrounding spaces survive.
var redactions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9-.]+`), "<email>"},
	{regexp.MustCompile(`(?:\+|\b)\d[\d\-\s]{6,}\d\b`), "<phone>"},
	{regexp.MustCompile(`\b\d{4,}\b`), "<number>"},
	{regexp.MustCompile(`\b[A-Z][a-z]{2,}\s[A-Z][a-z]{2,}\b`), "<name>"},
}

// RedactText replaces emails, phone numbers, long numbers, and
// two-word capitalised names with placeholders.
func RedactText(text string) string {
	if text == "" {
		return text
	}
	for _, r := range redactions {
		text = r.pattern.ReplaceAllString(text, r.replacement)
	}
	return text
}

// RedactConversation returns a copy of msgs with every content redacted.
func RedactConversation(msgs []domain.ConversationMessage) []domain.ConversationMessage {
	out := make([]domain.ConversationMessage, len(msgs))
	for i, m := range msgs {
		out[i] = domain.ConversationMessage{Role: m.Role, Content: RedactText(m.Content)}
	}
	return out
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
