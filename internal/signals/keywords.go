package signals

import (
	"regexp"
	"strings"
)

// themeKeywords maps each theme to the words and phrases that trigger it.
var themeKeywords = map[string][]string{
	"stress":    {"stress", "overwhelm", "anxious", "anxiety", "pressure", "tense"},
	"sleep":     {"sleep", "insomnia", "tired", "restless", "bedtime", "woke", "nap"},
	"mobility":  {"back", "posture", "stiff", "ache", "stretch", "tight"},
	"focus":     {"distract", "focus", "concentrate", "procrastinate", "deep work", "productive"},
	"gratitude": {"grateful", "gratitude", "thankful", "appreciate", "blessings"},
	"energy":    {"exhausted", "fatigued", "energized", "sluggish", "wired", "alert"},
	"mood":      {"sad", "down", "blue", "happy", "joy", "calm", "irritable"},
}

var (
	lowEnergyKeywords  = []string{"exhausted", "tired", "drained", "burned out", "burnt out", "wiped"}
	highEnergyKeywords = []string{"wired", "alert", "motivated", "ready", "pumped"}
)

// phraseSet is a compiled word-boundary matcher over a fixed list of phrases.
type phraseSet struct {
	res []*regexp.Regexp
}

func newPhraseSet(phrases []string) phraseSet {
	ps := phraseSet{res: make([]*regexp.Regexp, len(phrases))}
	for i, p := range phrases {
		ps.res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(p)) + `\b`)
	}
	return ps
}

// matchAny reports whether at least one phrase occurs in lowered.
func (ps phraseSet) matchAny(lowered string) bool {
	for _, re := range ps.res {
		if re.MatchString(lowered) {
			return true
		}
	}
	return false
}

// hits counts how many distinct phrases occur in lowered.
func (ps phraseSet) hits(lowered string) int {
	n := 0
	for _, re := range ps.res {
		if re.MatchString(lowered) {
			n++
		}
	}
	return n
}

var (
	themeMatchers = func() map[string]phraseSet {
		out := make(map[string]phraseSet, len(themeKeywords))
		for theme, kws := range themeKeywords {
			out[theme] = newPhraseSet(kws)
		}
		return out
	}()
	lowEnergy  = newPhraseSet(lowEnergyKeywords)
	highEnergy = newPhraseSet(highEnergyKeywords)
)
