package signals

import (
	"context"
	"math"
	"regexp"
	"strings"
)

const (
	// compoundAlpha approximates the maximum expected valence sum.
	compoundAlpha  = 15.0
	negationScalar = -0.74
	boosterStep    = 0.293
	negationWindow = 3
)

var lexiconToken = regexp.MustCompile(`[a-z']+`)

// LexiconBackend scores text with a valence lexicon. Negators within the
// three preceding tokens flip a word's valence, intensifiers directly before
// a word strengthen or weaken it, and clauses after "but" outweigh those before.
type LexiconBackend struct {
	valence map[string]float64
}

// NewLexiconBackend builds a backend over the bundled wellbeing lexicon.
func NewLexiconBackend() *LexiconBackend {
	return &LexiconBackend{valence: defaultLexicon}
}

func (b *LexiconBackend) Name() string { return "lexicon" }

// Available reports whether the lexicon has entries to score with.
func (b *LexiconBackend) Available() bool {
	return len(b.valence) > 0
}

func (b *LexiconBackend) Score(_ context.Context, text string) Sentiment {
	c := b.Compound(text)
	return Sentiment{
		Raw:        c,
		Confidence: math.Max(0.2, 1-0.25*math.Abs(c)),
		Calibrated: math.Max(-1, math.Min(1, 0.9*c)),
	}
}

// Compound returns the normalized valence of text in [-1,1].
func (b *LexiconBackend) Compound(text string) float64 {
	tokens := lexiconToken.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return 0
	}

	butAt := -1
	for i, tok := range tokens {
		if tok == "but" {
			butAt = i
		}
	}

	var sum float64
	for i, tok := range tokens {
		v, ok := b.valence[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if delta, ok := boosters[tokens[i-1]]; ok {
				if v > 0 {
					v += delta
				} else {
					v -= delta
				}
			}
		}
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			if negators[tokens[j]] {
				v *= negationScalar
				break
			}
		}
		if butAt >= 0 {
			if i < butAt {
				v *= 0.5
			} else if i > butAt {
				v *= 1.5
			}
		}
		sum += v
	}
	if sum == 0 {
		return 0
	}
	return sum / math.Sqrt(sum*sum+compoundAlpha)
}

var negators = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nothing": true,
	"don't": true, "doesn't": true, "didn't": true, "isn't": true, "wasn't": true,
	"aren't": true, "weren't": true, "can't": true, "couldn't": true, "won't": true,
	"wouldn't": true, "shouldn't": true, "haven't": true, "hasn't": true, "hardly": true,
	"dont": true, "cant": true, "wont": true, "without": true,
}

var boosters = map[string]float64{
	"very": boosterStep, "really": boosterStep, "extremely": boosterStep, "so": boosterStep,
	"super": boosterStep, "incredibly": boosterStep, "totally": boosterStep, "completely": boosterStep,
	"absolutely": boosterStep, "deeply": boosterStep, "especially": boosterStep,
	"slightly": -boosterStep, "somewhat": -boosterStep, "kinda": -boosterStep,
	"barely": -boosterStep, "little": -boosterStep, "bit": -boosterStep,
}

// defaultLexicon holds valences on a -4..4 scale. Conversational fillers
// such as "ok" and "fine" are deliberately absent so they read as neutral.
var defaultLexicon = map[string]float64{
	"good": 1.9, "great": 3.1, "calm": 1.3, "happy": 2.7, "content": 1.5,
	"relaxed": 2.2, "rested": 1.6, "peaceful": 2.2, "grateful": 2.0, "thankful": 2.0,
	"love": 3.2, "loved": 2.9, "enjoy": 2.2, "enjoyed": 2.3, "joy": 2.8,
	"hopeful": 1.9, "proud": 2.1, "excited": 2.2, "energized": 1.8, "motivated": 1.6,
	"better": 1.9, "best": 3.2, "nice": 1.8, "glad": 2.0, "relieved": 1.5,
	"productive": 1.5, "focused": 1.2, "refreshed": 1.9, "strong": 1.7, "confident": 2.2,
	"accomplished": 1.9, "optimistic": 2.0, "cheerful": 2.5, "pleased": 1.9, "wonderful": 2.7,
	"amazing": 2.8, "awesome": 3.1, "fantastic": 2.6, "supported": 1.6, "appreciate": 1.8,
	"bad": -2.5, "terrible": -2.1, "awful": -2.0, "sad": -2.1, "unhappy": -1.8,
	"tired": -1.2, "exhausted": -1.5, "drained": -1.5, "stressed": -1.9, "stress": -1.8,
	"anxious": -1.0, "anxiety": -0.7, "overwhelmed": -1.5, "worried": -1.2, "worry": -1.9,
	"angry": -2.3, "frustrated": -2.0, "annoyed": -1.6, "irritable": -1.5, "upset": -1.6,
	"lonely": -1.8, "depressed": -2.3, "hopeless": -2.0, "miserable": -2.2, "hurt": -2.4,
	"pain": -2.3, "ache": -1.6, "sore": -1.5, "stiff": -0.6, "sick": -1.7,
	"restless": -1.1, "insomnia": -1.5, "nervous": -1.1, "scared": -1.9, "afraid": -2.0,
	"fail": -2.5, "failed": -2.3, "struggle": -1.3, "struggling": -1.7, "stuck": -1.0,
	"burnout": -2.0, "sluggish": -1.1, "tense": -1.4, "pressure": -1.2, "worse": -2.1,
	"worst": -3.1, "hate": -2.7, "lost": -1.3, "down": -0.8, "distracted": -1.1,
	"bored": -1.3, "guilty": -1.8, "ashamed": -2.1, "crying": -2.1, "cried": -1.6,
}
