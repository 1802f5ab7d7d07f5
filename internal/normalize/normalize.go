// Package normalize turns free-text exercise names into the token form
// used as the matcher's lookup key. Normalization is deterministic and
// total: any input produces a (possibly empty) normalized string.
package normalize

import (
	"strings"
	"unicode"
)

// abbreviations maps common shorthand tokens to their expanded forms.
// Expansion happens token-by-token after punctuation stripping, so
// multi-word expansions contribute multiple tokens.
var abbreviations = map[string]string{
	"db":   "dumbbell",
	"bb":   "barbell",
	"kb":   "kettlebell",
	"wb":   "wall ball",
	"oh":   "overhead",
	"ohp":  "overhead press",
	"pu":   "push up",
	"bw":   "bodyweight",
	"rdl":  "romanian deadlift",
	"sldl": "stiff leg deadlift",
	"alt":  "alternating",
	"incl": "incline",
	"decl": "decline",
	"ext":  "extension",
}

// stopwords are dropped entirely. Articles and connective filler carry no
// matching signal and inflate edit distance on long raw names.
var stopwords = map[string]bool{
	"a":    true,
	"an":   true,
	"the":  true,
	"of":   true,
	"with": true,
	"and":  true,
	"to":   true,
	"for":  true,
	"in":   true,
	"on":   true,
	"per":  true,
}

// pluralToSingular is a fixed table rather than a generic stemmer:
// exercise vocabulary is small and words like "press" must survive.
var pluralToSingular = map[string]string{
	"squats":     "squat",
	"deadlifts":  "deadlift",
	"lunges":     "lunge",
	"curls":      "curl",
	"rows":       "row",
	"presses":    "press",
	"raises":     "raise",
	"pulls":      "pull",
	"dips":       "dip",
	"thrusts":    "thrust",
	"extensions": "extension",
	"crunches":   "crunch",
	"situps":     "situp",
	"pushups":    "pushup",
	"pullups":    "pullup",
	"burpees":    "burpee",
	"swings":     "swing",
	"snatches":   "snatch",
	"cleans":     "clean",
	"jerks":      "jerk",
	"shrugs":     "shrug",
	"flyes":      "fly",
	"flies":      "fly",
	"kickbacks":  "kickback",
	"planks":     "plank",
	"carries":    "carry",
	"steps":      "step",
	"jumps":      "jump",
	"slams":      "slam",
}

// Name normalizes a raw exercise name: lower-case, expand abbreviations,
// strip punctuation and stopwords, drop embedded set/rep annotations
// ("x10"), singularize plural tokens, collapse whitespace.
func Name(raw string) string {
	return strings.Join(Tokens(raw), " ")
}

// Tokens returns the normalized token list for a raw exercise name.
func Tokens(raw string) []string {
	lowered := strings.ToLower(raw)

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			// Hyphens, underscores, slashes and all other punctuation
			// become token boundaries.
			b.WriteRune(' ')
		}
	}

	var out []string
	for _, tok := range strings.Fields(b.String()) {
		if expanded, ok := abbreviations[tok]; ok {
			out = append(out, strings.Fields(expanded)...)
			continue
		}
		if stopwords[tok] || isSetRepAnnotation(tok) {
			continue
		}
		if singular, ok := pluralToSingular[tok]; ok {
			tok = singular
		}
		out = append(out, tok)
	}
	return out
}

// isSetRepAnnotation reports whether a token is an embedded set/rep
// marker such as "x10" or "10x" that leaked into the name text.
func isSetRepAnnotation(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	if tok[0] == 'x' && allDigits(tok[1:]) {
		return true
	}
	if tok[len(tok)-1] == 'x' && allDigits(tok[:len(tok)-1]) {
		return true
	}
	return false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
