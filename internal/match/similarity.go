package match

import "strings"

// similarity tuning. The token component dominates because exercise
// names are short token bags where word order carries little meaning;
// the whole-string ratio catches single-word typos that token overlap
// misses entirely.
const (
	containmentWeight = 0.65
	jaccardWeight     = 0.35
	tokenMatchRatio   = 0.80
)

// Similarity scores two normalized names in [0,1]. The metric is
// symmetric: token-set overlap (containment + Jaccard blend, with fuzzy
// token equality) taken against a whole-string Levenshtein ratio,
// whichever is higher.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	tokenScore := tokenSetScore(strings.Fields(a), strings.Fields(b))
	wholeScore := levenshteinRatio(a, b)
	if wholeScore > tokenScore {
		return wholeScore
	}
	return tokenScore
}

// tokenSetScore computes the fuzzy token overlap between two token bags.
// Containment (overlap over the smaller set) rewards inputs that contain
// a full canonical name plus noise words; Jaccard penalizes the noise so
// "some type squat" ranks below an exact "squat".
func tokenSetScore(ta, tb []string) float64 {
	small, large := ta, tb
	if len(small) > len(large) {
		small, large = large, small
	}

	used := make([]bool, len(large))
	overlap := 0
	for _, s := range small {
		for j, l := range large {
			if used[j] {
				continue
			}
			if tokensMatch(s, l) {
				used[j] = true
				overlap++
				break
			}
		}
	}
	if overlap == 0 {
		return 0.0
	}

	containment := float64(overlap) / float64(len(small))
	union := len(ta) + len(tb) - overlap
	jaccard := float64(overlap) / float64(union)
	return containmentWeight*containment + jaccardWeight*jaccard
}

// tokensMatch treats two tokens as equal when identical or within a
// small edit distance, so "dumbell" still counts as "dumbbell".
func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	return levenshteinRatio(a, b) >= tokenMatchRatio
}

// levenshteinRatio maps edit distance to a [0,1] similarity.
func levenshteinRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using two
// rolling rows.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
