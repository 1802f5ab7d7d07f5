// Package match scores normalized exercise names against the catalog
// and classifies the result into confidence tiers. Matching never fails:
// an unmatched name is a normal, representable outcome.
package match

import (
	"sort"
	"strings"

	"github.com/claude/setforge/internal/catalog"
	"github.com/claude/setforge/internal/models"
	"github.com/claude/setforge/internal/normalize"
)

// Options are the matcher's tunable parameters. The tier thresholds are
// inclusive lower bounds.
type Options struct {
	AcceptThreshold float64 // score >= this is StatusValid
	ReviewThreshold float64 // score >= this (below accept) is StatusNeedsReview
	TopK            int     // max ranked candidates returned
	SuggestCutoff   float64 // min score for a candidate to be listed
}

// DefaultOptions returns the thresholds validated against the fixture
// corpus.
func DefaultOptions() Options {
	return Options{
		AcceptThreshold: 0.90,
		ReviewThreshold: 0.50,
		TopK:            5,
		SuggestCutoff:   0.30,
	}
}

// Classify maps a score to its confidence tier. Boundaries are inclusive
// on the lower side: exactly 0.90 is valid, exactly 0.50 needs review.
func (o Options) Classify(score float64) models.MatchStatus {
	switch {
	case score >= o.AcceptThreshold:
		return models.StatusValid
	case score >= o.ReviewThreshold:
		return models.StatusNeedsReview
	default:
		return models.StatusUnmapped
	}
}

// Matcher scores names against a read-only catalog index.
type Matcher struct {
	index *catalog.Index
	opts  Options
}

// New creates a matcher over the given index.
func New(index *catalog.Index, opts Options) *Matcher {
	return &Matcher{index: index, opts: opts}
}

// Match scores a raw name against every catalog entry and returns the
// ranked result. Exact normalized equality with a catalog entry forces
// score 1.0 regardless of the metric; ties between equal scores keep
// catalog insertion order.
func (m *Matcher) Match(raw string) models.MatchResult {
	norm := normalize.Name(raw)
	res := models.MatchResult{
		OriginalName:   raw,
		NormalizedName: norm,
	}
	if norm == "" {
		res.Status = models.StatusUnmapped
		res.NeedsUserSearch = true
		return res
	}

	scores := make([]float64, m.index.Len())
	best := -1
	for i := 0; i < m.index.Len(); i++ {
		s := Similarity(norm, m.index.Normalized(i))
		if norm == m.index.Normalized(i) {
			s = 1.0
		}
		scores[i] = s
		if best < 0 || s > scores[best] {
			best = i
		}
	}

	order := make([]int, m.index.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	for _, i := range order {
		if scores[i] < m.opts.SuggestCutoff {
			break
		}
		if len(res.Candidates) >= m.opts.TopK {
			break
		}
		res.Candidates = append(res.Candidates, models.Candidate{
			Name:       m.index.Entry(i).Name,
			Confidence: scores[i],
		})
	}

	bestEntry := m.index.Entry(best)
	res.Category = sharedCategory(norm, m.index.Normalized(best), bestEntry)
	res.Status = m.opts.Classify(scores[best])

	if res.Status == models.StatusUnmapped {
		res.Confidence = 0.0
		res.NeedsUserSearch = true
		return res
	}

	res.MappedTo = bestEntry.Name
	res.Confidence = scores[best]
	res.ByType = m.byType(res.Category, bestEntry.Name, norm)
	return res
}

// sharedCategory picks the dominant keyword token shared by the input
// and its best candidate. Keywords declared on the catalog entry win;
// any other shared token is a fallback.
func sharedCategory(inputNorm, candidateNorm string, entry catalog.Entry) string {
	inputTokens := map[string]bool{}
	for _, t := range strings.Fields(inputNorm) {
		inputTokens[t] = true
	}
	candTokens := map[string]bool{}
	for _, t := range strings.Fields(candidateNorm) {
		candTokens[t] = true
	}

	for _, kw := range entry.Categories {
		if inputTokens[kw] && candTokens[kw] {
			return kw
		}
	}
	for _, t := range strings.Fields(candidateNorm) {
		if inputTokens[t] {
			return t
		}
	}
	return ""
}

// byType surfaces same-category alternatives even when they score below
// the top-k similarity list.
func (m *Matcher) byType(category, exclude, norm string) []models.Candidate {
	if category == "" {
		return nil
	}
	var out []models.Candidate
	for _, e := range m.index.ByCategory(category) {
		if e.Name == exclude {
			continue
		}
		out = append(out, models.Candidate{
			Name:       e.Name,
			Confidence: Similarity(norm, normalize.Name(e.Name)),
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Confidence > out[b].Confidence
	})
	if len(out) > m.opts.TopK {
		out = out[:m.opts.TopK]
	}
	return out
}
