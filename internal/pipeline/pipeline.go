// Package pipeline wires the normalizer, matcher, builder and exporters
// into the batch entry points the host surfaces call.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/claude/setforge/internal/cir"
	"github.com/claude/setforge/internal/export"
	"github.com/claude/setforge/internal/match"
	"github.com/claude/setforge/internal/models"
)

// MappingStore resolves user-confirmed name overrides and records which
// canonical names get chosen, feeding the popularity counters.
type MappingStore interface {
	// LookupOverride returns the canonical name stored for a raw or
	// normalized key, or "" when no override exists.
	LookupOverride(ctx context.Context, name string) (string, error)
	// RecordUsage increments the popularity counter for a mapping.
	RecordUsage(ctx context.Context, name, canonical string) error
}

// Pipeline holds the per-process matcher and the optional mapping
// store. A nil store disables overrides and popularity tracking.
type Pipeline struct {
	matcher *match.Matcher
	store   MappingStore
	log     *slog.Logger
}

// New builds a pipeline. store may be nil.
func New(matcher *match.Matcher, store MappingStore, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{matcher: matcher, store: store, log: log}
}

// NormalizeAndMatch matches each name in order. A stored override wins
// over similarity scoring with confidence 1.0 and records a usage; the
// only side effect of this call is that popularity increment. Store
// errors degrade to pure matching rather than failing the batch.
func (p *Pipeline) NormalizeAndMatch(ctx context.Context, names []string) []models.MatchResult {
	results := make([]models.MatchResult, 0, len(names))
	for _, name := range names {
		results = append(results, p.matchOne(ctx, name))
	}
	return results
}

func (p *Pipeline) matchOne(ctx context.Context, name string) models.MatchResult {
	res := p.matcher.Match(name)

	if p.store != nil {
		canonical, err := p.lookupOverride(ctx, name, res.NormalizedName)
		if err != nil {
			p.log.Warn("mapping store lookup failed, falling back to similarity",
				"name", name, "error", err)
		} else if canonical != "" {
			res.MappedTo = canonical
			res.Confidence = 1.0
			res.Status = models.StatusValid
			res.NeedsUserSearch = false
			if err := p.store.RecordUsage(ctx, res.NormalizedName, canonical); err != nil {
				p.log.Warn("record mapping usage failed", "name", name, "error", err)
			}
		}
	}
	return res
}

// lookupOverride checks the raw key first, then the normalized key.
func (p *Pipeline) lookupOverride(ctx context.Context, raw, norm string) (string, error) {
	canonical, err := p.store.LookupOverride(ctx, raw)
	if err != nil || canonical != "" {
		return canonical, err
	}
	if norm != "" && norm != raw {
		return p.store.LookupOverride(ctx, norm)
	}
	return "", nil
}

// ExtractNames collects every exercise name in the workout in traversal
// order: blocks in order, bare exercises before supersets. This is the
// order BuildPlan consumes match results in.
func ExtractNames(w models.Workout) []string {
	var names []string
	for _, block := range w.Blocks {
		for _, ex := range block.Exercises {
			names = append(names, ex.Name)
		}
		for _, ss := range block.Supersets {
			for _, ex := range ss.Exercises {
				names = append(names, ex.Name)
			}
		}
	}
	return names
}

// BuildPlan converts the raw workout tree plus its match results into
// the intermediate representation.
func (p *Pipeline) BuildPlan(w models.Workout, matches []models.MatchResult) cir.Plan {
	return cir.Build(w, matches)
}

// Export matches, builds and renders a workout in one call.
func (p *Pipeline) Export(ctx context.Context, w models.Workout, target export.Target) ([]byte, error) {
	matches := p.NormalizeAndMatch(ctx, ExtractNames(w))
	plan := cir.Build(w, matches)
	return export.Export(plan, target)
}

// CanProceed reports whether a match batch is export-ready: no result
// may be unmapped. The slice of offending original names comes back for
// error reporting.
func CanProceed(matches []models.MatchResult) (bool, []string) {
	var unmapped []string
	for _, m := range matches {
		if m.Status == models.StatusUnmapped {
			unmapped = append(unmapped, m.OriginalName)
		}
	}
	return len(unmapped) == 0, unmapped
}
