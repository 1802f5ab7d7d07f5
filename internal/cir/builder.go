package cir

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/setforge/internal/models"
)

var (
	warmupKeywords   = []string{"warmup", "warm-up", "primer"}
	cooldownKeywords = []string{"cooldown", "cool-down"}

	roundsRe = regexp.MustCompile(`(?i)(\d+)\s*(?:rounds?|sets?|x\b)`)
	rangeRe  = regexp.MustCompile(`(\d+)\s*-\s*\d+`)
)

// Build walks the raw workout tree and produces a Plan. Matches are
// consumed in extraction order (per block: bare exercises first, then
// supersets), the same order pipeline.ExtractNames walks; a missing
// match falls back to the raw exercise name. Build never fails: bad
// structural data degrades to conservative defaults.
func Build(w models.Workout, matches []models.MatchResult) Plan {
	b := &builder{matches: matches}
	plan := Plan{
		Title: w.Title,
		Sport: detectSport(w),
	}

	for _, block := range w.Blocks {
		label := strings.ToLower(block.Label)

		if containsAny(label, warmupKeywords) {
			plan.Intervals = append(plan.Intervals, Warmup{Seconds: positive(block.TimeWorkSec)})
			b.skipBlock(block)
			continue
		}
		if containsAny(label, cooldownKeywords) {
			plan.Intervals = append(plan.Intervals, Cooldown{Seconds: positive(block.TimeWorkSec)})
			b.skipBlock(block)
			continue
		}

		children := b.blockChildren(block)
		if len(children) == 0 {
			continue
		}

		count := roundCount(block)
		if count > 1 {
			plan.Intervals = append(plan.Intervals, Repeat{Count: count, Children: children})
		} else {
			plan.Intervals = append(plan.Intervals, children...)
		}
	}

	return plan
}

type builder struct {
	matches []models.MatchResult
	cursor  int
}

// nextName consumes one match result and returns the display name for
// the exercise: the matched canonical name when one exists, the raw
// name otherwise.
func (b *builder) nextName(raw string) string {
	if b.cursor < len(b.matches) {
		m := b.matches[b.cursor]
		b.cursor++
		if m.MappedTo != "" {
			return m.MappedTo
		}
	}
	return raw
}

// skipBlock advances the match cursor past a collapsed block's
// exercises without emitting steps for them.
func (b *builder) skipBlock(block models.Block) {
	b.cursor += len(block.Exercises)
	for _, ss := range block.Supersets {
		b.cursor += len(ss.Exercises)
	}
}

// blockChildren emits one round's worth of steps for a block: bare
// exercises first, then each superset's exercises in original order.
func (b *builder) blockChildren(block models.Block) []Interval {
	var out []Interval

	for _, ex := range block.Exercises {
		out = append(out, b.exerciseStep(ex, block))
		if rest := positive(ex.RestSec); rest > 0 {
			out = append(out, TimeStep{Seconds: rest})
		}
	}

	for _, ss := range block.Supersets {
		for i, ex := range ss.Exercises {
			out = append(out, b.exerciseStep(ex, block))

			rest := positive(ex.RestSec)
			if rest == 0 {
				rest = positive(ss.RestBetweenSec)
			}
			// Between-exercise rest goes after the step it follows but
			// never after the round's last step.
			if rest > 0 && i < len(ss.Exercises)-1 {
				out = append(out, TimeStep{Seconds: rest})
			}
		}
	}

	return out
}

// exerciseStep selects the step variant by fixed field priority:
// duration, then distance, then reps. An exercise with no magnitude at
// all still emits a RepsStep with nil reps; dropping it would desync
// round order.
func (b *builder) exerciseStep(ex models.Exercise, block models.Block) Interval {
	name := b.nextName(ex.Name)

	if secs := positive(ex.DurationSec); secs > 0 {
		return TimeStep{Seconds: secs}
	}

	if meters := positive(ex.DistanceM); meters > 0 {
		return DistanceStep{Meters: meters}
	}
	if meters := rangeLower(ex.DistanceRange); meters > 0 {
		return DistanceStep{Meters: meters}
	}

	step := RepsStep{Name: name}
	switch {
	case ex.Reps != nil && *ex.Reps > 0:
		step.Reps = intPtr(*ex.Reps)
	case rangeLower(ex.RepsRange) > 0:
		step.Reps = intPtr(rangeLower(ex.RepsRange))
	case rangeLower(block.DefaultReps) > 0:
		step.Reps = intPtr(rangeLower(block.DefaultReps))
	}
	return step
}

// roundCount resolves the block's round count with explicit ordered
// checks: parsed structure text, block default sets, then the first
// superset declaring sets. Missing or invalid counts default to 1.
func roundCount(block models.Block) int {
	if n := parseRounds(block.Structure); n > 0 {
		return n
	}
	if n := positive(block.DefaultSets); n > 0 {
		return n
	}
	for _, ss := range block.Supersets {
		if n := positive(ss.Sets); n > 0 {
			return n
		}
	}
	return 1
}

// parseRounds extracts a round count from free text like "3 rounds" or
// "4 sets". Plain "for time"/"AMRAP" structures carry no count.
func parseRounds(structure string) int {
	m := roundsRe.FindStringSubmatch(structure)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// rangeLower parses the lower bound of a range string like "6-10" or
// "25-30m". Returns 0 when no range is present.
func rangeLower(s string) int {
	if s == "" {
		return 0
	}
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		// A bare number counts as its own lower bound.
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// detectSport tags HIIT-structured workouts (for time, AMRAP, EMOM) and
// falls back to title heuristics, defaulting to strength.
func detectSport(w models.Workout) Sport {
	for _, block := range w.Blocks {
		s := strings.ToLower(block.Structure)
		if strings.Contains(s, "for time") || strings.Contains(s, "amrap") || strings.Contains(s, "emom") {
			return SportHIIT
		}
		for _, ex := range allExercises(block) {
			if strings.EqualFold(ex.Type, "hiit") {
				return SportHIIT
			}
		}
	}
	title := strings.ToLower(w.Title)
	switch {
	case strings.Contains(title, "run"):
		return SportRunning
	case strings.Contains(title, "cycle") || strings.Contains(title, "ride"):
		return SportCycling
	}
	return SportStrength
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func allExercises(block models.Block) []models.Exercise {
	out := append([]models.Exercise(nil), block.Exercises...)
	for _, ss := range block.Supersets {
		out = append(out, ss.Exercises...)
	}
	return out
}

// positive dereferences an optional count, treating nil, zero and
// negative values as absent.
func positive(p *int) int {
	if p == nil || *p <= 0 {
		return 0
	}
	return *p
}

func intPtr(n int) *int { return &n }
