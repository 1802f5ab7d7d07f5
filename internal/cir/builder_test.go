package cir

import (
	"testing"

	"github.com/claude/setforge/internal/models"
)

func intp(n int) *int { return &n }

func validMatch(original, canonical string) models.MatchResult {
	return models.MatchResult{
		OriginalName: original,
		MappedTo:     canonical,
		Confidence:   1.0,
		Status:       models.StatusValid,
	}
}

// TestBuildWarmupCollapse verifies a warmup-labelled block collapses to
// a single Warmup interval sized from the block work duration, emitting
// no steps for its exercises.
func TestBuildWarmupCollapse(t *testing.T) {
	w := models.Workout{
		Title: "Morning Session",
		Blocks: []models.Block{
			{
				Label:       "Warm-up",
				TimeWorkSec: intp(300),
				Exercises: []models.Exercise{
					{Name: "arm circles"},
					{Name: "leg swings"},
				},
			},
		},
	}
	matches := []models.MatchResult{
		validMatch("arm circles", "Arm Circles"),
		validMatch("leg swings", "Leg Swings"),
	}

	plan := Build(w, matches)
	if len(plan.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(plan.Intervals))
	}
	warmup, ok := plan.Intervals[0].(Warmup)
	if !ok {
		t.Fatalf("interval = %T, want Warmup", plan.Intervals[0])
	}
	if warmup.Seconds != 300 {
		t.Errorf("warmup seconds = %d, want 300", warmup.Seconds)
	}
}

// TestBuildWarmupMissingDuration verifies a warmup block without a work
// duration falls back to zero seconds.
func TestBuildWarmupMissingDuration(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{{Label: "warmup"}},
	}
	plan := Build(w, nil)
	if len(plan.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(plan.Intervals))
	}
	if warmup := plan.Intervals[0].(Warmup); warmup.Seconds != 0 {
		t.Errorf("warmup seconds = %d, want 0", warmup.Seconds)
	}
}

// TestBuildSupersetRepeat verifies the Scenario-E shape: a superset with
// sets and rest becomes a Repeat whose children hold one round with a
// rest TimeStep between exercises but not after the last one.
func TestBuildSupersetRepeat(t *testing.T) {
	w := models.Workout{
		Title: "Upper A",
		Blocks: []models.Block{
			{
				Label: "Block A",
				Supersets: []models.Superset{
					{
						Sets:           intp(3),
						RestBetweenSec: intp(90),
						Exercises: []models.Exercise{
							{Name: "db bench press", Reps: intp(10)},
							{Name: "barbell row", Reps: intp(8)},
						},
					},
				},
			},
		},
	}
	matches := []models.MatchResult{
		validMatch("db bench press", "Dumbbell Bench Press"),
		validMatch("barbell row", "Barbell Row"),
	}

	plan := Build(w, matches)
	if len(plan.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(plan.Intervals))
	}
	repeat, ok := plan.Intervals[0].(Repeat)
	if !ok {
		t.Fatalf("interval = %T, want Repeat", plan.Intervals[0])
	}
	if repeat.Count != 3 {
		t.Errorf("repeat count = %d, want 3", repeat.Count)
	}
	if len(repeat.Children) != 3 {
		t.Fatalf("repeat children = %d, want 3", len(repeat.Children))
	}

	first, ok := repeat.Children[0].(RepsStep)
	if !ok {
		t.Fatalf("child 0 = %T, want RepsStep", repeat.Children[0])
	}
	if first.Name != "Dumbbell Bench Press" {
		t.Errorf("child 0 name = %q, want canonical name", first.Name)
	}
	if first.Reps == nil || *first.Reps != 10 {
		t.Errorf("child 0 reps = %v, want 10", first.Reps)
	}

	rest, ok := repeat.Children[1].(TimeStep)
	if !ok {
		t.Fatalf("child 1 = %T, want TimeStep", repeat.Children[1])
	}
	if rest.Seconds != 90 {
		t.Errorf("rest seconds = %d, want 90", rest.Seconds)
	}

	second, ok := repeat.Children[2].(RepsStep)
	if !ok {
		t.Fatalf("child 2 = %T, want RepsStep", repeat.Children[2])
	}
	if second.Name != "Barbell Row" {
		t.Errorf("child 2 name = %q, want canonical name", second.Name)
	}
}

// TestBuildRepeatChildrenOneRound verifies Repeat children hold exactly
// one round's worth of steps regardless of the count.
func TestBuildRepeatChildrenOneRound(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{
			{
				Label:     "Main",
				Structure: "5 rounds",
				Exercises: []models.Exercise{
					{Name: "burpees", Reps: intp(10)},
					{Name: "squats", Reps: intp(15)},
				},
			},
		},
	}
	plan := Build(w, nil)
	repeat, ok := plan.Intervals[0].(Repeat)
	if !ok {
		t.Fatalf("interval = %T, want Repeat", plan.Intervals[0])
	}
	if repeat.Count != 5 {
		t.Errorf("count = %d, want 5", repeat.Count)
	}
	if len(repeat.Children) != 2 {
		t.Errorf("children = %d, want one round of 2 steps", len(repeat.Children))
	}
}

// TestBuildSingleRoundCollapses verifies a round count of 1 emits the
// steps inline without a Repeat wrapper.
func TestBuildSingleRoundCollapses(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{
			{
				Label:       "Main",
				Structure:   "1 round",
				DefaultSets: intp(1),
				Exercises:   []models.Exercise{{Name: "deadlift", Reps: intp(5)}},
			},
		},
	}
	plan := Build(w, nil)
	if len(plan.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(plan.Intervals))
	}
	if _, isRepeat := plan.Intervals[0].(Repeat); isRepeat {
		t.Error("single round should not be wrapped in Repeat")
	}
}

// TestBuildRoundCountPrecedence verifies the ordered checks: structure
// text beats default sets beats superset sets.
func TestBuildRoundCountPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		block models.Block
		want  int
	}{
		{
			name: "structure wins",
			block: models.Block{
				Structure:   "4 rounds",
				DefaultSets: intp(2),
				Supersets:   []models.Superset{{Sets: intp(6)}},
			},
			want: 4,
		},
		{
			name: "default sets when structure silent",
			block: models.Block{
				Structure:   "for time",
				DefaultSets: intp(2),
				Supersets:   []models.Superset{{Sets: intp(6)}},
			},
			want: 2,
		},
		{
			name:  "superset sets as last resort",
			block: models.Block{Supersets: []models.Superset{{Sets: intp(6)}}},
			want:  6,
		},
		{
			name:  "missing defaults to one",
			block: models.Block{},
			want:  1,
		},
		{
			name:  "invalid count defaults to one",
			block: models.Block{DefaultSets: intp(-3)},
			want:  1,
		},
	}
	for _, tt := range tests {
		if got := roundCount(tt.block); got != tt.want {
			t.Errorf("%s: roundCount = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestBuildStepPriority verifies duration beats distance beats reps when
// several magnitudes are present.
func TestBuildStepPriority(t *testing.T) {
	b := &builder{}
	block := models.Block{}

	step := b.exerciseStep(models.Exercise{
		Name: "row", DurationSec: intp(120), DistanceM: intp(500), Reps: intp(20),
	}, block)
	if ts, ok := step.(TimeStep); !ok || ts.Seconds != 120 {
		t.Errorf("step = %#v, want TimeStep{120}", step)
	}

	step = b.exerciseStep(models.Exercise{
		Name: "row", DistanceM: intp(500), Reps: intp(20),
	}, block)
	if ds, ok := step.(DistanceStep); !ok || ds.Meters != 500 {
		t.Errorf("step = %#v, want DistanceStep{500}", step)
	}

	step = b.exerciseStep(models.Exercise{Name: "squat", Reps: intp(20)}, block)
	if rs, ok := step.(RepsStep); !ok || rs.Reps == nil || *rs.Reps != 20 {
		t.Errorf("step = %#v, want RepsStep{20}", step)
	}
}

// TestBuildRangeLowerBounds verifies reps and distance ranges resolve to
// their lower bound, and block default reps back-fill rep-less steps.
func TestBuildRangeLowerBounds(t *testing.T) {
	b := &builder{}

	step := b.exerciseStep(models.Exercise{Name: "carry", DistanceRange: "25-30m"}, models.Block{})
	if ds, ok := step.(DistanceStep); !ok || ds.Meters != 25 {
		t.Errorf("step = %#v, want DistanceStep{25}", step)
	}

	step = b.exerciseStep(models.Exercise{Name: "curl", RepsRange: "6-10"}, models.Block{})
	if rs, ok := step.(RepsStep); !ok || rs.Reps == nil || *rs.Reps != 6 {
		t.Errorf("step = %#v, want RepsStep{6}", step)
	}

	step = b.exerciseStep(models.Exercise{Name: "dip"}, models.Block{DefaultReps: "8-12"})
	if rs, ok := step.(RepsStep); !ok || rs.Reps == nil || *rs.Reps != 8 {
		t.Errorf("step = %#v, want RepsStep{8} from block default", step)
	}
}

// TestBuildZeroMagnitudesAbsent pins the zero-handling decision: zero or
// negative durations and distances are treated as not specified, so the
// step falls through to the next priority.
func TestBuildZeroMagnitudesAbsent(t *testing.T) {
	b := &builder{}

	step := b.exerciseStep(models.Exercise{
		Name: "squat", DurationSec: intp(0), Reps: intp(12),
	}, models.Block{})
	if rs, ok := step.(RepsStep); !ok || rs.Reps == nil || *rs.Reps != 12 {
		t.Errorf("step = %#v, want RepsStep{12} past zero duration", step)
	}

	step = b.exerciseStep(models.Exercise{
		Name: "run", DistanceM: intp(-100),
	}, models.Block{})
	rs, ok := step.(RepsStep)
	if !ok {
		t.Fatalf("step = %#v, want RepsStep fallthrough", step)
	}
	if rs.Reps != nil {
		t.Errorf("reps = %v, want nil for magnitude-free step", *rs.Reps)
	}
}

// TestBuildNoMagnitudeStillEmits verifies a magnitude-free exercise
// still produces a step so round ordering stays aligned.
func TestBuildNoMagnitudeStillEmits(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{
			{
				Label:     "Main",
				Exercises: []models.Exercise{{Name: "mystery move"}},
			},
		},
	}
	plan := Build(w, nil)
	if len(plan.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(plan.Intervals))
	}
	rs, ok := plan.Intervals[0].(RepsStep)
	if !ok {
		t.Fatalf("interval = %T, want RepsStep", plan.Intervals[0])
	}
	if rs.Reps != nil {
		t.Errorf("reps = %v, want nil", *rs.Reps)
	}
	if rs.Name != "mystery move" {
		t.Errorf("name = %q, want raw name fallback", rs.Name)
	}
}

// TestBuildMatchCursorSkipsCollapsedBlocks verifies match results are
// consumed in extraction order, including entries for exercises inside a
// collapsed warmup block.
func TestBuildMatchCursorSkipsCollapsedBlocks(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{
			{
				Label:       "Warmup",
				TimeWorkSec: intp(180),
				Exercises:   []models.Exercise{{Name: "jumping jacks"}},
			},
			{
				Label:     "Main",
				Exercises: []models.Exercise{{Name: "bb squat", Reps: intp(5)}},
			},
		},
	}
	matches := []models.MatchResult{
		validMatch("jumping jacks", "Jumping Jack"),
		validMatch("bb squat", "Back Squat"),
	}

	plan := Build(w, matches)
	if len(plan.Intervals) != 2 {
		t.Fatalf("intervals = %d, want 2", len(plan.Intervals))
	}
	rs, ok := plan.Intervals[1].(RepsStep)
	if !ok {
		t.Fatalf("interval 1 = %T, want RepsStep", plan.Intervals[1])
	}
	if rs.Name != "Back Squat" {
		t.Errorf("name = %q, want %q (cursor must skip warmup matches)", rs.Name, "Back Squat")
	}
}

// TestBuildBareExerciseRest verifies a bare exercise's rest becomes a
// trailing TimeStep inside the same block.
func TestBuildBareExerciseRest(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{
			{
				Label:     "Main",
				Exercises: []models.Exercise{{Name: "deadlift", Reps: intp(5), RestSec: intp(120)}},
			},
		},
	}
	plan := Build(w, nil)
	if len(plan.Intervals) != 2 {
		t.Fatalf("intervals = %d, want RepsStep then rest TimeStep", len(plan.Intervals))
	}
	rest, ok := plan.Intervals[1].(TimeStep)
	if !ok {
		t.Fatalf("interval 1 = %T, want TimeStep", plan.Intervals[1])
	}
	if rest.Seconds != 120 {
		t.Errorf("rest = %d, want 120", rest.Seconds)
	}
}

// TestDetectSport verifies HIIT structure detection and title
// heuristics.
func TestDetectSport(t *testing.T) {
	tests := []struct {
		name string
		w    models.Workout
		want Sport
	}{
		{
			name: "for time structure",
			w: models.Workout{Blocks: []models.Block{
				{Structure: "for time (cap: 35 min)"},
			}},
			want: SportHIIT,
		},
		{
			name: "amrap structure",
			w:    models.Workout{Blocks: []models.Block{{Structure: "AMRAP 20"}}},
			want: SportHIIT,
		},
		{
			name: "hiit exercise type",
			w: models.Workout{Blocks: []models.Block{
				{Exercises: []models.Exercise{{Name: "burpee", Type: "HIIT"}}},
			}},
			want: SportHIIT,
		},
		{
			name: "run title",
			w:    models.Workout{Title: "Easy 5K Run"},
			want: SportRunning,
		},
		{
			name: "default strength",
			w:    models.Workout{Title: "Upper Body A"},
			want: SportStrength,
		},
	}
	for _, tt := range tests {
		if got := detectSport(tt.w); got != tt.want {
			t.Errorf("%s: detectSport = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// TestParseRounds verifies round extraction from free structure text.
func TestParseRounds(t *testing.T) {
	tests := []struct {
		structure string
		want      int
	}{
		{"3 rounds", 3},
		{"4 sets", 4},
		{"5 Rounds for quality", 5},
		{"for time", 0},
		{"AMRAP 20", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseRounds(tt.structure); got != tt.want {
			t.Errorf("parseRounds(%q) = %d, want %d", tt.structure, got, tt.want)
		}
	}
}
