package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/claude/setforge/internal/catalog"
	"github.com/claude/setforge/internal/cir"
	"github.com/claude/setforge/internal/match"
	"github.com/claude/setforge/internal/models"
)

func intp(n int) *int { return &n }

// fakeStore is an in-memory MappingStore recording usage calls.
type fakeStore struct {
	overrides map[string]string
	usages    []string
	failAll   bool
}

func (f *fakeStore) LookupOverride(ctx context.Context, name string) (string, error) {
	if f.failAll {
		return "", errors.New("store down")
	}
	return f.overrides[name], nil
}

func (f *fakeStore) RecordUsage(ctx context.Context, name, canonical string) error {
	if f.failAll {
		return errors.New("store down")
	}
	f.usages = append(f.usages, name+"->"+canonical)
	return nil
}

func testPipeline(t *testing.T, store MappingStore) *Pipeline {
	t.Helper()
	ix, err := catalog.New([]catalog.Entry{
		{Name: "Squat", Categories: []string{"squat"}},
		{Name: "Dumbbell Bench Press", Categories: []string{"press"}},
		{Name: "Deadlift", Categories: []string{"deadlift"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return New(match.New(ix, match.DefaultOptions()), store, slog.Default())
}

// TestNormalizeAndMatchOrder verifies results come back in input order,
// one per name.
func TestNormalizeAndMatchOrder(t *testing.T) {
	p := testPipeline(t, nil)

	names := []string{"deadlift", "db bench press", "squats"}
	results := p.NormalizeAndMatch(context.Background(), names)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	for i, name := range names {
		if results[i].OriginalName != name {
			t.Errorf("result %d original = %q, want %q", i, results[i].OriginalName, name)
		}
	}
	if results[0].MappedTo != "Deadlift" {
		t.Errorf("result 0 mapped to %q, want Deadlift", results[0].MappedTo)
	}
}

// TestOverrideWins verifies a stored override beats similarity scoring
// with confidence 1.0 and records a usage.
func TestOverrideWins(t *testing.T) {
	store := &fakeStore{overrides: map[string]string{
		"mystery movement": "Deadlift",
	}}
	p := testPipeline(t, store)

	results := p.NormalizeAndMatch(context.Background(), []string{"mystery movement"})
	res := results[0]
	if res.MappedTo != "Deadlift" {
		t.Errorf("mapped_to = %q, want Deadlift", res.MappedTo)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", res.Confidence)
	}
	if res.Status != models.StatusValid {
		t.Errorf("status = %q, want valid", res.Status)
	}
	if res.NeedsUserSearch {
		t.Error("needs_user_search = true, want false after override")
	}
	if len(store.usages) != 1 {
		t.Fatalf("usages = %d, want 1", len(store.usages))
	}
}

// TestOverrideNormalizedKey verifies the normalized form is consulted
// when the raw key has no override.
func TestOverrideNormalizedKey(t *testing.T) {
	store := &fakeStore{overrides: map[string]string{
		"weird pull": "Deadlift",
	}}
	p := testPipeline(t, store)

	results := p.NormalizeAndMatch(context.Background(), []string{"Weird Pulls"})
	if results[0].MappedTo != "Deadlift" {
		t.Errorf("mapped_to = %q, want Deadlift via normalized key", results[0].MappedTo)
	}
}

// TestStoreFailureFallsBack verifies a failing store degrades to pure
// similarity matching instead of failing the batch.
func TestStoreFailureFallsBack(t *testing.T) {
	p := testPipeline(t, &fakeStore{failAll: true})

	results := p.NormalizeAndMatch(context.Background(), []string{"squat"})
	if results[0].MappedTo != "Squat" {
		t.Errorf("mapped_to = %q, want Squat from similarity", results[0].MappedTo)
	}
}

// TestExtractNamesOrder verifies traversal order: blocks in order, bare
// exercises before supersets.
func TestExtractNamesOrder(t *testing.T) {
	w := models.Workout{
		Blocks: []models.Block{
			{
				Exercises: []models.Exercise{{Name: "a"}, {Name: "b"}},
				Supersets: []models.Superset{
					{Exercises: []models.Exercise{{Name: "c"}, {Name: "d"}}},
				},
			},
			{Exercises: []models.Exercise{{Name: "e"}}},
		},
	}
	got := ExtractNames(w)
	want := []string{"a", "b", "c", "d", "e"}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("name %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestCanProceed verifies unmapped detection for export gating.
func TestCanProceed(t *testing.T) {
	ok, unmapped := CanProceed([]models.MatchResult{
		{OriginalName: "squat", Status: models.StatusValid},
		{OriginalName: "???", Status: models.StatusUnmapped},
	})
	if ok {
		t.Error("CanProceed = true, want false with unmapped result")
	}
	if len(unmapped) != 1 || unmapped[0] != "???" {
		t.Errorf("unmapped = %v, want [???]", unmapped)
	}

	ok, unmapped = CanProceed([]models.MatchResult{
		{Status: models.StatusValid},
		{Status: models.StatusNeedsReview},
	})
	if !ok || unmapped != nil {
		t.Errorf("CanProceed = %v/%v, want true with no unmapped", ok, unmapped)
	}
}

// TestBuildPlanUsesCanonicalNames verifies the end-to-end path from
// workout to plan applies matched names.
func TestBuildPlanUsesCanonicalNames(t *testing.T) {
	p := testPipeline(t, nil)

	w := models.Workout{
		Title: "Session",
		Blocks: []models.Block{
			{Exercises: []models.Exercise{{Name: "db bench press", Reps: intp(10)}}},
		},
	}
	matches := p.NormalizeAndMatch(context.Background(), ExtractNames(w))
	plan := p.BuildPlan(w, matches)

	if len(plan.Intervals) != 1 {
		t.Fatalf("intervals = %d, want 1", len(plan.Intervals))
	}
	rs, ok := plan.Intervals[0].(cir.RepsStep)
	if !ok {
		t.Fatalf("interval = %T, want RepsStep", plan.Intervals[0])
	}
	if rs.Name != "Dumbbell Bench Press" {
		t.Errorf("name = %q, want canonical name", rs.Name)
	}
}
