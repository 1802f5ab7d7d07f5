package normalize

import (
	"reflect"
	"testing"
)

// TestName verifies the full normalization chain on representative raw
// names: case, punctuation, abbreviations, stopwords, annotations and
// plural folding.
func TestName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"DB Bench Press", "dumbbell bench press"},
		{"db-bench_press", "dumbbell bench press"},
		{"KB Swings", "kettlebell swing"},
		{"OHP", "overhead press"},
		{"Walking Lunges x10", "walking lunge"},
		{"Squats 3x", "squat"},
		{"SOME TYPE OF SQUAT", "some type squat"},
		{"Pull-ups", "pull ups"},
		{"front squat", "front squat"},
		{"BB Rows with pause", "barbell row pause"},
		{"WB", "wall ball"},
		{"  Deadlift  ", "deadlift"},
		{"", ""},
		{"---", ""},
		{"Alt DB Curls", "alternating dumbbell curl"},
	}

	for _, tt := range tests {
		if got := Name(tt.raw); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

// TestNameDeterministic verifies repeated normalization yields identical
// output.
func TestNameDeterministic(t *testing.T) {
	raw := "DB Incline Bench-Press x12"
	first := Name(raw)
	for i := 0; i < 5; i++ {
		if got := Name(raw); got != first {
			t.Fatalf("Name(%q) unstable: %q then %q", raw, first, got)
		}
	}
}

// TestTokens verifies tokenization and multi-word abbreviation
// expansion.
func TestTokens(t *testing.T) {
	got := Tokens("RDL x8")
	want := []string{"romanian", "deadlift"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}

// TestIsSetRepAnnotation verifies annotation detection boundaries: bare
// "x" and exercise tokens survive.
func TestIsSetRepAnnotation(t *testing.T) {
	tests := []struct {
		tok  string
		want bool
	}{
		{"x10", true},
		{"10x", true},
		{"x", false},
		{"box", false},
		{"x1a", false},
		{"extension", false},
	}
	for _, tt := range tests {
		if got := isSetRepAnnotation(tt.tok); got != tt.want {
			t.Errorf("isSetRepAnnotation(%q) = %v, want %v", tt.tok, got, tt.want)
		}
	}
}
