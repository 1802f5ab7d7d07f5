package models

// Workout is the raw tree produced by OCR, AI generation, or manual entry.
// It is read-only input to the pipeline; nothing downstream mutates it.
type Workout struct {
	Title  string  `json:"title"`
	Source string  `json:"source,omitempty"`
	Blocks []Block `json:"blocks"`
}

// Block groups exercises under a label. A block may carry bare exercises,
// supersets, or both; bare exercises always precede supersets downstream.
type Block struct {
	Label          string     `json:"label,omitempty"`
	Structure      string     `json:"structure,omitempty"` // free text, e.g. "3 rounds"
	TimeWorkSec    *int       `json:"time_work_sec,omitempty"`
	RestBetweenSec *int       `json:"rest_between_sec,omitempty"`
	DefaultSets    *int       `json:"default_sets,omitempty"`
	DefaultReps    string     `json:"default_reps_range,omitempty"`
	Exercises      []Exercise `json:"exercises,omitempty"`
	Supersets      []Superset `json:"supersets,omitempty"`
}

// Superset is an ordered run of exercises performed back to back.
// Exercise order is significant: it defines round order all the way
// through export.
type Superset struct {
	Sets           *int       `json:"sets,omitempty"`
	RestBetweenSec *int       `json:"rest_between_sec,omitempty"`
	Exercises      []Exercise `json:"exercises"`
}

// Exercise is a single prescribed movement. All magnitude fields are
// optional; pointer fields distinguish absent from zero.
type Exercise struct {
	Name          string `json:"name"`
	Sets          *int   `json:"sets,omitempty"`
	Reps          *int   `json:"reps,omitempty"`
	RepsRange     string `json:"reps_range,omitempty"`
	DurationSec   *int   `json:"duration_sec,omitempty"`
	RestSec       *int   `json:"rest_sec,omitempty"`
	DistanceM     *int   `json:"distance_m,omitempty"`
	DistanceRange string `json:"distance_range,omitempty"`
	Type          string `json:"type,omitempty"`
}
