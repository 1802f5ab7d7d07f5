// Package cir defines the canonical intermediate representation: a
// format-agnostic ordered sequence of typed training steps and repeat
// groups. Every exporter consumes a Plan and nothing else.
package cir

// Sport tags the plan for target-specific sport vocabularies.
type Sport string

const (
	SportStrength Sport = "strength"
	SportHIIT     Sport = "hiit"
	SportRunning  Sport = "running"
	SportCycling  Sport = "cycling"
)

// Interval is a closed sum: Warmup, Cooldown, Repeat, TimeStep,
// DistanceStep, RepsStep. Exporters must define a mapping for every
// variant.
type Interval interface {
	isInterval()
}

// Warmup is a single preparatory interval.
type Warmup struct {
	Seconds int
}

// Cooldown is a single wind-down interval.
type Cooldown struct {
	Seconds int
}

// Repeat wraps one pass's worth of steps, performed Count times.
// Children hold exactly one round in original exercise order.
type Repeat struct {
	Count    int
	Children []Interval
}

// TimeStep is work or rest for a fixed duration.
type TimeStep struct {
	Seconds int
}

// DistanceStep is work over a fixed distance.
type DistanceStep struct {
	Meters int
}

// Load is a prescribed weight. Reserved: nothing upstream populates it
// yet, but every exporter renders it when present.
type Load struct {
	Value float64
	Unit  string
}

// RepsStep is a repetition-counted movement. Reps is nil when the source
// exercise carried no magnitude at all; exporters decide how to render
// an unspecified-intensity step.
type RepsStep struct {
	Reps    *int
	Name    string
	Load    *Load
	RestSec *int
}

func (Warmup) isInterval()       {}
func (Cooldown) isInterval()     {}
func (Repeat) isInterval()       {}
func (TimeStep) isInterval()     {}
func (DistanceStep) isInterval() {}
func (RepsStep) isInterval()     {}

// Schedule is an optional local start time for targets that schedule
// workouts.
type Schedule struct {
	StartLocal string
}

// Plan is the pipeline's output contract: built fresh per export
// request, immutable, consumed by exactly one exporter call.
type Plan struct {
	Title     string
	Sport     Sport
	Intervals []Interval
	Schedule  *Schedule
}
