package export

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/claude/setforge/internal/cir"
)

// scheduleDoc mirrors the Garmin-Planner document layout. Field order
// matters for readers who diff exported files, so the top level is a
// struct rather than a map.
type scheduleDoc struct {
	Settings     scheduleSettings           `yaml:"settings"`
	Workouts     map[string]scheduleWorkout `yaml:"workouts"`
	SchedulePlan *schedulePlanSection       `yaml:"schedulePlan,omitempty"`
}

type scheduleSettings struct {
	DeleteSameNameWorkout bool `yaml:"deleteSameNameWorkout"`
}

type scheduleWorkout struct {
	Sport string `yaml:"sport"`
	Steps []any  `yaml:"steps"`
}

type schedulePlanSection struct {
	StartFrom string   `yaml:"start_from"`
	Workouts  []string `yaml:"workouts"`
}

// renderSchedule emits the schedule YAML. Each step is a single-key
// mapping in planner syntax: the key names the step, the value is a
// "lap | detail" annotation.
func renderSchedule(plan cir.Plan) ([]byte, error) {
	title := plan.Title
	if title == "" {
		title = "Workout"
	}

	doc := scheduleDoc{
		Settings: scheduleSettings{DeleteSameNameWorkout: true},
		Workouts: map[string]scheduleWorkout{
			title: {
				Sport: scheduleSport(plan.Sport),
				Steps: scheduleSteps(plan.Intervals),
			},
		},
	}
	if plan.Schedule != nil && plan.Schedule.StartLocal != "" {
		doc.SchedulePlan = &schedulePlanSection{
			StartFrom: plan.Schedule.StartLocal,
			Workouts:  []string{title},
		}
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule yaml: %w", err)
	}
	return out, nil
}

func scheduleSteps(intervals []cir.Interval) []any {
	steps := make([]any, 0, len(intervals))
	for _, iv := range intervals {
		steps = append(steps, scheduleStep(iv))
	}
	return steps
}

func scheduleStep(iv cir.Interval) any {
	switch v := iv.(type) {
	case cir.Warmup:
		return map[string]any{"warmup": lapNote(secondsNote(v.Seconds))}
	case cir.Cooldown:
		return map[string]any{"cooldown": lapNote(secondsNote(v.Seconds))}
	case cir.Repeat:
		key := fmt.Sprintf("repeat(%d)", v.Count)
		return map[string]any{key: scheduleSteps(v.Children)}
	case cir.TimeStep:
		return map[string]any{"time": lapNote(secondsNote(v.Seconds))}
	case cir.DistanceStep:
		return map[string]any{"run": lapNote(fmt.Sprintf("%dm", v.Meters))}
	case cir.RepsStep:
		name := v.Name
		if name == "" {
			name = "exercise"
		}
		return map[string]any{name: lapNote(repsNote(v))}
	}
	return map[string]any{"lap": "lap"}
}

// repsNote builds the step annotation for a reps step: the rep count,
// the load when prescribed, and the trailing rest if carried inline.
func repsNote(v cir.RepsStep) string {
	note := ""
	if v.Reps != nil {
		note = fmt.Sprintf("%d reps", *v.Reps)
	}
	if v.Load != nil {
		note = joinNote(note, fmt.Sprintf("%g%s", v.Load.Value, v.Load.Unit))
	}
	if v.RestSec != nil && *v.RestSec > 0 {
		note = joinNote(note, fmt.Sprintf("rest %ds", *v.RestSec))
	}
	return note
}

func secondsNote(secs int) string {
	if secs <= 0 {
		return ""
	}
	return fmt.Sprintf("%ds", secs)
}

// lapNote formats a planner step value. A step with no detail is a bare
// lap press.
func lapNote(note string) string {
	if note == "" {
		return "lap"
	}
	return "lap | " + note
}

func joinNote(a, b string) string {
	if a == "" {
		return b
	}
	return a + ", " + b
}

func scheduleSport(s cir.Sport) string {
	switch s {
	case cir.SportHIIT:
		return "hiit"
	case cir.SportRunning:
		return "running"
	case cir.SportCycling:
		return "cycling"
	default:
		return "strength"
	}
}
