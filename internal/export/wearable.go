package export

import (
	"encoding/json"
	"fmt"

	"github.com/claude/setforge/internal/cir"
)

// Wearable DTO shapes. Every interval serializes with a "kind"
// discriminator so consumers can decode without schema lookahead.
type wearablePlan struct {
	Title     string            `json:"title"`
	SportType string            `json:"sportType"`
	Intervals []wearableStep    `json:"intervals"`
	Schedule  *wearableSchedule `json:"schedule,omitempty"`
}

type wearableStep struct {
	Kind      string         `json:"kind"`
	Seconds   *int           `json:"seconds,omitempty"`
	Meters    *int           `json:"meters,omitempty"`
	Reps      *int           `json:"reps,omitempty"`
	Name      string         `json:"name,omitempty"`
	Load      *wearableLoad  `json:"load,omitempty"`
	RestSec   *int           `json:"restSec,omitempty"`
	Intervals []wearableStep `json:"intervals,omitempty"`
}

type wearableLoad struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type wearableSchedule struct {
	StartLocal string `json:"startLocal"`
}

func renderWearable(plan cir.Plan) ([]byte, error) {
	dto := wearablePlan{
		Title:     plan.Title,
		SportType: wearableSport(plan.Sport),
		Intervals: wearableSteps(plan.Intervals),
	}
	if plan.Schedule != nil && plan.Schedule.StartLocal != "" {
		dto.Schedule = &wearableSchedule{StartLocal: plan.Schedule.StartLocal}
	}

	out, err := json.MarshalIndent(dto, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal wearable dto: %w", err)
	}
	return out, nil
}

func wearableSteps(intervals []cir.Interval) []wearableStep {
	steps := make([]wearableStep, 0, len(intervals))
	for _, iv := range intervals {
		steps = append(steps, wearableStepOf(iv))
	}
	return steps
}

func wearableStepOf(iv cir.Interval) wearableStep {
	switch v := iv.(type) {
	case cir.Warmup:
		return wearableStep{Kind: "warmup", Seconds: &v.Seconds}
	case cir.Cooldown:
		return wearableStep{Kind: "cooldown", Seconds: &v.Seconds}
	case cir.Repeat:
		count := v.Count
		return wearableStep{Kind: "repeat", Reps: &count, Intervals: wearableSteps(v.Children)}
	case cir.TimeStep:
		return wearableStep{Kind: "time", Seconds: &v.Seconds}
	case cir.DistanceStep:
		return wearableStep{Kind: "distance", Meters: &v.Meters}
	case cir.RepsStep:
		step := wearableStep{Kind: "reps", Reps: v.Reps, Name: v.Name, RestSec: v.RestSec}
		if v.Load != nil {
			step.Load = &wearableLoad{Value: v.Load.Value, Unit: v.Load.Unit}
		}
		return step
	}
	// Unreachable while the Interval sum stays closed.
	return wearableStep{Kind: "time"}
}

func wearableSport(s cir.Sport) string {
	switch s {
	case cir.SportRunning:
		return "running"
	case cir.SportCycling:
		return "cycling"
	default:
		return "strengthTraining"
	}
}
