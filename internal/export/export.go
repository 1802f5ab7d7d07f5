// Package export renders a cir.Plan into one of the supported target
// formats. Renderers are pure functions over the plan; the only error
// Export can return is an unknown target.
package export

import (
	"fmt"
	"strings"

	"github.com/claude/setforge/internal/cir"
)

// Target selects the output format.
type Target string

const (
	// TargetSchedule is a Garmin-Planner-style YAML schedule document.
	TargetSchedule Target = "schedule"
	// TargetWearable is a WorkoutKit-style JSON interval DTO.
	TargetWearable Target = "wearable"
	// TargetIntervalXML is a ZWO-style XML interval file.
	TargetIntervalXML Target = "xml"
)

// ParseTarget resolves a user-supplied target name, accepting the
// aliases the HTTP and CLI surfaces advertise.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schedule", "yaml", "garmin":
		return TargetSchedule, nil
	case "wearable", "wearable_dto", "json", "workoutkit":
		return TargetWearable, nil
	case "xml", "interval_xml", "zwo":
		return TargetIntervalXML, nil
	}
	return "", fmt.Errorf("unknown export target %q", s)
}

// Export renders the plan for the given target.
func Export(plan cir.Plan, target Target) ([]byte, error) {
	switch target {
	case TargetSchedule:
		return renderSchedule(plan)
	case TargetWearable:
		return renderWearable(plan)
	case TargetIntervalXML:
		return renderIntervalXML(plan)
	}
	return nil, fmt.Errorf("unknown export target %q", target)
}

// ContentType reports the MIME type for a target's rendered bytes.
func ContentType(target Target) string {
	switch target {
	case TargetWearable:
		return "application/json"
	case TargetIntervalXML:
		return "application/xml"
	default:
		return "application/yaml"
	}
}
