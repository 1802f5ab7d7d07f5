package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/claude/setforge/internal/cir"
)

// renderIntervalXML emits a ZWO-style interval file. Children of a
// repeat are heterogeneous, so the tree is encoded token by token
// instead of through struct marshalling.
func renderIntervalXML(plan cir.Plan) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "workout_file"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, fmt.Errorf("encode interval xml: %w", err)
	}

	if err := encodeText(enc, "name", plan.Title); err != nil {
		return nil, err
	}
	if err := encodeText(enc, "sportType", xmlSport(plan.Sport)); err != nil {
		return nil, err
	}

	workout := xml.StartElement{Name: xml.Name{Local: "workout"}}
	if err := enc.EncodeToken(workout); err != nil {
		return nil, fmt.Errorf("encode interval xml: %w", err)
	}
	for _, iv := range plan.Intervals {
		if err := encodeInterval(enc, iv); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(workout.End()); err != nil {
		return nil, fmt.Errorf("encode interval xml: %w", err)
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, fmt.Errorf("encode interval xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("encode interval xml: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func encodeInterval(enc *xml.Encoder, iv cir.Interval) error {
	switch v := iv.(type) {
	case cir.Warmup:
		return encodeEmpty(enc, "Warmup", attrs("Duration", v.Seconds))
	case cir.Cooldown:
		return encodeEmpty(enc, "Cooldown", attrs("Duration", v.Seconds))
	case cir.TimeStep:
		return encodeEmpty(enc, "SteadyState", attrs("Duration", v.Seconds))
	case cir.DistanceStep:
		return encodeEmpty(enc, "SteadyState", attrs("Distance", v.Meters))
	case cir.RepsStep:
		a := []xml.Attr{}
		if v.Reps != nil {
			a = append(a, intAttr("Reps", *v.Reps))
		}
		if v.Name != "" {
			a = append(a, xml.Attr{Name: xml.Name{Local: "Name"}, Value: v.Name})
		}
		if v.Load != nil {
			a = append(a, xml.Attr{
				Name:  xml.Name{Local: "Load"},
				Value: fmt.Sprintf("%g%s", v.Load.Value, v.Load.Unit),
			})
		}
		if v.RestSec != nil && *v.RestSec > 0 {
			a = append(a, intAttr("Rest", *v.RestSec))
		}
		return encodeEmpty(enc, "Strength", a)
	case cir.Repeat:
		start := xml.StartElement{
			Name: xml.Name{Local: "IntervalsT"},
			Attr: []xml.Attr{intAttr("Repeat", v.Count)},
		}
		if err := enc.EncodeToken(start); err != nil {
			return fmt.Errorf("encode interval xml: %w", err)
		}
		for _, child := range v.Children {
			if err := encodeInterval(enc, child); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return fmt.Errorf("encode interval xml: %w", err)
		}
		return nil
	}
	return nil
}

func encodeEmpty(enc *xml.Encoder, name string, a []xml.Attr) error {
	start := xml.StartElement{Name: xml.Name{Local: name}, Attr: a}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode interval xml: %w", err)
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode interval xml: %w", err)
	}
	return nil
}

func encodeText(enc *xml.Encoder, name, text string) error {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	if err := enc.EncodeElement(text, el); err != nil {
		return fmt.Errorf("encode interval xml: %w", err)
	}
	return nil
}

func attrs(name string, value int) []xml.Attr {
	return []xml.Attr{intAttr(name, value)}
}

func intAttr(name string, value int) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: strconv.Itoa(value)}
}

func xmlSport(s cir.Sport) string {
	switch s {
	case cir.SportRunning:
		return "run"
	case cir.SportCycling:
		return "bike"
	case cir.SportHIIT:
		return "hiit"
	default:
		return "strength"
	}
}
