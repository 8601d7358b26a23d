package room

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/fogleman/pt/pt"
)

// JSON schema types
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type SegmentJSON struct {
	Start PointJSON `json:"start"`
	End   PointJSON `json:"end"`
	Alpha float64   `json:"alpha"`
}

type TraceJSON struct {
	Origin    PointJSON     `json:"origin"`
	Direction PointJSON     `json:"direction"`
	Color     string        `json:"color"`
	Points    []PointJSON   `json:"points"`
	Segments  []SegmentJSON `json:"segments"`
}

type ReflectionJSON struct {
	ID       string    `json:"id"`
	Bounces  int       `json:"bounces"`
	Walls    []string  `json:"walls"`
	Position PointJSON `json:"position"`
	Scaling  PointJSON `json:"scaling"`
}

type AnnotationsJSON struct {
	Source      PointJSON        `json:"source"`
	Traces      []TraceJSON      `json:"traces,omitempty"`
	Reflections []ReflectionJSON `json:"reflections,omitempty"`
}

// Conversion functions
func VectorToJSON(v pt.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y, Z: v.Z}
}

// HexString formats a colour as #RRGGBB.
func HexString(c pt.Color) string {
	channel := func(v float64) uint8 {
		return uint8(math.Max(0, math.Min(255, v*255+0.5)))
	}
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func TraceToJSON(t Trace) TraceJSON {
	points := make([]PointJSON, len(t.Points))
	for i, p := range t.Points {
		points[i] = VectorToJSON(p)
	}
	segments := t.Segments()
	segs := make([]SegmentJSON, len(segments))
	for i, s := range segments {
		segs[i] = SegmentJSON{Start: VectorToJSON(s.Start), End: VectorToJSON(s.End), Alpha: s.Alpha}
	}
	return TraceJSON{
		Origin:    VectorToJSON(t.Ray.Origin),
		Direction: VectorToJSON(t.Ray.Direction),
		Color:     HexString(t.Ray.Color),
		Points:    points,
		Segments:  segs,
	}
}

func ReflectionToJSON(p ReflectionPath) ReflectionJSON {
	walls := make([]string, len(p.WallSequence))
	for i, w := range p.WallSequence {
		walls[i] = string(w)
	}
	return ReflectionJSON{
		ID:       p.ID,
		Bounces:  p.BounceCount,
		Walls:    walls,
		Position: VectorToJSON(p.Position),
		Scaling:  VectorToJSON(p.Scaling),
	}
}

// SaveAnnotations writes the traced rays and mirror images to a JSON file
func SaveAnnotations(filename string, source pt.Vector, traces []Trace, paths []ReflectionPath) error {
	container := AnnotationsJSON{
		Source:      VectorToJSON(source),
		Traces:      make([]TraceJSON, 0, len(traces)),
		Reflections: make([]ReflectionJSON, 0, len(paths)),
	}
	for _, t := range traces {
		container.Traces = append(container.Traces, TraceToJSON(t))
	}
	for _, p := range paths {
		container.Reflections = append(container.Reflections, ReflectionToJSON(p))
	}

	data, err := json.MarshalIndent(container, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling annotations: %w", err)
	}

	return os.WriteFile(filename, data, 0644)
}
