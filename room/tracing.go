package room

import (
	"errors"
	"fmt"
	"log"

	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
)

const (
	// MaxTraceBounces is the hard upper bound on reflections followed by TraceRay.
	MaxTraceBounces = 5
	// Trace points are lifted off the floor so the drawn path does not z-fight with it.
	traceLift = 0.01
	// Reflected rays start this far along their new direction.
	reflectNudge = 1e-3
)

// ErrOpenRoom means a ray escaped the room, which can only happen if the walls do not enclose it.
var ErrOpenRoom = errors.New("ray escaped the room")

// RaySegment is one straight piece of a traced path.
type RaySegment struct {
	Start pt.Vector
	End   pt.Vector
	// Alpha fades from 1 on the first segment to 2/3 on the last
	Alpha float64
}

// Trace is a ray together with the points it visited.
type Trace struct {
	Ray    Ray
	Points []pt.Vector
}

// Segments splits the trace into drawable segments.
func (t Trace) Segments() []RaySegment {
	return Segments(t.Points)
}

// Clamp clamps n into [lo, hi]. Slider values (bounces, ray and fan counts) go through it.
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// TraceRay follows ray through the room and returns the visited points, starting with the origin.
//
// maxBounces is clamped to [1, MaxTraceBounces]. Tracing stops at the first non-mirror wall or
// once the bounce budget is spent, so the result has between 2 and maxBounces+2 points.
func TraceRay(ray Ray, walls []WallPlane, maxBounces int) ([]pt.Vector, error) {
	maxBounces = Clamp(maxBounces, 1, MaxTraceBounces)

	current := ray.Ray
	points := []pt.Vector{ray.Origin}
	bounces := 0
	for i := 0; i < maxBounces+1; i++ {
		hit := Intersect(current, walls)
		if !hit.Hit {
			log.Printf("ERROR: ray from %v towards %v hit no wall after %d bounces", current.Origin, current.Direction, bounces)
			return points, fmt.Errorf("tracing from %v: %w", ray.Origin, ErrOpenRoom)
		}
		points = append(points, hit.Point.Add(Up.MulScalar(traceLift)))

		if !hit.IsMirror || bounces >= maxBounces {
			break
		}

		reflected := pt.Ray{
			Origin:    hit.Point,
			Direction: Reflect(current.Direction, hit.Normal),
		}
		verifyReflectionLaw(current, hit.Normal, reflected)
		reflected.Origin = reflected.Position(reflectNudge)
		current = reflected
		bounces++
	}
	return points, nil
}

// TraceAll traces every ray and stops at the first error.
func TraceAll(rays []Ray, walls []WallPlane, maxBounces int) ([]Trace, error) {
	traces := make([]Trace, 0, len(rays))
	for _, r := range rays {
		points, err := TraceRay(r, walls, maxBounces)
		if err != nil {
			return nil, err
		}
		traces = append(traces, Trace{Ray: r, Points: points})
	}
	return traces, nil
}

var alphaFade = lin.Function{
	X: []float64{0, 1},
	Y: []float64{1, 2.0 / 3.0},
}

// Segments joins consecutive points into segments whose alpha fades along the path.
func Segments(points []pt.Vector) []RaySegment {
	if len(points) < 2 {
		return nil
	}
	n := len(points) - 1
	segments := make([]RaySegment, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		segments[i] = RaySegment{
			Start: points[i],
			End:   points[i+1],
			Alpha: alphaFade.At(t),
		}
	}
	return segments
}
