package room

import (
	"math"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// Intersections closer than this are ignored so a ray leaving a wall does not hit it again.
	MinHitDistance = 1e-3
	parallelEps    = 1e-9
)

// IntersectionResult describes the nearest hit of a ray against the room walls.
type IntersectionResult struct {
	Hit      bool
	Distance float64
	Point    pt.Vector
	Normal   pt.Vector
	IsMirror bool
	Wall     WallID
}

// NoIntersection is returned when a ray hits nothing.
var NoIntersection = IntersectionResult{Distance: math.Inf(1)}

// IntersectRayPlane returns the distance along direction at which the ray meets the plane.
//
// ok is false when the ray is parallel to the plane, points away from it, or the hit is closer
// than MinHitDistance.
func IntersectRayPlane(origin, direction, planePosition, planeNormal pt.Vector) (distance float64, ok bool) {
	denom := direction.Dot(planeNormal)
	if scalar.EqualWithinAbs(denom, 0, parallelEps) {
		return math.Inf(1), false
	}
	t := planePosition.Sub(origin).Dot(planeNormal) / denom
	if t < MinHitDistance {
		return math.Inf(1), false
	}
	return t, true
}

// Reflect mirrors incoming about normal and renormalizes the result.
func Reflect(incoming, normal pt.Vector) pt.Vector {
	r := normal.Reflect(incoming)
	l := r.Length()
	if scalar.EqualWithinAbs(l, 0, parallelEps) {
		return r
	}
	return r.DivScalar(l)
}

// ReflectPoint mirrors p across the plane through planePosition with the given unit normal.
func ReflectPoint(p, planePosition, planeNormal pt.Vector) pt.Vector {
	d := p.Sub(planePosition).Dot(planeNormal)
	return p.Sub(planeNormal.MulScalar(2 * d))
}

// Intersect finds the nearest wall hit by ray with a linear scan over walls.
func Intersect(ray pt.Ray, walls []WallPlane) IntersectionResult {
	nearest := NoIntersection
	for _, w := range walls {
		t, ok := IntersectRayPlane(ray.Origin, ray.Direction, w.Position, w.Normal)
		if !ok || t >= nearest.Distance {
			continue
		}
		nearest = IntersectionResult{
			Hit:      true,
			Distance: t,
			Point:    ray.Position(t),
			Normal:   w.Normal,
			IsMirror: w.IsMirror,
			Wall:     w.ID,
		}
	}
	return nearest
}
