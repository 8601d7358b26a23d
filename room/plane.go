package room

import (
	"github.com/fogleman/pt/pt"
)

type Point2D struct {
	X, Y float64
}

// To2D converts a 3D vector to a 2D point
func To2D(v pt.Vector) Point2D {
	return Point2D{v.X, v.Y}
}

func (p Point2D) Translate(x, y float64) Point2D {
	return Point2D{p.X + x, p.Y + y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

type Path2D []Point2D

// BoundingBox returns the extent of the path. An empty path has an empty box at the origin.
func (p Path2D) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	for i, q := range p {
		if i == 0 {
			XMin, XMax, YMin, YMax = q.X, q.X, q.Y, q.Y
			continue
		}
		if q.X < XMin {
			XMin = q.X
		}
		if q.X > XMax {
			XMax = q.X
		}
		if q.Y < YMin {
			YMin = q.Y
		}
		if q.Y > YMax {
			YMax = q.Y
		}
	}
	return
}

// Plane is a projection plane with an in-plane basis U, V.
type Plane struct {
	Point  pt.Vector
	Normal pt.Vector
	U, V   pt.Vector
}

func MakePlane(point, normal pt.Vector) Plane {
	u := perpendicular(normal).Normalize()
	v := u.Cross(normal).Normalize()
	return Plane{point, normal, u, v}
}

// TopDown looks down onto the floor with north (+Z) up and east (+X) right.
var TopDown = MakePlane(V(0, 0, 0), V(0, -1, 0))

func (p Plane) Project(point pt.Vector) pt.Vector {
	d := point.Sub(p.Point)
	x := d.Dot(p.U)
	y := d.Dot(p.V)
	return V(x, y, 0)
}

func perpendicular(a pt.Vector) pt.Vector {
	if a.X == 0 && a.Y == 0 {
		if a.Z == 0 {
			return pt.Vector{}
		}
		return V(0, 1, 0)
	}
	return V(-a.Y, a.X, 0).Normalize()
}
