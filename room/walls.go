package room

import (
	"fmt"
	"strings"

	"github.com/fogleman/pt/pt"
)

// WallID names one of the four walls of the room.
type WallID string

const (
	North WallID = "north"
	South WallID = "south"
	East  WallID = "east"
	West  WallID = "west"
)

// DefaultHalfExtent is the distance from the room centre to each wall.
const DefaultHalfExtent = 10.0

// AllWalls lists the walls in the order BuildWallPlanes returns them.
var AllWalls = []WallID{North, South, East, West}

// DefaultMirrors is the fixed mirror assignment of the room: everything but the south wall.
var DefaultMirrors = []WallID{North, East, West}

// ParseWallID accepts a wall name in any case.
func ParseWallID(s string) (WallID, error) {
	id := WallID(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range AllWalls {
		if w == id {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown wall %q", s)
}

// WallPlane is one wall of the room. Normals point into the room.
type WallPlane struct {
	ID       WallID
	Position pt.Vector
	Normal   pt.Vector
	IsMirror bool
}

// Axis returns the unit axis the wall is perpendicular to.
func (w WallPlane) Axis() pt.Vector {
	return w.Normal.Abs()
}

// BuildWallPlanes returns fresh north/south/east/west planes of a room centred on the origin.
//
// With no mirrors given the DefaultMirrors assignment is used.
func BuildWallPlanes(halfExtent float64, mirrors ...WallID) []WallPlane {
	if len(mirrors) == 0 {
		mirrors = DefaultMirrors
	}
	isMirror := func(id WallID) bool {
		for _, m := range mirrors {
			if m == id {
				return true
			}
		}
		return false
	}
	return []WallPlane{
		{ID: North, Position: V(0, 0, halfExtent), Normal: V(0, 0, -1), IsMirror: isMirror(North)},
		{ID: South, Position: V(0, 0, -halfExtent), Normal: V(0, 0, 1), IsMirror: isMirror(South)},
		{ID: East, Position: V(halfExtent, 0, 0), Normal: V(-1, 0, 0), IsMirror: isMirror(East)},
		{ID: West, Position: V(-halfExtent, 0, 0), Normal: V(1, 0, 0), IsMirror: isMirror(West)},
	}
}

// Mirrors filters walls down to the mirrored ones, preserving order.
func Mirrors(walls []WallPlane) []WallPlane {
	var mirrors []WallPlane
	for _, w := range walls {
		if w.IsMirror {
			mirrors = append(mirrors, w)
		}
	}
	return mirrors
}

// Inside reports whether p lies strictly in front of every wall.
func Inside(p pt.Vector, walls []WallPlane) bool {
	return InsideWithin(p, walls, 0)
}

// InsideWithin reports whether p is more than margin away from every wall, i.e. a sphere of radius
// margin around p fits strictly inside the room.
func InsideWithin(p pt.Vector, walls []WallPlane, margin float64) bool {
	for _, w := range walls {
		if p.Sub(w.Position).Dot(w.Normal) <= margin {
			return false
		}
	}
	return true
}
