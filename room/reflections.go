package room

import (
	"strings"

	"github.com/fogleman/pt/pt"
)

// MaxReflectionLevels bounds how many mirrors an image may be reflected through.
const MaxReflectionLevels = 4

// ReflectionPath is one virtual image of a source, seen through an ordered sequence of mirrors.
type ReflectionPath struct {
	// ID encodes WallSequence and is stable across recomputation
	ID           string
	BounceCount  int
	WallSequence []WallID
	// Position of the mirror image
	Position pt.Vector
	// ±1 per axis, the accumulated axis flips
	Scaling pt.Vector
}

// PathID encodes a wall sequence as an identifier, e.g. "north>east".
func PathID(walls []WallID) string {
	parts := make([]string, len(walls))
	for i, w := range walls {
		parts[i] = string(w)
	}
	return strings.Join(parts, ">")
}

// Last returns the final wall in the sequence.
func (p ReflectionPath) Last() WallID {
	return p.WallSequence[len(p.WallSequence)-1]
}

func (p ReflectionPath) extend(w WallPlane) ReflectionPath {
	seq := make([]WallID, len(p.WallSequence), len(p.WallSequence)+1)
	copy(seq, p.WallSequence)
	seq = append(seq, w.ID)

	// Flip the axis perpendicular to the wall; a second flip on the same axis cancels
	axis := w.Axis()
	flip := V(1, 1, 1).Sub(axis.MulScalar(2))
	return ReflectionPath{
		ID:           PathID(seq),
		BounceCount:  len(seq),
		WallSequence: seq,
		Position:     ReflectPoint(p.Position, w.Position, w.Normal),
		Scaling:      p.Scaling.Mul(flip),
	}
}

// GeneratePaths enumerates the mirror images of source up to maxBounces reflections deep.
//
// Paths come out level by level, in wall order within each level. A wall never follows itself in
// a sequence since that would only undo the previous reflection. maxBounces is clamped to
// [0, MaxReflectionLevels]; with m mirrors level k holds m·(m−1)^(k−1) paths.
func GeneratePaths(source pt.Vector, maxBounces int, walls []WallPlane) []ReflectionPath {
	maxBounces = Clamp(maxBounces, 0, MaxReflectionLevels)
	mirrors := Mirrors(walls)
	if maxBounces == 0 || len(mirrors) == 0 {
		return nil
	}

	root := ReflectionPath{Position: source, Scaling: V(1, 1, 1)}
	level := make([]ReflectionPath, 0, len(mirrors))
	for _, m := range mirrors {
		level = append(level, root.extend(m))
	}
	paths := append([]ReflectionPath(nil), level...)

	for k := 2; k <= maxBounces; k++ {
		next := make([]ReflectionPath, 0, len(level)*(len(mirrors)-1))
		for _, p := range level {
			for _, m := range mirrors {
				if m.ID == p.Last() {
					continue
				}
				next = append(next, p.extend(m))
			}
		}
		paths = append(paths, next...)
		level = next
	}
	return paths
}
