package room

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ray(origin, direction pt.Vector) Ray {
	return Ray{Ray: pt.Ray{Origin: origin, Direction: direction.Normalize()}}
}

func TestTraceRayNonMirrorStops(t *testing.T) {
	walls := BuildWallPlanes(10)
	for bounces := -1; bounces <= 7; bounces++ {
		points, err := TraceRay(ray(V(0, 0, 0), V(0, 0, -1)), walls, bounces)
		require.NoError(t, err)
		require.Len(t, points, 2, "maxBounces=%d", bounces)
		assert.Equal(t, V(0, 0, 0), points[0])
		assert.InDelta(t, -10, points[1].Z, 1e-9)
	}
}

func TestTraceRayEastSingleBounce(t *testing.T) {
	walls := BuildWallPlanes(10)
	points, err := TraceRay(ray(V(0, 0, 0), V(1, 0, 0)), walls, 1)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 10, points[1].X, 1e-9)
	assert.InDelta(t, -10, points[2].X, 1e-6)
}

func TestTraceRayLiftsPoints(t *testing.T) {
	walls := BuildWallPlanes(10)
	points, err := TraceRay(ray(V(0, 0, 0), V(1, 0, 0)), walls, 3)
	require.NoError(t, err)
	for _, p := range points[1:] {
		assert.InDelta(t, traceLift, p.Y, 1e-12)
	}
}

func TestTraceRayBounds(t *testing.T) {
	walls := BuildWallPlanes(10)
	for i := 0; i < 32; i++ {
		theta := 2 * math.Pi * (float64(i) + 0.37) / 32
		r := ray(V(1, 0, -2), V(math.Cos(theta), 0, math.Sin(theta)))
		for b := 1; b <= MaxTraceBounces; b++ {
			points, err := TraceRay(r, walls, b)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(points), 2)
			assert.LessOrEqual(t, len(points), b+2)
		}
	}
}

func TestTraceRayAllMirrorsUsesFullBudget(t *testing.T) {
	walls := BuildWallPlanes(10, North, South, East, West)
	for _, b := range []int{1, 3, 5, 9} {
		points, err := TraceRay(ray(V(0, 0, 0), V(1, 0, 0.3)), walls, b)
		require.NoError(t, err)
		assert.Len(t, points, Clamp(b, 1, MaxTraceBounces)+2)
		for _, p := range points {
			assert.LessOrEqual(t, math.Abs(p.X), 10+1e-6)
			assert.LessOrEqual(t, math.Abs(p.Z), 10+1e-6)
		}
	}
}

func TestTraceRayFromWall(t *testing.T) {
	// Starting on the east wall must not register a zero-distance hit on it
	walls := BuildWallPlanes(10)
	points, err := TraceRay(ray(V(10, 0, 0), V(-1, 0, 0)), walls, 1)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, -10, points[1].X, 1e-9)
	assert.InDelta(t, 10, points[2].X, 1e-6)
}

func TestTraceRayOpenRoom(t *testing.T) {
	walls := BuildWallPlanes(10)[:1]
	_, err := TraceRay(ray(V(0, 0, 0), V(0, 0, -1)), walls, 3)
	assert.ErrorIs(t, err, ErrOpenRoom)

	_, err = TraceAll([]Ray{ray(V(0, 0, 0), V(0, 0, -1))}, walls, 3)
	assert.ErrorIs(t, err, ErrOpenRoom)
}

func TestSegments(t *testing.T) {
	assert.Nil(t, Segments([]pt.Vector{V(0, 0, 0)}))

	one := Segments([]pt.Vector{V(0, 0, 0), V(1, 0, 0)})
	require.Len(t, one, 1)
	assert.Equal(t, 1.0, one[0].Alpha)

	points := []pt.Vector{V(0, 0, 0), V(1, 0, 0), V(1, 0, 1), V(0, 0, 1), V(0, 0, 2)}
	segs := Segments(points)
	require.Len(t, segs, 4)
	assert.InDelta(t, 1.0, segs[0].Alpha, 1e-12)
	assert.InDelta(t, 2.0/3.0, segs[3].Alpha, 1e-12)
	for i, s := range segs {
		assert.Equal(t, points[i], s.Start)
		assert.Equal(t, points[i+1], s.End)
		if i > 0 {
			assert.InDelta(t, segs[i-1].Alpha-1.0/9.0, s.Alpha, 1e-12)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		n, lo, hi int
		want      int
	}{
		{"bounces below", 0, 1, MaxTraceBounces, 1},
		{"bounces above", 9, 1, MaxTraceBounces, MaxTraceBounces},
		{"ray count in range", 3, 0, MaxRayCount, 3},
		{"fan count below", -2, MinFanCount, MaxFanCount, MinFanCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.n, tt.lo, tt.hi))
		})
	}
}
