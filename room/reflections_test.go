package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePathsLevelOne(t *testing.T) {
	walls := BuildWallPlanes(10)
	paths := GeneratePaths(V(1, 2, 3), 1, walls)
	require.Len(t, paths, 3)

	want := map[string]struct {
		x, y, z    float64
		sx, sy, sz float64
	}{
		"north": {1, 2, 17, 1, 1, -1},
		"east":  {19, 2, 3, -1, 1, 1},
		"west":  {-21, 2, 3, -1, 1, 1},
	}
	for _, p := range paths {
		expect, ok := want[p.ID]
		require.True(t, ok, "unexpected path %s", p.ID)
		assert.Equal(t, 1, p.BounceCount)
		assert.Len(t, p.WallSequence, 1)
		assert.True(t, vecClose(V(expect.x, expect.y, expect.z), p.Position), "%s: %v", p.ID, p.Position)
		assert.Equal(t, V(expect.sx, expect.sy, expect.sz), p.Scaling)
	}
}

func TestGeneratePathsCounts(t *testing.T) {
	walls := BuildWallPlanes(10)
	for k := 1; k <= MaxReflectionLevels; k++ {
		paths := GeneratePaths(V(0, 0, 0), k, walls)
		assert.Len(t, paths, 3*((1<<k)-1), "k=%d", k)
		counts := CountByLevel(paths)
		for level := 1; level <= k; level++ {
			assert.Equal(t, 3*(1<<(level-1)), counts[level])
		}
	}
}

func TestGeneratePathsClamps(t *testing.T) {
	walls := BuildWallPlanes(10)
	assert.Empty(t, GeneratePaths(V(0, 0, 0), 0, walls))
	assert.Empty(t, GeneratePaths(V(0, 0, 0), -3, walls))
	assert.Len(t, GeneratePaths(V(0, 0, 0), 9, walls), 45)

	noMirrors := BuildWallPlanes(10)
	for i := range noMirrors {
		noMirrors[i].IsMirror = false
	}
	assert.Empty(t, GeneratePaths(V(0, 0, 0), 3, noMirrors))
}

func TestGeneratePathsInvariants(t *testing.T) {
	walls := BuildWallPlanes(10)
	paths := GeneratePaths(V(2, 0, -4), MaxReflectionLevels, walls)
	seen := map[string]bool{}
	for _, p := range paths {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.Equal(t, len(p.WallSequence), p.BounceCount)
		assert.Equal(t, PathID(p.WallSequence), p.ID)
		for i := 1; i < len(p.WallSequence); i++ {
			assert.NotEqual(t, p.WallSequence[i-1], p.WallSequence[i], p.ID)
		}
		for _, w := range p.WallSequence {
			assert.NotEqual(t, South, w)
		}
		// Every axis scale is a sign
		for _, s := range []float64{p.Scaling.X, p.Scaling.Y, p.Scaling.Z} {
			assert.Contains(t, []float64{-1, 1}, s)
		}
		assert.Equal(t, 1.0, p.Scaling.Y)
	}
}

func TestGeneratePathsSequentialReflection(t *testing.T) {
	walls := BuildWallPlanes(10)
	byID := map[WallID]WallPlane{}
	for _, w := range walls {
		byID[w.ID] = w
	}
	source := V(3, 1, -2)
	for _, p := range GeneratePaths(source, 3, walls) {
		pos := source
		flips := 0
		for _, id := range p.WallSequence {
			w := byID[id]
			pos = ReflectPoint(pos, w.Position, w.Normal)
			if id == East || id == West {
				flips++
			}
		}
		assert.True(t, vecClose(pos, p.Position), p.ID)
		wantX := 1.0
		if flips%2 == 1 {
			wantX = -1
		}
		assert.Equal(t, wantX, p.Scaling.X, p.ID)
	}
}

func TestGeneratePathsEastWest(t *testing.T) {
	// Two opposite mirrors: east then west moves the image two room widths
	paths := GeneratePaths(V(1, 0, 0), 2, BuildWallPlanes(10))
	var found bool
	for _, p := range paths {
		if p.ID == "east>west" {
			found = true
			assert.True(t, vecClose(V(-39, 0, 0), p.Position), "%v", p.Position)
			assert.Equal(t, V(1, 1, 1), p.Scaling)
		}
	}
	assert.True(t, found)
}
