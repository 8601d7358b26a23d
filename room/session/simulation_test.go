package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-mirror-room/room"
	"github.com/jdginn/go-mirror-room/room/config"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	s, err := NewSimulation(config.Default())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func enabledInstances(s *Simulation) int {
	n := 0
	for _, p := range s.Instances.Paths() {
		inst, ok := s.Instances.Instance(p.ID)
		if !ok {
			continue
		}
		if obj, ok := s.Scene.Lookup(inst.Name()); ok && obj.Enabled {
			n++
		}
	}
	return n
}

func TestNewSimulation(t *testing.T) {
	s := newTestSimulation(t)

	// 3 + 6 + 12 images for three mirrors and three bounces
	assert.Len(t, s.Paths, 21)
	assert.Equal(t, 21, enabledInstances(s))
	assert.Len(t, s.Traces, 4*3)
	assert.Equal(t, 3, s.Passes.BounceCount())

	target, ok := s.Scene.Target(room.North)
	require.True(t, ok)
	assert.NotEmpty(t, target.Frames())
}

func TestNewSimulationWithoutMirrors(t *testing.T) {
	c := config.Default()
	c.Mirrors.Inline = map[string]bool{"north": false}
	_, err := NewSimulation(c)
	assert.Error(t, err)
}

func TestSetBounces(t *testing.T) {
	s := newTestSimulation(t)

	require.NoError(t, s.SetBounces(1))
	assert.Len(t, s.Paths, 3)
	assert.Equal(t, 3, enabledInstances(s))
	assert.Equal(t, 21, s.Instances.Len(), "deeper instances are cached, not disposed")

	require.NoError(t, s.SetBounces(99))
	assert.Equal(t, room.MaxTraceBounces, s.Bounces)
	// reflections stop at four levels: 3 + 6 + 12 + 24
	assert.Len(t, s.Paths, 45)
}

func TestSetRayAndFanCount(t *testing.T) {
	s := newTestSimulation(t)

	require.NoError(t, s.SetRayCount(2))
	require.NoError(t, s.SetFanCount(1))
	assert.Len(t, s.Traces, 2)

	require.NoError(t, s.SetRayCount(-1))
	assert.Empty(t, s.Traces)

	require.NoError(t, s.SetRayCount(100))
	require.NoError(t, s.SetFanCount(100))
	assert.Len(t, s.Traces, room.MaxRayCount*room.MaxFanCount)
}

func TestDragAndRelease(t *testing.T) {
	s := newTestSimulation(t)

	require.NoError(t, s.Drag(room.V(1, 0, 0)))
	assert.True(t, s.Dragging())
	assert.Empty(t, s.Paths)
	assert.Equal(t, 0, enabledInstances(s))
	assert.Equal(t, room.V(1, 1, 0), s.Source.Position)

	require.NoError(t, s.Drag(room.V(50, 0, 0)))
	assert.Equal(t, room.V(1, 1, 0), s.Source.Position, "moves out of the room are ignored")

	// Ray origins sit one radius out from the centre, so x=9.8 would start rays behind the east wall
	require.NoError(t, s.Drag(room.V(8.8, 0, 0)))
	assert.Equal(t, room.V(1, 1, 0), s.Source.Position, "moves that push the source into a wall are ignored")

	require.NoError(t, s.Release())
	assert.False(t, s.Dragging())
	assert.Len(t, s.Paths, 21)
	assert.Equal(t, 21, enabledInstances(s))

	inst, ok := s.Scene.Lookup("cube_reflection_north")
	require.True(t, ok)
	assert.InDelta(t, 1, inst.Position.X, 1e-9)
	assert.InDelta(t, 20, inst.Position.Z, 1e-9)
	assert.InDelta(t, -1, inst.Scale.Z, 1e-9)

	require.NoError(t, s.Release(), "release without a drag is a no-op")
}

func TestWriteOutputs(t *testing.T) {
	s := newTestSimulation(t)
	s.Config.Output.ImageSize = 128

	d, err := Create(filepath.Join(t.TempDir(), SessionsDir))
	require.NoError(t, err)
	require.NoError(t, s.WriteOutputs(d))

	for _, name := range []string{TraceImage, PathCountsImage, SceneModel, AnnotationsFile} {
		assert.FileExists(t, d.FilePath(name))
	}
}

func TestDragUpToWall(t *testing.T) {
	s := newTestSimulation(t)

	for i := 0; i < 40; i++ {
		require.NoError(t, s.Drag(room.V(0.5, 0, 0)))
	}
	assert.InDelta(t, 9.0, s.Source.Position.X, 1e-9)
	assert.NotEmpty(t, s.Traces)

	require.NoError(t, s.Release())
	assert.Len(t, s.Paths, 21)
}

func TestUpdateFailureKeepsState(t *testing.T) {
	s := newTestSimulation(t)
	traces := s.Traces
	paths := s.Paths

	// Without a mesh the scene cannot create the level 4 instances
	s.Source.Mesh = nil
	err := s.SetBounces(4)
	require.Error(t, err)

	assert.Equal(t, traces, s.Traces)
	assert.Equal(t, paths, s.Paths)
	assert.Equal(t, 3, s.Bounces)
	assert.Equal(t, 21, s.Instances.Len())
}
