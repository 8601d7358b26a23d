package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	visible []Object
	renders [][]string
}

func (t *fakeTarget) VisibleSet() []Object     { return t.visible }
func (t *fakeTarget) SetVisibleSet(o []Object) { t.visible = o }
func (t *fakeTarget) ForceRender() {
	names := make([]string, len(t.visible))
	for i, o := range t.visible {
		names[i] = o.Name()
	}
	t.renders = append(t.renders, names)
}

type fakeMirrorScene struct {
	objects []Object
	walls   map[WallID]Object
	targets map[WallID]*fakeTarget
	log     []WallID
}

func newFakeMirrorScene(walls []WallPlane) *fakeMirrorScene {
	s := &fakeMirrorScene{walls: map[WallID]Object{}, targets: map[WallID]*fakeTarget{}}
	for _, w := range walls {
		obj := fakeObject(w.ID)
		s.walls[w.ID] = obj
		s.objects = append(s.objects, obj)
		if w.IsMirror {
			s.targets[w.ID] = &fakeTarget{visible: []Object{fakeObject("original")}}
		}
	}
	s.objects = append(s.objects, fakeObject("cube"))
	return s
}

func (s *fakeMirrorScene) RenderTarget(wall WallID) (RenderTarget, bool) {
	t, ok := s.targets[wall]
	if !ok {
		return nil, false
	}
	return &loggingTarget{fakeTarget: t, wall: wall, scene: s}, true
}

func (s *fakeMirrorScene) WallObject(wall WallID) (Object, bool) {
	o, ok := s.walls[wall]
	return o, ok
}

func (s *fakeMirrorScene) Objects() []Object { return s.objects }

// loggingTarget records the global order of renders across mirrors.
type loggingTarget struct {
	*fakeTarget
	wall  WallID
	scene *fakeMirrorScene
}

func (t *loggingTarget) ForceRender() {
	t.scene.log = append(t.scene.log, t.wall)
	t.fakeTarget.ForceRender()
}

func TestExecuteRenderPasses(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	r, err := NewRenderPasses(scene, walls)
	require.NoError(t, err)

	r.ExecuteRenderPasses(3)

	// Every mirror finishes a pass before any mirror starts the next
	assert.Equal(t, []WallID{North, East, West, North, East, West, North, East, West}, scene.log)

	north := scene.targets[North]
	require.Len(t, north.renders, 3)
	assert.Equal(t, []string{"south", "cube"}, north.renders[0])
	assert.Equal(t, []string{"south", "east", "west", "cube"}, north.renders[1])
	assert.Equal(t, []string{"south", "east", "west", "cube"}, north.renders[2])

	east := scene.targets[East]
	assert.Equal(t, []string{"north", "south", "west", "cube"}, east.renders[2])

	for _, w := range []WallID{North, East, West} {
		assert.Equal(t, PassState(3), r.State(w))
	}
	assert.Equal(t, Uninitialized, r.State(South))
}

func TestExecuteRenderPassesBounds(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	r, err := NewRenderPasses(scene, walls)
	require.NoError(t, err)

	r.ExecuteRenderPasses(0)
	assert.Empty(t, scene.log)
	assert.Equal(t, Uninitialized, r.State(North))

	r.ExecuteRenderPasses(50)
	assert.Len(t, scene.targets[North].renders, MaxRenderPasses)
}

func TestVisibleSetsAreNotShared(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	r, err := NewRenderPasses(scene, walls)
	require.NoError(t, err)

	r.ExecuteRenderPasses(2)
	north := scene.targets[North].visible
	east := scene.targets[East].visible
	north[0] = fakeObject("scribble")
	assert.NotEqual(t, fakeObject("scribble"), east[0])
	assert.Equal(t, fakeObject("cube"), scene.objects[len(scene.objects)-1])
	assert.Equal(t, fakeObject("north"), scene.objects[0])
}

func TestSetBounceCount(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	r, err := NewRenderPasses(scene, walls)
	require.NoError(t, err)

	r.SetBounceCount(0)
	assert.Equal(t, 1, r.BounceCount())
	assert.Len(t, scene.targets[North].renders, 1)

	r.SetBounceCount(9)
	assert.Equal(t, MaxRenderPasses, r.BounceCount())
	assert.Len(t, scene.targets[North].renders, 1+MaxRenderPasses)

	r.Rerender()
	assert.Len(t, scene.targets[North].renders, 1+2*MaxRenderPasses)
}

func TestResetRestoresOriginal(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	r, err := NewRenderPasses(scene, walls)
	require.NoError(t, err)

	r.SetBounceCount(2)
	r.Reset()
	for _, w := range []WallID{North, East, West} {
		assert.Equal(t, []Object{fakeObject("original")}, scene.targets[w].visible)
		assert.Equal(t, Uninitialized, r.State(w))
	}
}

func TestRefreshReferences(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	r, err := NewRenderPasses(scene, walls)
	require.NoError(t, err)

	// The renderer swaps in new targets, e.g. after a quality change
	for id := range scene.targets {
		scene.targets[id] = &fakeTarget{visible: []Object{fakeObject("recreated")}}
	}
	require.NoError(t, r.RefreshReferences())
	r.ExecuteRenderPasses(1)
	assert.Len(t, scene.targets[North].renders, 1)
	r.Reset()
	assert.Equal(t, []Object{fakeObject("recreated")}, scene.targets[East].visible)

	delete(scene.targets, West)
	assert.ErrorIs(t, r.RefreshReferences(), ErrMissingRenderTarget)
}

func TestNewRenderPassesMissingTarget(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	delete(scene.targets, East)
	_, err := NewRenderPasses(scene, walls)
	assert.ErrorIs(t, err, ErrMissingRenderTarget)
}

func TestNewRenderPassesMissingWallObject(t *testing.T) {
	walls := BuildWallPlanes(10)
	scene := newFakeMirrorScene(walls)
	delete(scene.walls, West)
	_, err := NewRenderPasses(scene, walls)
	assert.ErrorIs(t, err, ErrMissingWallObject)
}
