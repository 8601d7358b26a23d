package room

import (
	"errors"
	"fmt"
	"log"
)

// MaxRenderPasses bounds how many times each mirror is re-rendered per update.
const MaxRenderPasses = 5

// ErrMissingRenderTarget is returned when a mirror wall has no render target in the scene.
var ErrMissingRenderTarget = errors.New("mirror has no render target")

// ErrMissingWallObject is returned when a mirror wall has no object in the scene to hide.
var ErrMissingWallObject = errors.New("mirror has no wall object")

// PassState is the configuration stage of one mirror's visible set.
//
// 0 means the original visible set is in place; k > 0 means pass k configured it.
type PassState int

const Uninitialized PassState = 0

type mirrorTarget struct {
	wall     WallID
	object   Object
	target   RenderTarget
	original []Object
	state    PassState
}

// RenderPasses builds up mirror-in-mirror content over a bounded number of passes.
//
// Pass 1 renders every mirror without any other mirror in view. Each later pass lets mirrors see
// each other, and since their textures already hold the previous pass, each pass adds one level of
// nesting.
type RenderPasses struct {
	scene   MirrorScene
	walls   []WallPlane
	mirrors []*mirrorTarget
	bounces int
}

// NewRenderPasses looks up the render target of every mirror in walls.
func NewRenderPasses(scene MirrorScene, walls []WallPlane) (*RenderPasses, error) {
	r := &RenderPasses{scene: scene, walls: walls, bounces: 1}
	if err := r.RefreshReferences(); err != nil {
		return nil, err
	}
	return r, nil
}

// RefreshReferences re-scans the scene for mirror render targets and snapshots their visible sets.
//
// Call it after the renderer has recreated its render targets.
func (r *RenderPasses) RefreshReferences() error {
	var mirrors []*mirrorTarget
	for _, w := range Mirrors(r.walls) {
		target, ok := r.scene.RenderTarget(w.ID)
		if !ok {
			log.Printf("WARNING: mirror %s has no render target", w.ID)
			return fmt.Errorf("%s: %w", w.ID, ErrMissingRenderTarget)
		}
		object, ok := r.scene.WallObject(w.ID)
		if !ok {
			log.Printf("WARNING: mirror %s has no wall object", w.ID)
			return fmt.Errorf("%s: %w", w.ID, ErrMissingWallObject)
		}
		mirrors = append(mirrors, &mirrorTarget{
			wall:     w.ID,
			object:   object,
			target:   target,
			original: append([]Object(nil), target.VisibleSet()...),
		})
	}
	r.mirrors = mirrors
	return nil
}

// visibleExcept returns a new list of the enabled scene objects minus the excluded ones.
func visibleExcept(objects []Object, exclude func(Object) bool) []Object {
	visible := make([]Object, 0, len(objects))
	for _, o := range objects {
		if !exclude(o) {
			visible = append(visible, o)
		}
	}
	return visible
}

func (r *RenderPasses) isMirror(o Object) bool {
	for _, m := range r.mirrors {
		if m.object != nil && m.object == o {
			return true
		}
	}
	return false
}

// ExecuteRenderPasses runs maxBounces passes, finishing every mirror in pass k before pass k+1.
// Values below 1 do nothing; values above MaxRenderPasses are capped.
func (r *RenderPasses) ExecuteRenderPasses(maxBounces int) {
	if maxBounces < 1 {
		return
	}
	if maxBounces > MaxRenderPasses {
		maxBounces = MaxRenderPasses
	}
	for pass := 1; pass <= maxBounces; pass++ {
		objects := r.scene.Objects()
		for _, m := range r.mirrors {
			var visible []Object
			if pass == 1 {
				visible = visibleExcept(objects, r.isMirror)
			} else {
				self := m.object
				visible = visibleExcept(objects, func(o Object) bool { return self != nil && o == self })
			}
			m.target.SetVisibleSet(visible)
			m.state = PassState(pass)
			m.target.ForceRender()
		}
	}
}

// SetBounceCount clamps n to [1, MaxRenderPasses], stores it and re-runs the passes.
func (r *RenderPasses) SetBounceCount(n int) {
	r.bounces = Clamp(n, 1, MaxRenderPasses)
	r.ExecuteRenderPasses(r.bounces)
}

// BounceCount returns the stored pass count.
func (r *RenderPasses) BounceCount() int {
	return r.bounces
}

// Rerender repeats the passes with the stored bounce count, e.g. once per frame.
func (r *RenderPasses) Rerender() {
	r.ExecuteRenderPasses(r.bounces)
}

// Reset restores every mirror's original visible set.
func (r *RenderPasses) Reset() {
	for _, m := range r.mirrors {
		m.target.SetVisibleSet(append([]Object(nil), m.original...))
		m.state = Uninitialized
	}
}

// State returns the pass that last configured the mirror on wall.
func (r *RenderPasses) State(wall WallID) PassState {
	for _, m := range r.mirrors {
		if m.wall == wall {
			return m.state
		}
	}
	return Uninitialized
}
