package scene

import (
	"github.com/jdginn/go-mirror-room/room"
)

// Frame is what a render target captured in one forced render.
type Frame struct {
	Visible []string
	// Depth is how many mirrors deep the captured content goes
	Depth int
}

// RenderTarget stands in for a mirror's render-to-texture target.
type RenderTarget struct {
	wall     room.WallID
	scene    *Scene
	visible  []room.Object
	frames   []Frame
	depth    int
	disposed bool
}

func newRenderTarget(s *Scene, wall room.WallID) *RenderTarget {
	return &RenderTarget{wall: wall, scene: s, visible: s.Objects()}
}

func (t *RenderTarget) VisibleSet() []room.Object {
	return t.visible
}

func (t *RenderTarget) SetVisibleSet(objects []room.Object) {
	t.visible = objects
}

// ForceRender captures the visible set. Mirrors in view contribute the content they currently
// hold, so depth grows by one per pass once mirrors can see each other.
func (t *RenderTarget) ForceRender() {
	if t.disposed {
		return
	}
	frame := Frame{Visible: make([]string, 0, len(t.visible)), Depth: 1}
	for _, o := range t.visible {
		frame.Visible = append(frame.Visible, o.Name())
		obj, ok := o.(*Object)
		if !ok || obj.Kind != KindWall {
			continue
		}
		other, ok := t.scene.targets[room.WallID(obj.name)]
		if !ok || other == t {
			continue
		}
		if other.depth+1 > frame.Depth {
			frame.Depth = other.depth + 1
		}
	}
	t.depth = frame.Depth
	t.frames = append(t.frames, frame)
}

// Depth is the nesting depth of the content currently held.
func (t *RenderTarget) Depth() int {
	return t.depth
}

// Frames returns every render so far.
func (t *RenderTarget) Frames() []Frame {
	return t.frames
}

func (t *RenderTarget) Dispose() {
	t.disposed = true
	t.visible = nil
}
