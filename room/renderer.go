package room

import (
	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"
)

// The interfaces below are what the engine needs from the surrounding renderer.

// Object is anything the renderer can draw.
type Object interface {
	Name() string
}

// Instance is a renderable copy of a source object's geometry.
type Instance interface {
	Object
	SetPosition(pt.Vector)
	SetRotation(mgl64.Quat)
	SetScale(pt.Vector)
	SetEnabled(bool)
	Dispose()
}

// Instancer creates instances that share geometry with a source object.
type Instancer interface {
	CreateInstance(source Object, name string) (Instance, error)
}

// RenderTarget is the texture a mirror wall renders its reflection into.
type RenderTarget interface {
	VisibleSet() []Object
	SetVisibleSet([]Object)
	ForceRender()
}

// MirrorScene exposes the render targets and renderables of the scene.
type MirrorScene interface {
	RenderTarget(wall WallID) (RenderTarget, bool)
	WallObject(wall WallID) (Object, bool)
	// Objects returns every renderable that is currently enabled
	Objects() []Object
}
