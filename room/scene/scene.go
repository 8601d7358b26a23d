// Package scene is a small retained scene that the reflection engine can drive: it hands out
// instances, keeps a render target per mirror wall and can be written out as a 3MF model.
package scene

import (
	"errors"
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jdginn/go-mirror-room/room"
)

var (
	ErrMissingGeometry = errors.New("source object has no geometry")
	ErrUnknownObject   = errors.New("object does not belong to this scene")
	ErrDuplicateName   = errors.New("object name already in use")
)

type Kind int

const (
	KindWall Kind = iota
	KindSource
	KindInstance
)

// Object is one renderable in the scene.
type Object struct {
	name     string
	Kind     Kind
	Position pt.Vector
	Rotation mgl64.Quat
	Scale    pt.Vector
	Enabled  bool
	// Mesh is shared with every instance of this object
	Mesh *Mesh
	// Source is set for instances
	Source   *Object
	Disposed bool

	scene *Scene
}

func (o *Object) Name() string { return o.name }

func (o *Object) SetPosition(p pt.Vector)  { o.Position = p }
func (o *Object) SetRotation(q mgl64.Quat) { o.Rotation = q }
func (o *Object) SetScale(s pt.Vector)     { o.Scale = s }
func (o *Object) SetEnabled(enabled bool)  { o.Enabled = enabled }

// Dispose removes the object from the scene. Disposing twice is a no-op.
func (o *Object) Dispose() {
	if o.Disposed {
		return
	}
	o.Disposed = true
	o.Enabled = false
	if o.scene != nil {
		o.scene.remove(o)
	}
}

// Scene holds objects in insertion order plus the mirror render targets.
type Scene struct {
	objects []*Object
	byName  map[string]*Object
	walls   map[room.WallID]*Object
	targets map[room.WallID]*RenderTarget
}

func New() *Scene {
	return &Scene{
		byName:  map[string]*Object{},
		walls:   map[room.WallID]*Object{},
		targets: map[room.WallID]*RenderTarget{},
	}
}

// NewRoomScene adds one wall object per wall and a render target per mirror wall.
func NewRoomScene(walls []room.WallPlane, height float64) (*Scene, error) {
	s := New()
	for _, w := range walls {
		obj, err := s.AddObject(string(w.ID), KindWall, WallMesh(w, walls, height))
		if err != nil {
			return nil, err
		}
		s.walls[w.ID] = obj
		if w.IsMirror {
			s.targets[w.ID] = newRenderTarget(s, w.ID)
		}
	}
	return s, nil
}

// AddObject adds an enabled object with identity transform.
func (s *Scene) AddObject(name string, kind Kind, mesh *Mesh) (*Object, error) {
	if _, ok := s.byName[name]; ok {
		return nil, fmt.Errorf("%s: %w", name, ErrDuplicateName)
	}
	o := &Object{
		name:     name,
		Kind:     kind,
		Rotation: mgl64.QuatIdent(),
		Scale:    room.V(1, 1, 1),
		Enabled:  true,
		Mesh:     mesh,
		scene:    s,
	}
	s.objects = append(s.objects, o)
	s.byName[name] = o
	return o, nil
}

func (s *Scene) remove(o *Object) {
	delete(s.byName, o.name)
	for i, other := range s.objects {
		if other == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// Lookup finds an object by name.
func (s *Scene) Lookup(name string) (*Object, bool) {
	o, ok := s.byName[name]
	return o, ok
}

// CreateInstance implements room.Instancer. The instance shares the source's mesh and starts
// disabled.
func (s *Scene) CreateInstance(source room.Object, name string) (room.Instance, error) {
	src, ok := source.(*Object)
	if !ok || src.scene != s || src.Disposed {
		return nil, fmt.Errorf("%s: %w", source.Name(), ErrUnknownObject)
	}
	if src.Mesh == nil || len(src.Mesh.Triangles) == 0 {
		return nil, fmt.Errorf("%s: %w", src.name, ErrMissingGeometry)
	}
	o, err := s.AddObject(name, KindInstance, src.Mesh)
	if err != nil {
		return nil, err
	}
	o.Source = src
	o.Enabled = false
	return o, nil
}

// Objects implements room.MirrorScene: every enabled object in insertion order.
func (s *Scene) Objects() []room.Object {
	var objects []room.Object
	for _, o := range s.objects {
		if o.Enabled {
			objects = append(objects, o)
		}
	}
	return objects
}

// All returns every object, enabled or not.
func (s *Scene) All() []*Object {
	return append([]*Object(nil), s.objects...)
}

func (s *Scene) WallObject(wall room.WallID) (room.Object, bool) {
	o, ok := s.walls[wall]
	if !ok {
		return nil, false
	}
	return o, true
}

func (s *Scene) RenderTarget(wall room.WallID) (room.RenderTarget, bool) {
	t, ok := s.targets[wall]
	if !ok {
		return nil, false
	}
	return t, true
}

// Target returns the concrete render target of a mirror wall.
func (s *Scene) Target(wall room.WallID) (*RenderTarget, bool) {
	t, ok := s.targets[wall]
	return t, ok
}

// RecreateTargets throws away every render target and builds fresh ones, as a renderer does when
// texture quality changes. Holders of the old targets must refresh their references.
func (s *Scene) RecreateTargets() {
	for wall, old := range s.targets {
		old.Dispose()
		s.targets[wall] = newRenderTarget(s, wall)
	}
}

// RemoveTarget drops the render target of a wall, e.g. when the renderer cannot provide one.
func (s *Scene) RemoveTarget(wall room.WallID) {
	if t, ok := s.targets[wall]; ok {
		t.Dispose()
		delete(s.targets, wall)
	}
}
