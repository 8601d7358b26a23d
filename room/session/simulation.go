package session

import (
	"fmt"
	"log"

	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/jdginn/go-mirror-room/room"
	"github.com/jdginn/go-mirror-room/room/config"
	"github.com/jdginn/go-mirror-room/room/scene"
)

// Output file names written by WriteOutputs.
const (
	TraceImage      = "trace.png"
	PathCountsImage = "paths.png"
	SceneModel      = "scene.3mf"
	AnnotationsFile = "annotations.json"
)

// Simulation ties one configured room to its scene, reflection instances and mirror passes.
type Simulation struct {
	Config    *config.SessionConfig
	Walls     []room.WallPlane
	Scene     *scene.Scene
	Source    *scene.Object
	Instances *room.InstanceManager
	Passes    *room.RenderPasses

	RayCount int
	FanCount int
	Bounces  int

	Traces []room.Trace
	Paths  []room.ReflectionPath
	// Set while the source is being dragged; reflections stay hidden until Release.
	dragging bool
}

// NewSimulation builds the scene described by c and runs a first update.
func NewSimulation(c *config.SessionConfig) (*Simulation, error) {
	walls := c.Walls()
	if len(room.Mirrors(walls)) == 0 {
		return nil, fmt.Errorf("room has no mirror walls")
	}

	sc, err := scene.NewRoomScene(walls, c.Room.Height)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}

	mesh := scene.CubeMesh(2 * c.Source.Radius)
	if c.Source.Mesh != "" {
		if mesh, err = scene.LoadMesh3MF(c.Source.Mesh); err != nil {
			return nil, fmt.Errorf("loading source mesh: %w", err)
		}
	}
	source, err := sc.AddObject(c.Source.Name, scene.KindSource, mesh)
	if err != nil {
		return nil, fmt.Errorf("adding source: %w", err)
	}

	passes, err := room.NewRenderPasses(sc, walls)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		Config:    c,
		Walls:     walls,
		Scene:     sc,
		Source:    source,
		Instances: room.NewInstanceManager(sc, walls),
		Passes:    passes,
		RayCount:  c.Rays.Count,
		FanCount:  c.Rays.FanCount,
		Bounces:   c.Simulation.Bounces,
	}
	source.SetPosition(c.SourcePosition())
	source.SetRotation(room.YawRotation(c.Source.YawDegrees))

	if err := s.Update(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Simulation) rotation() mgl64.Quat {
	return room.YawRotation(s.Config.Source.YawDegrees)
}

// trace generates and traces the rays from the current source position without storing them.
func (s *Simulation) trace() ([]room.Trace, error) {
	e, err := s.Config.Emitter()
	if err != nil {
		return nil, err
	}
	e.Position = s.Source.Position
	traces, err := room.TraceAll(e.GenerateRays(s.RayCount, s.FanCount), s.Walls, s.Bounces)
	if err != nil {
		return nil, fmt.Errorf("tracing rays: %w", err)
	}
	return traces, nil
}

// Retrace regenerates and traces the rays from the current source position.
func (s *Simulation) Retrace() error {
	traces, err := s.trace()
	if err != nil {
		return err
	}
	s.Traces = traces
	return nil
}

// Update retraces the rays, repositions every reflection and renders the mirror passes. On error
// the previous traces and paths are kept.
func (s *Simulation) Update() error {
	traces, err := s.trace()
	if err != nil {
		return err
	}
	paths, err := s.Instances.UpdateInstances(s.Source, s.Source.Position, s.rotation(), s.Bounces)
	if err != nil {
		return fmt.Errorf("updating reflections: %w", err)
	}
	s.Traces = traces
	s.Paths = paths
	s.Passes.SetBounceCount(s.Bounces)
	return nil
}

// SetBounces changes the bounce count and updates everything that depends on it.
func (s *Simulation) SetBounces(n int) error {
	prev := s.Bounces
	s.Bounces = room.Clamp(n, 1, room.MaxTraceBounces)
	if err := s.refresh(); err != nil {
		s.Bounces = prev
		return err
	}
	return nil
}

// SetRayCount changes the number of primary rays.
func (s *Simulation) SetRayCount(n int) error {
	s.RayCount = room.Clamp(n, 0, room.MaxRayCount)
	return s.Retrace()
}

// SetFanCount changes the number of rays in each fan.
func (s *Simulation) SetFanCount(n int) error {
	s.FanCount = room.Clamp(n, room.MinFanCount, room.MaxFanCount)
	return s.Retrace()
}

// Drag moves the source by delta on the floor plane. Reflections are hidden until Release; the
// move is refused unless the source, radius included, stays inside the room.
func (s *Simulation) Drag(delta pt.Vector) error {
	next := s.Source.Position.Add(delta)
	if !room.InsideWithin(next, s.Walls, s.Config.Source.Radius) {
		log.Printf("source at %v with radius %v would touch a wall, ignoring move", next, s.Config.Source.Radius)
		return nil
	}
	if !s.dragging {
		s.dragging = true
		s.Instances.HideAll()
		s.Paths = nil
	}
	s.Source.SetPosition(next)
	return s.Retrace()
}

// Release ends a drag and brings the reflections back at the new source position.
func (s *Simulation) Release() error {
	if !s.dragging {
		return nil
	}
	s.dragging = false
	return s.Update()
}

// Dragging reports whether a drag is in progress.
func (s *Simulation) Dragging() bool {
	return s.dragging
}

func (s *Simulation) refresh() error {
	if s.dragging {
		return s.Retrace()
	}
	return s.Update()
}

// Snapshot returns what the top-down view draws for the current state.
func (s *Simulation) Snapshot() room.Snapshot {
	return room.Snapshot{
		Walls:  s.Walls,
		Source: s.Source.Position,
		Traces: s.Traces,
		Images: s.Paths,
	}
}

// RenderTrace writes the top-down image of the current state.
func (s *Simulation) RenderTrace(path string) error {
	return room.NewTopDownView(s.Config.Output.ImageSize).SavePNG(path, s.Snapshot())
}

// WriteOutputs writes every output file of the current state into d.
func (s *Simulation) WriteOutputs(d *Dir) error {
	if err := s.RenderTrace(d.FilePath(TraceImage)); err != nil {
		return fmt.Errorf("rendering trace: %w", err)
	}
	if len(s.Paths) > 0 {
		size := s.Config.Output.ImageSize
		if err := room.PlotPathCounts(d.FilePath(PathCountsImage), size, size/2, s.Paths); err != nil {
			return fmt.Errorf("plotting path counts: %w", err)
		}
	}
	if err := s.Scene.Export3MF(d.FilePath(SceneModel)); err != nil {
		return fmt.Errorf("exporting scene: %w", err)
	}
	if err := room.SaveAnnotations(d.FilePath(AnnotationsFile), s.Source.Position, s.Traces, s.Paths); err != nil {
		return fmt.Errorf("saving annotations: %w", err)
	}
	return nil
}

// Close disposes every reflection instance.
func (s *Simulation) Close() {
	s.Instances.Dispose()
}
