package room

import (
	"fmt"
	"sort"

	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"
)

// InstanceManager keeps one renderer instance per reflection path ever seen.
//
// Instances are hidden rather than destroyed when their path drops out, so raising the bounce
// count again re-shows them without rebuilding geometry.
type InstanceManager struct {
	renderer  Instancer
	walls     []WallPlane
	instances map[string]Instance
	paths     map[string]ReflectionPath
}

// NewInstanceManager returns a manager that mirrors objects in walls.
func NewInstanceManager(renderer Instancer, walls []WallPlane) *InstanceManager {
	return &InstanceManager{
		renderer:  renderer,
		walls:     walls,
		instances: map[string]Instance{},
		paths:     map[string]ReflectionPath{},
	}
}

func instanceName(source Object, pathID string) string {
	return fmt.Sprintf("%s_reflection_%s", source.Name(), pathID)
}

// UpdateInstances places one enabled instance of source at every mirror image up to maxBounces.
//
// If the renderer fails to create an instance, nothing already tracked is changed and instances
// created during this call are disposed again.
func (m *InstanceManager) UpdateInstances(source Object, position pt.Vector, rotation mgl64.Quat, maxBounces int) ([]ReflectionPath, error) {
	paths := GeneratePaths(position, maxBounces, m.walls)

	created := map[string]Instance{}
	for _, p := range paths {
		if _, ok := m.instances[p.ID]; ok {
			continue
		}
		inst, err := m.renderer.CreateInstance(source, instanceName(source, p.ID))
		if err != nil {
			for _, c := range created {
				c.Dispose()
			}
			return nil, fmt.Errorf("creating instance for path %s: %w", p.ID, err)
		}
		created[p.ID] = inst
	}

	for _, inst := range m.instances {
		inst.SetEnabled(false)
	}
	for id, inst := range created {
		m.instances[id] = inst
	}
	for _, p := range paths {
		inst := m.instances[p.ID]
		inst.SetPosition(p.Position)
		inst.SetRotation(rotation)
		inst.SetScale(p.Scaling)
		inst.SetEnabled(true)
		m.paths[p.ID] = p
	}
	return paths, nil
}

// HideAll disables every cached instance.
func (m *InstanceManager) HideAll() {
	for _, inst := range m.instances {
		inst.SetEnabled(false)
	}
}

// ShowAll enables exactly the cached instances whose last known path is at most maxBounces deep.
func (m *InstanceManager) ShowAll(maxBounces int) {
	for id, inst := range m.instances {
		inst.SetEnabled(m.paths[id].BounceCount <= maxBounces)
	}
}

// Dispose releases every instance. Calling it again is a no-op.
func (m *InstanceManager) Dispose() {
	for _, inst := range m.instances {
		inst.Dispose()
	}
	m.instances = map[string]Instance{}
	m.paths = map[string]ReflectionPath{}
}

// Instance returns the cached instance for a path id.
func (m *InstanceManager) Instance(pathID string) (Instance, bool) {
	inst, ok := m.instances[pathID]
	return inst, ok
}

// Paths returns the last known path of every cached instance, shallowest first.
func (m *InstanceManager) Paths() []ReflectionPath {
	paths := make([]ReflectionPath, 0, len(m.paths))
	for _, p := range m.paths {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].BounceCount != paths[j].BounceCount {
			return paths[i].BounceCount < paths[j].BounceCount
		}
		return paths[i].ID < paths[j].ID
	})
	return paths
}

// Len returns the number of cached instances.
func (m *InstanceManager) Len() int {
	return len(m.instances)
}
