package scene

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hpinc/go3mf"

	"github.com/jdginn/go-mirror-room/room"
)

// 3MF files are in millimetres, the scene is in metres
const SCALE = 1000

type Triangle struct {
	V1, V2, V3 pt.Vector
}

type Mesh struct {
	Triangles []Triangle
}

// BoundingBox returns the min and max corners of the mesh.
func (m *Mesh) BoundingBox() (pt.Vector, pt.Vector) {
	if len(m.Triangles) == 0 {
		return pt.Vector{}, pt.Vector{}
	}
	lo, hi := m.Triangles[0].V1, m.Triangles[0].V1
	for _, t := range m.Triangles {
		lo = lo.Min(t.V1).Min(t.V2).Min(t.V3)
		hi = hi.Max(t.V1).Max(t.V2).Max(t.V3)
	}
	return lo, hi
}

// CubeMesh is an axis-aligned cube of the given edge length centred on the origin.
func CubeMesh(size float64) *Mesh {
	h := size / 2
	c := func(x, y, z float64) pt.Vector { return room.V(x*h, y*h, z*h) }
	quad := func(a, b, cc, d pt.Vector) []Triangle {
		return []Triangle{{a, b, cc}, {a, cc, d}}
	}
	var tris []Triangle
	tris = append(tris, quad(c(-1, -1, 1), c(1, -1, 1), c(1, 1, 1), c(-1, 1, 1))...)
	tris = append(tris, quad(c(1, -1, -1), c(-1, -1, -1), c(-1, 1, -1), c(1, 1, -1))...)
	tris = append(tris, quad(c(1, -1, 1), c(1, -1, -1), c(1, 1, -1), c(1, 1, 1))...)
	tris = append(tris, quad(c(-1, -1, -1), c(-1, -1, 1), c(-1, 1, 1), c(-1, 1, -1))...)
	tris = append(tris, quad(c(-1, 1, 1), c(1, 1, 1), c(1, 1, -1), c(-1, 1, -1))...)
	tris = append(tris, quad(c(-1, -1, -1), c(1, -1, -1), c(1, -1, 1), c(-1, -1, 1))...)
	return &Mesh{Triangles: tris}
}

// WallMesh is a quad spanning the wall between its neighbouring walls, from the floor up to height.
func WallMesh(w room.WallPlane, walls []room.WallPlane, height float64) *Mesh {
	along := w.Normal.Cross(room.Up).Normalize()
	extent := 0.0
	for _, o := range walls {
		if o.ID != w.ID && o.Normal.Dot(along) != 0 {
			extent = max(extent, o.Position.Sub(w.Position).Dot(along))
		}
	}
	a := w.Position.Sub(along.MulScalar(extent))
	b := w.Position.Add(along.MulScalar(extent))
	up := room.Up.MulScalar(height)
	return &Mesh{Triangles: []Triangle{
		{a, b, b.Add(up)},
		{a, b.Add(up), a.Add(up)},
	}}
}

func vertex(p go3mf.Point3D) pt.Vector {
	return pt.Vector{
		X: float64(p.X() / SCALE),
		Y: float64(p.Y() / SCALE),
		Z: float64(p.Z() / SCALE),
	}
}

// LoadMesh3MF reads every mesh object referenced by the build of a 3MF file into one mesh.
func LoadMesh3MF(filepath string) (*Mesh, error) {
	var model go3mf.Model
	r, err := go3mf.OpenReader(filepath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath, err)
	}
	defer r.Close()
	if err := r.Decode(&model); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath, err)
	}

	mesh := &Mesh{}
	for _, item := range model.Build.Items {
		obj, ok := model.FindObject(item.ObjectPath(), item.ObjectID)
		if !ok || obj.Mesh == nil {
			continue
		}
		verts := obj.Mesh.Vertices.Vertex
		for _, t := range obj.Mesh.Triangles.Triangle {
			mesh.Triangles = append(mesh.Triangles, Triangle{
				V1: vertex(verts[t.V1]),
				V2: vertex(verts[t.V2]),
				V3: vertex(verts[t.V3]),
			})
		}
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath, ErrMissingGeometry)
	}
	return mesh, nil
}

func toMesh3MF(m *Mesh) *go3mf.Mesh {
	out := &go3mf.Mesh{}
	index := map[pt.Vector]uint32{}
	add := func(v pt.Vector) uint32 {
		if i, ok := index[v]; ok {
			return i
		}
		i := uint32(len(out.Vertices.Vertex))
		out.Vertices.Vertex = append(out.Vertices.Vertex, go3mf.Point3D{
			float32(v.X * SCALE), float32(v.Y * SCALE), float32(v.Z * SCALE),
		})
		index[v] = i
		return i
	}
	for _, t := range m.Triangles {
		out.Triangles.Triangle = append(out.Triangles.Triangle, go3mf.Triangle{
			V1: add(t.V1), V2: add(t.V2), V3: add(t.V3),
		})
	}
	return out
}

// transform3MF builds the item transform for an object: scale, then rotate, then translate.
func transform3MF(o *Object) go3mf.Matrix {
	m := mgl64.Translate3D(o.Position.X*SCALE, o.Position.Y*SCALE, o.Position.Z*SCALE).
		Mul4(o.Rotation.Mat4()).
		Mul4(mgl64.Scale3D(o.Scale.X, o.Scale.Y, o.Scale.Z))
	// 3MF stores the upper 4x3 of a row-vector matrix, which is mgl's column-major layout
	var out go3mf.Matrix
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// Export3MF writes one mesh resource per geometry owner and one build item per enabled object.
func (s *Scene) Export3MF(filepath string) error {
	var model go3mf.Model
	ids := map[*Object]uint32{}
	owner := func(o *Object) *Object {
		if o.Source != nil {
			return o.Source
		}
		return o
	}

	for _, o := range s.objects {
		if o.Mesh == nil || o.Source != nil {
			continue
		}
		id := uint32(len(model.Resources.Objects) + 1)
		model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
			ID:   id,
			Name: o.name,
			Mesh: toMesh3MF(o.Mesh),
		})
		ids[o] = id
	}
	for _, o := range s.objects {
		id, ok := ids[owner(o)]
		if !o.Enabled || !ok {
			continue
		}
		model.Build.Items = append(model.Build.Items, &go3mf.Item{
			ObjectID:   id,
			Transform:  transform3MF(o),
			PartNumber: o.name,
		})
	}

	w, err := go3mf.CreateWriter(filepath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath, err)
	}
	if err := w.Encode(&model); err != nil {
		w.Close()
		return fmt.Errorf("encoding %s: %w", filepath, err)
	}
	return w.Close()
}
