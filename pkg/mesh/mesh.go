// Package mesh provides model representation and loading for the frame
// loop glue: a triangle soup with normals and UVs, shaded by a simple
// directional light into the flat {pos, tc, color} vertices the
// rasterizer core actually understands.
package mesh

import "github.com/mini3dgo/raster3d/pkg/math3d"

// Mesh is a triangle mesh with per-vertex position, normal and texture
// coordinate, plus a cached axis-aligned bounding box.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Faces    []Face

	BoundsMin math3d.Vector
	BoundsMax math3d.Vector
}

// Vertex holds the attributes a loader can recover from a model file.
// The core rasterizer has no notion of Normal; it exists purely so this
// package can shade a vertex color before handing it to raster.Vertex.
type Vertex struct {
	Position math3d.Vector
	Normal   math3d.Vector
	UV       math3d.Vec2
}

// Face is a triangle referencing three vertex indices.
type Face struct {
	V [3]int
}

// New creates an empty named mesh.
func New(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes the bounding box from the current vertex
// positions.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	min := m.Vertices[0].Position
	max := m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		min = componentMin(min, v.Position)
		max = componentMax(max, v.Position)
	}
	m.BoundsMin, m.BoundsMax = min, max
}

func componentMin(a, b math3d.Vector) math3d.Vector {
	return math3d.Point(fmin(a.X, b.X), fmin(a.Y, b.Y), fmin(a.Z, b.Z))
}

func componentMax(a, b math3d.Vector) math3d.Vector {
	return math3d.Point(fmax(a.X, b.X), fmax(a.Y, b.Y), fmax(a.Z, b.Z))
}

func fmin(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func fmax(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() math3d.Vector {
	return math3d.Point(
		(m.BoundsMin.X+m.BoundsMax.X)/2,
		(m.BoundsMin.Y+m.BoundsMax.Y)/2,
		(m.BoundsMin.Z+m.BoundsMax.Z)/2,
	)
}

// Size returns the extent of the bounding box along each axis.
func (m *Mesh) Size() math3d.Vector {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int { return len(m.Faces) }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// CalculateNormals assigns a flat per-face normal to each of a face's
// three vertices, overwriting whatever normal a loader supplied.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position
		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals accumulates face normals per vertex and
// normalizes the result, giving smooth (as opposed to faceted) shading
// across shared vertices.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero()
	}
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position
		normal := v1.Sub(v0).Cross(v2.Sub(v0))
		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies mat to every vertex position and direction-transforms
// (then renormalizes) every normal, recomputing bounds afterward.
func (m *Mesh) Transform(mat math3d.Matrix) {
	for i := range m.Vertices {
		p := m.Vertices[i].Position
		p.W = 1
		m.Vertices[i].Position = math3d.Apply(p, mat)
		n := m.Vertices[i].Normal
		n.W = 0
		m.Vertices[i].Normal = math3d.Apply(n, mat).Normalize()
	}
	m.CalculateBounds()
}
