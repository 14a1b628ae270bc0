package stl

import (
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// ToMesh welds the facets into an indexed mesh. STL stores every facet on
// its own, so shared corners are merged within tolerance.
func (m *Model) ToMesh(tolerance float64) *mesh.Mesh {
	return mesh.Weld(m.Triangles, tolerance)
}

// FromMesh converts an indexed mesh into facets with normals derived from
// the winding order
func FromMesh(name string, m *mesh.Mesh) *Model {
	model := NewModel(name)
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.Triangle(t)
		model.AddTriangle(geometry.NewTriangleFromVertices(tri.V1, tri.V2, tri.V3))
	}
	return model
}

// FromPart converts one part of a cut
func FromPart(name string, p *mesh.Part) *Model {
	return FromMesh(name, p.Mesh())
}
