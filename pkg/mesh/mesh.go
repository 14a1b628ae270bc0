// Package mesh holds the indexed triangle meshes the cutting engine consumes
// and produces, the interned vertex table used for stitching, and the
// component separator.
package mesh

import (
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
)

// Mesh is an indexed triangle mesh. UVs is either empty or has one entry
// per vertex.
type Mesh struct {
	Vertices []geometry.Vector3
	Indices  []int
	UVs      []geometry.Vector2
}

// New creates a mesh from its buffers
func New(vertices []geometry.Vector3, indices []int, uvs []geometry.Vector2) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices, UVs: uvs}
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// HasUVs reports whether the mesh carries texture coordinates
func (m *Mesh) HasUVs() bool {
	return len(m.UVs) > 0
}

// TriangleIndices returns the three vertex indices of triangle i
func (m *Mesh) TriangleIndices(i int) [3]int {
	return [3]int{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// Triangle returns triangle i with its normal derived from the winding
func (m *Mesh) Triangle(i int) geometry.Triangle {
	idx := m.TriangleIndices(i)
	return geometry.NewTriangleFromVertices(m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]])
}

// BoundingBox calculates the bounding box of all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.Vertices)
}

// Validate checks the buffer invariants and reports violations as
// cuterr.ErrMalformedMesh
func (m *Mesh) Validate() error {
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Vertices) {
		return cuterr.Malformed("uv count %d does not match vertex count %d", len(m.UVs), len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return cuterr.Malformed("index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return cuterr.Malformed("index %d at position %d is out of range [0,%d)", idx, i, len(m.Vertices))
		}
	}
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return cuterr.Malformed("vertex %d has non-finite position %v", i, v)
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]geometry.Vector3(nil), m.Vertices...),
		Indices:  append([]int(nil), m.Indices...),
		UVs:      append([]geometry.Vector2(nil), m.UVs...),
	}
}
