package primitive

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/pkg/errors"
)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 64

// Box returns a marching cubes box centered at the origin
func Box(size geometry.Vector3, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X, Y: size.Y, Z: size.Z}, 0)
	if err != nil {
		return nil, errors.Wrap(err, "box")
	}
	return Tessellate(s, cells), nil
}

// Sphere returns a marching cubes sphere centered at the origin
func Sphere(radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, errors.Wrap(err, "sphere")
	}
	return Tessellate(s, cells), nil
}

// Cylinder returns a marching cubes cylinder along z, centered at the
// origin
func Cylinder(height, radius float64, cells int) (*mesh.Mesh, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, errors.Wrap(err, "cylinder")
	}
	return Tessellate(s, cells), nil
}

// Tessellate meshes an SDF with uniform marching cubes and welds the
// resulting triangle soup into an indexed mesh
func Tessellate(s sdf.SDF3, cells int) *mesh.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))

	soup := make([]geometry.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		a := geometry.NewVector3(tri[0].X, tri[0].Y, tri[0].Z)
		b := geometry.NewVector3(tri[1].X, tri[1].Y, tri[1].Z)
		c := geometry.NewVector3(tri[2].X, tri[2].Y, tri[2].Z)
		soup = append(soup, geometry.NewTriangleFromVertices(a, b, c))
	}

	// marching cubes emits triangles collapsed onto a grid corner
	m := mesh.Weld(soup, 1e-9)
	indices := m.Indices[:0]
	for t := 0; t < m.TriangleCount(); t++ {
		i := m.TriangleIndices(t)
		if i[0] != i[1] && i[1] != i[2] && i[0] != i[2] {
			indices = append(indices, i[0], i[1], i[2])
		}
	}
	m.Indices = indices
	return m
}
