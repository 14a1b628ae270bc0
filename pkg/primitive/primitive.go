// Package primitive builds meshes to cut: exact hand-built solids and
// SDF solids tessellated by marching cubes.
package primitive

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// Cube returns an axis-aligned cube centered at the origin with 8 vertices
// and 12 outward-facing triangles. UVs project onto the xz plane.
func Cube(size float64) *mesh.Mesh {
	h := size / 2
	vertices := []geometry.Vector3{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	indices := []int{
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		4, 5, 6, 4, 6, 7, // front
		1, 0, 3, 1, 3, 2, // back
		5, 1, 2, 5, 2, 6, // right
		0, 4, 7, 0, 7, 3, // left
	}
	uvs := make([]geometry.Vector2, len(vertices))
	for i, v := range vertices {
		uvs[i] = geometry.NewVector2(v.X/size+0.5, v.Z/size+0.5)
	}
	return mesh.New(vertices, indices, uvs)
}

// Torus returns a torus around the z axis. major is the distance from the
// center to the tube center, minor the tube radius.
func Torus(major, minor float64, segments, sides int) *mesh.Mesh {
	m := &mesh.Mesh{}
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		for j := 0; j < sides; j++ {
			phi := 2 * math.Pi * float64(j) / float64(sides)
			r := major + minor*math.Cos(phi)
			m.Vertices = append(m.Vertices, geometry.NewVector3(r*math.Cos(theta), r*math.Sin(theta), minor*math.Sin(phi)))
		}
	}
	at := func(i, j int) int {
		return (i%segments)*sides + j%sides
	}
	for i := 0; i < segments; i++ {
		for j := 0; j < sides; j++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}
	return m
}

// Grid returns an open square sheet in the xz plane facing +y, split into
// n by n quads
func Grid(size float64, n int) *mesh.Mesh {
	m := &mesh.Mesh{}
	step := size / float64(n)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			m.Vertices = append(m.Vertices, geometry.NewVector3(-size/2+float64(j)*step, 0, -size/2+float64(i)*step))
		}
	}
	at := func(i, j int) int { return i*(n+1) + j }
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b, c, d := at(i, j), at(i, j+1), at(i+1, j+1), at(i+1, j)
			// z grows with i, so (x, z) counter-clockwise seen from +y is a, d, c, b
			m.Indices = append(m.Indices, a, d, c, a, c, b)
		}
	}
	return m
}
