package mesh

import (
	"testing"

	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

// tetrahedron returns a closed, outward wound tetrahedron moved by offset
func tetrahedron(offset geometry.Vector3) *Mesh {
	return New(
		[]geometry.Vector3{
			v(0, 0, 0).Add(offset), v(1, 0, 0).Add(offset), v(0, 1, 0).Add(offset), v(0, 0, 1).Add(offset),
		},
		[]int{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
		nil,
	)
}

func TestValidate(t *testing.T) {
	m := tetrahedron(geometry.Vector3{})
	require.NoError(t, m.Validate())

	bad := m.Clone()
	bad.UVs = []geometry.Vector2{{}, {}}
	assert.True(t, cuterr.IsMalformed(bad.Validate()))

	bad = m.Clone()
	bad.Indices = bad.Indices[:5]
	assert.True(t, cuterr.IsMalformed(bad.Validate()))

	bad = m.Clone()
	bad.Indices[4] = 9
	assert.True(t, cuterr.IsMalformed(bad.Validate()))
}

func TestVertexTableWeldsWithinTolerance(t *testing.T) {
	table := NewVertexTable(1e-6)

	a := table.Intern(v(1, 2, 3))
	b := table.Intern(v(1+4e-7, 2, 3-4e-7))
	c := table.Intern(v(1+3e-6, 2, 3))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, v(1, 2, 3), table.Position(b))
}

func TestVertexTableFindsAcrossCellBorders(t *testing.T) {
	table := NewVertexTable(1e-3)

	// both sides of the cell boundary at x=0
	a := table.Intern(v(-1e-4, 0, 0))
	b := table.Intern(v(1e-4, 0, 0))
	assert.Equal(t, a, b)
}

func TestVertexTableExactMode(t *testing.T) {
	table := NewVertexTable(0)

	a := table.Intern(v(0.1, 0.2, 0.3))
	b := table.Intern(v(0.1, 0.2, 0.3))
	c := table.Intern(v(0.1, 0.2, 0.3+1e-15))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestIslands(t *testing.T) {
	keys := [][3]int{{0, 1, 2}, {5, 6, 7}, {2, 3, 4}, {7, 8, 9}, {10, 11, 12}}
	islands := Islands(keys, 13)

	assert.Equal(t, [][]int{{0, 2}, {1, 3}, {4}}, islands)
}

func TestSeparateTwoTetrahedra(t *testing.T) {
	a := tetrahedron(geometry.Vector3{})
	b := tetrahedron(v(5, 0, 0))

	part := &Part{Origin: map[int]int{}, Side: SidePositive}
	part.Vertices = append(append(part.Vertices, a.Vertices...), b.Vertices...)
	part.Indices = append(part.Indices, a.Indices...)
	for _, idx := range b.Indices {
		part.Indices = append(part.Indices, idx+4)
	}
	for i := range part.Vertices {
		part.Origin[i] = i
	}

	parts := Separate(part, DefaultWeldTolerance)
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.Equal(t, SidePositive, p.Side)
		assert.Len(t, p.Vertices, 4)
		assert.Equal(t, 4, p.TriangleCount())
		assert.Len(t, p.Origin, 4)
	}
	assert.Equal(t, v(5, 0, 0), parts[1].Vertices[0])

	merged := Merge(parts)
	assert.Equal(t, part.TriangleCount(), merged.TriangleCount())
	assert.Equal(t, SidePositive, merged.Side)
}

func TestSeparateKeepsSingleIsland(t *testing.T) {
	m := tetrahedron(geometry.Vector3{})
	part := &Part{Vertices: m.Vertices, Indices: m.Indices, Origin: map[int]int{}}

	parts := Separate(part, DefaultWeldTolerance)
	require.Len(t, parts, 1)
	assert.Same(t, part, parts[0])
}

func TestPartBuilderSharesKeyedVertices(t *testing.T) {
	b := NewPartBuilder(SideNegative, true)

	i := b.Vertex(OriginalKey(7), v(0, 0, 0), geometry.NewVector2(0, 0))
	j := b.Vertex(EdgeKey(3, 1), v(1, 0, 0), geometry.NewVector2(1, 0))
	k := b.Vertex(EdgeKey(1, 3), v(9, 9, 9), geometry.NewVector2(9, 9))
	l := b.Vertex(CapKey(2), v(0, 1, 0), geometry.NewVector2(0, 1))
	b.Triangle(i, j, l)

	part := b.Build()
	assert.Equal(t, j, k)
	assert.Len(t, part.Vertices, 3)
	assert.Len(t, part.UVs, 3)
	assert.Equal(t, map[int]int{7: 0}, part.Origin)
	assert.Equal(t, SideNegative, part.Side)
	assert.Equal(t, "negative", part.Side.String())
}

func TestWeld(t *testing.T) {
	tris := []geometry.Triangle{
		geometry.NewTriangleFromVertices(v(0, 0, 0), v(1, 0, 0), v(0, 1, 0)),
		geometry.NewTriangleFromVertices(v(1, 0, 0), v(1, 1, 0), v(0, 1, 1e-9)),
	}
	m := Weld(tris, 1e-7)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []int{0, 1, 2, 1, 3, 2}, m.Indices)
}
