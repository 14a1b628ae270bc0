package cut

import (
	"math"
	"sort"
	"testing"

	"github.com/philipparndt/gosplit/pkg/capping"
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/philipparndt/gosplit/pkg/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func volume(p *mesh.Part) float64 {
	m := p.Mesh()
	sum := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		sum += m.Triangle(t).SignedVolume()
	}
	return sum
}

// assertClosed welds the part by position and checks that every directed
// edge is matched by its reverse
func assertClosed(t *testing.T, p *mesh.Part) {
	t.Helper()
	table := mesh.NewVertexTable(mesh.DefaultWeldTolerance)
	ids := make([]int, len(p.Vertices))
	for i, pos := range p.Vertices {
		ids[i] = table.Intern(pos)
	}
	edges := make(map[[2]int]int)
	for i := 0; i+2 < len(p.Indices); i += 3 {
		tri := [3]int{ids[p.Indices[i]], ids[p.Indices[i+1]], ids[p.Indices[i+2]]}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			continue
		}
		for j := 0; j < 3; j++ {
			edges[[2]int{tri[j], tri[(j+1)%3]}]++
		}
	}
	for e, n := range edges {
		assert.Equal(t, n, edges[[2]int{e[1], e[0]}], "edge %v", e)
	}
}

func uniquePositions(p *mesh.Part) int {
	table := mesh.NewVertexTable(mesh.DefaultWeldTolerance)
	for _, pos := range p.Vertices {
		table.Intern(pos)
	}
	return table.Len()
}

func translated(m *mesh.Mesh, offset geometry.Vector3) *mesh.Mesh {
	out := m.Clone()
	for i := range out.Vertices {
		out.Vertices[i] = out.Vertices[i].Add(offset)
	}
	return out
}

func combine(meshes ...*mesh.Mesh) *mesh.Mesh {
	out := &mesh.Mesh{}
	for _, m := range meshes {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		out.UVs = append(out.UVs, m.UVs...)
		for _, i := range m.Indices {
			out.Indices = append(out.Indices, base+i)
		}
	}
	return out
}

// inverted flips the winding of every triangle, turning a shell into a cavity
func inverted(m *mesh.Mesh) *mesh.Mesh {
	out := m.Clone()
	for i := 0; i+2 < len(out.Indices); i += 3 {
		out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
	}
	return out
}

func planeAt(t *testing.T, normal, point geometry.Vector3) PlaneSurface {
	t.Helper()
	s, err := NewPlaneSurface(normal, point)
	require.NoError(t, err)
	return s
}

func TestCutCubeInHalves(t *testing.T) {
	res, err := Cut(primitive.Cube(1), planeAt(t, v(0, 1, 0), v(0, 0, 0)), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)

	assert.Equal(t, mesh.SidePositive, res.Parts[0].Side)
	assert.Equal(t, mesh.SideNegative, res.Parts[1].Side)
	for _, p := range res.Parts {
		assert.Equal(t, 20, p.TriangleCount())
		assert.Len(t, p.Vertices, 20)
		assert.Equal(t, 12, uniquePositions(p))
		assert.InDelta(t, 0.5, volume(p), 1e-9)
		assertClosed(t, p)
	}
	for _, pos := range res.Parts[0].Vertices {
		assert.GreaterOrEqual(t, pos.Y, 0.0)
	}
	for _, pos := range res.Parts[1].Vertices {
		assert.LessOrEqual(t, pos.Y, 0.0)
	}

	require.Len(t, res.Rings, 1)
	assert.Len(t, res.Rings[0], 8)
	require.Len(t, res.Centers, 1)
	assert.InDelta(t, 0, res.Centers[0].Length(), 1e-12)
}

func TestCutThroughCubeVertices(t *testing.T) {
	// the diagonal plane x = z holds four corners of the cube. Two triangles
	// per side touch it in a single corner and stay whole on their side.
	res, err := Cut(primitive.Cube(1), planeAt(t, v(1, 0, -1), v(0, 0, 0)), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)

	for _, p := range res.Parts {
		assert.Equal(t, 6+2, p.TriangleCount())
		assert.InDelta(t, 0.5, volume(p), 1e-12)
		assertClosed(t, p)
	}

	require.Len(t, res.Rings, 1)
	require.Len(t, res.Rings[0], 4)
	for _, pos := range res.Rings[0] {
		assert.Equal(t, pos.X, pos.Z)
		assert.InDelta(t, 0.5, math.Abs(pos.X), 1e-12)
	}
}

func TestCutKeepsOriginalVertexMapping(t *testing.T) {
	cube := primitive.Cube(1)
	res, err := Cut(cube, planeAt(t, v(0, 1, 0), v(0, 0, 0)), DefaultOptions())
	require.NoError(t, err)
	for _, p := range res.Parts {
		assert.Len(t, p.Origin, 4)
		for orig, local := range p.Origin {
			assert.Equal(t, cube.Vertices[orig], p.Vertices[local])
		}
	}
}

func TestCutTorus(t *testing.T) {
	torus := primitive.Torus(2, 0.5, 24, 12)
	res, err := Cut(torus, planeAt(t, v(0, 0, 1), v(0, 0, 1e-3)), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)

	assert.Equal(t, 432, res.Parts[0].TriangleCount())
	assert.Equal(t, 528, res.Parts[1].TriangleCount())
	assert.InDelta(t, 4.646, volume(res.Parts[0]), 1e-3)
	assert.InDelta(t, 4.671, volume(res.Parts[1]), 1e-3)
	for _, p := range res.Parts {
		assertClosed(t, p)
	}

	total := 0.0
	for tri := 0; tri < torus.TriangleCount(); tri++ {
		total += torus.Triangle(tri).SignedVolume()
	}
	assert.InDelta(t, total, volume(res.Parts[0])+volume(res.Parts[1]), 1e-9)

	// the annulus is one region with a hole
	assert.Len(t, res.Rings, 2)
	assert.Len(t, res.Centers, 1)
}

func TestCutAgainMisses(t *testing.T) {
	res, err := Cut(primitive.Cube(1), planeAt(t, v(0, 1, 0), v(0, 0, 0)), DefaultOptions())
	require.NoError(t, err)
	half := res.Parts[0].Mesh()

	surface := planeAt(t, v(0, 1, 0), v(0, -1e-6, 0))
	again, err := Cut(half, surface, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoIntersection, again.Outcome)
	assert.Empty(t, again.Parts)

	opts := DefaultOptions()
	opts.AllowSingleResult = true
	single, err := Cut(half, surface, opts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSingle, single.Outcome)
	require.Len(t, single.Parts, 1)
	assert.Equal(t, mesh.SideUnassigned, single.Parts[0].Side)
	assert.Equal(t, half.Indices, single.Parts[0].Indices)
	assert.Len(t, single.Parts[0].Origin, len(half.Vertices))
}

func TestCutIsDeterministic(t *testing.T) {
	torus := primitive.Torus(2, 0.5, 24, 12)
	surface := planeAt(t, v(1, 1, 1), v(0.1, 0.2, 0))
	first, err := Cut(torus, surface, DefaultOptions())
	require.NoError(t, err)
	second, err := Cut(torus, surface, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCutOpenGrid(t *testing.T) {
	surface := planeAt(t, v(1, 0, 0), v(0.1, 0, 0))

	_, err := Cut(primitive.Grid(2, 4), surface, DefaultOptions())
	assert.True(t, cuterr.IsMalformed(err), "open chains must be reported, got %v", err)

	opts := DefaultOptions()
	opts.IgnorePartialRings = true
	res, err := Cut(primitive.Grid(2, 4), surface, opts)
	require.NoError(t, err)
	assert.Empty(t, res.Rings)
	require.Len(t, res.Parts, 2)
	assert.ElementsMatch(t, []int{20, 28}, []int{res.Parts[0].TriangleCount(), res.Parts[1].TriangleCount()})

	opts = DefaultOptions()
	opts.SelfConnectPartialRings = true
	res, err = Cut(primitive.Grid(2, 4), surface, opts)
	require.NoError(t, err)
	assert.Len(t, res.Rings, 1)
	require.Len(t, res.Parts, 2)
	assert.ElementsMatch(t, []int{20, 28}, []int{res.Parts[0].TriangleCount(), res.Parts[1].TriangleCount()})
}

func TestCutSeparatesIslands(t *testing.T) {
	cubes := combine(primitive.Cube(1), translated(primitive.Cube(1), v(3, 0, 0)))
	surface := planeAt(t, v(0, 1, 0), v(0, 0, 0))

	res, err := Cut(cubes, surface, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Parts, 2)
	assert.Len(t, res.Rings, 2)

	opts := DefaultOptions()
	opts.PolySeparate = true
	res, err = Cut(cubes, surface, opts)
	require.NoError(t, err)
	require.Len(t, res.Parts, 4)
	assert.Len(t, res.Side(mesh.SidePositive), 2)
	assert.Len(t, res.Side(mesh.SideNegative), 2)
	for _, p := range res.Parts {
		assert.Equal(t, 20, p.TriangleCount())
		assert.InDelta(t, 0.5, volume(p), 1e-9)
		assertClosed(t, p)
	}
}

func TestCutWithGap(t *testing.T) {
	opts := DefaultOptions()
	opts.Gap = 0.2
	res, err := Cut(primitive.Cube(1), planeAt(t, v(0, 1, 0), v(0, 0, 0)), opts)
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)
	assert.Empty(t, res.Removed)
	assert.Len(t, res.Rings, 2)

	positive, negative := res.Parts[0], res.Parts[1]
	for _, p := range res.Parts {
		assert.Equal(t, 20, p.TriangleCount())
		assert.InDelta(t, 0.4, volume(p), 1e-9)
		assertClosed(t, p)
	}
	assert.InDelta(t, 0.1, positive.Mesh().BoundingBox().Min.Y, 1e-9)
	assert.InDelta(t, -0.1, negative.Mesh().BoundingBox().Max.Y, 1e-9)
}

func TestCutWithGapReportsRemovedVertices(t *testing.T) {
	torus := primitive.Torus(2, 0.5, 24, 12)
	opts := DefaultOptions()
	opts.Gap = 0.2
	res, err := Cut(torus, planeAt(t, v(0, 0, 1), v(0, 0, 0)), opts)
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)

	// the inner and outer equator rings sit inside the slab
	require.Len(t, res.Removed, 48)
	assert.True(t, sort.IntsAreSorted(res.Removed))
	for _, i := range res.Removed {
		assert.InDelta(t, 0, torus.Vertices[i].Z, 1e-9)
	}
	for _, p := range res.Parts {
		assertClosed(t, p)
	}
}

func partialScene() *mesh.Mesh {
	return combine(
		primitive.Cube(1),
		translated(primitive.Cube(1), v(3, 0.2, 0)),
		translated(primitive.Cube(1), v(-3, 1, 0)),
	)
}

func TestPartialCut(t *testing.T) {
	surface := planeAt(t, v(0, 1, 0), v(0, 0, 0))
	opts := DefaultOptions()
	opts.MaxCutDistance = 1

	res, err := Cut(partialScene(), surface, opts)
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)
	assert.Len(t, res.Rings, 1)
	for _, p := range res.Parts {
		assert.Equal(t, 32, p.TriangleCount())
		assert.InDelta(t, 1.5, volume(p), 1e-9)
	}

	opts.PolySeparate = true
	res, err = Cut(partialScene(), surface, opts)
	require.NoError(t, err)
	require.Len(t, res.Parts, 4)
	for _, side := range []mesh.Side{mesh.SidePositive, mesh.SideNegative} {
		parts := res.Side(side)
		require.Len(t, parts, 2)
		counts := []int{parts[0].TriangleCount(), parts[1].TriangleCount()}
		assert.ElementsMatch(t, []int{20, 12}, counts)
		volumes := []float64{volume(parts[0]), volume(parts[1])}
		sort.Float64s(volumes)
		assert.InDelta(t, 0.5, volumes[0], 1e-9)
		assert.InDelta(t, 1.0, volumes[1], 1e-9)
		for _, p := range parts {
			assertClosed(t, p)
		}
	}
}

func TestPartialCutFarFromOrigin(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxCutDistance = 1
	opts.OriginPoint = v(10, 0, 0)
	res, err := Cut(partialScene(), planeAt(t, v(0, 1, 0), v(0, 0, 0)), opts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoIntersection, res.Outcome)
}

func TestPartialCutWithZeroDistance(t *testing.T) {
	surface := planeAt(t, v(0, 1, 0), v(0, 0, 0))
	opts := DefaultOptions()
	opts.MaxCutDistance = 0

	// far from every ring
	opts.OriginPoint = v(10, 10, 10)
	res, err := Cut(partialScene(), surface, opts)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoIntersection, res.Outcome)
	assert.Empty(t, res.Parts)

	// on a ring vertex of the centre cube
	opts.OriginPoint = v(0.5, 0, 0.5)
	res, err = Cut(partialScene(), surface, opts)
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Rings, 1)
	for _, p := range res.Parts {
		assert.InDelta(t, 1.5, volume(p), 1e-9)
	}
}

func TestCutPropagatesUVs(t *testing.T) {
	inner := geometry.NewVector2(0.25, 0.75)
	opts := DefaultOptions()
	opts.InnerCapUV = &inner
	res, err := Cut(primitive.Cube(1), planeAt(t, v(0, 1, 0), v(0, 0, 0)), opts)
	require.NoError(t, err)

	for _, p := range res.Parts {
		require.Len(t, p.UVs, len(p.Vertices))
		caps := 0
		for i, pos := range p.Vertices {
			uv := p.UVs[i]
			if uv == inner {
				caps++
				continue
			}
			// the cube maps x and z onto the texture
			assert.InDelta(t, pos.X+0.5, uv.X, 1e-9)
			assert.InDelta(t, pos.Z+0.5, uv.Y, 1e-9)
		}
		assert.Equal(t, 8, caps)
	}
}

func TestCutInLocalSpace(t *testing.T) {
	surface := planeAt(t, v(0, 1, 0), v(0, 5, 0))
	localToWorld := geometry.Translation(v(0, 5, 0))
	surface.LocalToWorld = &localToWorld

	res, err := Cut(primitive.Cube(1), surface, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	for _, p := range res.Parts {
		assert.InDelta(t, 0.5, volume(p), 1e-9)
	}
	// results stay in local space
	assert.InDelta(t, 0, res.Parts[0].Mesh().BoundingBox().Min.Y, 1e-9)
}

func TestCutWithEarcut(t *testing.T) {
	opts := DefaultOptions()
	opts.Capper = capping.MethodEarcut
	res, err := Cut(primitive.Torus(2, 0.5, 24, 12), planeAt(t, v(0, 0, 1), v(0, 0, 1e-3)), opts)
	require.NoError(t, err)
	require.Len(t, res.Parts, 2)
	assert.InDelta(t, 4.646, volume(res.Parts[0]), 1e-3)
	assert.InDelta(t, 4.671, volume(res.Parts[1]), 1e-3)
}

func TestCutIslandInsideCavity(t *testing.T) {
	// a hollow cube with a solid cube floating in the cavity
	nested := combine(primitive.Cube(3), inverted(primitive.Cube(2)), primitive.Cube(1))
	surface := planeAt(t, v(0, 1, 0), v(0, 0.01, 0))

	for _, method := range []capping.Method{capping.MethodEarClip, capping.MethodEarcut} {
		t.Run(string(method), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Capper = method
			res, err := Cut(nested, surface, opts)
			require.NoError(t, err)
			require.Equal(t, OutcomeSplit, res.Outcome)
			require.Len(t, res.Parts, 2)
			assert.Len(t, res.Rings, 3)
			assert.Len(t, res.Centers, 1)

			assert.InDelta(t, 9*1.49-4*0.99+0.49, volume(res.Parts[0]), 1e-9)
			assert.InDelta(t, 9*1.51-4*1.01+0.51, volume(res.Parts[1]), 1e-9)
			for _, p := range res.Parts {
				assertClosed(t, p)
			}
		})
	}
}

func TestCutRejects(t *testing.T) {
	surface := planeAt(t, v(0, 1, 0), v(0, 0, 0))

	_, err := Cut(nil, surface, DefaultOptions())
	assert.True(t, cuterr.IsMalformed(err))

	_, err = Cut(primitive.Cube(1), nil, DefaultOptions())
	assert.ErrorIs(t, err, cuterr.ErrInvalidOptions)

	broken := primitive.Cube(1)
	broken.Indices = append(broken.Indices, 0, 1, 99)
	_, err = Cut(broken, surface, DefaultOptions())
	assert.True(t, cuterr.IsMalformed(err))

	_, err = Cut(primitive.Cube(1), TemplateSurface{}, DefaultOptions())
	assert.ErrorIs(t, err, cuterr.ErrInvalidOptions)
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	tests := []struct {
		name   string
		modify func(o *Options)
	}{
		{"negative gap", func(o *Options) { o.Gap = -1 }},
		{"infinite gap", func(o *Options) { o.Gap = math.Inf(1) }},
		{"negative weld tolerance", func(o *Options) { o.WeldTolerance = -1e-3 }},
		{"NaN max distance", func(o *Options) { o.MaxCutDistance = math.NaN() }},
		{"negative max distance", func(o *Options) { o.MaxCutDistance = -1 }},
		{"negative infinite max distance", func(o *Options) { o.MaxCutDistance = math.Inf(-1) }},
		{"gap with partial", func(o *Options) { o.Gap = 0.1; o.MaxCutDistance = 2 }},
		{"partial without finite origin", func(o *Options) {
			o.MaxCutDistance = 2
			o.OriginPoint = v(math.NaN(), 0, 0)
		}},
		{"unknown capper", func(o *Options) { o.Capper = "magic" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			assert.ErrorIs(t, o.Validate(), cuterr.ErrInvalidOptions)
		})
	}
}

func TestOptionsPartial(t *testing.T) {
	o := DefaultOptions()
	assert.False(t, o.Partial())
	o.MaxCutDistance = 0
	assert.True(t, o.Partial())
	assert.NoError(t, o.Validate())
	o.MaxCutDistance = 2.5
	assert.True(t, o.Partial())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "split", OutcomeSplit.String())
	assert.Equal(t, "no intersection", OutcomeNoIntersection.String())
	assert.Equal(t, "single", OutcomeSingle.String())
}
