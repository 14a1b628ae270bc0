package cut

import (
	"testing"

	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/philipparndt/gosplit/pkg/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateSurface(t *testing.T, points []geometry.Vector3, normal geometry.Vector3, closed bool) TemplateSurface {
	t.Helper()
	tpl, err := geometry.NewTemplate(points, normal, closed)
	require.NoError(t, err)
	return TemplateSurface{Template: tpl}
}

func TestOpenTemplateActsLikePlane(t *testing.T) {
	// a single segment along x extruded along y is the plane z = 0
	surface := templateSurface(t, []geometry.Vector3{v(-1, 0, 0), v(1, 0, 0)}, v(0, 1, 0), false)
	res, err := Cut(primitive.Cube(1), surface, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)

	positive, negative := res.Parts[0], res.Parts[1]
	assert.Equal(t, 20, positive.TriangleCount())
	assert.Equal(t, 20, negative.TriangleCount())
	assert.InDelta(t, 0, positive.Mesh().BoundingBox().Min.Z, 1e-9)
	assert.InDelta(t, 0, negative.Mesh().BoundingBox().Max.Z, 1e-9)
	for _, p := range res.Parts {
		assert.InDelta(t, 0.5, volume(p), 1e-9)
		assertClosed(t, p)
	}
	assert.Len(t, res.Rings, 1)
	require.Len(t, res.Centers, 1)
	assert.InDelta(t, 0, res.Centers[0].Length(), 1e-9)
}

func TestClosedTemplatePunchesHole(t *testing.T) {
	// counter-clockwise rectangle about +y, passing through the cube
	rect := []geometry.Vector3{v(-0.3, 0, 0.2), v(0.3, 0, 0.2), v(0.3, 0, -0.2), v(-0.3, 0, -0.2)}
	surface := templateSurface(t, rect, v(0, 1, 0), true)
	res, err := Cut(primitive.Cube(1), surface, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, OutcomeSplit, res.Outcome)
	require.Len(t, res.Parts, 2)

	outside, inside := res.Parts[0], res.Parts[1]
	assert.InDelta(t, 0.76, volume(outside), 1e-9)
	assert.InDelta(t, 0.24, volume(inside), 1e-9)
	assertClosed(t, outside)
	assertClosed(t, inside)

	// the core stays within the rectangle
	box := inside.Mesh().BoundingBox()
	assert.InDelta(t, -0.3, box.Min.X, 1e-9)
	assert.InDelta(t, 0.3, box.Max.X, 1e-9)
	assert.InDelta(t, -0.2, box.Min.Z, 1e-9)
	assert.InDelta(t, 0.2, box.Max.Z, 1e-9)

	// top and bottom face each leave one ring around the template
	require.Len(t, res.Rings, 2)
	for _, ring := range res.Rings {
		assert.Len(t, ring, 9)
	}
}

func meshVolume(m *mesh.Mesh) float64 {
	sum := 0.0
	for t := 0; t < m.TriangleCount(); t++ {
		sum += m.Triangle(t).SignedVolume()
	}
	return sum
}

func TestClosedTemplateThroughSphere(t *testing.T) {
	sphere, err := primitive.Sphere(0.5, 24)
	require.NoError(t, err)
	total := meshVolume(sphere)

	// a corner of the triangle sits on the x = 0 grid plane of the sphere
	// for every offset, none of them touches the silhouette
	for _, dx := range []float64{-0.3, 0, 0.3} {
		for _, dz := range []float64{-0.1, 0.1, 0.3} {
			triangle := []geometry.Vector3{v(dx-0.3, 0, dz-0.2), v(dx+0.3, 0, dz-0.2), v(dx, 0, dz+0.35)}
			surface := templateSurface(t, triangle, v(0, 1, 0), true)

			res, err := Cut(sphere, surface, DefaultOptions())
			require.NoError(t, err, "offset %v %v", dx, dz)
			require.Equal(t, OutcomeSplit, res.Outcome)
			require.Len(t, res.Parts, 2)
			assert.InDelta(t, total, volume(res.Parts[0])+volume(res.Parts[1]), 1e-6)
			for _, p := range res.Parts {
				assertClosed(t, p)
			}
		}
	}
}

func TestOpenZigzagTemplateThroughTorus(t *testing.T) {
	torus := primitive.Torus(2, 0.5, 24, 12)
	total := meshVolume(torus)

	for _, dz := range []float64{-0.15, -0.05, 0, 0.05, 0.15} {
		zigzag := []geometry.Vector3{
			v(-3.5, 0, dz), v(-1.75, 0, dz+0.3), v(0, 0, dz-0.3), v(1.75, 0, dz+0.3), v(3.5, 0, dz),
		}
		surface := templateSurface(t, zigzag, v(0, 1, 0), false)

		res, err := Cut(torus, surface, DefaultOptions())
		require.NoError(t, err, "offset %v", dz)
		require.Equal(t, OutcomeSplit, res.Outcome)
		require.Len(t, res.Parts, 2)
		assert.InDelta(t, total, volume(res.Parts[0])+volume(res.Parts[1]), 1e-6)
		for _, p := range res.Parts {
			assertClosed(t, p)
		}
	}
}

func TestTemplateMissing(t *testing.T) {
	surface := templateSurface(t, []geometry.Vector3{v(-1, 0, 5), v(1, 0, 5)}, v(0, 1, 0), false)
	res, err := Cut(primitive.Cube(1), surface, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoIntersection, res.Outcome)
}

func TestTemplateRejectsGap(t *testing.T) {
	surface := templateSurface(t, []geometry.Vector3{v(-1, 0, 0), v(1, 0, 0)}, v(0, 1, 0), false)
	opts := DefaultOptions()
	opts.Gap = 0.1
	_, err := Cut(primitive.Cube(1), surface, opts)
	assert.ErrorIs(t, err, cuterr.ErrInvalidOptions)
}

func TestWrap(t *testing.T) {
	assert.InDelta(t, 0.5, wrap(0.5, 4), 1e-12)
	assert.InDelta(t, -1, wrap(3, 4), 1e-12)
	assert.InDelta(t, 1, wrap(-3, 4), 1e-12)
	assert.InDelta(t, -2, wrap(2, 4), 1e-12)
}
