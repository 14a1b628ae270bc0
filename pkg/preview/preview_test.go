package preview

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/gosplit/pkg/cut"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraProjectsTargetToCenter(t *testing.T) {
	bbox := geometry.BoundsOf([]geometry.Vector3{
		geometry.NewVector3(-1, -1, -1),
		geometry.NewVector3(1, 1, 1),
	})
	c := NewCamera(bbox)
	c.Rotate(0.3, 0.7)

	x, y, z := c.Project(bbox.Center(), 200, 100)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	assert.InDelta(t, c.Distance, z, 1e-9)
}

func TestCameraClampsTilt(t *testing.T) {
	c := NewCamera(geometry.BoundsOf([]geometry.Vector3{{}, geometry.NewVector3(1, 1, 1)}))
	c.Rotate(10, 0)
	assert.Less(t, c.RotationX, 1.5708)
}

func TestRasterDepthTest(t *testing.T) {
	r := newRaster(10, 10, color.RGBA{A: 255})
	red := color.RGBA{255, 0, 0, 255}
	green := color.RGBA{0, 255, 0, 255}
	r.fill(screenPoint{0, 0, 1}, screenPoint{9, 0, 1}, screenPoint{0, 9, 1}, red)
	r.fill(screenPoint{0, 0, 2}, screenPoint{9, 0, 2}, screenPoint{0, 9, 2}, green)
	assert.Equal(t, red, r.img.RGBAAt(2, 2))
	assert.Equal(t, color.RGBA{A: 255}, r.img.RGBAAt(9, 9))
}

func TestRenderCut(t *testing.T) {
	surface, err := cut.NewPlaneSurface(geometry.NewVector3(0, 1, 0), geometry.Vector3{})
	require.NoError(t, err)
	res, err := cut.Cut(primitive.Cube(1), surface, cut.DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Explode = 0.2
	opts.ExplodeAxis = geometry.NewVector3(0, 1, 0)
	img := Render(res.Parts, res.Rings, opts)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())

	painted := 0
	for y := 0; y < 480; y += 4 {
		for x := 0; x < 640; x += 4 {
			if img.At(x, y) != color.Color(background) {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 100)

	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, Save(path, res.Parts, res.Rings, DefaultOptions()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
