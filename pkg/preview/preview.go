// Package preview renders cut results to PNG images.
package preview

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/pkg/errors"
)

// Options controls a preview image
type Options struct {
	Width, Height int
	// RotationX and RotationY orbit the camera around the parts
	RotationX, RotationY float64
	// Explode moves parts apart along their side direction, as a fraction
	// of the scene size
	Explode float64
	// ExplodeAxis is the direction positive parts move to
	ExplodeAxis geometry.Vector3
}

// DefaultOptions returns a three-quarter view
func DefaultOptions() Options {
	return Options{
		Width:     640,
		Height:    480,
		RotationX: math.Pi / 6,
		RotationY: math.Pi / 5,
	}
}

var (
	background = color.RGBA{24, 24, 28, 255}
	sideColors = map[mesh.Side]color.RGBA{
		mesh.SidePositive:   {90, 170, 240, 255},
		mesh.SideNegative:   {240, 150, 70, 255},
		mesh.SideUnassigned: {190, 190, 190, 255},
	}
	ringColor = color.RGBA{255, 255, 0, 255}
)

// Render draws the parts shaded by side, with rings outlined on top
func Render(parts []*mesh.Part, rings [][]geometry.Vector3, opts Options) image.Image {
	offsets := explode(parts, opts)

	bbox := geometry.NewBoundingBox()
	for i, p := range parts {
		for _, v := range p.Vertices {
			bbox.Extend(v.Add(offsets[i]))
		}
	}
	if bbox.IsEmpty() {
		bbox.Extend(geometry.Vector3{})
	}

	camera := NewCamera(bbox)
	camera.Rotate(opts.RotationX, opts.RotationY)
	w, h := float64(opts.Width), float64(opts.Height)
	light := camera.Forward().Negate().Add(camera.Up.Mul(0.5)).Normalize()

	r := newRaster(opts.Width, opts.Height, background)
	for i, p := range parts {
		base := sideColors[p.Side]
		m := p.Mesh()
		for t := 0; t < m.TriangleCount(); t++ {
			tri := m.Triangle(t)
			n := tri.CalculateNormal()
			shade := 0.25 + 0.75*math.Abs(n.Dot(light))
			var s [3]screenPoint
			for j, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
				x, y, z := camera.Project(v.Add(offsets[i]), w, h)
				s[j] = screenPoint{x, y, z}
			}
			r.fill(s[0], s[1], s[2], scale(base, shade))
		}
	}

	dc := gg.NewContextForRGBA(r.img)
	dc.SetColor(ringColor)
	dc.SetLineWidth(2)
	for _, ring := range rings {
		for i, v := range ring {
			x, y, _ := camera.Project(v, w, h)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	}
	return r.img
}

// explode returns a translation per part
func explode(parts []*mesh.Part, opts Options) []geometry.Vector3 {
	offsets := make([]geometry.Vector3, len(parts))
	if opts.Explode == 0 || opts.ExplodeAxis == (geometry.Vector3{}) {
		return offsets
	}
	bbox := geometry.NewBoundingBox()
	for _, p := range parts {
		for _, v := range p.Vertices {
			bbox.Extend(v)
		}
	}
	d := opts.ExplodeAxis.Normalize().Mul(opts.Explode * bbox.Diagonal())
	for i, p := range parts {
		switch p.Side {
		case mesh.SidePositive:
			offsets[i] = d
		case mesh.SideNegative:
			offsets[i] = d.Negate()
		}
	}
	return offsets
}

func scale(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Min(255, float64(c.R)*f)),
		G: uint8(math.Min(255, float64(c.G)*f)),
		B: uint8(math.Min(255, float64(c.B)*f)),
		A: c.A,
	}
}

// Save renders the parts into a PNG file
func Save(path string, parts []*mesh.Part, rings [][]geometry.Vector3, opts Options) error {
	img := Render(parts, rings, opts)
	if err := gg.SavePNG(path, img); err != nil {
		return errors.Wrapf(err, "failed to write preview %s", path)
	}
	return nil
}

// Show prints a PNG file to a terminal that understands the iTerm image
// protocol
func Show(path string, w io.Writer) {
	imgcat.CatFile(path, w)
}
