package preview

import (
	"image"
	"image/color"
	"math"
)

// raster is an image with a depth buffer
type raster struct {
	img     *image.RGBA
	zbuffer []float64
}

func newRaster(width, height int, background color.RGBA) *raster {
	r := &raster{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuffer: make([]float64, width*height),
	}
	for i := range r.zbuffer {
		r.zbuffer[i] = math.Inf(1)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.img.SetRGBA(x, y, background)
		}
	}
	return r
}

type screenPoint struct {
	x, y, z float64
}

// fill draws a triangle with depth testing using scanlines
func (r *raster) fill(a, b, c screenPoint, col color.RGBA) {
	v := [3]screenPoint{a, b, c}

	// Sort vertices by Y coordinate (top to bottom)
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].y > v[2].y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}

	bounds := r.img.Bounds()
	width := bounds.Max.X
	edges := [3][2]screenPoint{{v[0], v[1]}, {v[1], v[2]}, {v[0], v[2]}}

	for y := int(math.Max(0, math.Ceil(v[0].y))); y <= int(math.Min(float64(bounds.Max.Y-1), v[2].y)); y++ {
		fy := float64(y)

		var span [2]screenPoint
		found := 0
		for _, e := range edges {
			p, q := e[0], e[1]
			if p.y == q.y || fy < p.y || fy > q.y || found == 2 {
				continue
			}
			t := (fy - p.y) / (q.y - p.y)
			span[found] = screenPoint{x: p.x + t*(q.x-p.x), z: p.z + t*(q.z-p.z)}
			found++
		}
		if found < 2 {
			continue
		}
		if span[0].x > span[1].x {
			span[0], span[1] = span[1], span[0]
		}

		xStart := int(math.Max(0, math.Ceil(span[0].x)))
		xEnd := int(math.Min(float64(width-1), span[1].x))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if span[1].x != span[0].x {
				t = (float64(x) - span[0].x) / (span[1].x - span[0].x)
			}
			z := span[0].z + t*(span[1].z-span[0].z)

			// closer wins
			idx := y*width + x
			if z < r.zbuffer[idx] {
				r.zbuffer[idx] = z
				r.img.SetRGBA(x, y, col)
			}
		}
	}
}
