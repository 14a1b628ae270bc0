package capping

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
)

// Method names a cap triangulation strategy
type Method string

const (
	// MethodEarClip joins holes into their outline and ear-clips the result
	MethodEarClip Method = "earclip"
	// MethodEarcut hands outline and holes to the earcut port
	MethodEarcut Method = "earcut"
)

// Triangulator fills every region of a containment forest. Triangles are
// vertex id triples, counter-clockwise about the forest normal.
type Triangulator interface {
	Triangulate(f *contour.Forest) ([][3]int, error)
}

// New returns the triangulator for method. The empty method selects ear
// clipping.
func New(method Method) (Triangulator, error) {
	switch method {
	case "", MethodEarClip:
		return EarClipper{}, nil
	case MethodEarcut:
		return Earcutter{}, nil
	}
	return nil, cuterr.InvalidOptions("unknown cap triangulator %q", method)
}

// EarClipper bridges the direct holes of each group into its outline and
// ear-clips the result. Islands inside holes are clipped as groups of their
// own.
type EarClipper struct{}

// Triangulate implements Triangulator
func (EarClipper) Triangulate(f *contour.Forest) ([][3]int, error) {
	var out [][3]int
	for _, g := range f.Groups() {
		loop := g.Joined(f.Normal())
		flat := geometry.ProjectPolygon(loop.Points, f.Normal())
		area := geometry.SignedArea(flat)
		if negligible(area, flat) {
			// a chain closed onto itself along a line encloses nothing
			continue
		}
		if area < 0 {
			loop = loop.Reversed()
		}
		tris, err := EarClip(loop.Points, f.Normal())
		if err != nil {
			return nil, err
		}
		for _, t := range tris {
			out = appendProper(out, [3]int{loop.IDs[t[0]], loop.IDs[t[1]], loop.IDs[t[2]]})
		}
	}
	return out, nil
}

// Earcutter triangulates each outline with its direct holes
type Earcutter struct{}

// Triangulate implements Triangulator
func (Earcutter) Triangulate(f *contour.Forest) ([][3]int, error) {
	var out [][3]int
	for _, g := range f.Groups() {
		tris, err := earcutGroup(g, f.Normal())
		if err != nil {
			return nil, err
		}
		for _, t := range tris {
			out = appendProper(out, t)
		}
	}
	return out, nil
}

// negligible reports whether area is zero up to rounding, relative to the
// size of the polygon
func negligible(area float64, flat []geometry.Vector2) bool {
	perimeter := 0.0
	for i := range flat {
		perimeter += flat[(i+1)%len(flat)].Sub(flat[i]).Length()
	}
	return math.Abs(area) <= 1e-12*perimeter*perimeter
}

// appendProper drops triangles that reuse a vertex, which joined loops can
// produce across a bridge
func appendProper(tris [][3]int, t [3]int) [][3]int {
	if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
		return tris
	}
	return append(tris, t)
}
