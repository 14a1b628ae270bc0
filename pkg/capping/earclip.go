// Package capping fills the rings of a cut with triangles.
package capping

import (
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
)

// EarClip triangulates a polygon that is counter-clockwise about normal.
// The polygon may be concave and self-touching, as produced by joining
// holes into their outline. Triangles index into points and are
// counter-clockwise about normal.
//
// Every full pass over the remaining vertices has to clip at least one ear,
// otherwise EarClip fails with cuterr.ErrInternalInvariant.
func EarClip(points []geometry.Vector3, normal geometry.Vector3) ([][3]int, error) {
	if len(points) < 3 {
		return nil, nil
	}

	remaining := make([]int, len(points))
	for i := range remaining {
		remaining[i] = i
	}

	tris := make([][3]int, 0, len(points)-2)
	for len(remaining) > 3 {
		before := len(remaining)
		for i := 0; i < len(remaining) && len(remaining) > 3; i++ {
			n := len(remaining)
			mid := (i + 1) % n
			a, b, c := remaining[i], remaining[mid], remaining[(i+2)%n]
			if !isEar(points, remaining, a, b, c, normal) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			remaining = append(remaining[:mid], remaining[mid+1:]...)
			if mid < i {
				i--
			}
		}
		if len(remaining) == before {
			return nil, cuterr.Invariant("ear clipping failed: no ear among %d remaining vertices", before)
		}
	}

	a, b, c := remaining[0], remaining[1], remaining[2]
	if turn(points[a], points[b], points[c], normal) > 0 {
		tris = append(tris, [3]int{a, b, c})
	}
	return tris, nil
}

func turn(a, b, c, normal geometry.Vector3) float64 {
	return b.Sub(a).Cross(c.Sub(b)).Dot(normal)
}

func isEar(points []geometry.Vector3, remaining []int, a, b, c int, normal geometry.Vector3) bool {
	pa, pb, pc := points[a], points[b], points[c]
	if turn(pa, pb, pc, normal) <= 0 {
		return false
	}
	for _, r := range remaining {
		if r == a || r == b || r == c {
			continue
		}
		p := points[r]
		// bridge vertices repeat positions of the candidate's corners
		if p == pa || p == pb || p == pc {
			continue
		}
		if strictlyInside(p, pa, pb, pc) {
			return false
		}
	}
	return true
}

// strictlyInside solves p - a = u(c - a) + v(b - a) in the least squares
// sense with the closed-form inverse of the 2x2 Gram matrix of the edges
func strictlyInside(p, a, b, c geometry.Vector3) bool {
	e0 := c.Sub(a)
	e1 := b.Sub(a)
	w := p.Sub(a)

	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	d20 := w.Dot(e0)
	d21 := w.Dot(e1)

	det := d00*d11 - d01*d01
	if det == 0 {
		return false
	}
	u := (d11*d20 - d01*d21) / det
	v := (d00*d21 - d01*d20) / det
	return u > 0 && v > 0 && u+v < 1
}
