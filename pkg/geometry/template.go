package geometry

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/cuterr"
)

// Template is a cutting stencil: a polyline lying in a plane, extruded
// along that plane's normal into a (generally non-planar) surface.
//
// Each segment i carries the plane spanned by the segment and the extrusion
// normal, oriented by cross(direction, normal). For a counter-clockwise
// closed template that side is the outside. Open templates continue their
// first and last segments to infinity.
type Template struct {
	Points []Vector3
	Normal Vector3
	Closed bool

	origin    Vector3
	flat      []Vector3
	planes    []Plane
	lengths   []float64
	starts    []float64
	perimeter float64
}

// NewTemplate validates and prepares a template. Points are projected onto
// the plane through the first point.
func NewTemplate(points []Vector3, normal Vector3, closed bool) (*Template, error) {
	n := normal.Normalize()
	if n == (Vector3{}) || !n.IsFinite() {
		return nil, cuterr.Invariant("template normal %v has no direction", normal)
	}
	minPoints := 2
	if closed {
		minPoints = 3
	}
	if len(points) < minPoints {
		return nil, cuterr.InvalidOptions("template needs at least %d points, got %d", minPoints, len(points))
	}

	t := &Template{Points: points, Normal: n, Closed: closed, origin: points[0]}
	for _, p := range points {
		t.flat = append(t.flat, t.flatten(p))
	}

	for i := 0; i < t.SegmentCount(); i++ {
		a, b := t.segment(i)
		d := b.Sub(a)
		length := d.Length()
		if length == 0 {
			return nil, cuterr.InvalidOptions("template segment %d has zero length", i)
		}
		plane, err := NewPlane(d.Cross(n), a)
		if err != nil {
			return nil, err
		}
		t.planes = append(t.planes, plane)
		t.starts = append(t.starts, t.perimeter)
		t.lengths = append(t.lengths, length)
		t.perimeter += length
	}
	return t, nil
}

// SegmentCount returns the number of polyline segments
func (t *Template) SegmentCount() int {
	if t.Closed {
		return len(t.flat)
	}
	return len(t.flat) - 1
}

// SegmentPlane returns the plane of segment i
func (t *Template) SegmentPlane(i int) Plane {
	return t.planes[i]
}

// Length returns the total length of the polyline
func (t *Template) Length() float64 {
	return t.perimeter
}

// SegmentInterval returns the parameter range, measured along the segment
// direction from its start, that segment i covers. Open ends are unbounded.
func (t *Template) SegmentInterval(i int) (float64, float64) {
	lo, hi := 0.0, t.lengths[i]
	if !t.Closed && i == 0 {
		lo = math.Inf(-1)
	}
	if !t.Closed && i == t.SegmentCount()-1 {
		hi = math.Inf(1)
	}
	return lo, hi
}

// SegmentStart returns the arc length at which segment i begins
func (t *Template) SegmentStart(i int) float64 {
	return t.starts[i]
}

// AlongSegment returns the coordinate of p along the direction of segment i
func (t *Template) AlongSegment(i int, p Vector3) float64 {
	a, b := t.segment(i)
	return t.flatten(p).Sub(a).Dot(b.Sub(a).Mul(1 / t.lengths[i]))
}

// Height returns the coordinate of p along the extrusion normal
func (t *Template) Height(p Vector3) float64 {
	return p.Sub(t.origin).Dot(t.Normal)
}

// SignedDistance returns the distance of p to the extruded surface, positive
// on the side the segment planes point to. Corners use the sum of the
// adjacent segment normals as pseudonormal.
func (t *Template) SignedDistance(p Vector3) float64 {
	q := t.flatten(p)
	seg, param := t.closest(q)

	lo, hi := t.SegmentInterval(seg)
	a, _ := t.segment(seg)
	d := t.planes[seg].Normal().Cross(t.Normal).Negate()
	foot := a.Add(d.Mul(param))
	diff := q.Sub(foot)
	dist := diff.Length()

	pseudo := t.planes[seg].Normal()
	switch {
	case param <= 0 && !math.IsInf(lo, -1):
		pseudo = pseudo.Add(t.planes[t.prev(seg)].Normal())
	case param >= t.lengths[seg] && !math.IsInf(hi, 1):
		pseudo = pseudo.Add(t.planes[t.next(seg)].Normal())
	}

	side := diff.Dot(pseudo)
	if math.IsNaN(side) {
		return math.NaN()
	}
	if side > 0 {
		return dist
	}
	if side < 0 {
		return -dist
	}
	return 0
}

// IsAbove reports whether p lies strictly on the positive side
func (t *Template) IsAbove(p Vector3) (bool, error) {
	d := t.SignedDistance(p)
	if math.IsNaN(d) {
		return false, cuterr.Invariant("point %v lies on neither side of the template", p)
	}
	return d > 0, nil
}

// Unroll maps a point on (or near) the extruded surface to (arc length,
// height). Closed templates wrap the arc length into [0, Length).
func (t *Template) Unroll(p Vector3) Vector2 {
	seg, param := t.closest(t.flatten(p))
	s := t.starts[seg] + param
	if t.Closed {
		s = math.Mod(s, t.perimeter)
		if s < 0 {
			s += t.perimeter
		}
	}
	return Vector2{X: s, Y: t.Height(p)}
}

// Roll maps unrolled (arc length, height) coordinates back onto the
// extruded surface. It is the inverse of Unroll for points on the surface.
func (t *Template) Roll(uv Vector2) Vector3 {
	s := uv.X
	if t.Closed {
		s = math.Mod(s, t.perimeter)
		if s < 0 {
			s += t.perimeter
		}
	}

	seg := 0
	for i := 1; i < t.SegmentCount(); i++ {
		if s >= t.starts[i] {
			seg = i
		}
	}
	a, b := t.segment(seg)
	dir := b.Sub(a).Mul(1 / t.lengths[seg])
	return a.Add(dir.Mul(s - t.starts[seg])).Add(t.Normal.Mul(uv.Y))
}

// closest finds the segment whose (possibly extended) extent is nearest to
// the flattened point q and the parameter along it
func (t *Template) closest(q Vector3) (int, float64) {
	best, bestParam := 0, 0.0
	bestDist := math.Inf(1)
	for i := 0; i < t.SegmentCount(); i++ {
		a, _ := t.segment(i)
		lo, hi := t.SegmentInterval(i)
		param := math.Max(lo, math.Min(hi, t.AlongSegment(i, q)))
		d := t.planes[i].Normal().Cross(t.Normal).Negate()
		dist := q.Distance(a.Add(d.Mul(param)))
		if dist < bestDist {
			best, bestParam, bestDist = i, param, dist
		}
	}
	return best, bestParam
}

func (t *Template) segment(i int) (Vector3, Vector3) {
	return t.flat[i], t.flat[(i+1)%len(t.flat)]
}

func (t *Template) prev(i int) int {
	return (i - 1 + t.SegmentCount()) % t.SegmentCount()
}

func (t *Template) next(i int) int {
	return (i + 1) % t.SegmentCount()
}

func (t *Template) flatten(p Vector3) Vector3 {
	return p.Sub(t.Normal.Mul(p.Sub(t.origin).Dot(t.Normal)))
}
