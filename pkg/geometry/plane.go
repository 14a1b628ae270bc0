package geometry

import (
	"math"
	"sync"

	"github.com/philipparndt/gosplit/pkg/cuterr"
)

// Plane is an oriented plane given by a unit normal and a point on it.
// Planes are immutable. Copies share a cache of the same plane expressed in
// other coordinate spaces.
type Plane struct {
	normal Vector3
	point  Vector3
	offset float64
	spaces *spaceCache
}

type spaceCache struct {
	mu     sync.Mutex
	planes map[Transform]Plane
}

// NewPlane creates a plane through point. The normal is normalized.
func NewPlane(normal, point Vector3) (Plane, error) {
	length := normal.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Plane{}, cuterr.Invariant("plane normal %v has no direction", normal)
	}
	n := normal.Mul(1 / length)
	return Plane{
		normal: n,
		point:  point,
		offset: n.Dot(point),
		spaces: &spaceCache{planes: make(map[Transform]Plane)},
	}, nil
}

// Normal returns the unit normal
func (p Plane) Normal() Vector3 { return p.normal }

// Point returns the point the plane was built from
func (p Plane) Point() Vector3 { return p.point }

// Offset returns the scalar offset dot(normal, point)
func (p Plane) Offset() float64 { return p.offset }

// SignedDistance returns the distance of point along the normal
func (p Plane) SignedDistance(point Vector3) float64 {
	return p.normal.Dot(point.Sub(p.point))
}

// Distance returns the unsigned distance of point to the plane
func (p Plane) Distance(point Vector3) float64 {
	return math.Abs(p.SignedDistance(point))
}

// IsAbove reports whether point lies strictly on the normal's side
func (p Plane) IsAbove(point Vector3) bool {
	return p.SignedDistance(point) > 0
}

// Intersection returns the point where the segment p0-p1 crosses the plane
// and its parameter along p0->p1. Exactly one endpoint must be above.
//
// The arithmetic always runs from the above endpoint to the other one, so
// swapping the arguments yields a bit-identical point. An endpoint lying
// exactly on the plane is returned as is.
func (p Plane) Intersection(p0, p1 Vector3) (Vector3, float64, error) {
	above0, above1 := p.IsAbove(p0), p.IsAbove(p1)
	if above0 == above1 {
		return Vector3{}, 0, cuterr.Invariant("intersection requested between %v and %v on the same side of the plane", p0, p1)
	}

	above, below := p0, p1
	if above1 {
		above, below = p1, p0
	}

	da := p.SignedDistance(above)
	db := p.SignedDistance(below)

	var t float64
	var point Vector3
	if db == 0 {
		t, point = 1, below
	} else {
		t = da / (da - db)
		point = above.Add(below.Sub(above).Mul(t))
	}

	if above0 {
		return point, t, nil
	}
	return point, 1 - t, nil
}

// Shifted returns the parallel plane moved by distance along the normal
func (p Plane) Shifted(distance float64) Plane {
	shifted, _ := NewPlane(p.normal, p.point.Add(p.normal.Mul(distance)))
	return shifted
}

// Flipped returns the same plane with the opposite orientation
func (p Plane) Flipped() Plane {
	flipped, _ := NewPlane(p.normal.Negate(), p.point)
	return flipped
}

// Transformed returns the plane mapped by t. Results are cached per
// transform.
func (p Plane) Transformed(t Transform) Plane {
	if p.spaces != nil {
		p.spaces.mu.Lock()
		cached, ok := p.spaces.planes[t]
		p.spaces.mu.Unlock()
		if ok {
			return cached
		}
	}

	mapped, err := NewPlane(t.ApplyNormal(p.normal), t.Apply(p.point))
	if err != nil {
		// invertible transforms keep the normal non-zero
		return p
	}

	if p.spaces != nil {
		// the way back is known as well
		mapped.spaces.planes[t.Inverse()] = p
		p.spaces.mu.Lock()
		p.spaces.planes[t] = mapped
		p.spaces.mu.Unlock()
	}
	return mapped
}

// ToWorld returns the plane, given in local space, in world space
func (p Plane) ToWorld(localToWorld Transform) Plane {
	return p.Transformed(localToWorld)
}

// ToLocal returns the plane, given in world space, in the local space of
// localToWorld
func (p Plane) ToLocal(localToWorld Transform) Plane {
	return p.Transformed(localToWorld.Inverse())
}

// Basis returns two unit vectors spanning the plane with u x v = normal
func (p Plane) Basis() (Vector3, Vector3) {
	return PlaneBasis(p.normal)
}
