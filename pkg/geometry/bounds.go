package geometry

import "math"

// FlatEpsilon is the extent below which a bounding box axis counts as flat.
// Rings lying in an axis-aligned plane have one flat axis.
const FlatEpsilon = 1e-9

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates a new, empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vector3{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: Vector3{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// BoundsOf returns the bounding box of a point set
func BoundsOf(points []Vector3) BoundingBox {
	bbox := NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	return bbox
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// IsEmpty reports whether no point has been added yet
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Size returns the dimensions of the bounding box
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box
func (b BoundingBox) Center() Vector3 {
	return Vector3{
		X: (b.Min.X + b.Max.X) / 2.0,
		Y: (b.Min.Y + b.Max.Y) / 2.0,
		Z: (b.Min.Z + b.Max.Z) / 2.0,
	}
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	size := b.Size()
	return size.Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Dominates reports whether b is strictly larger than other on every axis.
// An axis that is flat in both boxes is ignored, but at least one axis must
// be strictly larger.
func (b BoundingBox) Dominates(other BoundingBox) bool {
	bs, os := b.Size(), other.Size()
	larger := false
	for axis := 0; axis < 3; axis++ {
		a, o := bs.Component(axis), os.Component(axis)
		switch {
		case a <= FlatEpsilon && o <= FlatEpsilon:
		case a > o:
			larger = true
		default:
			return false
		}
	}
	return larger
}

// StrictlyContains reports whether other lies strictly inside b on every
// axis. Flat axes only need to coincide.
func (b BoundingBox) StrictlyContains(other BoundingBox) bool {
	inside := false
	for axis := 0; axis < 3; axis++ {
		bmin, bmax := b.Min.Component(axis), b.Max.Component(axis)
		omin, omax := other.Min.Component(axis), other.Max.Component(axis)
		if bmax-bmin <= FlatEpsilon && omax-omin <= FlatEpsilon {
			if math.Abs(bmin-omin) > FlatEpsilon {
				return false
			}
			continue
		}
		if !(bmin < omin && omax < bmax) {
			return false
		}
		inside = true
	}
	return inside
}
