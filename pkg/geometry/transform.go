package geometry

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/cuterr"
)

// Transform is an affine map from a caller's local space into world space.
// The inverse is computed once on construction.
type Transform struct {
	m   [3][4]float64
	inv [3][4]float64
}

// Identity returns the identity transform
func Identity() Transform {
	id := [3][4]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}
	return Transform{m: id, inv: id}
}

// Translation returns a transform that moves points by offset
func Translation(offset Vector3) Transform {
	t := Identity()
	t.m[0][3], t.m[1][3], t.m[2][3] = offset.X, offset.Y, offset.Z
	t.inv[0][3], t.inv[1][3], t.inv[2][3] = -offset.X, -offset.Y, -offset.Z
	return t
}

// NewTransform creates a transform from a row-major 3x4 matrix whose last
// column is the translation
func NewTransform(m [3][4]float64) (Transform, error) {
	a := m
	det := a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	if math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return Transform{}, cuterr.Invariant("transform is not invertible (determinant %g)", det)
	}

	var inv [3][4]float64
	inv[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) / det
	inv[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) / det
	inv[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) / det
	inv[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) / det
	inv[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) / det
	inv[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) / det
	inv[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) / det
	inv[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) / det
	inv[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) / det
	for r := 0; r < 3; r++ {
		inv[r][3] = -(inv[r][0]*a[0][3] + inv[r][1]*a[1][3] + inv[r][2]*a[2][3])
	}

	return Transform{m: m, inv: inv}, nil
}

// Inverse returns the transform from world space back into local space
func (t Transform) Inverse() Transform {
	return Transform{m: t.inv, inv: t.m}
}

// Apply maps a point
func (t Transform) Apply(p Vector3) Vector3 {
	return apply(t.m, p, 1)
}

// ApplyDirection maps a direction, ignoring the translation
func (t Transform) ApplyDirection(v Vector3) Vector3 {
	return apply(t.m, v, 0)
}

// ApplyNormal maps a surface normal with the inverse transpose and
// renormalizes it
func (t Transform) ApplyNormal(n Vector3) Vector3 {
	return Vector3{
		X: t.inv[0][0]*n.X + t.inv[1][0]*n.Y + t.inv[2][0]*n.Z,
		Y: t.inv[0][1]*n.X + t.inv[1][1]*n.Y + t.inv[2][1]*n.Z,
		Z: t.inv[0][2]*n.X + t.inv[1][2]*n.Y + t.inv[2][2]*n.Z,
	}.Normalize()
}

func apply(m [3][4]float64, p Vector3, w float64) Vector3 {
	return Vector3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]*w,
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]*w,
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]*w,
	}
}
