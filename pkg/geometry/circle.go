package geometry

import (
	"fmt"
	"math"
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// FitCircleToPoints3D fits a circle to points lying in a plane perpendicular
// to one coordinate axis (0=X, 1=Y, 2=Z)
func FitCircleToPoints3D(points []Vector3, constraintAxis int) (*CircleFit, error) {
	switch constraintAxis {
	case 0:
		return FitCircle(points, NewVector3(1, 0, 0))
	case 1:
		return FitCircle(points, NewVector3(0, 1, 0))
	case 2:
		return FitCircle(points, NewVector3(0, 0, 1))
	}
	return nil, fmt.Errorf("invalid constraint axis: %d (must be 0, 1, or 2)", constraintAxis)
}

// FitCircle fits a circle to points lying in a plane with the given normal,
// such as the boundary ring of a cut through a cylinder.
//
// Uses the 3-point determinant formula on three points spread over the input:
//
//	D = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
func FitCircle(points []Vector3, normal Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle")
	}
	n := normal.Normalize()
	if n == (Vector3{}) {
		return nil, fmt.Errorf("circle normal has no direction")
	}

	u, v := PlaneBasis(n)
	points2D := ProjectPolygon(points, n)
	depth := points[0].Dot(n)

	// thirds give good coverage of both arcs and closed rings
	p1 := points2D[0]
	p2 := points2D[len(points2D)/3]
	p3 := points2D[2*len(points2D)/3]

	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := p3.X, p3.Y

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, fmt.Errorf("points are collinear")
	}

	x1sq := x1*x1 + y1*y1
	x2sq := x2*x2 + y2*y2
	x3sq := x3*x3 + y3*y3

	cx := (x1sq*(y2-y3) + x2sq*(y3-y1) + x3sq*(y1-y2)) / D
	cy := (x1sq*(x3-x2) + x2sq*(x1-x3) + x3sq*(x2-x1)) / D
	center2D := NewVector2(cx, cy)
	radius := p1.Sub(center2D).Length()

	var sumError float64
	for _, p := range points2D {
		dist := p.Sub(center2D).Length()
		sumError += (dist - radius) * (dist - radius)
	}

	return &CircleFit{
		Center: u.Mul(cx).Add(v.Mul(cy)).Add(n.Mul(depth)),
		Radius: radius,
		Normal: n,
		StdDev: math.Sqrt(sumError / float64(len(points2D))),
	}, nil
}
