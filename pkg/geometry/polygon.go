package geometry

import "math"

// PlaneBasis returns two unit vectors u, v perpendicular to normal with
// u x v = normal
func PlaneBasis(normal Vector3) (Vector3, Vector3) {
	n := normal.Normalize()
	helper := NewVector3(1, 0, 0)
	if math.Abs(n.X) > math.Abs(n.Y) && math.Abs(n.X) > math.Abs(n.Z) {
		helper = NewVector3(0, 1, 0)
	} else if math.Abs(n.Y) >= math.Abs(n.Z) && math.Abs(n.Y) >= math.Abs(n.X) {
		helper = NewVector3(0, 0, 1)
	}
	u := helper.Sub(n.Mul(helper.Dot(n))).Normalize()
	v := n.Cross(u)
	return u, v
}

// ProjectPolygon maps points into the 2D coordinate system of the plane
// with the given normal. Counter-clockwise order around the normal stays
// counter-clockwise.
func ProjectPolygon(points []Vector3, normal Vector3) []Vector2 {
	u, v := PlaneBasis(normal)
	out := make([]Vector2, len(points))
	for i, p := range points {
		out[i] = Vector2{X: p.Dot(u), Y: p.Dot(v)}
	}
	return out
}

// SignedArea returns the shoelace area of a 2D polygon, positive for
// counter-clockwise order
func SignedArea(polygon []Vector2) float64 {
	area := 0.0
	for i := range polygon {
		j := (i + 1) % len(polygon)
		area += polygon[i].Cross(polygon[j])
	}
	return area / 2
}

// PointInPolygon is the even-odd test of p against polygon
func PointInPolygon(p Vector2, polygon []Vector2) bool {
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestOnSegment returns the closest point to p on segment a-b and its
// parameter in [0,1]
func ClosestOnSegment(p, a, b Vector3) (Vector3, float64) {
	ab := b.Sub(a)
	lengthSq := ab.LengthSquared()
	if lengthSq == 0 {
		return a, 0
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/lengthSq))
	return a.Add(ab.Mul(t)), t
}

// DistanceToPolyline returns the smallest distance from p to a closed
// polyline
func DistanceToPolyline(p Vector3, points []Vector3) float64 {
	best := math.Inf(1)
	for i := range points {
		q, _ := ClosestOnSegment(p, points[i], points[(i+1)%len(points)])
		best = math.Min(best, p.Distance(q))
	}
	return best
}
