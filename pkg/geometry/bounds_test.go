package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Errorf("new bounding box should be empty")
	}
	bbox.Extend(NewVector3(0, 0, 0))
	if bbox.IsEmpty() {
		t.Errorf("bounding box with a point should not be empty")
	}
}

func TestBoundingBoxDiagonal(t *testing.T) {
	bbox := BoundsOf([]Vector3{NewVector3(0, 0, 0), NewVector3(3, 4, 0)})
	if math.Abs(bbox.Diagonal()-5) > 1e-10 {
		t.Errorf("Diagonal failed: expected 5, got %v", bbox.Diagonal())
	}
}

func TestBoundingBoxDominatesIgnoresFlatAxis(t *testing.T) {
	outer := BoundsOf([]Vector3{NewVector3(-2, 0, -2), NewVector3(2, 0, 2)})
	inner := BoundsOf([]Vector3{NewVector3(-1, 0, -1), NewVector3(1, 0, 1)})

	if !outer.Dominates(inner) {
		t.Errorf("outer should dominate inner")
	}
	if inner.Dominates(outer) {
		t.Errorf("inner should not dominate outer")
	}
	if outer.Dominates(outer) {
		t.Errorf("a box must not dominate itself")
	}
}

func TestBoundingBoxStrictlyContains(t *testing.T) {
	outer := BoundsOf([]Vector3{NewVector3(-2, 1, -2), NewVector3(2, 1, 2)})
	inner := BoundsOf([]Vector3{NewVector3(-1, 1, -1), NewVector3(1, 1, 1)})
	touching := BoundsOf([]Vector3{NewVector3(-2, 1, -1), NewVector3(1, 1, 1)})
	otherPlane := BoundsOf([]Vector3{NewVector3(-1, 3, -1), NewVector3(1, 3, 1)})

	if !outer.StrictlyContains(inner) {
		t.Errorf("outer should strictly contain inner")
	}
	if outer.StrictlyContains(touching) {
		t.Errorf("a box sharing a face is not strictly contained")
	}
	if outer.StrictlyContains(otherPlane) {
		t.Errorf("flat boxes in different planes are not contained")
	}
}
