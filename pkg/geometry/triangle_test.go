package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rightTriangle has legs 3 and 4 in the xy plane
func rightTriangle() Triangle {
	return NewTriangle(
		NewVector3(0, 0, 1),
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 4, 0),
	)
}

func TestTriangleArea(t *testing.T) {
	tri := rightTriangle()
	assert.InDelta(t, 6.0, tri.Area(), 1e-10)
	assert.InDelta(t, 12.0, tri.AreaVector().Length(), 1e-10)
}

func TestTriangleEdgeLengths(t *testing.T) {
	lengths := rightTriangle().EdgeLengths()
	assert.InDelta(t, 3.0, lengths[0], 1e-10)
	assert.InDelta(t, 5.0, lengths[1], 1e-10)
	assert.InDelta(t, 4.0, lengths[2], 1e-10)
}

func TestTrianglePerimeter(t *testing.T) {
	assert.InDelta(t, 12.0, rightTriangle().Perimeter(), 1e-10)
}

func TestTriangleCenter(t *testing.T) {
	tri := NewTriangleFromVertices(
		NewVector3(0, 0, 0),
		NewVector3(3, 0, 0),
		NewVector3(0, 3, 0),
	)
	assert.Equal(t, NewVector3(1, 1, 0), tri.Center())
}

func TestTriangleNormalFollowsWinding(t *testing.T) {
	ccw := NewTriangleFromVertices(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)
	assert.Equal(t, NewVector3(0, 0, 1), ccw.Normal)

	cw := NewTriangleFromVertices(ccw.V1, ccw.V3, ccw.V2)
	assert.Equal(t, NewVector3(0, 0, -1), cw.Normal)
}

func TestTriangleDegenerate(t *testing.T) {
	flat := NewTriangleFromVertices(
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
		NewVector3(2, 2, 2),
	)
	assert.True(t, flat.IsDegenerate(1e-12))
	assert.False(t, rightTriangle().IsDegenerate(1e-12))
}

func TestTriangleSignedVolume(t *testing.T) {
	tri := NewTriangleFromVertices(
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
		NewVector3(0, 0, 1),
	)
	assert.InDelta(t, 1.0/6.0, tri.SignedVolume(), 1e-12)
}
