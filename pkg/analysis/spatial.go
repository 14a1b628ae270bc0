package analysis

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

const (
	treeMinChildren = 25
	treeMaxChildren = 50
	pointExtent     = 1e-9
)

type vertexEntry struct {
	index int
	pos   geometry.Vector3
}

func (e vertexEntry) Bounds() rtreego.Rect {
	return point(e.pos).ToRect(pointExtent)
}

func point(p geometry.Vector3) rtreego.Point {
	return rtreego.Point{p.X, p.Y, p.Z}
}

// VertexIndex answers nearest vertex queries on a mesh
type VertexIndex struct {
	tree *rtreego.Rtree
}

// NewVertexIndex bulk loads the vertices of m into an R-tree
func NewVertexIndex(m *mesh.Mesh) *VertexIndex {
	entries := make([]rtreego.Spatial, len(m.Vertices))
	for i, p := range m.Vertices {
		entries[i] = vertexEntry{index: i, pos: p}
	}
	return &VertexIndex{tree: rtreego.NewTree(3, treeMinChildren, treeMaxChildren, entries...)}
}

// Len returns the number of indexed vertices
func (x *VertexIndex) Len() int {
	return x.tree.Size()
}

// Nearest returns the index and position of the vertex closest to p and
// its distance. The index is -1 for an empty mesh.
func (x *VertexIndex) Nearest(p geometry.Vector3) (int, geometry.Vector3, float64) {
	found := x.tree.NearestNeighbor(point(p))
	if found == nil {
		return -1, geometry.Vector3{}, math.Inf(1)
	}
	e := found.(vertexEntry)
	return e.index, e.pos, e.pos.Distance(p)
}

// NearestK returns the indices of the k vertices closest to p, nearest first
func (x *VertexIndex) NearestK(p geometry.Vector3, k int) []int {
	found := x.tree.NearestNeighbors(k, point(p))
	out := make([]int, 0, len(found))
	for _, s := range found {
		if s != nil {
			out = append(out, s.(vertexEntry).index)
		}
	}
	return out
}

// Within returns the indices of all vertices inside the box around p with
// half extent r on every axis
func (x *VertexIndex) Within(p geometry.Vector3, r float64) []int {
	var out []int
	for _, s := range x.tree.SearchIntersect(point(p).ToRect(r)) {
		out = append(out, s.(vertexEntry).index)
	}
	return out
}

// FindNearestVertex finds the vertex in the mesh nearest to a given point
func FindNearestVertex(m *mesh.Mesh, p geometry.Vector3) (geometry.Vector3, float64) {
	_, pos, d := NewVertexIndex(m).Nearest(p)
	return pos, d
}

// ClosestApproach returns the smallest distance between a vertex of a and
// a vertex of b
func ClosestApproach(a, b *mesh.Mesh) float64 {
	index := NewVertexIndex(b)
	best := math.Inf(1)
	for _, p := range a.Vertices {
		if _, _, d := index.Nearest(p); d < best {
			best = d
		}
	}
	return best
}

// Separation measures the slab between two parts along normal: the lowest
// point of positive minus the highest point of negative. After a gap cut
// it equals the gap width.
func Separation(positive, negative *mesh.Mesh, normal geometry.Vector3) float64 {
	n := normal.Normalize()
	low := math.Inf(1)
	for _, p := range positive.Vertices {
		low = math.Min(low, p.Dot(n))
	}
	high := math.Inf(-1)
	for _, p := range negative.Vertices {
		high = math.Max(high, p.Dot(n))
	}
	return low - high
}
