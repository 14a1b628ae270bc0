package analysis

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/samber/lo"
)

// EdgeInfo contains information about an edge in the model or in a cut.
// TriangleID is -1 for edges not owned by one triangle, Ring is the 1-based
// cut ring an edge belongs to or 0.
type EdgeInfo struct {
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int
	Ring       int
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
	// OpenEdges counts welded edges without a matching opposite edge
	OpenEdges int
}

// Closed reports whether the measured mesh is watertight
func (r *MeasurementResult) Closed() bool {
	return r.OpenEdges == 0
}

// AnalyzeMesh performs comprehensive analysis on a mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   m.BoundingBox(),
		Volume:        Volume(m),
		SurfaceArea:   SurfaceArea(m),
		TriangleCount: m.TriangleCount(),
		VertexCount:   len(m.Vertices),
		OpenEdges:     len(OpenEdges(m, mesh.DefaultWeldTolerance)),
	}
	result.Dimensions = result.BoundingBox.Size()

	result.AllEdges = lo.FlatMap(lo.Range(m.TriangleCount()), func(t int, _ int) []EdgeInfo {
		tri := m.Triangle(t)
		corners := [3]geometry.Vector3{tri.V1, tri.V2, tri.V3}
		edges := make([]EdgeInfo, 3)
		for j := range corners {
			start, end := corners[j], corners[(j+1)%3]
			edges[j] = EdgeInfo{Start: start, End: end, Length: start.Distance(end), TriangleID: t}
		}
		return edges
	})
	result.EdgeCount = len(result.AllEdges)

	if result.EdgeCount > 0 {
		lengths := lo.Map(result.AllEdges, func(e EdgeInfo, _ int) float64 { return e.Length })
		result.MinEdgeLength = lo.Min(lengths)
		result.MaxEdgeLength = lo.Max(lengths)
		result.AvgEdgeLength = lo.Mean(lengths)
	}

	return result
}

// Volume returns the enclosed volume of a closed, outward facing mesh
func Volume(m *mesh.Mesh) float64 {
	return lo.SumBy(lo.Range(m.TriangleCount()), func(t int) float64 {
		return m.Triangle(t).SignedVolume()
	})
}

// SurfaceArea returns the total triangle area
func SurfaceArea(m *mesh.Mesh) float64 {
	return lo.SumBy(lo.Range(m.TriangleCount()), func(t int) float64 {
		return m.Triangle(t).Area()
	})
}

// FindEdgesByLength finds all edges within a length range. A maxLength of
// zero or less leaves the range open.
func FindEdgesByLength(edges []EdgeInfo, minLength, maxLength float64) []EdgeInfo {
	return lo.Filter(edges, func(edge EdgeInfo, _ int) bool {
		return edge.Length >= minLength && (maxLength <= 0 || edge.Length <= maxLength)
	})
}

// FindLongestEdges returns the count longest edges
func FindLongestEdges(edges []EdgeInfo, count int) []EdgeInfo {
	return sortedEdges(edges, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the count shortest edges
func FindShortestEdges(edges []EdgeInfo, count int) []EdgeInfo {
	return sortedEdges(edges, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(edges []EdgeInfo, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	sorted := make([]EdgeInfo, len(edges))
	copy(sorted, edges)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	if count > len(sorted) {
		count = len(sorted)
	}

	return sorted[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
