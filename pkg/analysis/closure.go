package analysis

import (
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/samber/lo"
)

// Edge is a directed edge between welded vertex positions
type Edge struct {
	From, To geometry.Vector3
}

// OpenEdges welds the mesh by position and returns every directed edge
// whose reverse occurs fewer times than the edge itself. A watertight,
// consistently wound mesh has none. Triangles that collapse when welded
// are ignored.
func OpenEdges(m *mesh.Mesh, tolerance float64) []Edge {
	table := mesh.NewVertexTable(tolerance)
	ids := lo.Map(m.Vertices, func(p geometry.Vector3, _ int) int { return table.Intern(p) })

	type key [2]int
	counts := make(map[key]int)
	var order []key
	for t := 0; t < m.TriangleCount(); t++ {
		tri := m.TriangleIndices(t)
		a, b, c := ids[tri[0]], ids[tri[1]], ids[tri[2]]
		if a == b || b == c || a == c {
			continue
		}
		for _, k := range []key{{a, b}, {b, c}, {c, a}} {
			if counts[k] == 0 {
				order = append(order, k)
			}
			counts[k]++
		}
	}

	var open []Edge
	for _, k := range order {
		if counts[k] > counts[key{k[1], k[0]}] {
			open = append(open, Edge{From: table.Position(k[0]), To: table.Position(k[1])})
		}
	}
	return open
}

// IsClosed reports whether the mesh has no open edges
func IsClosed(m *mesh.Mesh, tolerance float64) bool {
	return len(OpenEdges(m, tolerance)) == 0
}
