package mesh

import (
	"github.com/philipparndt/gosplit/pkg/geometry"
)

// DisjointSet is a union-find structure over the integers [0, n)
type DisjointSet struct {
	parent []int
	rank   []int
}

// NewDisjointSet creates n singleton sets
func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

// Find returns the representative of x's set
func (d *DisjointSet) Find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// Union merges the sets of a and b
func (d *DisjointSet) Union(a, b int) {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
}

// Islands groups triangles that share a vertex key. keys holds the three
// vertex keys of every triangle, each in [0, keyCount). Islands are ordered
// by their first triangle and list triangles in input order.
func Islands(keys [][3]int, keyCount int) [][]int {
	set := NewDisjointSet(keyCount)
	for _, k := range keys {
		set.Union(k[0], k[1])
		set.Union(k[1], k[2])
	}

	slot := make(map[int]int)
	var islands [][]int
	for tri, k := range keys {
		root := set.Find(k[0])
		i, ok := slot[root]
		if !ok {
			i = len(islands)
			slot[root] = i
			islands = append(islands, nil)
		}
		islands[i] = append(islands[i], tri)
	}
	return islands
}

// Separate splits a part into its connected islands. Connectivity is by
// interned position, so vertices duplicated for UV seams still connect.
// A part with a single island is returned unchanged.
func Separate(part *Part, tolerance float64) []*Part {
	table := NewVertexTable(tolerance)
	ids := make([]int, len(part.Vertices))
	for i, v := range part.Vertices {
		ids[i] = table.Intern(v)
	}

	keys := make([][3]int, part.TriangleCount())
	for t := range keys {
		keys[t] = [3]int{ids[part.Indices[3*t]], ids[part.Indices[3*t+1]], ids[part.Indices[3*t+2]]}
	}

	islands := Islands(keys, table.Len())
	if len(islands) <= 1 {
		return []*Part{part}
	}

	reverse := make(map[int]int, len(part.Origin))
	for orig, local := range part.Origin {
		reverse[local] = orig
	}

	parts := make([]*Part, 0, len(islands))
	for _, island := range islands {
		parts = append(parts, SubPart(part, island, reverse))
	}
	return parts
}

// SubPart copies the given triangles of part into a new part with the same
// side. reverse maps part-local indices back to original mesh indices.
func SubPart(part *Part, triangles []int, reverse map[int]int) *Part {
	b := NewPartBuilder(part.Side, len(part.UVs) > 0)
	vertex := func(local int) int {
		var uv geometry.Vector2
		if len(part.UVs) > 0 {
			uv = part.UVs[local]
		}
		if orig, ok := reverse[local]; ok {
			return b.Vertex(OriginalKey(orig), part.Vertices[local], uv)
		}
		return b.Vertex(VertexKey{Kind: KeyExtra, A: local}, part.Vertices[local], uv)
	}
	for _, t := range triangles {
		i := vertex(part.Indices[3*t])
		j := vertex(part.Indices[3*t+1])
		k := vertex(part.Indices[3*t+2])
		b.Triangle(i, j, k)
	}
	return b.Build()
}

// Merge concatenates parts into one. The side is kept when all parts agree.
func Merge(parts []*Part) *Part {
	merged := &Part{Origin: make(map[int]int)}
	withUVs := len(parts) > 0
	for _, p := range parts {
		withUVs = withUVs && (len(p.UVs) > 0 || len(p.Vertices) == 0)
	}
	for n, p := range parts {
		if n == 0 {
			merged.Side = p.Side
		} else if merged.Side != p.Side {
			merged.Side = SideUnassigned
		}
		base := len(merged.Vertices)
		merged.Vertices = append(merged.Vertices, p.Vertices...)
		if withUVs {
			merged.UVs = append(merged.UVs, p.UVs...)
		}
		for _, idx := range p.Indices {
			merged.Indices = append(merged.Indices, base+idx)
		}
		for orig, local := range p.Origin {
			if _, ok := merged.Origin[orig]; !ok {
				merged.Origin[orig] = base + local
			}
		}
	}
	return merged
}

// Weld builds an indexed mesh from a triangle soup, merging positions within
// tolerance
func Weld(triangles []geometry.Triangle, tolerance float64) *Mesh {
	table := NewVertexTable(tolerance)
	m := &Mesh{}
	for _, t := range triangles {
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			id := table.Intern(v)
			if id == len(m.Vertices) {
				m.Vertices = append(m.Vertices, table.Position(id))
			}
			m.Indices = append(m.Indices, id)
		}
	}
	return m
}
