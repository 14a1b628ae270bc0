package cut

import (
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// soupTri is a triangle waiting for its island to be assigned a part
type soupTri struct {
	corners [3]corner
	side    mesh.Side
}

type soupSink struct {
	tris *[]soupTri
	side mesh.Side
}

func (s soupSink) add(a, b, c corner) {
	*s.tris = append(*s.tris, soupTri{corners: [3]corner{a, b, c}, side: s.side})
}

// cutPartial cuts only the rings near opts.OriginPoint. The remaining
// triangles are kept whole and join the side of the island they end up in.
func cutPartial(m *mesh.Mesh, plane geometry.Plane, opts Options) (*Result, error) {
	table := mesh.NewVertexTable(opts.WeldTolerance)
	s := newSlicer(m, plane, table)

	// dry run to find the rings
	dry := contour.NewBuilder()
	for t := 0; t < m.TriangleCount(); t++ {
		if err := s.slice(t, discard{}, discard{}, dry); err != nil {
			return nil, err
		}
	}
	all, err := dry.Rings(opts.SelfConnectPartialRings, opts.IgnorePartialRings)
	if err != nil {
		return nil, err
	}

	selected := make(map[[2]int]bool)
	for _, ring := range all.All() {
		if geometry.DistanceToPolyline(opts.OriginPoint, table.Positions(ring)) > opts.MaxCutDistance {
			continue
		}
		for i := range ring {
			selected[[2]int{ring[i], ring[(i+1)%len(ring)]}] = true
		}
	}
	if len(selected) == 0 {
		return missed(m, opts), nil
	}

	var soup []soupTri
	positive := soupSink{tris: &soup, side: mesh.SidePositive}
	negative := soupSink{tris: &soup, side: mesh.SideNegative}
	rest := soupSink{tris: &soup, side: mesh.SideUnassigned}

	edges := contour.NewBuilder()
	for t := 0; t < m.TriangleCount(); t++ {
		if edge, ok := s.boundary[t]; ok && selected[edge] {
			if err := s.slice(t, positive, negative, edges); err != nil {
				return nil, err
			}
			continue
		}
		tri := m.TriangleIndices(t)
		rest.add(s.original(tri[0]), s.original(tri[1]), s.original(tri[2]))
	}

	rings, err := edges.Rings(opts.SelfConnectPartialRings, opts.IgnorePartialRings)
	if err != nil {
		return nil, err
	}
	c, err := newCapper(m, opts, table, plane)
	if err != nil {
		return nil, err
	}
	forest, err := c.fill(rings, plane.Normal(), negative, positive)
	if err != nil {
		return nil, err
	}

	parts := distribute(m, plane, opts, soup)
	if len(parts[mesh.SidePositive]) == 0 || len(parts[mesh.SideNegative]) == 0 {
		return missed(m, opts), nil
	}
	res := &Result{
		Outcome: OutcomeSplit,
		Parts:   append(parts[mesh.SidePositive], parts[mesh.SideNegative]...),
		Rings:   ringPoints(rings, table),
		Centers: forest.Centers(),
	}
	return res, nil
}

type islandKey struct {
	boundary bool
	id       int
	side     mesh.Side
}

// distribute groups the soup into islands and assigns every island a side.
// Cut and cap vertices only connect triangles of the same side. An island
// holding cut triangles takes the side most of them carry, any other island
// is voted by its vertices. Ties go to the negative side.
func distribute(m *mesh.Mesh, plane geometry.Plane, opts Options, soup []soupTri) map[mesh.Side][]*mesh.Part {
	weld := mesh.NewVertexTable(opts.WeldTolerance)
	welded := make([]int, len(m.Vertices))
	for i, v := range m.Vertices {
		welded[i] = weld.Intern(v)
	}

	index := make(map[islandKey]int)
	keys := make([][3]int, len(soup))
	for t, tri := range soup {
		for j, c := range tri.corners {
			// the two sides of a cut stay apart
			k := islandKey{boundary: true, id: c.id, side: tri.side}
			if c.key.Kind == mesh.KeyOriginal {
				k = islandKey{id: welded[c.key.A]}
			}
			i, ok := index[k]
			if !ok {
				i = len(index)
				index[k] = i
			}
			keys[t][j] = i
		}
	}

	islands := mesh.Islands(keys, len(index))
	parts := make(map[mesh.Side][]*mesh.Part)
	builders := make(map[mesh.Side]*mesh.PartBuilder)
	for _, island := range islands {
		side := islandSide(m, plane, soup, island)
		b := builders[side]
		if b == nil || opts.PolySeparate {
			b = mesh.NewPartBuilder(side, m.HasUVs())
			parts[side] = append(parts[side], b.Build())
			builders[side] = b
		}
		sink := partSink{b}
		for _, t := range island {
			c := soup[t].corners
			sink.add(c[0], c[1], c[2])
		}
	}
	return parts
}

func islandSide(m *mesh.Mesh, plane geometry.Plane, soup []soupTri, island []int) mesh.Side {
	pos, neg := 0, 0
	for _, t := range island {
		switch soup[t].side {
		case mesh.SidePositive:
			pos++
		case mesh.SideNegative:
			neg++
		}
	}
	if pos+neg == 0 {
		seen := make(map[int]bool)
		for _, t := range island {
			for _, c := range soup[t].corners {
				if c.key.Kind != mesh.KeyOriginal || seen[c.key.A] {
					continue
				}
				seen[c.key.A] = true
				if plane.IsAbove(m.Vertices[c.key.A]) {
					pos++
				} else {
					neg++
				}
			}
		}
	}
	if pos > neg {
		return mesh.SidePositive
	}
	return mesh.SideNegative
}
