package cut

import (
	"github.com/philipparndt/gosplit/pkg/capping"
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// capper fills rings lying in a plane and hands the triangles to the parts
type capper struct {
	table        *mesh.VertexTable
	triangulator capping.Triangulator
	uv           func(p geometry.Vector3) geometry.Vector2
}

func newCapper(m *mesh.Mesh, opts Options, table *mesh.VertexTable, plane geometry.Plane) (*capper, error) {
	triangulator, err := capping.New(opts.Capper)
	if err != nil {
		return nil, err
	}
	return &capper{table: table, triangulator: triangulator, uv: capUV(m, opts, plane)}, nil
}

// capUV returns the texture mapping of cap vertices: the fixed inner UV
// when set, a projection onto the cut plane when the mesh is textured
func capUV(m *mesh.Mesh, opts Options, plane geometry.Plane) func(geometry.Vector3) geometry.Vector2 {
	if opts.InnerCapUV != nil {
		uv := *opts.InnerCapUV
		return func(geometry.Vector3) geometry.Vector2 { return uv }
	}
	if !m.HasUVs() {
		return func(geometry.Vector3) geometry.Vector2 { return geometry.Vector2{} }
	}
	u, v := plane.Basis()
	origin := plane.Point()
	return func(p geometry.Vector3) geometry.Vector2 {
		d := p.Sub(origin)
		return geometry.NewVector2(d.Dot(u), d.Dot(v))
	}
}

// fill triangulates rings, counter-clockwise about normal. facing receives
// the cap as triangulated, away receives it flipped.
func (c *capper) fill(rings *contour.RingSet, normal geometry.Vector3, facing, away sink) (*contour.Forest, error) {
	forest := contour.Analyse(contour.LoopsOf(rings, c.table.Position), normal)
	tris, err := c.triangulator.Triangulate(forest)
	if err != nil {
		return nil, err
	}
	for _, t := range tris {
		a, b, d := c.corner(t[0]), c.corner(t[1]), c.corner(t[2])
		emit(facing, a, b, d)
		emit(away, a, d, b)
	}
	return forest, nil
}

func (c *capper) corner(id int) corner {
	p := c.table.Position(id)
	return corner{key: mesh.CapKey(id), pos: p, uv: c.uv(p), id: id}
}

// ringPoints resolves rings to positions for the result
func ringPoints(rings *contour.RingSet, table *mesh.VertexTable) [][]geometry.Vector3 {
	out := make([][]geometry.Vector3, 0, rings.Len())
	for _, ring := range rings.All() {
		out = append(out, table.Positions(ring))
	}
	return out
}
