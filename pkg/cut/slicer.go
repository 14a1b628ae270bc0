package cut

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// corner is one vertex of an emitted triangle
type corner struct {
	key mesh.VertexKey
	pos geometry.Vector3
	uv  geometry.Vector2
	// id is the interned position, -1 for untouched input vertices
	id int
}

// sink receives the triangles of one side
type sink interface {
	add(a, b, c corner)
}

type discard struct{}

func (discard) add(a, b, c corner) {}

type partSink struct {
	b *mesh.PartBuilder
}

func (s partSink) add(a, b, c corner) {
	i := s.b.Vertex(a.key, a.pos, a.uv)
	j := s.b.Vertex(b.key, b.pos, b.uv)
	k := s.b.Vertex(c.key, c.pos, c.uv)
	s.b.Triangle(i, j, k)
}

// slicer cuts the triangles of a mesh by one plane. Intersections are
// computed once per input edge and interned in a shared table, so
// neighbouring triangles and the ring builder see the same vertex.
type slicer struct {
	m     *mesh.Mesh
	plane geometry.Plane
	table *mesh.VertexTable
	cache map[mesh.VertexKey]corner
	above []bool
	// boundary holds the ring edge registered by each crossing triangle
	boundary map[int][2]int
}

func newSlicer(m *mesh.Mesh, plane geometry.Plane, table *mesh.VertexTable) *slicer {
	s := &slicer{
		m:        m,
		plane:    plane,
		table:    table,
		cache:    make(map[mesh.VertexKey]corner),
		above:    make([]bool, len(m.Vertices)),
		boundary: make(map[int][2]int),
	}
	for i, v := range m.Vertices {
		s.above[i] = plane.IsAbove(v)
	}
	return s
}

func (s *slicer) original(i int) corner {
	c := corner{key: mesh.OriginalKey(i), pos: s.m.Vertices[i], id: -1}
	if s.m.HasUVs() {
		c.uv = s.m.UVs[i]
	}
	return c
}

// crossing returns the intersection on input edge a-b. It is evaluated in
// ascending index order so both triangles sharing the edge agree.
func (s *slicer) crossing(a, b int) (corner, error) {
	key := mesh.EdgeKey(a, b)
	if c, ok := s.cache[key]; ok {
		return c, nil
	}
	p, f, err := s.plane.Intersection(s.m.Vertices[key.A], s.m.Vertices[key.B])
	if err != nil {
		return corner{}, err
	}
	c := corner{key: key, pos: p, id: s.table.Intern(p)}
	if s.m.HasUVs() {
		c.uv = s.m.UVs[key.A].Lerp(s.m.UVs[key.B], f)
	}
	s.cache[key] = c
	return c, nil
}

// slice sends triangle t to the sinks. Triangles crossing the plane are
// split into two triangles on the side holding two vertices and one on the
// other, and the segment between the two intersections is registered with
// edges, counter-clockwise about the plane normal. A crossing triangle with
// no usable normal is dropped whole.
func (s *slicer) slice(t int, above, below sink, edges *contour.Builder) error {
	tri := s.m.TriangleIndices(t)
	count := 0
	for _, i := range tri {
		if s.above[i] {
			count++
		}
	}
	switch count {
	case 3:
		above.add(s.original(tri[0]), s.original(tri[1]), s.original(tri[2]))
		return nil
	case 0:
		below.add(s.original(tri[0]), s.original(tri[1]), s.original(tri[2]))
		return nil
	}

	// c is the vertex alone on its side, a and b follow it in winding order
	k := 0
	for i := range tri {
		if (count == 1) == s.above[tri[i]] {
			k = i
		}
	}
	a, b, c := tri[(k+1)%3], tri[(k+2)%3], tri[k]

	major, minor := below, above
	if s.above[a] {
		major, minor = above, below
	}

	ea, err := s.crossing(a, c)
	if err != nil {
		return err
	}
	eb, err := s.crossing(b, c)
	if err != nil {
		return err
	}
	ca, cb, cc := s.original(a), s.original(b), s.original(c)

	if ea.id == eb.id {
		// the lone vertex touches the plane
		emit(major, ca, cb, eb)
		return nil
	}

	// ring edges run along plane normal x triangle normal
	dir := s.plane.Normal().Cross(s.m.Triangle(t).CalculateNormal())
	along := eb.pos.Sub(ea.pos).Dot(dir)
	if along == 0 || math.IsNaN(along) {
		// degenerate triangle, no usable direction
		return nil
	}
	d, e := ea, eb
	if along < 0 {
		d, e = e, d
	}

	emit(major, ca, cb, eb)
	emit(major, ca, eb, ea)
	emit(minor, eb, cc, ea)
	edges.AddConnected(d.id, e.id)
	s.boundary[t] = [2]int{d.id, e.id}
	return nil
}

// emit drops triangles that collapsed onto an edge or a point
func emit(to sink, a, b, c corner) {
	if a.pos == b.pos || b.pos == c.pos || a.pos == c.pos {
		return
	}
	to.add(a, b, c)
}
