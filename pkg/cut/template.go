package cut

import (
	"math"
	"sort"

	"github.com/philipparndt/gosplit/pkg/capping"
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

type refinedVertex struct {
	pos  geometry.Vector3
	uv   geometry.Vector2
	id   int
	orig int
}

// refiner subdivides a mesh along template segment planes until no
// triangle straddles the template surface
type refiner struct {
	m     *mesh.Mesh
	table *mesh.VertexTable
	verts []refinedVertex
	tris  [][3]int
}

func newRefiner(m *mesh.Mesh, table *mesh.VertexTable) *refiner {
	r := &refiner{m: m, table: table, verts: make([]refinedVertex, len(m.Vertices))}
	for i, v := range m.Vertices {
		r.verts[i] = refinedVertex{pos: v, id: table.Intern(v), orig: i}
		if m.HasUVs() {
			r.verts[i].uv = m.UVs[i]
		}
	}
	for t := 0; t < m.TriangleCount(); t++ {
		r.tris = append(r.tris, m.TriangleIndices(t))
	}
	return r
}

// refine splits the triangles crossing segment seg's plane within the
// segment's extent, plus every crossing triangle reachable from them over
// crossing edges so no edge is split on one side only
func (r *refiner) refine(tpl *geometry.Template, seg int) error {
	plane := tpl.SegmentPlane(seg)
	lo, hi := tpl.SegmentInterval(seg)

	above := make([]bool, len(r.verts))
	for i, v := range r.verts {
		above[i] = plane.IsAbove(v.pos)
	}
	crossing := func(tri [3]int) bool {
		return above[tri[0]] != above[tri[1]] || above[tri[1]] != above[tri[2]]
	}
	edgeKey := func(u, v int) [2]int {
		a, b := r.verts[u].id, r.verts[v].id
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}

	shared := make(map[[2]int][]int)
	var queue []int
	selected := make([]bool, len(r.tris))
	for t, tri := range r.tris {
		if !crossing(tri) {
			continue
		}
		for j := 0; j < 3; j++ {
			u, v := tri[j], tri[(j+1)%3]
			if above[u] != above[v] {
				k := edgeKey(u, v)
				shared[k] = append(shared[k], t)
			}
		}
		min, max := math.Inf(1), math.Inf(-1)
		for _, i := range tri {
			s := tpl.AlongSegment(seg, r.verts[i].pos)
			min, max = math.Min(min, s), math.Max(max, s)
		}
		if max >= lo && min <= hi {
			selected[t] = true
			queue = append(queue, t)
		}
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		tri := r.tris[t]
		for j := 0; j < 3; j++ {
			u, v := tri[j], tri[(j+1)%3]
			if above[u] == above[v] {
				continue
			}
			for _, n := range shared[edgeKey(u, v)] {
				if !selected[n] {
					selected[n] = true
					queue = append(queue, n)
				}
			}
		}
	}

	cache := make(map[[2]int]int)
	cut := func(i, j int) (int, error) {
		if i > j {
			i, j = j, i
		}
		if v, ok := cache[[2]int{i, j}]; ok {
			return v, nil
		}
		a, b := r.verts[i], r.verts[j]
		p, f, err := plane.Intersection(a.pos, b.pos)
		if err != nil {
			return 0, err
		}
		v := i
		switch p {
		case a.pos:
		case b.pos:
			v = j
		default:
			v = len(r.verts)
			r.verts = append(r.verts, refinedVertex{pos: p, uv: a.uv.Lerp(b.uv, f), id: r.table.Intern(p), orig: -1})
		}
		cache[[2]int{i, j}] = v
		return v, nil
	}

	refined := make([][3]int, 0, len(r.tris))
	keep := func(a, b, c int) {
		if a != b && b != c && a != c {
			refined = append(refined, [3]int{a, b, c})
		}
	}
	for t, tri := range r.tris {
		if !selected[t] {
			refined = append(refined, tri)
			continue
		}
		count := 0
		for _, i := range tri {
			if above[i] {
				count++
			}
		}
		k := 0
		for i := range tri {
			if (count == 1) == above[tri[i]] {
				k = i
			}
		}
		a, b, c := tri[(k+1)%3], tri[(k+2)%3], tri[k]
		ea, err := cut(a, c)
		if err != nil {
			return err
		}
		eb, err := cut(b, c)
		if err != nil {
			return err
		}
		if ea == eb {
			keep(a, b, eb)
			continue
		}
		keep(a, b, eb)
		keep(a, eb, ea)
		keep(eb, c, ea)
	}
	r.tris = refined
	return nil
}

func (r *refiner) corner(i int) corner {
	v := r.verts[i]
	key := mesh.VertexKey{Kind: mesh.KeyExtra, A: i}
	if v.orig >= 0 {
		key = mesh.OriginalKey(v.orig)
	}
	return corner{key: key, pos: v.pos, uv: v.uv, id: v.id}
}

// cutTemplate cuts along an extruded template. Triangles are classified by
// their centroid after refinement, and sides meet along edges of welded ids. Caps are built in the unrolled
// (arc length, height) space of the template.
func cutTemplate(m *mesh.Mesh, tpl *geometry.Template, opts Options) (*Result, error) {
	if tpl == nil {
		return nil, cuterr.InvalidOptions("template surface without template")
	}
	if opts.Gap > 0 || opts.Partial() {
		return nil, cuterr.InvalidOptions("gap and partial cuts are not supported for templates")
	}

	table := mesh.NewVertexTable(opts.WeldTolerance)
	r := newRefiner(m, table)
	for seg := 0; seg < tpl.SegmentCount(); seg++ {
		if err := r.refine(tpl, seg); err != nil {
			return nil, err
		}
	}

	positive := mesh.NewPartBuilder(mesh.SidePositive, m.HasUVs())
	negative := mesh.NewPartBuilder(mesh.SideNegative, m.HasUVs())
	sides := make([]mesh.Side, len(r.tris))
	inner := make(map[[2]int]bool)
	for t, tri := range r.tris {
		a, b, c := r.corner(tri[0]), r.corner(tri[1]), r.corner(tri[2])
		// splits near a template corner can land within weld tolerance of
		// each other; a triangle collapsed in id space has no side
		if a.id == b.id || b.id == c.id || a.id == c.id {
			continue
		}
		centroid := a.pos.Add(b.pos).Add(c.pos).Mul(1.0 / 3)
		above, err := tpl.IsAbove(centroid)
		if err != nil {
			return nil, err
		}
		if above {
			sides[t] = mesh.SidePositive
			partSink{positive}.add(a, b, c)
			continue
		}
		sides[t] = mesh.SideNegative
		partSink{negative}.add(a, b, c)
		for j := 0; j < 3; j++ {
			inner[[2]int{r.verts[tri[j]].id, r.verts[tri[(j+1)%3]].id}] = true
		}
	}
	if positive.Empty() || negative.Empty() {
		return missed(m, opts), nil
	}

	edges := contour.NewBuilder()
	for t, tri := range r.tris {
		if sides[t] != mesh.SidePositive {
			continue
		}
		for j := 0; j < 3; j++ {
			u, v := r.verts[tri[j]].id, r.verts[tri[(j+1)%3]].id
			if inner[[2]int{v, u}] {
				edges.AddConnected(v, u)
			}
		}
	}
	rings, err := edges.Rings(opts.SelfConnectPartialRings, opts.IgnorePartialRings)
	if err != nil {
		return nil, err
	}

	u := newUnrolledCap(tpl, table, opts, m.HasUVs())
	centers, err := u.fill(rings, partSink{negative}, partSink{positive})
	if err != nil {
		return nil, err
	}

	res := split(m, opts, positive.Build(), negative.Build())
	res.Rings = ringPoints(rings, table)
	res.Centers = centers
	return res, nil
}

// unrolledCap triangulates rings of a template cut in (arc length, height)
// coordinates and maps the result back onto the template surface
type unrolledCap struct {
	tpl     *geometry.Template
	table   *mesh.VertexTable
	opts    Options
	withUVs bool
	eps     float64

	// points are cap vertices in unrolled space, ids their interned
	// vertex or -1 for vertices added while splitting at corners
	points []geometry.Vector2
	ids    []int
}

func newUnrolledCap(tpl *geometry.Template, table *mesh.VertexTable, opts Options, withUVs bool) *unrolledCap {
	return &unrolledCap{
		tpl:     tpl,
		table:   table,
		opts:    opts,
		withUVs: withUVs,
		eps:     1e-9 * math.Max(1, tpl.Length()),
	}
}

func (u *unrolledCap) add(st geometry.Vector2, id int) int {
	u.points = append(u.points, st)
	u.ids = append(u.ids, id)
	return len(u.points) - 1
}

func (u *unrolledCap) loop(indices []int) contour.Loop {
	l := contour.Loop{IDs: indices, Points: make([]geometry.Vector3, len(indices))}
	for i, idx := range indices {
		l.Points[i] = geometry.NewVector3(u.points[idx].X, u.points[idx].Y, 0)
	}
	return l
}

type unrolledRing struct {
	ids   []int
	st    []geometry.Vector2
	total float64
	meanH float64
}

// unroll maps a ring into template space with a continuous arc length
func (u *unrolledCap) unroll(ring []int) unrolledRing {
	perimeter := u.tpl.Length()
	out := unrolledRing{ids: ring, st: make([]geometry.Vector2, len(ring))}
	for i, id := range ring {
		st := u.tpl.Unroll(u.table.Position(id))
		if i > 0 && u.tpl.Closed {
			st.X = out.st[i-1].X + wrap(st.X-out.st[i-1].X, perimeter)
		}
		out.st[i] = st
		out.meanH += st.Y / float64(len(ring))
	}
	if u.tpl.Closed {
		first, last := out.st[0].X, out.st[len(ring)-1].X
		out.total = last - first + wrap(first-last, perimeter)
	}
	return out
}

// wrap maps a step in arc length into [-perimeter/2, perimeter/2)
func wrap(d, perimeter float64) float64 {
	d = math.Mod(d+perimeter/2, perimeter)
	if d < 0 {
		d += perimeter
	}
	return d - perimeter/2
}

func (r unrolledRing) wraps(perimeter float64) bool {
	return math.Abs(r.total) > perimeter/2
}

// fill triangulates the rings and emits the cap. Returns the centers of
// the top-level cap regions.
func (u *unrolledCap) fill(rings *contour.RingSet, facing, away sink) ([]geometry.Vector3, error) {
	perimeter := u.tpl.Length()
	var loops []contour.Loop
	var wrapping []unrolledRing
	for _, ring := range rings.All() {
		ur := u.unroll(ring)
		if u.tpl.Closed && ur.wraps(perimeter) {
			wrapping = append(wrapping, ur)
			continue
		}
		if u.tpl.Closed {
			mean := 0.0
			for _, st := range ur.st {
				mean += st.X / float64(len(ur.st))
			}
			shift := -math.Floor(mean/perimeter) * perimeter
			for i := range ur.st {
				ur.st[i].X += shift
			}
		}
		indices := make([]int, len(ring))
		for i := range ring {
			indices[i] = u.add(ur.st[i], ring[i])
		}
		loops = append(loops, u.loop(indices))
	}

	if len(wrapping)%2 != 0 {
		return nil, cuterr.Invariant("%d rings wrap around the template, they cannot be paired into bands", len(wrapping))
	}
	sort.SliceStable(wrapping, func(i, j int) bool { return wrapping[i].meanH < wrapping[j].meanH })
	for i := 0; i < len(wrapping); i += 2 {
		loops = append(loops, u.loop(u.band(wrapping[i], wrapping[i+1])))
	}

	triangulator, err := capping.New(u.opts.Capper)
	if err != nil {
		return nil, err
	}
	forest := contour.Analyse(loops, geometry.NewVector3(0, 0, 1))
	tris, err := triangulator.Triangulate(forest)
	if err != nil {
		return nil, err
	}
	tris = u.splitAtCorners(tris)

	corners := make([]corner, len(u.points))
	for i := range u.points {
		corners[i] = u.corner(i)
	}
	for _, t := range tris {
		a, b, d := corners[t[0]], corners[t[1]], corners[t[2]]
		emit(facing, a, b, d)
		emit(away, a, d, b)
	}

	centers := forest.Centers()
	for i, c := range centers {
		centers[i] = u.tpl.Roll(geometry.NewVector2(c.X, c.Y))
	}
	return centers, nil
}

// band joins two wrapping rings into one polygon: the lower ring with
// increasing arc length, the upper one back. The ring start vertices are
// repeated one perimeter further along to close the seam.
func (u *unrolledCap) band(lower, upper unrolledRing) []int {
	perimeter := u.tpl.Length()
	run := func(r unrolledRing, increasing bool) []int {
		ids := r.ids
		if (r.total > 0) != increasing {
			ids = reversed(ids)
		}
		start := 0
		best := math.Inf(1)
		for i, id := range ids {
			if s := u.tpl.Unroll(u.table.Position(id)).X; s < best {
				start, best = i, s
			}
		}
		s := best
		if !increasing {
			s += perimeter
		}
		var out []int
		prev := best
		for n := 0; n <= len(ids); n++ {
			id := ids[(start+n)%len(ids)]
			st := u.tpl.Unroll(u.table.Position(id))
			if n > 0 {
				s += wrap(st.X-prev, perimeter)
				if n == len(ids) {
					// the seam repeat lands exactly one perimeter away
					s = best
					if increasing {
						s += perimeter
					}
				}
			}
			prev = st.X
			out = append(out, u.add(geometry.NewVector2(s, st.Y), id))
		}
		return out
	}
	return append(run(lower, true), run(upper, false)...)
}

// splitAtCorners cuts cap triangles at the arc lengths of template corners
// so that every triangle lies on a single flat face of the surface
func (u *unrolledCap) splitAtCorners(tris [][3]int) [][3]int {
	if len(u.points) == 0 {
		return tris
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range u.points {
		lo, hi = math.Min(lo, p.X), math.Max(hi, p.X)
	}

	var lines []float64
	first := 1
	if u.tpl.Closed {
		first = 0
	}
	for seg := first; seg < u.tpl.SegmentCount(); seg++ {
		s := u.tpl.SegmentStart(seg)
		if !u.tpl.Closed {
			if s > lo && s < hi {
				lines = append(lines, s)
			}
			continue
		}
		perimeter := u.tpl.Length()
		for k := math.Floor((lo-s)/perimeter) - 1; s+k*perimeter <= hi; k++ {
			if c := s + k*perimeter; c > lo && c < hi {
				lines = append(lines, c)
			}
		}
	}
	sort.Float64s(lines)

	for _, line := range lines {
		tris = u.splitAt(tris, line)
	}
	return tris
}

func (u *unrolledCap) splitAt(tris [][3]int, line float64) [][3]int {
	above := func(i int) bool { return u.points[i].X > line+u.eps }
	cache := make(map[[2]int]int)
	cut := func(i, j int) int {
		if i > j {
			i, j = j, i
		}
		if v, ok := cache[[2]int{i, j}]; ok {
			return v
		}
		a, b := i, j
		if !above(a) {
			a, b = b, a
		}
		pa, pb := u.points[a], u.points[b]
		v := b
		if math.Abs(pb.X-line) > u.eps {
			p := pa.Lerp(pb, (pa.X-line)/(pa.X-pb.X))
			p.X = line
			v = u.add(p, -1)
		}
		cache[[2]int{i, j}] = v
		return v
	}

	out := make([][3]int, 0, len(tris))
	keep := func(a, b, c int) {
		if a != b && b != c && a != c {
			out = append(out, [3]int{a, b, c})
		}
	}
	for _, tri := range tris {
		count := 0
		for _, i := range tri {
			if above(i) {
				count++
			}
		}
		if count == 0 || count == 3 {
			out = append(out, tri)
			continue
		}
		k := 0
		for i := range tri {
			if (count == 1) == above(tri[i]) {
				k = i
			}
		}
		a, b, c := tri[(k+1)%3], tri[(k+2)%3], tri[k]
		ea, eb := cut(a, c), cut(b, c)
		if ea == eb {
			keep(a, b, eb)
			continue
		}
		keep(a, b, eb)
		keep(a, eb, ea)
		keep(eb, c, ea)
	}
	return out
}

// corner resolves cap vertex i. Ring vertices keep their position, vertices
// added at corners are rolled onto the surface.
func (u *unrolledCap) corner(i int) corner {
	id := u.ids[i]
	if id < 0 {
		id = u.table.Intern(u.tpl.Roll(u.points[i]))
		u.ids[i] = id
	}
	c := corner{key: mesh.CapKey(id), pos: u.table.Position(id), id: id}
	switch {
	case u.opts.InnerCapUV != nil:
		c.uv = *u.opts.InnerCapUV
	case u.withUVs:
		c.uv = u.points[i]
	}
	return c
}

func reversed(ids []int) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
