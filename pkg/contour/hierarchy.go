package contour

import (
	"math"
	"sort"

	"github.com/philipparndt/gosplit/pkg/geometry"
)

// Loop is a ring resolved to positions. Points[i] is the position of IDs[i].
type Loop struct {
	IDs    []int
	Points []geometry.Vector3
}

// Reversed returns the loop traversed in the opposite direction
func (l Loop) Reversed() Loop {
	n := len(l.IDs)
	out := Loop{IDs: make([]int, n), Points: make([]geometry.Vector3, n)}
	for i := 0; i < n; i++ {
		out.IDs[i] = l.IDs[n-1-i]
		out.Points[i] = l.Points[n-1-i]
	}
	return out
}

// LoopsOf resolves every ring of a set through position
func LoopsOf(rings *RingSet, position func(id int) geometry.Vector3) []Loop {
	loops := make([]Loop, rings.Len())
	for i := range loops {
		ids := append([]int(nil), rings.Ring(i)...)
		points := make([]geometry.Vector3, len(ids))
		for j, id := range ids {
			points[j] = position(id)
		}
		loops[i] = Loop{IDs: ids, Points: points}
	}
	return loops
}

// Forest is the containment hierarchy of the loops of one cap surface.
// Nodes keep the input order of the loops and link by index.
type Forest struct {
	normal geometry.Vector3
	nodes  []node
	roots  []int
}

type node struct {
	loop     Loop
	bbox     geometry.BoundingBox
	flat     []geometry.Vector2
	parent   int
	children []int
}

// Group is one filled region: an outer loop and the holes directly inside it
type Group struct {
	Outer  Loop
	Holes  []Loop
	Center geometry.Vector3
}

// CanContain reports whether a loop with box a sorts before one with box b.
// It is not a strict weak order: boxes that do not dominate each other both
// compare as "cannot contain", whatever their overlap.
func CanContain(a, b geometry.BoundingBox) bool {
	return a.Dominates(b)
}

// Analyse builds the containment forest of loops lying in the plane with
// the given normal
func Analyse(loops []Loop, normal geometry.Vector3) *Forest {
	f := &Forest{normal: normal}
	for _, l := range loops {
		f.nodes = append(f.nodes, node{
			loop:   l,
			bbox:   geometry.BoundsOf(l.Points),
			flat:   geometry.ProjectPolygon(l.Points, normal),
			parent: -1,
		})
	}

	order := make([]int, len(f.nodes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return CanContain(f.nodes[order[i]].bbox, f.nodes[order[j]].bbox)
	})

	for _, n := range order {
		f.insert(n)
	}
	return f
}

// Len returns the number of loops in the forest
func (f *Forest) Len() int { return len(f.nodes) }

// Roots returns the top-level loops
func (f *Forest) Roots() []int { return f.roots }

// Children returns the loops directly inside loop i
func (f *Forest) Children(i int) []int { return f.nodes[i].children }

// Parent returns the loop directly containing loop i, or -1
func (f *Forest) Parent(i int) int { return f.nodes[i].parent }

// Loop returns loop i
func (f *Forest) Loop(i int) Loop { return f.nodes[i].loop }

// Normal returns the plane normal the forest was analysed with
func (f *Forest) Normal() geometry.Vector3 { return f.normal }

// Centers returns the bounding box center of every top-level loop
func (f *Forest) Centers() []geometry.Vector3 {
	centers := make([]geometry.Vector3, len(f.roots))
	for i, r := range f.roots {
		centers[i] = f.nodes[r].bbox.Center()
	}
	return centers
}

// Reduce folds every top-level loop and all its descendants into one
// self-touching loop. It returns one loop and one bounding box center per
// top-level node.
func (f *Forest) Reduce() ([]Loop, []geometry.Vector3) {
	loops := make([]Loop, len(f.roots))
	for i, r := range f.roots {
		loops[i] = f.fold(r)
	}
	return loops, f.Centers()
}

// Groups returns the filled regions: every loop at even depth with its
// children as holes. Loops nested inside holes start their own group.
func (f *Forest) Groups() []Group {
	var groups []Group
	var walk func(outer int)
	walk = func(outer int) {
		g := Group{Outer: f.nodes[outer].loop, Center: f.nodes[outer].bbox.Center()}
		for _, hole := range f.nodes[outer].children {
			g.Holes = append(g.Holes, f.nodes[hole].loop)
		}
		groups = append(groups, g)
		for _, hole := range f.nodes[outer].children {
			for _, island := range f.nodes[hole].children {
				walk(island)
			}
		}
	}
	for _, r := range f.roots {
		walk(r)
	}
	return groups
}

// Joined bridges every hole into the outer loop, giving one self-touching
// loop for the region
func (g Group) Joined(normal geometry.Vector3) Loop {
	loop := g.Outer
	for _, hole := range g.Holes {
		loop = Join(loop, hole, normal)
	}
	return loop
}

func (f *Forest) insert(n int) {
	for _, r := range f.roots {
		if f.contains(r, n) {
			f.attach(r, n)
			return
		}
	}
	f.roots = append(f.roots, n)
}

func (f *Forest) attach(parent, n int) {
	for _, c := range f.nodes[parent].children {
		if f.contains(c, n) {
			f.attach(c, n)
			return
		}
	}
	f.nodes[parent].children = append(f.nodes[parent].children, n)
	f.nodes[n].parent = parent
}

// contains reports whether loop a strictly contains loop b: boxes first,
// then b's first vertex against a's polygon
func (f *Forest) contains(a, b int) bool {
	if !f.nodes[a].bbox.StrictlyContains(f.nodes[b].bbox) {
		return false
	}
	return geometry.PointInPolygon(f.nodes[b].flat[0], f.nodes[a].flat)
}

func (f *Forest) fold(i int) Loop {
	loop := f.nodes[i].loop
	for _, c := range f.nodes[i].children {
		loop = Join(loop, f.fold(c), f.normal)
	}
	return loop
}

// Join splices child into parent at their nearest vertex pair. The child is
// traversed against the parent's winding, so the result encodes a hole:
//
//	parent[:i+1] + child[j:] + child[:j+1] + parent[i] + parent[i+1:]
func Join(parent, child Loop, normal geometry.Vector3) Loop {
	pa := geometry.SignedArea(geometry.ProjectPolygon(parent.Points, normal))
	ca := geometry.SignedArea(geometry.ProjectPolygon(child.Points, normal))
	if (pa > 0) == (ca > 0) {
		child = child.Reversed()
	}

	bi, bj := 0, 0
	best := math.Inf(1)
	for i, p := range parent.Points {
		for j, c := range child.Points {
			if d := p.Sub(c).LengthSquared(); d < best {
				bi, bj, best = i, j, d
			}
		}
	}

	size := len(parent.IDs) + len(child.IDs) + 2
	out := Loop{IDs: make([]int, 0, size), Points: make([]geometry.Vector3, 0, size)}
	add := func(l Loop, from, to int) {
		out.IDs = append(out.IDs, l.IDs[from:to]...)
		out.Points = append(out.Points, l.Points[from:to]...)
	}
	add(parent, 0, bi+1)
	add(child, bj, len(child.IDs))
	add(child, 0, bj+1)
	add(parent, bi, len(parent.IDs))
	return out
}
