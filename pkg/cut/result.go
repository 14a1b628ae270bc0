package cut

import (
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// Outcome tells what a cut produced
type Outcome int

const (
	// OutcomeSplit means the mesh was divided and both sides are non-empty
	OutcomeSplit Outcome = iota
	// OutcomeNoIntersection means the surface missed the mesh
	OutcomeNoIntersection
	// OutcomeSingle means the surface missed and the mesh is returned as is
	OutcomeSingle
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSplit:
		return "split"
	case OutcomeNoIntersection:
		return "no intersection"
	case OutcomeSingle:
		return "single"
	}
	return "unknown"
}

// Result holds the parts of a cut. Positive parts come before negative
// ones.
type Result struct {
	Outcome Outcome
	Parts   []*mesh.Part
	// Rings are the boundary loops of the cut, for highlighting
	Rings [][]geometry.Vector3
	// Centers holds one bounding box center per top-level cap region
	Centers []geometry.Vector3
	// Removed lists the input vertices inside the gap slab, in ascending
	// order
	Removed []int
}

// Side returns the parts on side s
func (r *Result) Side(s mesh.Side) []*mesh.Part {
	var parts []*mesh.Part
	for _, p := range r.Parts {
		if p.Side == s {
			parts = append(parts, p)
		}
	}
	return parts
}

func missed(m *mesh.Mesh, opts Options) *Result {
	if !opts.AllowSingleResult {
		return &Result{Outcome: OutcomeNoIntersection}
	}
	whole := m.Clone()
	part := &mesh.Part{
		Vertices: whole.Vertices,
		Indices:  whole.Indices,
		UVs:      whole.UVs,
		Origin:   make(map[int]int, len(whole.Vertices)),
		Side:     mesh.SideUnassigned,
	}
	for i := range whole.Vertices {
		part.Origin[i] = i
	}
	return &Result{Outcome: OutcomeSingle, Parts: []*mesh.Part{part}}
}

// split assembles the result of a cut into one positive and one negative
// part. An empty side means the surface missed.
func split(m *mesh.Mesh, opts Options, positive, negative *mesh.Part) *Result {
	if positive.TriangleCount() == 0 || negative.TriangleCount() == 0 {
		return missed(m, opts)
	}
	res := &Result{Outcome: OutcomeSplit}
	for _, p := range []*mesh.Part{positive, negative} {
		if opts.PolySeparate {
			res.Parts = append(res.Parts, mesh.Separate(p, opts.WeldTolerance)...)
		} else {
			res.Parts = append(res.Parts, p)
		}
	}
	return res
}
