package cut

import (
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// cutGap removes the slab of width opts.Gap around plane. Each side is
// clipped on its own offset plane and capped there.
func cutGap(m *mesh.Mesh, plane geometry.Plane, opts Options) (*Result, error) {
	half := opts.Gap / 2
	upper := plane.Shifted(half)
	// flipped so that the kept side is above in both clips
	lower := plane.Shifted(-half).Flipped()

	table := mesh.NewVertexTable(opts.WeldTolerance)
	positive := mesh.NewPartBuilder(mesh.SidePositive, m.HasUVs())
	negative := mesh.NewPartBuilder(mesh.SideNegative, m.HasUVs())

	res := &Result{}
	for i, v := range m.Vertices {
		if !upper.IsAbove(v) && !lower.IsAbove(v) {
			res.Removed = append(res.Removed, i)
		}
	}

	type side struct {
		plane   geometry.Plane
		builder *mesh.PartBuilder
		slicer  *slicer
		edges   *contour.Builder
	}
	sides := []*side{
		{plane: upper, builder: positive},
		{plane: lower, builder: negative},
	}
	for _, sd := range sides {
		sd.slicer = newSlicer(m, sd.plane, table)
		sd.edges = contour.NewBuilder()
		for t := 0; t < m.TriangleCount(); t++ {
			if err := sd.slicer.slice(t, partSink{sd.builder}, discard{}, sd.edges); err != nil {
				return nil, err
			}
		}
	}
	if positive.Empty() || negative.Empty() {
		out := missed(m, opts)
		out.Removed = res.Removed
		return out, nil
	}

	for _, sd := range sides {
		rings, err := sd.edges.Rings(opts.SelfConnectPartialRings, opts.IgnorePartialRings)
		if err != nil {
			return nil, err
		}
		c, err := newCapper(m, opts, table, plane)
		if err != nil {
			return nil, err
		}
		// the kept side lies above the clip plane, its cap faces down
		forest, err := c.fill(rings, sd.plane.Normal(), discard{}, partSink{sd.builder})
		if err != nil {
			return nil, err
		}
		res.Rings = append(res.Rings, ringPoints(rings, table)...)
		res.Centers = append(res.Centers, forest.Centers()...)
	}

	out := split(m, opts, positive.Build(), negative.Build())
	out.Rings, out.Centers, out.Removed = res.Rings, res.Centers, res.Removed
	return out, nil
}
