package cut

import (
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

func cutPlane(m *mesh.Mesh, plane geometry.Plane, opts Options) (*Result, error) {
	table := mesh.NewVertexTable(opts.WeldTolerance)
	s := newSlicer(m, plane, table)
	edges := contour.NewBuilder()

	positive := mesh.NewPartBuilder(mesh.SidePositive, m.HasUVs())
	negative := mesh.NewPartBuilder(mesh.SideNegative, m.HasUVs())
	for t := 0; t < m.TriangleCount(); t++ {
		if err := s.slice(t, partSink{positive}, partSink{negative}, edges); err != nil {
			return nil, err
		}
	}
	if positive.Empty() || negative.Empty() {
		return missed(m, opts), nil
	}

	rings, err := edges.Rings(opts.SelfConnectPartialRings, opts.IgnorePartialRings)
	if err != nil {
		return nil, err
	}

	c, err := newCapper(m, opts, table, plane)
	if err != nil {
		return nil, err
	}
	forest, err := c.fill(rings, plane.Normal(), partSink{negative}, partSink{positive})
	if err != nil {
		return nil, err
	}

	res := split(m, opts, positive.Build(), negative.Build())
	res.Rings = ringPoints(rings, table)
	res.Centers = forest.Centers()
	return res, nil
}
