package analysis

import (
	"github.com/philipparndt/gosplit/pkg/cut"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/samber/lo"
)

// PartReport summarizes one part of a cut
type PartReport struct {
	Side      mesh.Side
	Triangles int
	Vertices  int
	Volume    float64
	Closed    bool
	Bounds    geometry.BoundingBox
}

// RingReport describes one boundary ring. Circle is nil when no circle can
// be fitted, for example to a straight chain.
type RingReport struct {
	Points    int
	Perimeter float64
	Circle    *geometry.CircleFit
}

// CutReport summarizes a cut result
type CutReport struct {
	Outcome cut.Outcome
	Parts   []PartReport
	Rings   []RingReport
	Centers []geometry.Vector3
	Removed int
}

// ReportCut measures every part and ring of res. normal is the cutting
// plane normal used to fit circles to the rings.
func ReportCut(res *cut.Result, normal geometry.Vector3, tolerance float64) CutReport {
	report := CutReport{
		Outcome: res.Outcome,
		Centers: res.Centers,
		Removed: len(res.Removed),
	}
	report.Parts = lo.Map(res.Parts, func(p *mesh.Part, _ int) PartReport {
		m := p.Mesh()
		return PartReport{
			Side:      p.Side,
			Triangles: p.TriangleCount(),
			Vertices:  len(p.Vertices),
			Volume:    Volume(m),
			Closed:    IsClosed(m, tolerance),
			Bounds:    m.BoundingBox(),
		}
	})
	report.Rings = lo.Map(res.Rings, func(ring []geometry.Vector3, _ int) RingReport {
		r := RingReport{Points: len(ring), Perimeter: Perimeter(ring)}
		if fit, err := geometry.FitCircle(ring, normal); err == nil {
			r.Circle = fit
		}
		return r
	})
	return report
}

// Perimeter returns the length of a closed ring
func Perimeter(ring []geometry.Vector3) float64 {
	return lo.SumBy(lo.Range(len(ring)), func(i int) float64 {
		return ring[i].Distance(ring[(i+1)%len(ring)])
	})
}

// TotalVolume sums the part volumes
func (r CutReport) TotalVolume() float64 {
	return lo.SumBy(r.Parts, func(p PartReport) float64 { return p.Volume })
}

// AllClosed reports whether every part is watertight
func (r CutReport) AllClosed() bool {
	return lo.EveryBy(r.Parts, func(p PartReport) bool { return p.Closed })
}
