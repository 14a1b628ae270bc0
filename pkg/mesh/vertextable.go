package mesh

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/geometry"
)

// DefaultWeldTolerance is the distance under which two positions are the
// same vertex for stitching
const DefaultWeldTolerance = 1e-7

// VertexTable interns positions, mapping every position within tolerance of
// an earlier one to the earlier id. A tolerance <= 0 interns by exact value.
//
// The table is an epsilon-quantized spatial hash: each id lives in the cell
// floor(p/tolerance) and lookups scan the 27 surrounding cells.
type VertexTable struct {
	tolerance float64
	positions []geometry.Vector3
	exact     map[geometry.Vector3]int
	cells     map[cell][]int
}

type cell struct{ x, y, z int64 }

// NewVertexTable creates an empty table
func NewVertexTable(tolerance float64) *VertexTable {
	t := &VertexTable{tolerance: tolerance}
	if tolerance <= 0 {
		t.exact = make(map[geometry.Vector3]int)
	} else {
		t.cells = make(map[cell][]int)
	}
	return t
}

// Tolerance returns the weld distance
func (t *VertexTable) Tolerance() float64 {
	return t.tolerance
}

// Intern returns the id for p, creating one when no known position is
// within tolerance
func (t *VertexTable) Intern(p geometry.Vector3) int {
	if id, ok := t.Find(p); ok {
		return id
	}
	id := len(t.positions)
	t.positions = append(t.positions, p)
	if t.exact != nil {
		t.exact[p] = id
	} else {
		c := t.cellOf(p)
		t.cells[c] = append(t.cells[c], id)
	}
	return id
}

// Find returns the id of a known position within tolerance of p
func (t *VertexTable) Find(p geometry.Vector3) (int, bool) {
	if t.exact != nil {
		id, ok := t.exact[p]
		return id, ok
	}

	c := t.cellOf(p)
	best, bestDist := -1, math.Inf(1)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for dz := int64(-1); dz <= 1; dz++ {
				for _, id := range t.cells[cell{c.x + dx, c.y + dy, c.z + dz}] {
					d := t.positions[id].Distance(p)
					if d <= t.tolerance && (d < bestDist || (d == bestDist && id < best)) {
						best, bestDist = id, d
					}
				}
			}
		}
	}
	return best, best >= 0
}

// Position returns the first position interned under id
func (t *VertexTable) Position(id int) geometry.Vector3 {
	return t.positions[id]
}

// Positions returns the positions of several ids
func (t *VertexTable) Positions(ids []int) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(ids))
	for i, id := range ids {
		out[i] = t.positions[id]
	}
	return out
}

// Len returns the number of distinct positions
func (t *VertexTable) Len() int {
	return len(t.positions)
}

func (t *VertexTable) cellOf(p geometry.Vector3) cell {
	return cell{
		x: int64(math.Floor(p.X / t.tolerance)),
		y: int64(math.Floor(p.Y / t.tolerance)),
		z: int64(math.Floor(p.Z / t.tolerance)),
	}
}
