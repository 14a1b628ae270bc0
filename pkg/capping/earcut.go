package capping

import (
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/rclancey/earcut"
)

// earcutGroup triangulates an outline with holes using the earcut port.
// Triangles are returned as vertex ids, counter-clockwise about normal.
func earcutGroup(g contour.Group, normal geometry.Vector3) ([][3]int, error) {
	loops := append([]contour.Loop{g.Outer}, g.Holes...)

	var coords []float64
	var ids []int
	var holeIndices []int
	for n, loop := range loops {
		if n > 0 {
			holeIndices = append(holeIndices, len(ids))
		}
		for i, p := range geometry.ProjectPolygon(loop.Points, normal) {
			coords = append(coords, p.X, p.Y)
			ids = append(ids, loop.IDs[i])
		}
	}

	indices, err := earcut.Earcut(coords, holeIndices, 2)
	if err != nil {
		return nil, cuterr.Invariant("earcut failed on %d vertices: %v", len(ids), err)
	}
	if len(indices)%3 != 0 {
		return nil, cuterr.Invariant("earcut returned %d indices", len(indices))
	}

	at := func(i int) geometry.Vector2 {
		return geometry.NewVector2(coords[2*i], coords[2*i+1])
	}
	tris := make([][3]int, 0, len(indices)/3)
	for t := 0; t < len(indices); t += 3 {
		i, j, k := indices[t], indices[t+1], indices[t+2]
		// earcut does not promise a winding
		if at(j).Sub(at(i)).Cross(at(k).Sub(at(i))) < 0 {
			j, k = k, j
		}
		tris = append(tris, [3]int{ids[i], ids[j], ids[k]})
	}
	return tris, nil
}
