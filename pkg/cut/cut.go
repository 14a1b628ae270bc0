// Package cut splits triangle meshes along planes and extruded templates
// into closed parts.
package cut

import (
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// Cut divides m along surface. The mesh is not modified. A surface that
// misses the mesh is reported through Result.Outcome, not as an error.
//
// Errors wrap one of the cuterr sentinels.
func Cut(m *mesh.Mesh, surface Surface, opts Options) (*Result, error) {
	if m == nil {
		return nil, cuterr.Malformed("mesh is nil")
	}
	if surface == nil {
		return nil, cuterr.InvalidOptions("no cutting surface")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return surface.cut(m, opts)
}
