package cut

import (
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// Surface is a cutting surface. Implementations live in this package:
// PlaneSurface and TemplateSurface.
type Surface interface {
	cut(m *mesh.Mesh, opts Options) (*Result, error)
}

// PlaneSurface cuts along a plane. Parts on the side the normal points to
// are positive.
type PlaneSurface struct {
	Plane geometry.Plane
	// LocalToWorld, when set, places the mesh in the space of Plane.
	// The cut then runs in the mesh's local space.
	LocalToWorld *geometry.Transform
}

// NewPlaneSurface cuts along the plane through point with the given normal
func NewPlaneSurface(normal, point geometry.Vector3) (PlaneSurface, error) {
	p, err := geometry.NewPlane(normal, point)
	if err != nil {
		return PlaneSurface{}, err
	}
	return PlaneSurface{Plane: p}, nil
}

func (s PlaneSurface) local() geometry.Plane {
	if s.LocalToWorld == nil {
		return s.Plane
	}
	return s.Plane.ToLocal(*s.LocalToWorld)
}

func (s PlaneSurface) cut(m *mesh.Mesh, opts Options) (*Result, error) {
	plane := s.local()
	switch {
	case opts.Gap > 0:
		return cutGap(m, plane, opts)
	case opts.Partial():
		return cutPartial(m, plane, opts)
	}
	return cutPlane(m, plane, opts)
}

// TemplateSurface cuts along a template extruded along its normal. Parts
// outside a counter-clockwise closed template are positive.
type TemplateSurface struct {
	Template *geometry.Template
}

func (s TemplateSurface) cut(m *mesh.Mesh, opts Options) (*Result, error) {
	return cutTemplate(m, s.Template, opts)
}
