package cut

import (
	"math"

	"github.com/philipparndt/gosplit/pkg/capping"
	"github.com/philipparndt/gosplit/pkg/cuterr"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// Options controls a cut. The zero value is not the default, use
// DefaultOptions.
type Options struct {
	// PolySeparate splits every side into its connected islands
	PolySeparate bool `yaml:"poly_separate" toml:"poly_separate"`
	// AllowSingleResult returns the unmodified mesh instead of reporting
	// that the surface missed it
	AllowSingleResult bool `yaml:"allow_single_result" toml:"allow_single_result"`
	// SelfConnectPartialRings closes open boundary chains on themselves
	SelfConnectPartialRings bool `yaml:"self_connect_partial_rings" toml:"self_connect_partial_rings"`
	// IgnorePartialRings drops open boundary chains instead of failing
	IgnorePartialRings bool `yaml:"ignore_partial_rings" toml:"ignore_partial_rings"`

	// Gap removes a slab of this width centered on the plane
	Gap float64 `yaml:"gap" toml:"gap"`
	// MaxCutDistance limits the cut to the rings within this distance of
	// OriginPoint. Infinity cuts everything, zero only rings through the
	// origin.
	MaxCutDistance float64          `yaml:"max_cut_distance" toml:"max_cut_distance"`
	OriginPoint    geometry.Vector3 `yaml:"origin_point" toml:"origin_point"`

	// InnerCapUV is the texture coordinate of every cap vertex. When nil
	// and the mesh has UVs, caps get a planar projection.
	InnerCapUV *geometry.Vector2 `yaml:"inner_cap_uv" toml:"inner_cap_uv"`

	WeldTolerance float64        `yaml:"weld_tolerance" toml:"weld_tolerance"`
	Capper        capping.Method `yaml:"capper" toml:"capper"`
}

// DefaultOptions returns the options of a plain full cut
func DefaultOptions() Options {
	return Options{
		MaxCutDistance: math.Inf(1),
		WeldTolerance:  mesh.DefaultWeldTolerance,
		Capper:         capping.MethodEarClip,
	}
}

// Partial reports whether the cut is limited by MaxCutDistance
func (o Options) Partial() bool {
	return !math.IsInf(o.MaxCutDistance, 1)
}

// Validate reports combinations the engine cannot honour as
// cuterr.ErrInvalidOptions
func (o Options) Validate() error {
	if o.Gap < 0 || math.IsNaN(o.Gap) || math.IsInf(o.Gap, 0) {
		return cuterr.InvalidOptions("gap must be a finite non-negative width, got %v", o.Gap)
	}
	if o.WeldTolerance < 0 || math.IsNaN(o.WeldTolerance) {
		return cuterr.InvalidOptions("weld tolerance must not be negative, got %v", o.WeldTolerance)
	}
	if math.IsNaN(o.MaxCutDistance) || o.MaxCutDistance < 0 {
		return cuterr.InvalidOptions("max cut distance must not be negative, got %v", o.MaxCutDistance)
	}
	if o.Partial() {
		if !o.OriginPoint.IsFinite() {
			return cuterr.InvalidOptions("partial cut needs a finite origin point, got %v", o.OriginPoint)
		}
		if o.Gap > 0 {
			return cuterr.InvalidOptions("gap and partial cuts cannot be combined")
		}
	}
	if _, err := capping.New(o.Capper); err != nil {
		return err
	}
	return nil
}
