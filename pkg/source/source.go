// Package source loads input meshes from STL or OpenSCAD files.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/philipparndt/gosplit/pkg/openscad"
	"github.com/philipparndt/gosplit/pkg/stl"
)

// Source is a loaded input mesh
type Source struct {
	Path  string
	Model *stl.Model
	Mesh  *mesh.Mesh
	// Dependencies lists every file the mesh was built from, the input
	// itself included
	Dependencies []string
}

// Name returns the model name, falling back to the file name
func (s *Source) Name() string {
	if s.Model != nil && s.Model.Name != "" {
		return s.Model.Name
	}
	return strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
}

// IsOpenSCAD reports whether path is rendered with OpenSCAD
func IsOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load reads path and welds it into an indexed mesh. OpenSCAD files are
// rendered first.
func Load(ctx context.Context, path string, tolerance float64) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	src := &Source{Path: abs}
	if IsOpenSCAD(abs) {
		renderer := openscad.NewRenderer(filepath.Dir(abs))
		if src.Dependencies, err = renderer.ResolveDependencies(abs); err != nil {
			return nil, err
		}
		if src.Model, err = renderer.Render(ctx, abs); err != nil {
			return nil, err
		}
	} else {
		if src.Model, err = stl.Parse(abs); err != nil {
			return nil, err
		}
		src.Dependencies = []string{abs}
	}

	src.Mesh = src.Model.ToMesh(tolerance)
	if err := src.Mesh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}
