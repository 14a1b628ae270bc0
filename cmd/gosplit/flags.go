package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
)

// parseCoords parses "x,y,z"
func parseCoords(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("expected x,y,z, got %q", s)
	}
	coords := make([]float64, 3)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q in %q", f, s)
		}
		coords[i] = v
	}
	return coords, nil
}

func parseVector(s string) (geometry.Vector3, error) {
	c, err := parseCoords(s)
	if err != nil {
		return geometry.Vector3{}, err
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// partFileName names the output file of the index-th part on a side.
// Unassigned parts come from a cut that missed.
func partFileName(name string, side mesh.Side, index int) string {
	switch side {
	case mesh.SidePositive:
		return fmt.Sprintf("%s_pos_%d.stl", name, index+1)
	case mesh.SideNegative:
		return fmt.Sprintf("%s_neg_%d.stl", name, index+1)
	}
	return fmt.Sprintf("%s_%d.stl", name, index+1)
}

// absPath resolves a command line path against the working directory so
// job files in other directories do not reinterpret it
func absPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return filepath.Abs(path)
}
