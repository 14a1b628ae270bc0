package main

import (
	"fmt"

	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/philipparndt/gosplit/pkg/primitive"
	"github.com/philipparndt/gosplit/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	primASCII    bool
	primSize     float64
	primRadius   float64
	primHeight   float64
	primMinor    float64
	primSegments int
	primSides    int
	primCells    int
)

var primitiveCmd = &cobra.Command{
	Use:   "primitive <cube|torus|grid|sphere|box|cylinder> [out.stl]",
	Short: "Write a test shape as STL",
	Long: `Generate a shape to try cuts on. cube, torus and grid are built exactly; sphere,
box and cylinder are tessellated from signed distance functions. grid is an
open surface.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"cube", "torus", "grid", "sphere", "box", "cylinder"},
	Run:       runPrimitive,
}

func init() {
	rootCmd.AddCommand(primitiveCmd)

	f := primitiveCmd.Flags()
	f.BoolVar(&primASCII, "ascii", false, "Write ASCII STL instead of binary")
	f.Float64Var(&primSize, "size", 1, "Edge length of cube, box and grid")
	f.Float64Var(&primRadius, "radius", 2, "Radius of sphere and cylinder, major radius of torus")
	f.Float64Var(&primHeight, "height", 2, "Height of the cylinder")
	f.Float64Var(&primMinor, "minor", 0.5, "Minor radius of the torus")
	f.IntVar(&primSegments, "segments", 24, "Torus segments around the axis")
	f.IntVar(&primSides, "sides", 12, "Torus segments around the tube, grid cells per side")
	f.IntVar(&primCells, "cells", 40, "Tessellation cells along the longest side")
}

func runPrimitive(cmd *cobra.Command, args []string) {
	shape := args[0]
	m, err := buildPrimitive(shape)
	if err != nil {
		fail("%v", err)
	}

	output := shape + ".stl"
	if len(args) == 2 {
		output = args[1]
	}
	format := stl.FormatBinary
	if primASCII {
		format = stl.FormatASCII
	}
	if err := stl.WriteFile(output, stl.FromMesh(shape, m), format); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Wrote %s: %d triangles, %d vertices\n", output, m.TriangleCount(), len(m.Vertices))
}

func buildPrimitive(shape string) (*mesh.Mesh, error) {
	switch shape {
	case "cube":
		return primitive.Cube(primSize), nil
	case "torus":
		return primitive.Torus(primRadius, primMinor, primSegments, primSides), nil
	case "grid":
		return primitive.Grid(primSize, primSides), nil
	case "sphere":
		return primitive.Sphere(primRadius, primCells)
	case "box":
		return primitive.Box(geometry.NewVector3(primSize, primSize, primSize), primCells)
	case "cylinder":
		return primitive.Cylinder(primHeight, primRadius, primCells)
	}
	return nil, fmt.Errorf("unknown shape %q", shape)
}
