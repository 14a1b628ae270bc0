package main

import (
	"fmt"

	"github.com/philipparndt/gosplit/pkg/analysis"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/spf13/cobra"
)

var measureNeighbors int

var measureCmd = &cobra.Command{
	Use:   "measure <file> <x1,y1,z1> <x2,y2,z2>",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points given as x,y,z.
The nearest vertices of the model are looked up as well, which helps placing
a cutting plane on existing geometry.`,
	Args: cobra.ExactArgs(3),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().IntVarP(&measureNeighbors, "neighbors", "k", 1, "Number of nearest vertices to list per point")
}

func runMeasure(cmd *cobra.Command, args []string) {
	p1, err := parseVector(args[1])
	if err != nil {
		fail("first point: %v", err)
	}
	p2, err := parseVector(args[2])
	if err != nil {
		fail("second point: %v", err)
	}

	m := load(args[0]).Mesh
	index := analysis.NewVertexIndex(m)

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")

	_, nearest1, dist1 := index.Nearest(p1)
	_, nearest2, dist2 := index.Nearest(p2)

	for i, p := range []geometry.Vector3{p1, p2} {
		fmt.Printf("\nPoint %d: %s\n", i+1, analysis.FormatVector(p))
		for _, v := range index.NearestK(p, measureNeighbors) {
			fmt.Printf("  Nearest vertex #%d: %s (distance: %.6f)\n",
				v, analysis.FormatVector(m.Vertices[v]), m.Vertices[v].Distance(p))
		}
	}

	distance := analysis.DistanceBetweenPoints(p1, p2)
	fmt.Printf("\nDirect distance: %.6f units\n", distance)

	if index.Len() > 0 && (dist1 > 0 || dist2 > 0) {
		vertexDistance := analysis.DistanceBetweenPoints(nearest1, nearest2)
		fmt.Printf("Distance between nearest vertices: %.6f units\n", vertexDistance)
	}
}
