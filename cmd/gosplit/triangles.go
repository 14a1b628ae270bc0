package main

import (
	"fmt"
	"sort"

	"github.com/philipparndt/gosplit/pkg/analysis"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	triCount      int
	triLargest    bool
	triSmallest   bool
	triDegenerate float64
)

type triangleInfo struct {
	Index     int
	Area      float64
	Perimeter float64
	Vertices  string
}

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles in a model",
	Long:  "Display information about triangles including area, perimeter, and vertex positions.",
	Args:  cobra.ExactArgs(1),
	Run:   runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.Flags().Float64Var(&triDegenerate, "degenerate", 0, "Only show triangles with an area below this value")
}

func runTriangles(cmd *cobra.Command, args []string) {
	m := load(args[0]).Mesh

	triangles := lo.Map(lo.Range(m.TriangleCount()), func(i int, _ int) triangleInfo {
		tri := m.Triangle(i)
		return triangleInfo{
			Index:     i,
			Area:      tri.Area(),
			Perimeter: tri.Perimeter(),
			Vertices: fmt.Sprintf("%s, %s, %s",
				analysis.FormatVector(tri.V1),
				analysis.FormatVector(tri.V2),
				analysis.FormatVector(tri.V3)),
		}
	})
	if len(triangles) == 0 {
		fmt.Println("Model has no triangles.")
		return
	}

	areas := lo.Map(triangles, func(t triangleInfo, _ int) float64 { return t.Area })
	totalArea := lo.Sum(areas)
	minArea := lo.Min(areas)
	maxArea := lo.Max(areas)
	total := len(triangles)

	if triDegenerate > 0 {
		triangles = lo.Filter(triangles, func(t triangleInfo, _ int) bool { return t.Area < triDegenerate })
	}

	if triLargest {
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area > triangles[j].Area
		})
	} else if triSmallest {
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area < triangles[j].Area
		})
	}

	var title string
	switch {
	case triDegenerate > 0:
		title = fmt.Sprintf("Triangles below %.6f square units (found %d)", triDegenerate, len(triangles))
	case triLargest:
		title = fmt.Sprintf("Top %d Largest Triangles", triCount)
	case triSmallest:
		title = fmt.Sprintf("Top %d Smallest Triangles", triCount)
	default:
		title = fmt.Sprintf("First %d Triangles", triCount)
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total triangles: %d\n", total)
	fmt.Printf("Total surface area: %.6f square units\n", totalArea)
	fmt.Printf("Min triangle area: %.6f square units\n", minArea)
	fmt.Printf("Max triangle area: %.6f square units\n", maxArea)
	fmt.Printf("Avg triangle area: %.6f square units\n\n", totalArea/float64(total))

	for i := 0; i < triCount && i < len(triangles); i++ {
		tri := triangles[i]
		fmt.Printf("Triangle #%d:\n", tri.Index)
		fmt.Printf("  Area: %.6f square units\n", tri.Area)
		fmt.Printf("  Perimeter: %.6f units\n", tri.Perimeter)
		fmt.Printf("  Vertices: %s\n\n", tri.Vertices)
	}
}
