package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gosplit/pkg/analysis"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/spf13/cobra"
)

var (
	checkTolerance float64
	checkCount     int
)

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Check that models are closed",
	Long: `Check every file for open edges. A closed mesh can be split with caps; an open
one needs --self-connect or --ignore-partial. Exits with status 1 if any file
is open.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Float64Var(&checkTolerance, "tolerance", mesh.DefaultWeldTolerance, "Vertex weld tolerance")
	checkCmd.Flags().IntVarP(&checkCount, "count", "n", 5, "Number of open edges to list per file")
}

func runCheck(cmd *cobra.Command, args []string) {
	open := 0
	for _, path := range args {
		src := load(path)
		edges := analysis.OpenEdges(src.Mesh, checkTolerance)
		if len(edges) == 0 {
			fmt.Printf("%s   %s\n", au.Green("OK"), path)
			continue
		}

		open++
		fmt.Printf("%s %s (%d open edges)\n", au.Red("OPEN"), path, len(edges))
		for i, e := range edges {
			if i == checkCount {
				fmt.Printf("  ... %d more\n", len(edges)-checkCount)
				break
			}
			fmt.Printf("  %s -> %s\n", analysis.FormatVector(e.From), analysis.FormatVector(e.To))
		}
	}
	if open > 0 {
		os.Exit(1)
	}
}
