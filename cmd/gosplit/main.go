package main

import (
	"context"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/philipparndt/gosplit/pkg/source"
	"github.com/philipparndt/gosplit/version"
	"github.com/spf13/cobra"
)

var (
	noColor bool
	au      aurora.Aurora = aurora.NewAurora(true)
)

var rootCmd = &cobra.Command{
	Use:   "gosplit",
	Short: "Mesh splitting tool",
	Long: `GoSplit cuts triangle meshes from STL and OpenSCAD files along a plane or an
extruded template, caps the cut faces and writes the resulting parts.`,
	Version: version.GetVersion(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		au = aurora.NewAurora(!noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// fail prints a colored error and exits
func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", au.Red("Error:"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

// load reads an STL or OpenSCAD file or exits
func load(path string) *source.Source {
	src, err := source.Load(context.Background(), path, mesh.DefaultWeldTolerance)
	if err != nil {
		fail("failed to load %s: %v", path, err)
	}
	return src
}
