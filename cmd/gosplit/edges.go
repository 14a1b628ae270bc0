package main

import (
	"fmt"
	"io"

	"github.com/philipparndt/gosplit/pkg/analysis"
	"github.com/philipparndt/gosplit/pkg/cut"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	edgesCount     int
	edgesSort      string
	edgesOpen      bool
	edgesRing      string
	edgesRingPoint string
	edgesMinLength float64
	edgesMaxLength float64
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "List and measure the edges of a model or of a cut",
	Long: `List the edges of a model, its open boundary edges (--open) or the ring edges a
plane cut would produce (--ring). Short ring edges point at slivers the cut
will leave in the caps.`,
	Args: cobra.ExactArgs(1),
	Run:  runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	f := edgesCmd.Flags()
	f.IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	f.StringVar(&edgesSort, "sort", "", "Order by length: longest or shortest")
	f.BoolVar(&edgesOpen, "open", false, "List boundary edges without a matching opposite edge")
	f.StringVar(&edgesRing, "ring", "", "List the cut ring edges of the plane with this normal (x,y,z)")
	f.StringVar(&edgesRingPoint, "ring-point", "0,0,0", "Point on the --ring plane as x,y,z")
	f.Float64Var(&edgesMinLength, "min", 0, "Minimum edge length")
	f.Float64Var(&edgesMaxLength, "max", 0, "Maximum edge length, 0 for no limit")

	edgesCmd.MarkFlagsMutuallyExclusive("open", "ring")
}

// edgeListing is what the edges command prints. Total counts the edges
// before filtering.
type edgeListing struct {
	Title string
	Total int
	Edges []analysis.EdgeInfo
}

func runEdges(cmd *cobra.Command, args []string) {
	src := load(args[0])

	listing, err := listEdges(src.Mesh)
	if err != nil {
		fail("%v", err)
	}
	printEdges(cmd.OutOrStdout(), listing, edgesCount)
}

// listEdges selects the edges named by the flags, filtered by length and
// sorted
func listEdges(m *mesh.Mesh) (*edgeListing, error) {
	listing := &edgeListing{}
	switch {
	case edgesRing != "":
		normal, err := parseVector(edgesRing)
		if err != nil {
			return nil, err
		}
		point, err := parseVector(edgesRingPoint)
		if err != nil {
			return nil, err
		}
		surface, err := cut.NewPlaneSurface(normal, point)
		if err != nil {
			return nil, err
		}
		listing.Title = "Cut ring edges"
		if listing.Edges, err = ringEdges(m, surface); err != nil {
			return nil, err
		}
	case edgesOpen:
		listing.Title = "Open edges"
		listing.Edges = lo.Map(analysis.OpenEdges(m, mesh.DefaultWeldTolerance), func(e analysis.Edge, _ int) analysis.EdgeInfo {
			return analysis.EdgeInfo{Start: e.From, End: e.To, Length: e.From.Distance(e.To), TriangleID: -1}
		})
	default:
		listing.Title = "Model edges"
		listing.Edges = analysis.AnalyzeMesh(m).AllEdges
	}
	listing.Total = len(listing.Edges)

	edges := analysis.FindEdgesByLength(listing.Edges, edgesMinLength, edgesMaxLength)
	switch edgesSort {
	case "":
	case "longest":
		edges = analysis.FindLongestEdges(edges, len(edges))
	case "shortest":
		edges = analysis.FindShortestEdges(edges, len(edges))
	default:
		return nil, fmt.Errorf("unknown edge order %q (use longest or shortest)", edgesSort)
	}
	listing.Edges = edges
	return listing, nil
}

// ringEdges cuts m without writing anything and returns the segments of
// every boundary ring
func ringEdges(m *mesh.Mesh, surface cut.Surface) ([]analysis.EdgeInfo, error) {
	opts := cut.DefaultOptions()
	opts.IgnorePartialRings = true
	res, err := cut.Cut(m, surface, opts)
	if err != nil {
		return nil, err
	}

	var edges []analysis.EdgeInfo
	for r, ring := range res.Rings {
		for i, start := range ring {
			end := ring[(i+1)%len(ring)]
			edges = append(edges, analysis.EdgeInfo{Start: start, End: end, Length: start.Distance(end), TriangleID: -1, Ring: r + 1})
		}
	}
	return edges, nil
}

func printEdges(out io.Writer, listing *edgeListing, count int) {
	shown := listing.Edges
	if len(shown) > count {
		shown = shown[:count]
	}

	fmt.Fprintf(out, "%s (%d of %d shown, %d total)\n", listing.Title, len(shown), len(listing.Edges), listing.Total)
	fmt.Fprintln(out, "====================")
	if len(listing.Edges) > 0 {
		lengths := lo.Map(listing.Edges, func(e analysis.EdgeInfo, _ int) float64 { return e.Length })
		fmt.Fprintf(out, "Min edge length: %.6f units\n", lo.Min(lengths))
		fmt.Fprintf(out, "Max edge length: %.6f units\n", lo.Max(lengths))
		fmt.Fprintf(out, "Avg edge length: %.6f units\n\n", lo.Sum(lengths)/float64(len(lengths)))
	}
	if len(shown) == 0 {
		fmt.Fprintln(out, "No edges found matching the criteria.")
		return
	}

	fmt.Fprintf(out, "%-6s %-5s %-35s %-35s %-15s\n", "Index", "Ring", "Start", "End", "Length")
	for i, e := range shown {
		ring := "-"
		if e.Ring > 0 {
			ring = fmt.Sprint(e.Ring)
		}
		fmt.Fprintf(out, "%-6d %-5s %-35s %-35s %-15.6f\n",
			i+1, ring, analysis.FormatVector(e.Start), analysis.FormatVector(e.End), e.Length)
	}
}
