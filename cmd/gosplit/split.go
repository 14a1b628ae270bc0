package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/philipparndt/gosplit/pkg/analysis"
	"github.com/philipparndt/gosplit/pkg/capping"
	"github.com/philipparndt/gosplit/pkg/config"
	"github.com/philipparndt/gosplit/pkg/cut"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/philipparndt/gosplit/pkg/mesh"
	"github.com/philipparndt/gosplit/pkg/preview"
	"github.com/philipparndt/gosplit/pkg/source"
	"github.com/philipparndt/gosplit/pkg/stl"
	"github.com/philipparndt/gosplit/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	splitConfig         string
	splitNormal         string
	splitPoint          string
	splitTemplate       string
	splitTemplateNormal string
	splitTemplateOrigin string
	splitTemplateScale  float64
	splitClosed         bool
	splitGap            float64
	splitMaxDistance    float64
	splitOrigin         string
	splitSeparate       bool
	splitAllowSingle    bool
	splitSelfConnect    bool
	splitIgnorePartial  bool
	splitWeld           float64
	splitCapper         string
	splitOutDir         string
	splitASCII          bool
	splitDryRun         bool
	splitPreview        string
	splitExplode        float64
	splitImgcat         bool
	splitWatch          bool
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a mesh along a plane or template",
	Long: `Cut an STL or OpenSCAD model along a plane or an extruded SVG template,
cap the cut faces and write every resulting part as an STL file.

The cut can be described with flags, with a YAML or TOML job file (--config),
or both. Flags override the job file.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	f := splitCmd.Flags()
	f.StringVarP(&splitConfig, "config", "c", "", "Job file (.yaml, .yml or .toml)")
	f.StringVar(&splitNormal, "normal", "", "Plane normal as x,y,z")
	f.StringVar(&splitPoint, "point", "0,0,0", "Point on the plane as x,y,z")
	f.StringVar(&splitTemplate, "template", "", "SVG file whose first polygon or polyline is the template")
	f.StringVar(&splitTemplateNormal, "template-normal", "0,0,1", "Extrusion direction of the template as x,y,z")
	f.StringVar(&splitTemplateOrigin, "template-origin", "0,0,0", "Position of the SVG origin as x,y,z")
	f.Float64Var(&splitTemplateScale, "template-scale", 1, "Model units per SVG unit")
	f.BoolVar(&splitClosed, "closed", false, "Treat a polyline template as closed")
	f.Float64Var(&splitGap, "gap", 0, "Remove a slab of this width around the plane")
	f.Float64Var(&splitMaxDistance, "max-distance", 0, "Only cut rings within this distance of --origin")
	f.StringVar(&splitOrigin, "origin", "0,0,0", "Origin of a partial cut as x,y,z")
	f.BoolVarP(&splitSeparate, "separate", "s", false, "Write every connected island as its own part")
	f.BoolVar(&splitAllowSingle, "allow-single", false, "Write the unmodified mesh when the surface misses it")
	f.BoolVar(&splitSelfConnect, "self-connect", false, "Close open boundary chains on themselves")
	f.BoolVar(&splitIgnorePartial, "ignore-partial", false, "Drop open boundary chains instead of failing")
	f.Float64Var(&splitWeld, "weld", mesh.DefaultWeldTolerance, "Vertex weld tolerance")
	f.StringVar(&splitCapper, "capper", string(capping.MethodEarClip), "Cap triangulation (earclip or earcut)")
	f.StringVarP(&splitOutDir, "out-dir", "o", "", "Output directory (default: next to the input)")
	f.BoolVar(&splitASCII, "ascii", false, "Write ASCII STL instead of binary")
	f.BoolVarP(&splitDryRun, "dry-run", "n", false, "Report the cut without writing parts")
	f.StringVar(&splitPreview, "preview", "", "Render the parts to this PNG file")
	f.Float64Var(&splitExplode, "explode", 0.15, "Preview distance between the sides, relative to the model size")
	f.BoolVar(&splitImgcat, "imgcat", false, "Show the preview in the terminal")
	f.BoolVarP(&splitWatch, "watch", "w", false, "Split again whenever an input file changes")

	splitCmd.MarkFlagsMutuallyExclusive("normal", "template")
}

func runSplit(cmd *cobra.Command, args []string) {
	job, err := buildJob(cmd, args)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	src, err := runJob(ctx, job, out)
	if err != nil {
		fail("%v", err)
	}
	if !splitWatch {
		return
	}

	if err := watchJob(ctx, cmd, args, job, src, out); err != nil {
		fail("%v", err)
	}
}

// buildJob merges the job file with the command line flags
func buildJob(cmd *cobra.Command, args []string) (*config.Job, error) {
	job := config.NewJob()
	if splitConfig != "" {
		var err error
		if job, err = config.Load(splitConfig); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if len(args) == 1 {
		input, err := absPath(args[0])
		if err != nil {
			return nil, err
		}
		job.Input = input
	}
	if job.Input == "" {
		return nil, fmt.Errorf("no input file given")
	}

	if flags.Changed("normal") {
		normal, err := parseCoords(splitNormal)
		if err != nil {
			return nil, fmt.Errorf("--normal: %w", err)
		}
		point, err := parseCoords(splitPoint)
		if err != nil {
			return nil, fmt.Errorf("--point: %w", err)
		}
		job.Plane = &config.PlaneSpec{Normal: normal, Point: point}
		job.Template = nil
	}
	if flags.Changed("template") {
		svg, err := absPath(splitTemplate)
		if err != nil {
			return nil, err
		}
		normal, err := parseCoords(splitTemplateNormal)
		if err != nil {
			return nil, fmt.Errorf("--template-normal: %w", err)
		}
		origin, err := parseCoords(splitTemplateOrigin)
		if err != nil {
			return nil, fmt.Errorf("--template-origin: %w", err)
		}
		job.Template = &config.TemplateSpec{
			SVG:    svg,
			Normal: normal,
			Origin: origin,
			Closed: splitClosed,
			Scale:  splitTemplateScale,
		}
		job.Plane = nil
	}

	opts := &job.Options
	if flags.Changed("gap") {
		opts.Gap = splitGap
	}
	if flags.Changed("max-distance") {
		opts.MaxCutDistance = splitMaxDistance
	}
	if flags.Changed("origin") {
		origin, err := parseVector(splitOrigin)
		if err != nil {
			return nil, fmt.Errorf("--origin: %w", err)
		}
		opts.OriginPoint = origin
	}
	if flags.Changed("separate") {
		opts.PolySeparate = splitSeparate
	}
	if flags.Changed("allow-single") {
		opts.AllowSingleResult = splitAllowSingle
	}
	if flags.Changed("self-connect") {
		opts.SelfConnectPartialRings = splitSelfConnect
	}
	if flags.Changed("ignore-partial") {
		opts.IgnorePartialRings = splitIgnorePartial
	}
	if flags.Changed("weld") {
		opts.WeldTolerance = splitWeld
	}
	if flags.Changed("capper") {
		opts.Capper = capping.Method(splitCapper)
	}
	if flags.Changed("out-dir") {
		dir, err := absPath(splitOutDir)
		if err != nil {
			return nil, err
		}
		job.OutputDir = dir
	}
	if splitASCII {
		job.Format = string(stl.FormatASCII)
	}
	return job, nil
}

// runJob loads the input, cuts it, prints the report and writes the parts
func runJob(ctx context.Context, job *config.Job, out io.Writer) (*source.Source, error) {
	format, err := stl.ParseFormat(job.Format)
	if err != nil {
		return nil, err
	}
	surface, err := job.Surface()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	src, err := source.Load(ctx, job.InputPath(), job.Options.WeldTolerance)
	if err != nil {
		return nil, err
	}

	res, err := cut.Cut(src.Mesh, surface, job.Options)
	if err != nil {
		return src, fmt.Errorf("cut failed: %w", err)
	}
	elapsed := time.Since(start)

	normal := surfaceNormal(surface)
	printReport(out, src, analysis.ReportCut(res, normal, job.Options.WeldTolerance), elapsed)

	if splitPreview != "" || splitImgcat {
		if err := writePreview(out, res, normal, surface); err != nil {
			return src, err
		}
	}
	if splitDryRun {
		return src, nil
	}

	dir := job.Resolve(job.OutputDir)
	if dir == "" {
		dir = filepath.Dir(src.Path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return src, fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Fprintln(out, "\nWritten:")
	counts := map[mesh.Side]int{}
	for _, p := range res.Parts {
		path := filepath.Join(dir, partFileName(src.Name(), p.Side, counts[p.Side]))
		counts[p.Side]++
		if err := stl.WriteFile(path, stl.FromPart(src.Name(), p), format); err != nil {
			return src, err
		}
		fmt.Fprintf(out, "  %s\n", path)
	}
	return src, nil
}

func surfaceNormal(s cut.Surface) geometry.Vector3 {
	switch s := s.(type) {
	case cut.PlaneSurface:
		return s.Plane.Normal()
	case cut.TemplateSurface:
		return s.Template.Normal
	}
	return geometry.Vector3{}
}

func printReport(out io.Writer, src *source.Source, r analysis.CutReport, elapsed time.Duration) {
	fmt.Fprintf(out, "Split: %s\n", src.Path)
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "Input: %d triangles, %d vertices\n", src.Mesh.TriangleCount(), len(src.Mesh.Vertices))
	fmt.Fprintf(out, "Outcome: %s (%s)\n", outcomeLabel(r.Outcome), elapsed.Round(time.Millisecond))

	if len(r.Parts) > 0 {
		fmt.Fprintf(out, "\n%-6s %-11s %-10s %-10s %-14s %s\n", "Part", "Side", "Triangles", "Vertices", "Volume", "Closed")
		fmt.Fprintln(out, "----------------------------------------------------------------")
		for i, p := range r.Parts {
			closed := au.Green("yes")
			if !p.Closed {
				closed = au.Red("no")
			}
			fmt.Fprintf(out, "%-6d %-11s %-10d %-10d %-14.6f %s\n",
				i+1, p.Side, p.Triangles, p.Vertices, p.Volume, closed)
		}
		fmt.Fprintf(out, "Total volume: %s\n", analysis.FormatMeasurement(r.TotalVolume(), "cubic units"))
	}

	if len(r.Rings) > 0 {
		fmt.Fprintf(out, "\nRings: %d\n", len(r.Rings))
		for i, ring := range r.Rings {
			fmt.Fprintf(out, "  #%d: %d points, perimeter %.6f", i+1, ring.Points, ring.Perimeter)
			if ring.Circle != nil {
				fmt.Fprintf(out, ", circle %s r=%.6f", analysis.FormatVector(ring.Circle.Center), ring.Circle.Radius)
			}
			fmt.Fprintln(out)
		}
	}
	if len(r.Centers) > 0 {
		fmt.Fprintln(out, "\nCap centers:")
		for _, c := range r.Centers {
			fmt.Fprintf(out, "  %s\n", analysis.FormatVector(c))
		}
	}
	if r.Removed > 0 {
		fmt.Fprintf(out, "\nVertices removed by gap: %d\n", r.Removed)
	}
}

func outcomeLabel(o cut.Outcome) fmt.Stringer {
	switch o {
	case cut.OutcomeSplit:
		return au.Green(o)
	case cut.OutcomeSingle:
		return au.Yellow(o)
	}
	return au.Red(o)
}

func writePreview(out io.Writer, res *cut.Result, normal geometry.Vector3, surface cut.Surface) error {
	path := splitPreview
	if path == "" {
		f, err := os.CreateTemp("", "gosplit-*.png")
		if err != nil {
			return fmt.Errorf("failed to create preview file: %w", err)
		}
		path = f.Name()
		f.Close()
		defer os.Remove(path)
	}

	opts := preview.DefaultOptions()
	if _, ok := surface.(cut.PlaneSurface); ok {
		opts.Explode = splitExplode
		opts.ExplodeAxis = normal
	}
	if err := preview.Save(path, res.Parts, res.Rings, opts); err != nil {
		return err
	}
	if splitPreview != "" {
		fmt.Fprintf(out, "\nPreview: %s\n", path)
	}
	if splitImgcat {
		preview.Show(path, out)
	}
	return nil
}

// watchJob reruns the job whenever the input, its OpenSCAD dependencies,
// the job file or the template change
func watchJob(ctx context.Context, cmd *cobra.Command, args []string, job *config.Job, src *source.Source, out io.Writer) error {
	fw, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.OnError(func(err error) {
		fmt.Fprintf(os.Stderr, "%s %v\n", au.Red("Watch error:"), err)
	})

	var rerun func(string)
	rerun = func(changed string) {
		fmt.Fprintf(out, "\n%s %s\n\n", au.Cyan("Changed:"), changed)
		next, err := buildJob(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", au.Red("Error:"), err)
			return
		}
		nextSrc, err := runJob(ctx, next, out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", au.Red("Error:"), err)
		}
		if nextSrc == nil {
			return
		}
		if err := fw.Watch(watchList(next, nextSrc), rerun); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", au.Red("Watch error:"), err)
		}
	}

	if err := fw.Watch(watchList(job, src), rerun); err != nil {
		return err
	}
	fw.Start()
	fmt.Fprintf(out, "\n%s\n", au.Faint("Watching for changes, press Ctrl+C to stop"))
	<-ctx.Done()
	return nil
}

func watchList(job *config.Job, src *source.Source) []string {
	files := append([]string{}, src.Dependencies...)
	if splitConfig != "" {
		files = append(files, splitConfig)
	}
	if job.Template != nil && job.Template.SVG != "" {
		files = append(files, job.Resolve(job.Template.SVG))
	}
	return files
}
