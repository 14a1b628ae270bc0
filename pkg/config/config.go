// Package config loads cut jobs from YAML or TOML files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/philipparndt/gosplit/pkg/cut"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a job file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Job describes one cut: the input mesh, the cutting surface, the options
// and where the parts go. Exactly one of Plane and Template must be set.
type Job struct {
	Input     string        `yaml:"input" toml:"input"`
	OutputDir string        `yaml:"output_dir" toml:"output_dir"`
	Format    string        `yaml:"format" toml:"format"`
	Plane     *PlaneSpec    `yaml:"plane" toml:"plane"`
	Template  *TemplateSpec `yaml:"template" toml:"template"`
	Options   cut.Options   `yaml:"options" toml:"options"`

	// dir is the directory of the job file, relative paths resolve
	// against it
	dir string
}

// PlaneSpec is a plane through Point with the given Normal
type PlaneSpec struct {
	Normal []float64 `yaml:"normal" toml:"normal"`
	Point  []float64 `yaml:"point" toml:"point"`
}

// TemplateSpec is a polyline extruded along Normal. Points come either
// inline or from the first polygon or polyline of an SVG file.
type TemplateSpec struct {
	Points [][]float64 `yaml:"points" toml:"points"`
	SVG    string      `yaml:"svg" toml:"svg"`
	Normal []float64   `yaml:"normal" toml:"normal"`
	Closed bool        `yaml:"closed" toml:"closed"`
	// Origin places the SVG drawing in space, Scale converts its units
	Origin []float64 `yaml:"origin" toml:"origin"`
	Scale  float64   `yaml:"scale" toml:"scale"`
}

// NewJob returns a job with default cut options
func NewJob() *Job {
	return &Job{Options: cut.DefaultOptions(), Format: "binary"}
}

// Load reads a job file. The format follows the file extension.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	job, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	job.dir = filepath.Dir(path)
	return job, nil
}

// FormatOf derives the job format from a file name
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported job file %q (use .yaml, .yml or .toml)", path)
}

// Parse decodes a job. Options missing from the document keep their
// defaults.
func Parse(data []byte, format Format) (*Job, error) {
	job := NewJob()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(job); err != nil {
			return nil, fmt.Errorf("failed to parse YAML job: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), job)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML job: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown keys in TOML job: %v", undecoded)
		}
	default:
		return nil, fmt.Errorf("unknown job format %q", format)
	}
	return job, nil
}

// Resolve returns path relative to the job file's directory
func (j *Job) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || j.dir == "" {
		return path
	}
	return filepath.Join(j.dir, path)
}

// InputPath returns the resolved input mesh path
func (j *Job) InputPath() string {
	return j.Resolve(j.Input)
}

// Surface builds the cutting surface of the job
func (j *Job) Surface() (cut.Surface, error) {
	switch {
	case j.Plane != nil && j.Template != nil:
		return nil, fmt.Errorf("job sets both a plane and a template")
	case j.Plane != nil:
		return j.Plane.surface()
	case j.Template != nil:
		tpl, err := j.Template.build(j.Resolve(j.Template.SVG))
		if err != nil {
			return nil, err
		}
		return cut.TemplateSurface{Template: tpl}, nil
	}
	return nil, fmt.Errorf("job has no cutting surface")
}

func (p *PlaneSpec) surface() (cut.Surface, error) {
	normal, err := vector("plane normal", p.Normal, nil)
	if err != nil {
		return nil, err
	}
	point, err := vector("plane point", p.Point, []float64{0, 0, 0})
	if err != nil {
		return nil, err
	}
	return cut.NewPlaneSurface(normal, point)
}

func (t *TemplateSpec) build(svgPath string) (*geometry.Template, error) {
	normal, err := vector("template normal", t.Normal, []float64{0, 0, 1})
	if err != nil {
		return nil, err
	}

	if t.SVG != "" {
		origin, err := vector("template origin", t.Origin, []float64{0, 0, 0})
		if err != nil {
			return nil, err
		}
		scale := t.Scale
		if scale == 0 {
			scale = 1
		}
		outline, err := LoadSVG(svgPath)
		if err != nil {
			return nil, err
		}
		return outline.Template(origin, normal, scale)
	}

	points := make([]geometry.Vector3, len(t.Points))
	for i, p := range t.Points {
		if points[i], err = vector(fmt.Sprintf("template point %d", i), p, nil); err != nil {
			return nil, err
		}
	}
	return geometry.NewTemplate(points, normal, t.Closed)
}

func vector(name string, c, fallback []float64) (geometry.Vector3, error) {
	if c == nil {
		c = fallback
	}
	if len(c) != 3 {
		return geometry.Vector3{}, fmt.Errorf("%s needs three coordinates, got %v", name, c)
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
