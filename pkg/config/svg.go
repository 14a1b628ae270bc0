package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/philipparndt/gosplit/pkg/geometry"
)

// Outline is a 2D polyline read from an SVG drawing
type Outline struct {
	Points []geometry.Vector2
	// Closed is true for <polygon>, false for <polyline>
	Closed bool
}

// LoadSVG reads the first polygon or polyline of an SVG file
func LoadSVG(path string) (*Outline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SVG: %w", err)
	}
	defer file.Close()
	return ParseSVG(file)
}

// ParseSVG reads the first polygon or, failing that, the first polyline
func ParseSVG(r io.Reader) (*Outline, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	closed := true
	elements := root.FindAll("polygon")
	if len(elements) == 0 {
		closed = false
		elements = root.FindAll("polyline")
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("SVG has no polygon or polyline")
	}

	points, err := parsePoints(elements[0].Attributes["points"])
	if err != nil {
		return nil, err
	}
	return &Outline{Points: points, Closed: closed}, nil
}

// parsePoints reads an SVG points attribute. Pairs are separated by
// whitespace, coordinates by a comma or whitespace.
func parsePoints(attr string) ([]geometry.Vector2, error) {
	fields := strings.Fields(strings.ReplaceAll(attr, ",", " "))
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd number of coordinates in points %q", attr)
	}
	points := make([]geometry.Vector2, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x value %q: %w", fields[i], err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y value %q: %w", fields[i+1], err)
		}
		points = append(points, geometry.NewVector2(x, y))
	}
	return points, nil
}

// Template places the outline in the plane through origin perpendicular to
// normal. SVG y grows downwards, so it is flipped: an outline drawn
// counter-clockwise on screen is counter-clockwise around normal.
func (o *Outline) Template(origin, normal geometry.Vector3, scale float64) (*geometry.Template, error) {
	u, v := geometry.PlaneBasis(normal)
	points := make([]geometry.Vector3, len(o.Points))
	for i, p := range o.Points {
		points[i] = origin.Add(u.Mul(p.X * scale)).Add(v.Mul(-p.Y * scale))
	}
	return geometry.NewTemplate(points, normal, o.Closed)
}
