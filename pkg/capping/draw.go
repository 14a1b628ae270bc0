package capping

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/philipparndt/gosplit/pkg/contour"
	"github.com/philipparndt/gosplit/pkg/geometry"
	"github.com/pkg/errors"
)

const drawPadding = 10

// DrawCap renders the loops of a forest and the cap triangles filling them
// into a PNG at path. position resolves triangle vertex ids. Points are
// projected onto the forest plane and scaled by scale pixels per unit.
func DrawCap(path string, f *contour.Forest, tris [][3]int, position func(id int) geometry.Vector3, scale float64) error {
	normal := f.Normal()
	u, v := geometry.PlaneBasis(normal)
	project := func(p geometry.Vector3) geometry.Vector2 {
		return geometry.NewVector2(p.Dot(u), p.Dot(v))
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := 0; i < f.Len(); i++ {
		for _, p := range f.Loop(i).Points {
			q := project(p)
			minX = math.Min(minX, q.X)
			minY = math.Min(minY, q.Y)
			maxX = math.Max(maxX, q.X)
			maxY = math.Max(maxY, q.Y)
		}
	}
	if f.Len() == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// origin at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetLineWidth(1)
	for _, t := range tris {
		a, b, d := project(position(t[0])), project(position(t[1])), project(position(t[2]))
		c.MoveTo(a.X, a.Y)
		c.LineTo(b.X, b.Y)
		c.LineTo(d.X, d.Y)
		c.ClosePath()
		c.SetRGB(0, 0.5, 0)
		c.FillPreserve()
		c.SetRGB(0.3, 0.3, 0.3)
		c.Stroke()
	}

	c.SetLineWidth(2)
	for i := 0; i < f.Len(); i++ {
		points := f.Loop(i).Points
		if len(points) == 0 {
			continue
		}
		start := project(points[0])
		c.MoveTo(start.X, start.Y)
		for _, p := range points[1:] {
			q := project(p)
			c.LineTo(q.X, q.Y)
		}
		c.ClosePath()
		if f.Parent(i) < 0 {
			c.SetRGB(0, 1, 1)
		} else {
			c.SetRGB(1, 0.5, 0)
		}
		c.Stroke()
	}

	if err := c.SavePNG(path); err != nil {
		return errors.Wrapf(err, "failed to write cap drawing %s", path)
	}
	return nil
}

// ShowCap prints a PNG written by DrawCap inline on terminals that support it
func ShowCap(path string, w io.Writer) {
	imgcat.CatFile(path, w)
}
