package render

import (
	"math"
	"os"

	"github.com/fogleman/gg"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/osuushi/subdivide/advanced"
	"github.com/osuushi/subdivide/dbg"
)

// Rendering for subdivision results, for demos and debugging. Bounded faces
// are filled and labeled with their readable names, outer cycles stroked,
// canonical vertices dotted, and pruned dangling chains drawn dim.

const drawPadding = 50

var faceFills = [][3]float64{
	{0.3, 0.2, 1},
	{0, 0.5, 0},
	{0.8, 0.3, 0},
	{0.6, 0, 0.6},
	{0, 0.5, 0.5},
	{0.7, 0.6, 0},
}

// Segments draws the raw input, before any subdivision.
func Segments(segments []advanced.Segment, path string, scale float64) error {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for _, s := range segments {
		for _, p := range [2]advanced.Point{s.Start, s.End} {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if len(segments) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	c := newContext(minX, minY, maxX, maxY, scale)
	c.SetLineWidth(2)
	c.SetRGB(1, 1, 1)
	for _, s := range segments {
		c.DrawLine(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
		c.Stroke()
	}
	return c.SavePNG(path)
}

// Result draws a traced subdivision.
func Result(res *advanced.Result, path string, scale float64) error {
	arr := res.Arrangement
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for i := range arr.Vertices {
		p := arr.Vertices[i].Pos
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if len(arr.Vertices) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	c := newContext(minX, minY, maxX, maxY, scale)

	for i, f := range res.Faces {
		facePath(c, arr, f)
		fill := faceFills[i%len(faceFills)]
		c.SetRGBA(fill[0], fill[1], fill[2], 0.5)
		c.Fill()
	}

	c.SetLineWidth(2)
	c.SetRGB(0, 1, 1)
	for _, f := range res.Faces {
		facePath(c, arr, f)
		c.Stroke()
	}
	c.SetRGB(0, 1, 0)
	for _, f := range res.Outer {
		facePath(c, arr, f)
		c.Stroke()
	}

	c.SetRGB(0.4, 0.4, 0.4)
	for _, chain := range res.Dangling {
		for _, e := range chain.Edges {
			p := arr.Vertices[arr.Edges[e].Origin].Pos
			q := arr.Vertices[arr.Edges[e].Dest].Pos
			c.DrawLine(p.X, p.Y, q.X, q.Y)
			c.Stroke()
		}
	}

	// DrawPoint keeps the dot size fixed under the scaling transform.
	c.SetRGB(1, 1, 1)
	for i := range arr.Vertices {
		p := arr.Vertices[i].Pos
		c.DrawPoint(p.X, p.Y, 3)
		c.Fill()
	}

	// Labels last so nothing paints over them.
	for _, f := range res.Faces {
		labelFace(c, arr, f)
	}
	return c.SavePNG(path)
}

// Preview cats the file to the terminal (iTerm only).
func Preview(path string) {
	imgcat.CatFile(path, os.Stdout)
}

func newContext(minX, minY, maxX, maxY, scale float64) *gg.Context {
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)

	// Translate for padding
	c.Translate(drawPadding, drawPadding)
	// Scale
	c.Scale(scale, scale)
	// Translate to min
	c.Translate(-minX, -minY)
	return c
}

func facePath(c *gg.Context, arr *advanced.Arrangement, f *advanced.Face) {
	first := arr.Vertices[arr.Edges[f.Edges[0]].Origin].Pos
	c.MoveTo(first.X, first.Y)
	for _, e := range f.Edges[1:] {
		p := arr.Vertices[arr.Edges[e].Origin].Pos
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
}

func labelFace(c *gg.Context, arr *advanced.Arrangement, f *advanced.Face) {
	var cx, cy float64
	for _, e := range f.Edges {
		p := arr.Vertices[arr.Edges[e].Origin].Pos
		cx += p.X
		cy += p.Y
	}
	n := float64(len(f.Edges))
	// Text has to be drawn against the identity matrix or it comes out
	// mirrored by the flip, so transform the centroid first.
	cx, cy = c.TransformPoint(cx/n, cy/n)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(dbg.Name(f), cx, cy, 0.5, 0.5)
	c.Pop()
}
