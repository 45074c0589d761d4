package advanced

import (
	"embed"
	"log"
	"math"
	"strconv"

	"github.com/JoshVarga/svgparser"
)

// This file parses the svg fixtures and outputs segment lists. This is not a
// full (or even correct) svg parser. It parses the SVG, finds every <line>
// element, and converts them into Segments. If anything goes wrong, it panics.
//
// Fixtures are available by name in this fixtures/ directory, sans extension.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []Segment {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}

	defer fixture.Close()
	rootEl, err := svgparser.Parse(fixture, true)
	if err != nil {
		log.Fatalf("Failed to parse fixture %q: %v", name, err)
	}

	lines := rootEl.FindAll("line")
	if len(lines) == 0 {
		log.Fatalf("No lines found in fixture %q", name)
	}

	segments := make([]Segment, 0, len(lines))
	for _, lineEl := range lines {
		coords := make([]float64, 4)
		for i, attr := range []string{"x1", "y1", "x2", "y2"} {
			value, ok := lineEl.Attributes[attr]
			if !ok {
				log.Fatalf("Line in fixture %q is missing attribute %q", name, attr)
			}
			coords[i], err = strconv.ParseFloat(value, 64)
			if err != nil {
				log.Fatalf("Invalid %s value %q in fixture %q: %v", attr, value, name, err)
			}
		}
		segments = append(segments, Segment{
			Start: Point{X: coords[0], Y: coords[1]},
			End:   Point{X: coords[2], Y: coords[3]},
		})
	}
	return segments
}

// Some ad hoc code specified fixtures

func seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: Point{X: x1, Y: y1}, End: Point{X: x2, Y: y2}}
}

func UnitSquare() []Segment {
	return []Segment{
		seg(0, 0, 1, 0),
		seg(1, 0, 1, 1),
		seg(1, 1, 0, 1),
		seg(0, 1, 0, 0),
	}
}

// The boundary of a 2x2 grid of unit squares plus the two crossing mid lines.
// Four faces of perimeter 4 each.
func WindowPane() []Segment {
	return []Segment{
		seg(0, 0, 2, 0),
		seg(2, 0, 2, 2),
		seg(2, 2, 0, 2),
		seg(0, 2, 0, 0),
		seg(1, 0, 1, 2),
		seg(0, 1, 2, 1),
	}
}

// Two vertical sides joined by crossing diagonals. The diagonals meet at the
// center, giving two triangles of perimeter 1+sqrt(2).
func Hourglass() []Segment {
	return []Segment{
		seg(1, 1, 1, 2),
		seg(1, 2, 2, 1),
		seg(2, 1, 2, 2),
		seg(2, 2, 1, 1),
	}
}

// A unit square plus both diagonals: four triangles of perimeter 1+sqrt(2).
func CrossedSquare() []Segment {
	return append(UnitSquare(),
		seg(0, 0, 1, 1),
		seg(0, 1, 1, 0),
	)
}

// Two triangles sharing a single vertex at the origin.
func FigureEight() []Segment {
	return []Segment{
		seg(0, 1, 1, 1),
		seg(1, 1, 0, 0),
		seg(0, 0, 0, 1),
		seg(0, 0, 1, -1),
		seg(1, -1, 0, -1),
		seg(0, -1, 0, 0),
	}
}

// Eight spokes from a center plus the ring connecting their tips. Eight
// triangular faces of perimeter 2+sqrt(2) each.
func Asterisk() []Segment {
	center := Point{X: 2, Y: 2}
	var segments []Segment
	var tips []Point
	for i := 0; i < 8; i++ {
		angle := 2 * math.Pi * float64(i) / 8
		// Axis tips sit at distance 1, diagonal tips at sqrt(2), so every tip
		// lands on the integer ring around the center.
		radius := 1.0
		if i%2 == 1 {
			radius = math.Sqrt2
		}
		tip := Point{
			X: math.Round(center.X + radius*math.Cos(angle)),
			Y: math.Round(center.Y + radius*math.Sin(angle)),
		}
		tips = append(tips, tip)
		segments = append(segments, Segment{Start: center, End: tip})
	}
	for i := range tips {
		segments = append(segments, Segment{Start: tips[i], End: tips[(i+1)%len(tips)]})
	}
	return segments
}

// A unit square with a dangling antenna off one corner. One face, one chain.
func SquareWithAntenna() []Segment {
	return append(UnitSquare(), seg(1, 0, 2, 0))
}

// A 4x4 square strictly containing a 2x2 square. The components are disjoint,
// so each ring is its own face: perimeters 16 and 8.
func NestedSquares() []Segment {
	return []Segment{
		seg(0, 0, 4, 0),
		seg(4, 0, 4, 4),
		seg(4, 4, 0, 4),
		seg(0, 4, 0, 0),
		seg(1, 1, 3, 1),
		seg(3, 1, 3, 3),
		seg(3, 3, 1, 3),
		seg(1, 3, 1, 1),
	}
}

// n+1 horizontal and n+1 vertical full-span lines: n^2 unit cells, every
// interior vertex a proper crossing. Bulky enough to exercise the parallel
// intersection sweep.
func CrossHatch(n int) []Segment {
	var segments []Segment
	for i := 0; i <= n; i++ {
		f := float64(i)
		segments = append(segments,
			seg(0, f, float64(n), f),
			seg(f, 0, f, float64(n)),
		)
	}
	return segments
}

// n x n unit squares spaced apart: n^2 disjoint components, for exercising
// parallel tracing.
func ScatteredSquares(n int) []Segment {
	var segments []Segment
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := float64(3 * i)
			y := float64(3 * j)
			segments = append(segments,
				seg(x, y, x+1, y),
				seg(x+1, y, x+1, y+1),
				seg(x+1, y+1, x, y+1),
				seg(x, y+1, x, y),
			)
		}
	}
	return segments
}
