package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/logrusorgru/aurora"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/osuushi/subdivide/advanced"
	"github.com/osuushi/subdivide/render"
)

// Command line front end for the subdivision pipeline. Input is newline
// separated segments in the form "x1 y1 x2 y2" on stdin, a GeoJSON file with
// --geojson, or the line elements of an SVG with --svg. Prints the perimeter
// product over the minimal enclosed faces; --faces lists each face, --render
// draws the subdivision.

var (
	epsilon  = kingpin.Flag("epsilon", "Point identity tolerance; 0 scales it to the input.").Default("0").Float64()
	ccw      = kingpin.Flag("ccw", "Trace faces counterclockwise.").Bool()
	reject   = kingpin.Flag("reject-duplicates", "Fail on coincident input segments instead of merging them.").Bool()
	workers  = kingpin.Flag("workers", "Worker count for the intersection sweep.").Default("1").Int()
	parallel = kingpin.Flag("parallel-trace", "Trace disjoint components concurrently.").Bool()
	logSpace = kingpin.Flag("log-space", "Accumulate the product in log space.").Bool()
	faces    = kingpin.Flag("faces", "List every bounded face and pruned chain.").Bool()
	verify   = kingpin.Flag("verify", "Run the structural self-check on the finished arrangement.").Bool()
	geoPath  = kingpin.Flag("geojson", "Read segments from a GeoJSON file instead of stdin.").String()
	svgPath  = kingpin.Flag("svg", "Read the line elements of an SVG file instead of stdin.").String()
	outPNG   = kingpin.Flag("render", "Render the subdivision to a PNG at this path.").String()
	preview  = kingpin.Flag("imgcat", "Cat the rendering to the terminal (iTerm only).").Bool()
	scale    = kingpin.Flag("scale", "Rendering scale in pixels per unit.").Default("100").Float64()
)

func main() {
	kingpin.Parse()

	var segments []advanced.Segment
	var err error
	switch {
	case *geoPath != "" && *svgPath != "":
		err = errors.New("--geojson and --svg are mutually exclusive")
	case *geoPath != "":
		segments, err = readGeoJSON(*geoPath)
	case *svgPath != "":
		segments, err = readSVG(*svgPath)
	default:
		segments, err = readSegments(os.Stdin)
	}
	if err != nil {
		fail(err)
	}

	opts := advanced.Options{
		Epsilon:          *epsilon,
		IntersectWorkers: *workers,
		ParallelTrace:    *parallel,
		LogSpaceProduct:  *logSpace,
	}
	if *ccw {
		opts.Chirality = advanced.CounterClockwise
	}
	if *reject {
		opts.Duplicates = advanced.RejectDuplicates
	}

	res, err := run(segments, opts)
	if err != nil {
		fail(err)
	}

	arr := res.Arrangement
	if *verify {
		if err := arr.Verify(); err != nil {
			fail(err)
		}
	}
	fmt.Printf("%d segments, %d vertices, %d edges, %d components, %d faces\n",
		len(segments), len(arr.Vertices), arr.EdgeCount(), arr.NumComponents(), len(res.Faces))
	if len(res.Dangling) > 0 {
		fmt.Println(aurora.Yellow(fmt.Sprintf("pruned %d dangling chains", len(res.Dangling))))
	}
	if *faces {
		for _, f := range res.Faces {
			fmt.Printf("  %s perimeter %g\n", f.DbgName(), f.Perimeter)
		}
		for _, c := range res.Dangling {
			fmt.Printf("  %s dangling, %d edges\n", c.DbgName(), len(c.Edges))
		}
	}
	fmt.Println(aurora.Green(fmt.Sprintf("perimeter product: %g", res.Product)))

	if *outPNG != "" {
		if err := render.Result(res, *outPNG, *scale); err != nil {
			fail(err)
		}
		if *preview {
			render.Preview(*outPNG)
		}
	}
}

// run recovers internal invariant panics into errors, like the library
// wrappers do.
func run(segments []advanced.Segment, opts advanced.Options) (res *advanced.Result, err error) {
	defer func() {
		if recovered := advanced.HandleSubdividePanicRecover(recover()); recovered != nil {
			res = nil
			err = recovered
		}
	}()
	return advanced.Subdivide(segments, opts)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
	os.Exit(1)
}

// readSegments parses "x1 y1 x2 y2" lines. Blank lines and # comments are
// skipped.
func readSegments(in *os.File) ([]advanced.Segment, error) {
	var segments []advanced.Segment
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 4 {
			return nil, errors.Errorf("line %d: want \"x1 y1 x2 y2\", got %q", lineNo, line)
		}
		var coords [4]float64
		for i, part := range parts {
			c, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
			coords[i] = c
		}
		segments = append(segments, advanced.Segment{
			Start: advanced.Point{X: coords[0], Y: coords[1]},
			End:   advanced.Point{X: coords[2], Y: coords[3]},
		})
	}
	return segments, scanner.Err()
}

// readGeoJSON pulls segments out of a GeoJSON file: LineStrings contribute
// their consecutive point pairs, polygon rings their edges. Coordinates are
// taken as plain planar x/y.
func readGeoJSON(path string) ([]advanced.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	var segments []advanced.Segment
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		for _, feature := range fc.Features {
			if feature.Geometry != nil {
				segments = geometrySegments(feature.Geometry, segments)
			}
		}
	case "Feature":
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		if feature.Geometry != nil {
			segments = geometrySegments(feature.Geometry, segments)
		}
	default:
		geometry, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		segments = geometrySegments(geometry, segments)
	}
	return segments, nil
}

// readSVG collects every <line> element of an SVG file. Anything else in the
// SVG is ignored.
func readSVG(path string) ([]advanced.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rootEl, err := svgparser.Parse(f, true)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	lines := rootEl.FindAll("line")
	if len(lines) == 0 {
		return nil, errors.Errorf("%s contains no line elements", path)
	}
	segments := make([]advanced.Segment, 0, len(lines))
	for _, lineEl := range lines {
		var coords [4]float64
		for i, attr := range []string{"x1", "y1", "x2", "y2"} {
			value, ok := lineEl.Attributes[attr]
			if !ok {
				return nil, errors.Errorf("%s: line is missing attribute %q", path, attr)
			}
			c, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: invalid %s value", path, attr)
			}
			coords[i] = c
		}
		segments = append(segments, advanced.Segment{
			Start: advanced.Point{X: coords[0], Y: coords[1]},
			End:   advanced.Point{X: coords[2], Y: coords[3]},
		})
	}
	return segments, nil
}

func geometrySegments(g *geojson.Geometry, out []advanced.Segment) []advanced.Segment {
	switch {
	case g.IsLineString():
		out = appendPath(out, g.LineString, false)
	case g.IsMultiLineString():
		for _, path := range g.MultiLineString {
			out = appendPath(out, path, false)
		}
	case g.IsPolygon():
		for _, ring := range g.Polygon {
			out = appendPath(out, ring, true)
		}
	case g.IsMultiPolygon():
		for _, poly := range g.MultiPolygon {
			for _, ring := range poly {
				out = appendPath(out, ring, true)
			}
		}
	case g.IsCollection():
		for _, sub := range g.Geometries {
			out = geometrySegments(sub, out)
		}
	}
	return out
}

func appendPath(out []advanced.Segment, path [][]float64, closed bool) []advanced.Segment {
	for i := 0; i+1 < len(path); i++ {
		out = append(out, segmentBetween(path[i], path[i+1]))
	}
	// GeoJSON rings normally repeat their first point; close the ring when
	// one doesn't.
	if closed && len(path) > 2 {
		first, last := path[0], path[len(path)-1]
		if first[0] != last[0] || first[1] != last[1] {
			out = append(out, segmentBetween(last, first))
		}
	}
	return out
}

func segmentBetween(a, b []float64) advanced.Segment {
	return advanced.Segment{
		Start: advanced.Point{X: a[0], Y: a[1]},
		End:   advanced.Point{X: b[0], Y: b[1]},
	}
}
