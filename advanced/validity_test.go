package advanced

// This contains no actual tests. It is just a helper for checking that a
// subdivision result is structurally valid.

import (
	"math"
	"sort"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to check that a traced subdivision is valid. The rules are:
// 1. The arrangement passes its structural Verify.
// 2. Every traced cycle has at least 3 half-edges.
// 3. Every live half-edge belongs to exactly one traced cycle; every pruned
//    half-edge belongs to none.
// 4. No bounded face contains both directions of the same edge.
// 5. Bounded cycles wind with the run's chirality, outer cycles against it.
// 6. Per live component, V - E + F = 2 counting that component's outer cycle.
// 7. Every bounded face's perimeter and area agree with an independent
//    computation over its ring (paulmach/orb planar).

func AssertValidSubdivision(t *testing.T, res *Result, opts Options) {
	arr := res.Arrangement
	require.NoError(t, arr.Verify())

	pruned := make(map[EdgeID]bool)
	for _, chain := range res.Dangling {
		for _, e := range chain.Edges {
			pruned[e] = true
			pruned[arr.Edges[e].Twin] = true
		}
	}

	allFaces := make([]*Face, 0, len(res.Faces)+len(res.Outer))
	allFaces = append(allFaces, res.Faces...)
	allFaces = append(allFaces, res.Outer...)

	owner := make(map[EdgeID]int)
	for fi, f := range allFaces {
		require.GreaterOrEqual(t, len(f.Edges), 3, "cycle with fewer than 3 half-edges")
		for _, e := range f.Edges {
			_, taken := owner[e]
			require.False(t, taken, "half-edge %d appears in two traced cycles", e)
			owner[e] = fi
		}
	}

	for e := range arr.Edges {
		_, traced := owner[EdgeID(e)]
		if pruned[EdgeID(e)] {
			require.False(t, traced, "pruned half-edge %d was traced", e)
		} else {
			require.True(t, traced, "live half-edge %d was never traced", e)
		}
	}

	for fi := range res.Faces {
		for _, e := range res.Faces[fi].Edges {
			assert.NotEqual(t, fi, owner[arr.Edges[e].Twin],
				"bounded face contains half-edge %d and its twin", e)
		}
	}

	for _, f := range res.Faces {
		area := arr.cycleArea(f.Edges)
		if opts.Chirality == Clockwise {
			assert.Negative(t, area, "bounded face traced counterclockwise under clockwise chirality")
		} else {
			assert.Positive(t, area, "bounded face traced clockwise under counterclockwise chirality")
		}
	}
	for _, f := range res.Outer {
		area := arr.cycleArea(f.Edges)
		if opts.Chirality == Clockwise {
			assert.Positive(t, area, "outer cycle traced clockwise under clockwise chirality")
		} else {
			assert.Negative(t, area, "outer cycle traced counterclockwise under counterclockwise chirality")
		}
	}

	// Euler's relation per surviving component. Pruning only peels trees off a
	// component, so whatever is left stays connected and V - E + F = 2, with F
	// counting the component's bounded faces plus its one outer cycle.
	liveVertices := make(map[int]map[VertexID]struct{})
	liveEdges := make(map[int]int)
	for e := 0; e < len(arr.Edges); e += 2 {
		if pruned[EdgeID(e)] {
			continue
		}
		he := &arr.Edges[e]
		comp := arr.Vertices[he.Origin].Comp
		liveEdges[comp]++
		if liveVertices[comp] == nil {
			liveVertices[comp] = make(map[VertexID]struct{})
		}
		liveVertices[comp][he.Origin] = struct{}{}
		liveVertices[comp][he.Dest] = struct{}{}
	}
	cyclesPerComp := make(map[int]int)
	for _, f := range allFaces {
		comp := arr.Vertices[arr.Edges[f.Edges[0]].Origin].Comp
		cyclesPerComp[comp]++
	}
	for comp, edgeCount := range liveEdges {
		euler := len(liveVertices[comp]) - edgeCount + cyclesPerComp[comp]
		require.Equal(t, 2, euler, "Euler relation violated in component %d", comp)
	}

	// Cross-check each bounded face against an independent planar measure.
	for _, f := range res.Faces {
		ring := make(orb.Ring, 0, len(f.Edges)+1)
		for _, e := range f.Edges {
			p := arr.Vertices[arr.Edges[e].Origin].Pos
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		ring = append(ring, ring[0])
		assert.InDelta(t, f.Perimeter, planar.Length(ring), 1e-9,
			"face perimeter disagrees with planar.Length")
		assert.InDelta(t, math.Abs(arr.cycleArea(f.Edges)), math.Abs(planar.Area(ring)), 1e-9,
			"face area disagrees with planar.Area")
	}
}

// subdivideForTest runs the pipeline and validates the result in one step.
func subdivideForTest(t *testing.T, segments []Segment, opts Options) *Result {
	res, err := Subdivide(segments, opts)
	require.NoError(t, err)
	AssertValidSubdivision(t, res, opts)
	return res
}

// boundedPerimeters collects the bounded face perimeters in ascending order.
func boundedPerimeters(res *Result) []float64 {
	perims := make([]float64, len(res.Faces))
	for i, f := range res.Faces {
		perims[i] = f.Perimeter
	}
	sort.Float64s(perims)
	return perims
}
