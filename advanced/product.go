package advanced

import (
	"math"
	"sort"
)

// Aggregate fills in every face's perimeter and reduces the bounded ones to
// their product. Zero bounded faces give the multiplicative identity, 1.0.
//
// The reduction multiplies in ascending perimeter order. Floating point
// multiplication is commutative but not associative, so a fixed order is what
// makes the product bit-identical across runs and input permutations.
func (a *Arrangement) Aggregate(fs *FaceSet, opts Options) float64 {
	for _, f := range fs.Bounded {
		f.Perimeter = a.cyclePerimeter(f.Edges)
	}
	for _, f := range fs.Outer {
		f.Perimeter = a.cyclePerimeter(f.Edges)
	}

	perims := make([]float64, len(fs.Bounded))
	for i, f := range fs.Bounded {
		perims[i] = f.Perimeter
	}
	sort.Float64s(perims)

	if opts.LogSpaceProduct {
		logSum := 0.0
		for _, p := range perims {
			logSum += math.Log(p)
		}
		return math.Exp(logSum)
	}
	product := 1.0
	for _, p := range perims {
		product *= p
	}
	return product
}

// cyclePerimeter sums edge lengths in cycle order. A bridge traversed twice
// by an outer cycle counts twice, which is the boundary length actually
// walked.
func (a *Arrangement) cyclePerimeter(cycle []EdgeID) float64 {
	total := 0.0
	for _, e := range cycle {
		total += dist(a.Vertices[a.Edges[e].Origin].Pos, a.Vertices[a.Edges[e].Dest].Pos)
	}
	return total
}
