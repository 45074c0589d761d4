package advanced

// Point is a raw input coordinate. Points are plain values; identity is never
// decided by comparing raw coordinates, only by the snap index, which folds
// everything within epsilon onto one canonical vertex.
type Point struct {
	X float64
	Y float64
}

// Segment is one input element. Its original input index is its position in
// the input slice; errors report that index even after duplicate merging.
type Segment struct {
	Start Point
	End   Point
}

// All graph references are integer indices into flat slices. The half-edge
// structure is cyclic (twin, next), and index links keep it free of circular
// ownership.
type VertexID int
type EdgeID int

const (
	NoVertex = VertexID(-1)
	NoEdge   = EdgeID(-1)
)

// Vertex is one canonical point of the arrangement. Out holds the outgoing
// half-edges; after the arrangement is finalized it is sorted by direction
// angle and never changes again.
type Vertex struct {
	Pos  Point
	Out  []EdgeID
	Comp int
}

// HalfEdge is one directed traversal of an undirected edge. Twin half-edges
// are allocated in pairs, so the even id of a pair is the canonical undirected
// edge id. Next is assigned during face tracing; visited is claimed by atomic
// compare-and-set so parallel tracing can never consume an edge twice.
type HalfEdge struct {
	Origin VertexID
	Dest   VertexID
	Twin   EdgeID
	Next   EdgeID

	angle   float64
	rot     int
	visited uint32
	pruned  bool
}

// Face is one traced boundary cycle. Bounded faces are the result set; the
// outer cycle of each component is kept for diagnostics but excluded from the
// perimeter product.
type Face struct {
	Edges     []EdgeID
	Perimeter float64
	Bounded   bool
}

// DanglingChain is one connected cluster of filament edges that bound no area.
// Chains are pruned before tracing and reported, not failed.
type DanglingChain struct {
	Edges []EdgeID
}

// Chirality fixes the rotational direction of the face walk. Either value
// yields the same faces and the same product; it only flips which orientation
// the bounded cycles trace with.
type Chirality int

const (
	Clockwise Chirality = iota
	CounterClockwise
)

// DuplicatePolicy decides what happens when two input segments coincide
// entirely, in either direction.
type DuplicatePolicy int

const (
	MergeDuplicates DuplicatePolicy = iota
	RejectDuplicates
)

// Options configures a pipeline run. The zero value is the default
// configuration: epsilon scaled to the input magnitude, clockwise chirality,
// duplicate merging, serial execution.
type Options struct {
	// Epsilon is the point identity tolerance. Zero means scale it to the
	// largest input coordinate magnitude.
	Epsilon float64
	// Chirality is the face walk rotation. Held fixed for the whole run.
	Chirality Chirality
	// Duplicates picks the policy for fully coincident input segments.
	Duplicates DuplicatePolicy
	// IntersectWorkers sets the worker count for the pairwise intersection
	// sweep. Values below two keep it serial. Output is identical either way.
	IntersectWorkers int
	// ParallelTrace walks disjoint components on separate goroutines.
	ParallelTrace bool
	// LogSpaceProduct accumulates the product as a sum of logarithms, for
	// inputs with enough faces to overflow a double.
	LogSpaceProduct bool
}

// DefaultOptions is the zero value, spelled out.
func DefaultOptions() Options {
	return Options{}
}
