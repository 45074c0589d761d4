package advanced

import (
	"math"
	"sort"
)

// Arrangement is the planar subdivision graph: canonical vertices plus two
// mutual twin half-edges per undirected edge, all linked by index. The
// topology is immutable once BuildArrangement returns; face tracing only
// touches the visited and pruned flags and assigns next links.
type Arrangement struct {
	Vertices []Vertex
	Edges    []HalfEdge

	eps    float64
	comps  int
	traced bool
}

func (a *Arrangement) Epsilon() float64 {
	return a.eps
}

func (a *Arrangement) NumComponents() int {
	return a.comps
}

// EdgeCount is the number of undirected edges.
func (a *Arrangement) EdgeCount() int {
	return len(a.Edges) / 2
}

// edgeKey identifies an undirected edge by its canonical endpoints, smaller
// id first.
type edgeKey struct {
	A, B VertexID
}

func orderedKey(u, v VertexID) edgeKey {
	if u < v {
		return edgeKey{A: u, B: v}
	}
	return edgeKey{A: v, B: u}
}

// BuildArrangement runs validation, the intersection sweep, and graph
// construction. Input problems come back as typed errors; nothing is built
// past the first one.
func BuildArrangement(segments []Segment, opts Options) (*Arrangement, error) {
	if err := checkFinite(segments); err != nil {
		return nil, err
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = autoEpsilon(segments)
	}
	snap := newSnapIndex(eps)
	logical, err := prepareSegments(segments, snap, eps, opts.Duplicates)
	if err != nil {
		return nil, err
	}
	collectHits(logical, eps, opts.IntersectWorkers)

	// Canonicalize every break point in parametric order. Consecutive hits
	// that fold onto the same vertex collapse; each segment must still span at
	// least two vertices after collapsing.
	paths := make([][]VertexID, len(logical))
	for i, ls := range logical {
		prev := NoVertex
		for _, h := range ls.hits {
			id := snap.canonicalize(h.p)
			if id != prev {
				paths[i] = append(paths[i], id)
				prev = id
			}
		}
		if len(paths[i]) < 2 {
			return nil, &DegenerateSegmentError{Segment: ls.index, Reason: "contributes no edges"}
		}
	}

	a := &Arrangement{eps: eps}
	a.Vertices = make([]Vertex, snap.count())
	for i, p := range snap.pts {
		a.Vertices[i] = Vertex{Pos: p, Comp: -1}
	}
	seen := make(map[edgeKey]EdgeID)
	for _, path := range paths {
		for k := 0; k+1 < len(path); k++ {
			a.addEdge(path[k], path[k+1], seen)
		}
	}
	a.finalize()
	return a, nil
}

func checkFinite(segments []Segment) error {
	for i, s := range segments {
		for _, p := range [2]Point{s.Start, s.End} {
			if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
				return &InvalidGeometryError{Segment: i, Point: p}
			}
		}
	}
	return nil
}

// addEdge inserts the undirected edge u-v unless it already exists. Twins are
// allocated adjacently, even id first, and each lands in its origin's
// outgoing list.
func (a *Arrangement) addEdge(u, v VertexID, seen map[edgeKey]EdgeID) {
	key := orderedKey(u, v)
	if _, ok := seen[key]; ok {
		return
	}
	pu := a.Vertices[u].Pos
	pv := a.Vertices[v].Pos
	e1 := EdgeID(len(a.Edges))
	e2 := e1 + 1
	a.Edges = append(a.Edges,
		HalfEdge{Origin: u, Dest: v, Twin: e2, Next: NoEdge, angle: directionAngle(pu, pv)},
		HalfEdge{Origin: v, Dest: u, Twin: e1, Next: NoEdge, angle: directionAngle(pv, pu)},
	)
	a.Vertices[u].Out = append(a.Vertices[u].Out, e1)
	a.Vertices[v].Out = append(a.Vertices[v].Out, e2)
	seen[key] = e1
}

// finalize freezes the angular order at every vertex and labels connected
// components. Angles tie-break by destination coordinate and then edge id, so
// the order is total and reproducible even for nearly parallel edges.
func (a *Arrangement) finalize() {
	for vi := range a.Vertices {
		v := &a.Vertices[vi]
		out := v.Out
		sort.Slice(out, func(i, j int) bool {
			ei := &a.Edges[out[i]]
			ej := &a.Edges[out[j]]
			if ei.angle != ej.angle {
				return ei.angle < ej.angle
			}
			di := a.Vertices[ei.Dest].Pos
			dj := a.Vertices[ej.Dest].Pos
			if di.X != dj.X {
				return di.X < dj.X
			}
			if di.Y != dj.Y {
				return di.Y < dj.Y
			}
			return out[i] < out[j]
		})
		for i, e := range out {
			a.Edges[e].rot = i
		}
	}
	a.labelComponents()
}

func (a *Arrangement) labelComponents() {
	comp := 0
	for vi := range a.Vertices {
		if a.Vertices[vi].Comp >= 0 {
			continue
		}
		a.Vertices[vi].Comp = comp
		queue := []VertexID{VertexID(vi)}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, e := range a.Vertices[v].Out {
				w := a.Edges[e].Dest
				if a.Vertices[w].Comp < 0 {
					a.Vertices[w].Comp = comp
					queue = append(queue, w)
				}
			}
		}
		comp++
	}
	a.comps = comp
}

// Verify checks the structural invariants the tracer depends on: mutual
// twins with mirrored endpoints, consistent rotational positions, ascending
// angular order, no stranded vertices. It returns an InconsistentGraphError
// describing the first violation, or nil.
func (a *Arrangement) Verify() error {
	for i := range a.Edges {
		e := &a.Edges[i]
		if e.Twin < 0 || int(e.Twin) >= len(a.Edges) {
			return inconsistentf("half-edge %d: twin %d out of range", i, e.Twin)
		}
		tw := &a.Edges[e.Twin]
		if tw.Twin != EdgeID(i) {
			return inconsistentf("half-edge %d: twin %d does not point back", i, e.Twin)
		}
		if e.Origin != tw.Dest || e.Dest != tw.Origin {
			return inconsistentf("half-edge %d: twin %d endpoints do not mirror", i, e.Twin)
		}
		out := a.Vertices[e.Origin].Out
		if e.rot < 0 || e.rot >= len(out) || out[e.rot] != EdgeID(i) {
			return inconsistentf("half-edge %d: rotational position %d corrupt at vertex %d", i, e.rot, e.Origin)
		}
	}
	for vi := range a.Vertices {
		out := a.Vertices[vi].Out
		if len(out) == 0 {
			return inconsistentf("vertex %d has no incident edges", vi)
		}
		for k := 1; k < len(out); k++ {
			if a.Edges[out[k-1]].angle > a.Edges[out[k]].angle {
				return inconsistentf("vertex %d: angular order corrupt at position %d", vi, k)
			}
		}
	}
	return nil
}
