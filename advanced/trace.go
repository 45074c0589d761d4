package advanced

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/logrusorgru/aurora"

	"github.com/osuushi/subdivide/dbg"
)

// FaceSet is the outcome of one tracing pass over an arrangement.
type FaceSet struct {
	Bounded  []*Face
	Outer    []*Face
	Dangling []DanglingChain
}

// TraceFaces enumerates every boundary cycle of the arrangement with the
// right-hand rule walk. One pass: every live half-edge is claimed exactly
// once, so calling this twice on the same arrangement panics.
//
// Filaments are pruned first. A walk that entered a dead end would have to
// bounce straight back along the twin, wrapping zero area around edges that
// enclose nothing, so degree-1 vertices are peeled off iteratively until
// every remaining vertex can pass a walk through. The peeled chains are
// reported, not failed.
func (a *Arrangement) TraceFaces(opts Options) *FaceSet {
	if a.traced {
		fatalf("arrangement has already been traced")
	}
	a.traced = true
	fs := &FaceSet{Dangling: a.pruneFilaments()}

	var faces []*Face
	if opts.ParallelTrace && a.comps > 1 {
		faces = a.traceParallel(opts.Chirality)
	} else {
		faces = a.traceComponentRange(0, a.comps, opts.Chirality)
	}
	sort.Slice(faces, func(i, j int) bool { return a.faceLess(faces[i], faces[j]) })
	for _, f := range faces {
		if f.Bounded {
			fs.Bounded = append(fs.Bounded, f)
		} else {
			fs.Outer = append(fs.Outer, f)
		}
	}
	return fs
}

// pruneFilaments removes every edge that cannot sit on a cycle by repeatedly
// deleting degree-1 vertices. Removing a leaf can expose its neighbor as the
// next leaf, so whole trees hanging off the graph peel away while the cyclic
// part stays intact.
func (a *Arrangement) pruneFilaments() []DanglingChain {
	deg := make([]int, len(a.Vertices))
	var stack []VertexID
	for i := range a.Vertices {
		deg[i] = len(a.Vertices[i].Out)
		if deg[i] == 1 {
			stack = append(stack, VertexID(i))
		}
	}
	pruned := false
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if deg[v] != 1 {
			continue
		}
		live := NoEdge
		for _, e := range a.Vertices[v].Out {
			if !a.Edges[e].pruned {
				live = e
				break
			}
		}
		if live == NoEdge {
			fatalf("vertex %v has degree 1 but no live edge", v)
		}
		w := a.Edges[live].Dest
		a.Edges[live].pruned = true
		a.Edges[a.Edges[live].Twin].pruned = true
		deg[v]--
		deg[w]--
		if deg[w] == 1 {
			stack = append(stack, w)
		}
		pruned = true
	}
	if !pruned {
		return nil
	}
	return a.collectChains()
}

// collectChains groups the pruned edges into connected clusters, one
// DanglingChain per cluster, each listing its canonical (even) edge ids.
func (a *Arrangement) collectChains() []DanglingChain {
	assigned := make(map[EdgeID]bool)
	var chains []DanglingChain
	for e := 0; e < len(a.Edges); e += 2 {
		if !a.Edges[e].pruned || assigned[EdgeID(e)] {
			continue
		}
		var chain []EdgeID
		stack := []EdgeID{EdgeID(e)}
		assigned[EdgeID(e)] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			chain = append(chain, cur)
			for _, vid := range [2]VertexID{a.Edges[cur].Origin, a.Edges[cur].Dest} {
				for _, out := range a.Vertices[vid].Out {
					// Twins are allocated in pairs, so the even id is the
					// canonical undirected edge.
					ce := out &^ 1
					if a.Edges[ce].pruned && !assigned[ce] {
						assigned[ce] = true
						stack = append(stack, ce)
					}
				}
			}
		}
		sort.Slice(chain, func(i, j int) bool { return chain[i] < chain[j] })
		chains = append(chains, DanglingChain{Edges: chain})
	}
	return chains
}

// nextInFace is the transition rule of the walk. Standing on e = (u -> v),
// the continuation leaves v immediately after e's twin in v's angular order:
// the counterclockwise successor under clockwise chirality, the predecessor
// under counterclockwise. That always turns as sharply as possible onto the
// boundary of the smallest region on the walk's fixed side.
//
//	      twin(e)
//	   u <------- v
//	   u -------> v
//	        e      \ next
//	                v
//
// Pruned entries are skipped in rotation. Finding nothing but the twin means
// an effective dead end survived pruning, which cannot happen in a consistent
// graph.
func (a *Arrangement) nextInFace(e EdgeID, chir Chirality) EdgeID {
	tw := a.Edges[e].Twin
	v := &a.Vertices[a.Edges[e].Dest]
	n := len(v.Out)
	i := a.Edges[tw].rot
	for k := 1; k <= n; k++ {
		var j int
		if chir == Clockwise {
			j = CircularIndex(i+k, n)
		} else {
			j = CircularIndex(i-k, n)
		}
		cand := v.Out[j]
		if cand == tw || a.Edges[cand].pruned {
			continue
		}
		return cand
	}
	fatalf("no continuation after half-edge %v at vertex %v", e, a.Edges[e].Dest)
	return NoEdge
}

// traceFrom claims half-edges from start until the walk returns to start,
// then classifies the closed cycle by its signed area. Under clockwise
// chirality bounded faces come out clockwise (negative shoelace area) and
// each component's outer cycle counterclockwise; the opposite chirality flips
// both signs.
func (a *Arrangement) traceFrom(start EdgeID, chir Chirality) *Face {
	var cycle []EdgeID
	e := start
	for {
		if !atomic.CompareAndSwapUint32(&a.Edges[e].visited, 0, 1) {
			fatalf("half-edge %v claimed twice during tracing", e)
		}
		cycle = append(cycle, e)
		next := a.nextInFace(e, chir)
		a.Edges[e].Next = next
		if next == start {
			break
		}
		if len(cycle) > len(a.Edges) {
			fatalf("face walk from half-edge %v failed to close", start)
		}
		e = next
	}
	cycle = a.rotateCanonical(cycle)
	area := a.cycleArea(cycle)
	bounded := area < -a.eps
	if chir == CounterClockwise {
		bounded = area > a.eps
	}
	return &Face{Edges: cycle, Bounded: bounded}
}

// traceComponentRange walks every unvisited live half-edge whose component
// label falls in [lo, hi). Edge ids ascend, so discovery order is fixed.
func (a *Arrangement) traceComponentRange(lo, hi int, chir Chirality) []*Face {
	var faces []*Face
	for e := range a.Edges {
		he := &a.Edges[e]
		if he.pruned || atomic.LoadUint32(&he.visited) != 0 {
			continue
		}
		if c := a.Vertices[he.Origin].Comp; c < lo || c >= hi {
			continue
		}
		faces = append(faces, a.traceFrom(EdgeID(e), chir))
	}
	return faces
}

// traceParallel splits the component range across workers. Components are
// disjoint edge sets, so the workers share nothing mutable beyond the
// CAS-claimed visited flags; the merged faces are re-sorted by the caller, so
// the output cannot depend on scheduling.
func (a *Arrangement) traceParallel(chir Chirality) []*Face {
	workers := runtime.NumCPU()
	if workers > a.comps {
		workers = a.comps
	}
	chunk := (a.comps + workers - 1) / workers
	results := make([][]*Face, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > a.comps {
			hi = a.comps
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			results[w] = a.traceComponentRange(lo, hi, chir)
		}(w, lo, hi)
	}
	wg.Wait()
	var faces []*Face
	for _, r := range results {
		faces = append(faces, r...)
	}
	return faces
}

// rotateCanonical starts the cycle at its lexicographically smallest origin,
// so the same face always reads the same way regardless of which half-edge
// the trace happened to begin on.
func (a *Arrangement) rotateCanonical(cycle []EdgeID) []EdgeID {
	best := 0
	for i := 1; i < len(cycle); i++ {
		if a.originLess(cycle[i], cycle[best]) {
			best = i
		}
	}
	out := make([]EdgeID, 0, len(cycle))
	out = append(out, cycle[best:]...)
	return append(out, cycle[:best]...)
}

func (a *Arrangement) originLess(e1, e2 EdgeID) bool {
	p1 := a.Vertices[a.Edges[e1].Origin].Pos
	p2 := a.Vertices[a.Edges[e2].Origin].Pos
	if p1.X != p2.X {
		return p1.X < p2.X
	}
	if p1.Y != p2.Y {
		return p1.Y < p2.Y
	}
	return e1 < e2
}

// faceLess orders faces by their origin coordinate sequences, so the final
// face list is stable under input permutation, where raw edge ids are not.
func (a *Arrangement) faceLess(f, g *Face) bool {
	n := len(f.Edges)
	if len(g.Edges) < n {
		n = len(g.Edges)
	}
	for i := 0; i < n; i++ {
		p1 := a.Vertices[a.Edges[f.Edges[i]].Origin].Pos
		p2 := a.Vertices[a.Edges[g.Edges[i]].Origin].Pos
		if p1.X != p2.X {
			return p1.X < p2.X
		}
		if p1.Y != p2.Y {
			return p1.Y < p2.Y
		}
	}
	if len(f.Edges) != len(g.Edges) {
		return len(f.Edges) < len(g.Edges)
	}
	return f.Edges[0] < g.Edges[0]
}

// cycleArea is the shoelace sum over the cycle's origin points, halved.
// Positive means counterclockwise.
func (a *Arrangement) cycleArea(cycle []EdgeID) float64 {
	sum := 0.0
	for i, e := range cycle {
		p := a.Vertices[a.Edges[e].Origin].Pos
		q := a.Vertices[a.Edges[cycle[CircularIndex(i+1, len(cycle))]].Origin].Pos
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func (f *Face) DbgName() string {
	if f == nil {
		return "<nil>"
	}
	if f.Bounded {
		return aurora.Green(dbg.Name(f)).String()
	}
	return aurora.Yellow(dbg.Name(f)).String()
}

// DbgName names the chain by its lead edge id. The chain value holds a slice
// and cannot be a memo key itself.
func (c DanglingChain) DbgName() string {
	if len(c.Edges) == 0 {
		return "Ø"
	}
	return aurora.Cyan(dbg.Name(c.Edges[0])).String()
}
