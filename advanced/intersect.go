package advanced

import (
	"sort"
	"sync"
)

// The intersection sweep is plain O(n^2) over segment pairs. Every meeting
// point between two segments, however they meet, becomes a break point on
// both, so that by the time edges are emitted no two edges cross anywhere but
// at shared vertices.

// hit is one break point on a segment: the parameter along it and the raw
// coordinate. The coordinate is carried verbatim from whichever endpoint or
// crossing produced it, so identical meetings canonicalize identically.
type hit struct {
	t float64
	p Point
}

// logicalSegment is one deduplicated input segment with its accumulated break
// points. index is the original input position of the first contributor.
type logicalSegment struct {
	seg    Segment
	index  int
	v0, v1 VertexID
	length float64
	hits   []hit
}

// prepareSegments canonicalizes endpoints, rejects degenerate input, and
// applies the duplicate policy. Two segments are duplicates when their
// canonical endpoint pair matches, in either direction; a straight segment is
// fully determined by its endpoints, so that is the whole coincidence test.
func prepareSegments(segments []Segment, snap *snapIndex, eps float64, policy DuplicatePolicy) ([]*logicalSegment, error) {
	logical := make([]*logicalSegment, 0, len(segments))
	seen := make(map[edgeKey]int)
	for i, s := range segments {
		v0 := snap.canonicalize(s.Start)
		v1 := snap.canonicalize(s.End)
		length := dist(s.Start, s.End)
		if length <= eps {
			return nil, &DegenerateSegmentError{Segment: i, Reason: "zero length"}
		}
		if v0 == v1 {
			return nil, &DegenerateSegmentError{Segment: i, Reason: "collapses to a single canonical vertex"}
		}
		key := orderedKey(v0, v1)
		if _, dup := seen[key]; dup {
			if policy == RejectDuplicates {
				return nil, &DegenerateSegmentError{Segment: i, Reason: "coincides with an earlier segment"}
			}
			continue
		}
		seen[key] = len(logical)
		logical = append(logical, &logicalSegment{seg: s, index: i, v0: v0, v1: v1, length: length})
	}
	return logical, nil
}

// segmentHits computes the break points one pair contributes to each side.
// Three shapes of meeting:
//
//   - collinear overlap: each endpoint of one segment that lands on the other
//     becomes a break point there, carving out the shared interval
//   - proper crossing or endpoint touch: the parametric solution, accepted
//     when both parameters sit inside the unit range with epsilon slack
//   - parallel on distinct lines: nothing
//
// Parameter slack is epsilon divided by segment length, so the tolerance is a
// distance along the segment, not a raw parameter. Near-parallel pairs whose
// parametric solution explodes out of range fall through harmlessly.
func segmentHits(a, b *logicalSegment, eps float64) (onA, onB []hit) {
	d1 := sub(a.seg.End, a.seg.Start)
	d2 := sub(b.seg.End, b.seg.Start)
	tolA := eps / a.length
	tolB := eps / b.length

	if Orient(a.seg.Start, a.seg.End, b.seg.Start, eps) == TurnCollinear &&
		Orient(a.seg.Start, a.seg.End, b.seg.End, eps) == TurnCollinear {
		ll := a.length * a.length
		for _, p := range [2]Point{b.seg.Start, b.seg.End} {
			if t := dot(sub(p, a.seg.Start), d1) / ll; t > -tolA && t < 1+tolA {
				onA = append(onA, hit{t: clamp01(t), p: p})
			}
		}
		ll = b.length * b.length
		for _, p := range [2]Point{a.seg.Start, a.seg.End} {
			if u := dot(sub(p, b.seg.Start), d2) / ll; u > -tolB && u < 1+tolB {
				onB = append(onB, hit{t: clamp01(u), p: p})
			}
		}
		return onA, onB
	}

	den := cross(d1, d2)
	if den == 0 {
		return nil, nil
	}
	qp := sub(b.seg.Start, a.seg.Start)
	t := cross(qp, d2) / den
	u := cross(qp, d1) / den
	if t < -tolA || t > 1+tolA || u < -tolB || u > 1+tolB {
		return nil, nil
	}
	t = clamp01(t)
	u = clamp01(u)
	p := Point{X: a.seg.Start.X + t*d1.X, Y: a.seg.Start.Y + t*d1.Y}
	return []hit{{t: t, p: p}}, []hit{{t: u, p: p}}
}

// pairRecord buffers one pair's hits until the deterministic merge.
type pairRecord struct {
	i, j int
	onI  []hit
	onJ  []hit
}

// collectHits runs the pairwise sweep and leaves every logical segment with
// its sorted break point list, endpoints included. With more than one worker
// the pair rows are split into contiguous ranges; each worker fills a private
// buffer and the buffers are applied in worker order, which reproduces the
// serial application order exactly. Canonicalization happens later, on one
// goroutine, reading these lists in segment order.
func collectHits(logical []*logicalSegment, eps float64, workers int) {
	n := len(logical)
	sweepRows := func(lo, hi int, out *[]pairRecord) {
		for i := lo; i < hi; i++ {
			for j := i + 1; j < n; j++ {
				onI, onJ := segmentHits(logical[i], logical[j], eps)
				if len(onI) > 0 || len(onJ) > 0 {
					*out = append(*out, pairRecord{i: i, j: j, onI: onI, onJ: onJ})
				}
			}
		}
	}

	var records []pairRecord
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		sweepRows(0, n, &records)
	} else {
		chunk := (n + workers - 1) / workers
		buffers := make([][]pairRecord, workers)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			if lo >= hi {
				continue
			}
			wg.Add(1)
			go func(w, lo, hi int) {
				defer wg.Done()
				sweepRows(lo, hi, &buffers[w])
			}(w, lo, hi)
		}
		wg.Wait()
		for _, b := range buffers {
			records = append(records, b...)
		}
	}

	for _, r := range records {
		logical[r.i].hits = append(logical[r.i].hits, r.onI...)
		logical[r.j].hits = append(logical[r.j].hits, r.onJ...)
	}
	for _, ls := range logical {
		ls.hits = append(ls.hits, hit{t: 0, p: ls.seg.Start}, hit{t: 1, p: ls.seg.End})
		hits := ls.hits
		sort.Slice(hits, func(a, b int) bool {
			if hits[a].t != hits[b].t {
				return hits[a].t < hits[b].t
			}
			if hits[a].p.X != hits[b].p.X {
				return hits[a].p.X < hits[b].p.X
			}
			return hits[a].p.Y < hits[b].p.Y
		})
	}
}
