package advanced

import "math"

// The snap index assigns canonical vertex ids. Two raw coordinates within
// epsilon of each other must resolve to the same id no matter how far apart
// the lookups happen, so ids are handed out strictly first-come: the first
// coordinate seen in a neighborhood fixes the canonical position for
// everything that later snaps onto it.
//
// Buckets are keyed by quantized coordinates. A lookup scans the 3x3 cell
// neighborhood around the candidate's cell, which sees every in-tolerance
// vertex as long as the cell size is at least epsilon. We use four epsilon,
// keeping buckets small without risking a miss across a cell boundary.
type snapIndex struct {
	eps     float64
	cell    float64
	buckets map[cellKey][]VertexID
	pts     []Point
}

type cellKey struct {
	X, Y int64
}

func newSnapIndex(eps float64) *snapIndex {
	return &snapIndex{
		eps:     eps,
		cell:    4 * eps,
		buckets: make(map[cellKey][]VertexID),
	}
}

func (s *snapIndex) keyFor(p Point) cellKey {
	return cellKey{
		X: int64(math.Floor(p.X / s.cell)),
		Y: int64(math.Floor(p.Y / s.cell)),
	}
}

// canonicalize returns the vertex id for p, allocating a fresh id only when
// no existing vertex lies within tolerance. Single-writer: the arrangement
// builder is the only caller, and it runs on one goroutine even when the
// intersection sweep is parallel.
func (s *snapIndex) canonicalize(p Point) VertexID {
	key := s.keyFor(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			neighbor := cellKey{X: key.X + dx, Y: key.Y + dy}
			for _, id := range s.buckets[neighbor] {
				if samePoint(p, s.pts[id], s.eps) {
					return id
				}
			}
		}
	}
	id := VertexID(len(s.pts))
	s.pts = append(s.pts, p)
	s.buckets[key] = append(s.buckets[key], id)
	return id
}

func (s *snapIndex) count() int {
	return len(s.pts)
}
