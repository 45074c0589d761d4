package advanced

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapIndexCanonicalize(t *testing.T) {
	s := newSnapIndex(1e-9)

	a := s.canonicalize(Point{X: 1, Y: 1})
	// Jitter well inside tolerance resolves to the same id.
	b := s.canonicalize(Point{X: 1 + 2e-10, Y: 1 - 2e-10})
	assert.Equal(t, a, b)

	// Clearly outside tolerance allocates a fresh id.
	c := s.canonicalize(Point{X: 1 + 1e-8, Y: 1})
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, s.count())

	t.Run("first come fixes the position", func(t *testing.T) {
		// The jittered lookup must not have nudged the canonical position.
		assert.Equal(t, Point{X: 1, Y: 1}, s.pts[a])
	})
}

func TestSnapIndexCellBoundary(t *testing.T) {
	// With eps = 1e-9 the cell size is 4e-9, so x = 8e-9 is a cell boundary.
	// Two points straddling it are 8e-10 apart and land in different buckets;
	// the neighborhood scan still has to merge them.
	s := newSnapIndex(1e-9)
	a := s.canonicalize(Point{X: 8e-9 - 4e-10, Y: 0})
	b := s.canonicalize(Point{X: 8e-9 + 4e-10, Y: 0})
	assert.Equal(t, a, b)
	assert.Equal(t, 1, s.count())
}

func TestSnapIndexNegativeCoordinates(t *testing.T) {
	// Flooring, not truncation: points just either side of zero must not be
	// folded into the same cell by accident, but in-tolerance pairs across
	// the origin still merge.
	s := newSnapIndex(1e-9)
	a := s.canonicalize(Point{X: -2e-10, Y: 0})
	b := s.canonicalize(Point{X: 2e-10, Y: 0})
	assert.Equal(t, a, b)

	far := s.canonicalize(Point{X: -5, Y: -5})
	assert.NotEqual(t, a, far)
	assert.Equal(t, 2, s.count())
}

func TestSnapIndexChains(t *testing.T) {
	// Tolerance is pairwise against canonical positions, not transitive: a
	// chain of points each within eps of the previous raw point does not
	// creep. The second point snaps to the first and keeps its position, so
	// the third (2.4 eps from the canonical position) allocates fresh.
	s := newSnapIndex(1e-9)
	a := s.canonicalize(Point{X: 0, Y: 0})
	b := s.canonicalize(Point{X: 8.4e-10, Y: 0}) // 0.84 eps from a
	c := s.canonicalize(Point{X: 2.4e-9, Y: 0})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
