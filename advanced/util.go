package advanced

import "math"

// Tolerances scale with the input. At unit scale this matches the classic
// 1e-9 geometric tolerance; for inputs living at 1e6 the same relative slack
// applies. A fixed absolute tolerance would either shred large inputs into
// spurious vertices or weld small ones together.
const baseEpsilon = 1e-9

// autoEpsilon picks the point identity tolerance for a segment set from its
// largest coordinate magnitude. Inputs below unit scale keep the base value.
func autoEpsilon(segments []Segment) float64 {
	maxMag := 1.0
	for _, s := range segments {
		for _, c := range [4]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y} {
			if a := math.Abs(c); a > maxMag {
				maxMag = a
			}
		}
	}
	return baseEpsilon * maxMag
}

// samePoint is the identity rule: both coordinate differences within epsilon.
func samePoint(a, b Point, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func sub(a, b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

// cross treats its arguments as vectors and returns the z component of their
// cross product. Zero means parallel; the sign gives the turn direction.
func cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

func dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Turn is the result of the orientation predicate.
type Turn int

const (
	TurnClockwise        Turn = -1
	TurnCollinear        Turn = 0
	TurnCounterClockwise Turn = 1
)

// Orient classifies c against the directed line a->b. The collinearity
// threshold is epsilon scaled by |b-a|, so it reads as a true distance from
// the line rather than a raw cross product magnitude.
func Orient(a, b, c Point, eps float64) Turn {
	area := cross(sub(b, a), sub(c, a))
	if math.Abs(area) <= eps*dist(a, b) {
		return TurnCollinear
	}
	if area > 0 {
		return TurnCounterClockwise
	}
	return TurnClockwise
}

// directionAngle gives the angle of the ray from -> to, normalized to
// [0, 2pi) so angular sorting at a vertex has a single wraparound point.
func directionAngle(from, to Point) float64 {
	a := math.Atan2(to.Y-from.Y, to.X-from.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}
