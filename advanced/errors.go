package advanced

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidGeometryError reports a non-finite input coordinate. Raised before
// any graph state exists, so a failed run produces no partial output.
type InvalidGeometryError struct {
	Segment int
	Point   Point
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: segment %d has non-finite coordinate %v", e.Segment, e.Point)
}

// DegenerateSegmentError reports a segment that cannot contribute an edge:
// zero length, collapsing to a single canonical vertex, or a coincident
// duplicate under the reject policy.
type DegenerateSegmentError struct {
	Segment int
	Reason  string
}

func (e *DegenerateSegmentError) Error() string {
	return fmt.Sprintf("degenerate segment %d: %s", e.Segment, e.Reason)
}

// InconsistentGraphError wraps an internal invariant violation: a missing
// twin, a corrupted angular order, a walk that never closes. It means the
// pipeline itself is defective, never that the input was bad.
type InconsistentGraphError struct {
	Err error
}

func (e *InconsistentGraphError) Error() string {
	return "inconsistent graph: " + e.Err.Error()
}

func (e *InconsistentGraphError) Unwrap() error {
	return e.Err
}

func inconsistentf(format string, args ...interface{}) error {
	return &InconsistentGraphError{Err: errors.Errorf(format, args...)}
}
