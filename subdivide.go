// A planar subdivision package for Go.
//
// Given an unordered set of 2D line segments, this package resolves every
// crossing into a shared vertex, builds the induced planar graph, traces each
// minimal enclosed face, and reports the product of the faces' perimeters.
package subdivide

import "github.com/osuushi/subdivide/advanced"

type Point = advanced.Point
type Segment = advanced.Segment
type Face = advanced.Face
type Result = advanced.Result

// Compute the perimeter product over every minimal enclosed face.
//
// Segments may cross, touch, overlap, and repeat; no preprocessing is
// expected of the caller. Inputs that enclose nothing give 1.0. See the
// advanced package for tolerance, chirality, and parallelism control.
func PerimeterProduct(segments []Segment) (product float64, err error) {
	defer func() {
		recoveredErr := advanced.HandleSubdividePanicRecover(recover())
		if recoveredErr != nil {
			product = 0
			err = recoveredErr
		}
	}()
	result, err := advanced.Subdivide(segments, advanced.DefaultOptions())
	if err != nil {
		return 0, err
	}
	return result.Product, nil
}

// Subdivide runs the same pipeline but keeps the full result: the traced
// faces, each component's outer cycle, and any pruned dangling chains.
func Subdivide(segments []Segment) (result *Result, err error) {
	defer func() {
		recoveredErr := advanced.HandleSubdividePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return advanced.Subdivide(segments, advanced.DefaultOptions())
}
