package advanced

// Result is the complete outcome of one pipeline run.
type Result struct {
	Arrangement *Arrangement
	// Faces holds the bounded faces in a deterministic order.
	Faces []*Face
	// Outer holds each component's outer cycle. Excluded from the product.
	Outer []*Face
	// Dangling lists the pruned filament clusters. Non-fatal.
	Dangling []DanglingChain
	// Product is the perimeter product over Faces; 1.0 when Faces is empty.
	Product float64
}

// Subdivide runs the whole pipeline: validate, intersect, build, trace,
// aggregate. Input problems come back as typed errors before any graph state
// exists. Internal invariant violations panic with an
// InconsistentGraphError; recover them with HandleSubdividePanicRecover, or
// use the root package wrappers, which do.
func Subdivide(segments []Segment, opts Options) (*Result, error) {
	arr, err := BuildArrangement(segments, opts)
	if err != nil {
		return nil, err
	}
	fs := arr.TraceFaces(opts)
	product := arr.Aggregate(fs, opts)
	return &Result{
		Arrangement: arr,
		Faces:       fs.Bounded,
		Outer:       fs.Outer,
		Dangling:    fs.Dangling,
		Product:     product,
	}, nil
}
