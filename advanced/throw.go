package advanced

// Invariant violations can surface deep inside the tracing and canonicalization
// loops. Threading error returns through every step of those walks would bloat
// the hot paths for conditions that indicate a defect, not an input problem.
// Instead, internals panic, and the public API recovers to convert to an error.

// Panic with an InconsistentGraphError.
func fatalf(format string, args ...interface{}) {
	panic(inconsistentf(format, args...))
}

func HandleSubdividePanicRecover(r interface{}) error {
	if r != nil {
		if graphError, ok := r.(*InconsistentGraphError); ok {
			return graphError
		}
		panic(r)
	}
	return nil
}
