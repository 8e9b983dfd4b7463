package core

// Outcome is the result of an operation guarded by a rate limiter.
// Exactly one of Value or Err is meaningful: Err is non-nil on failure.
type Outcome struct {
	Value any   // Value returned by the operation on success
	Err   error // Error returned by the operation on failure
}

// Failed reports whether the operation ended with an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// DrainPredicate decides, after a guarded operation completes, whether the
// permits left for the current period should be discarded.
type DrainPredicate func(Outcome) bool

// NeverDrain is the default DrainPredicate. It never drains.
func NeverDrain(Outcome) bool {
	return false
}

// DrainOnFailure drains whenever the operation failed.
func DrainOnFailure(o Outcome) bool {
	return o.Failed()
}
