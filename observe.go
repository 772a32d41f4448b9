// Package observe is a small reactive-value library: an Observable holds a
// value and notifies subscribers when it changes; a Reader keeps reading the
// last value even after the writer side is gone; a MapReader derives a value
// from whatever readers its closure consulted last pass, re-subscribing to
// exactly that set on every recomputation.
//
// The engine is single-threaded and synchronous. Every value is pinned to
// the goroutine that created it; host boundaries must confine all crossings
// to that goroutine.
package observe

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}
