//go:build wasm

package internal

// The wasm host is single-threaded, so there is nothing to pin.
type affinity struct{}

func newAffinity() affinity { return affinity{} }

func (affinity) check() {}
