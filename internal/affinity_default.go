//go:build !wasm

package internal

import (
	"fmt"

	"github.com/petermattis/goid"
)

// affinity pins a value to the goroutine that created it. The engine is
// single-threaded; crossing goroutines is a contract violation, not a race
// to be tolerated.
type affinity int64

func newAffinity() affinity { return affinity(goid.Get()) }

func (a affinity) check() {
	if gid := goid.Get(); gid != int64(a) {
		panic(fmt.Sprintf("observe: used from goroutine %d, owned by goroutine %d", gid, int64(a)))
	}
}
