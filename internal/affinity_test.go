//go:build !wasm

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAffinity(t *testing.T) {
	t.Run("cross-goroutine use panics", func(t *testing.T) {
		s := NewSet()

		recovered := make(chan any, 1)
		go func() {
			defer func() { recovered <- recover() }()
			s.Notify(nil)
		}()

		assert.NotNil(t, <-recovered)
	})

	t.Run("owner goroutine is fine", func(t *testing.T) {
		s := NewSet()
		assert.NotPanics(t, func() { s.Notify(nil) })
	})
}
