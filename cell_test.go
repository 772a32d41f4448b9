package observe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell(t *testing.T) {
	t.Run("set and read", func(t *testing.T) {
		val := NewCell(0)
		assert.Equal(t, 0, val.Get())

		val.Set(1)
		assert.Equal(t, 1, val.Get())
	})

	t.Run("update", func(t *testing.T) {
		val := NewCell(2)
		val.Update(func(v int) int { return v * v })
		assert.Equal(t, 4, val.Get())
	})

	t.Run("set while borrowed panics", func(t *testing.T) {
		val := NewCell(0)

		assert.PanicsWithValue(t, "observe: cell mutated while borrowed", func() {
			val.Update(func(v int) int {
				val.Set(9)
				return v
			})
		})
	})

	t.Run("nested update panics", func(t *testing.T) {
		val := NewCell(0)

		assert.PanicsWithValue(t, "observe: cell mutated while borrowed", func() {
			val.Update(func(v int) int {
				val.Update(func(v int) int { return v })
				return v
			})
		})
	})

	t.Run("borrow is released after a panic", func(t *testing.T) {
		val := NewCell(0)

		assert.Panics(t, func() {
			val.Update(func(int) int { panic("boom") })
		})

		val.Set(3)
		assert.Equal(t, 3, val.Get())
	})
}
