package observe

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect() {
	runtime.GC()
	runtime.GC()
}

func TestReaderHandle(t *testing.T) {
	t.Run("reads through to the live source", func(t *testing.T) {
		count := New(1)
		r := count.Reader()

		count.Set(2)
		assert.Equal(t, 2, r.Get())
		assert.True(t, r.Live())
	})

	t.Run("survives writer death with the last value", func(t *testing.T) {
		count := New(0)
		r := count.Reader()
		count.Set(7)

		count = nil
		collect()

		assert.Equal(t, 7, r.Get())
		assert.False(t, r.Live())

		_, ok := r.Subscribe(func(int) {})
		assert.False(t, ok)
		_, ok = r.Once(func(int) {})
		assert.False(t, ok)
	})

	t.Run("subscribe reports absence after close", func(t *testing.T) {
		count := New(0)
		r := count.Reader()
		count.Close()

		assert.Equal(t, 0, r.Get())
		_, ok := r.Subscribe(func(int) {})
		assert.False(t, ok)
	})

	t.Run("identity is the registry", func(t *testing.T) {
		a := New(1)
		b := New(1)

		assert.True(t, a.Reader().Same(a.Reader()))
		assert.False(t, a.Reader().Same(b.Reader()))
	})

	t.Run("a dead reader equals nothing, itself included", func(t *testing.T) {
		count := New(0)
		r := count.Reader()
		clone := r

		count.Close()
		assert.False(t, r.Same(clone))
		assert.False(t, r.Same(r))
	})

	t.Run("subscription through a reader cancels like any other", func(t *testing.T) {
		fired := 0

		count := New(0)
		sub, ok := count.Reader().Subscribe(func(int) { fired++ })
		assert.True(t, ok)

		count.Set(1)
		assert.True(t, sub.Cancel())
		count.Set(2)

		assert.Equal(t, 1, fired)
	})

	t.Run("weakly held callback stops firing once dropped", func(t *testing.T) {
		fired := 0

		count := New(0)
		cb := NewCallback(func(int) { fired++ })
		_, ok := count.Reader().SubscribeWeak(cb)
		assert.True(t, ok)

		count.Set(1)
		assert.Equal(t, 1, fired)

		cb = nil
		collect()

		count.Set(2)
		assert.Equal(t, 1, fired)
		assert.Equal(t, 0, count.ListenerCount())
	})

	t.Run("cleanup through a reader", func(t *testing.T) {
		ran := 0

		count := New(0)
		r := count.Reader()
		assert.True(t, r.OnCleanup(func() { ran++ }))

		count.Close()
		assert.Equal(t, 1, ran)
		assert.False(t, r.OnCleanup(func() {}))
	})
}
