package observe

// Cell is plain storage for a single value. It performs no notification;
// that is its owner's job, always after the mutation completes.
type Cell[T any] struct {
	value    T
	borrowed bool
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set replaces the value. Mutating a cell whose borrow is held by Update is
// a contract violation and panics.
func (c *Cell[T]) Set(v T) {
	if c.borrowed {
		panic("observe: cell mutated while borrowed")
	}
	c.value = v
}

// Update replaces the value with fn(current). The cell stays borrowed while
// fn runs, so fn must not call Set or Update on the same cell.
func (c *Cell[T]) Update(fn func(T) T) {
	if c.borrowed {
		panic("observe: cell mutated while borrowed")
	}
	c.borrowed = true
	defer func() { c.borrowed = false }()
	c.value = fn(c.value)
}
