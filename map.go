package observe

// Map derives a value from one source.
func Map[A, T any](a Reader[A], f func(A) T) *MapReader[T] {
	return NewMapReader(func(ctx *Ctx) T {
		return f(Track(ctx, a))
	})
}

// Map2 derives a value from two sources.
func Map2[A, B, T any](a Reader[A], b Reader[B], f func(A, B) T) *MapReader[T] {
	return NewMapReader(func(ctx *Ctx) T {
		return f(Track(ctx, a), Track(ctx, b))
	})
}

// Map3 derives a value from three sources.
func Map3[A, B, C, T any](a Reader[A], b Reader[B], c Reader[C], f func(A, B, C) T) *MapReader[T] {
	return NewMapReader(func(ctx *Ctx) T {
		return f(Track(ctx, a), Track(ctx, b), Track(ctx, c))
	})
}

// FlatMap derives through a reader-valued projection: the result tracks the
// outer source and whichever inner reader the projection currently selects,
// re-targeting the inner subscription when the outer value changes.
func FlatMap[A, T any](a Reader[A], f func(A) Reader[T]) *MapReader[T] {
	return NewMapReader(func(ctx *Ctx) T {
		inner := f(Track(ctx, a))
		return Track(ctx, inner)
	})
}
