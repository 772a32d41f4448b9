package observe

import "github.com/mindbeam/observe/internal"

// Observable is the owning handle to a reactive value: storage plus
// notification rights. Copies of the pointer co-own the same cell and
// registry; mutating through any of them fires the shared listeners.
type Observable[T any] struct {
	cell *Cell[T]
	set  *internal.Set
}

func New[T any](initial T) *Observable[T] {
	return &Observable[T]{
		cell: NewCell(initial),
		set:  internal.NewSet(),
	}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	return o.cell.Get()
}

// Set stores v, then notifies. Mutate-then-notify: a listener always
// observes the post-mutation value.
func (o *Observable[T]) Set(v T) {
	o.cell.Set(v)
	o.set.Notify(v)
}

// Update replaces the value with fn(current), then notifies. The cell is
// borrowed while fn runs; fn writing back into the same observable panics.
func (o *Observable[T]) Update(fn func(T) T) {
	o.cell.Update(fn)
	o.set.Notify(o.cell.Get())
}

// Subscribe registers fn to fire on every notification until the returned
// subscription is cancelled.
func (o *Observable[T]) Subscribe(fn func(T)) Subscription {
	sub, _ := o.set.Reader().Subscribe(callbackOf(fn))
	return Subscription{inner: sub}
}

// Once registers fn for the next notification only.
func (o *Observable[T]) Once(fn func(T)) Subscription {
	sub, _ := o.set.Reader().Once(callbackOf(fn))
	return Subscription{inner: sub}
}

// OnCleanup registers a finalizer that runs when the observable is closed.
// It never fires on Set.
func (o *Observable[T]) OnCleanup(fn func()) {
	o.set.OnCleanup(fn)
}

// Reader returns a non-owning handle sharing this observable's value. Cheap;
// does not affect the registry's lifetime.
func (o *Observable[T]) Reader() Reader[T] {
	return Reader[T]{cell: o.cell, ref: o.set.Reader()}
}

// ListenerCount reports the number of live registry entries.
func (o *Observable[T]) ListenerCount() int {
	return o.set.Len()
}

// Close runs cleanup entries, drops all listeners, and marks the registry
// dead. Readers keep the last value but report absence on subscribe.
func (o *Observable[T]) Close() {
	o.set.Close()
}

// Reader keeps reading the last value of a reactive source even after the
// writer side is gone: it holds the value strongly and the registry weakly.
type Reader[T any] struct {
	cell *Cell[T]
	ref  internal.Reader
}

// Get returns the last value the source held.
func (r Reader[T]) Get() T {
	return r.cell.Get()
}

// Live reports whether the source's registry still exists.
func (r Reader[T]) Live() bool {
	return r.ref.Live()
}

// Same reports registry identity: true only when both readers point at the
// same live registry. A reader whose registry died compares unequal to
// everything, including a copy of itself.
func (r Reader[T]) Same(o Reader[T]) bool {
	return r.ref.Same(o.ref)
}

// Subscribe registers a durable listener. Reports false when the registry
// has already been released; subscribing through a dead reader never panics.
func (r Reader[T]) Subscribe(fn func(T)) (Subscription, bool) {
	sub, ok := r.ref.Subscribe(callbackOf(fn))
	return Subscription{inner: sub}, ok
}

// Once registers a listener for the next notification only.
func (r Reader[T]) Once(fn func(T)) (Subscription, bool) {
	sub, ok := r.ref.Once(callbackOf(fn))
	return Subscription{inner: sub}, ok
}

// SubscribeWeak registers a durable callback owned by the caller. The
// registry holds it weakly: drop the Callback and the entry is pruned on the
// next notification pass.
func (r Reader[T]) SubscribeWeak(cb *Callback[T]) (Subscription, bool) {
	sub, ok := r.ref.SubscribeWeak(cb.box)
	return Subscription{inner: sub}, ok
}

// OnCleanup registers a teardown finalizer on the source's registry.
// Reports false when the registry is gone.
func (r Reader[T]) OnCleanup(fn func()) bool {
	return r.ref.OnCleanup(fn)
}

// Callback is a durable listener owned by the subscriber rather than the
// registry, for use with SubscribeWeak.
type Callback[T any] struct {
	box *internal.Callback
}

func NewCallback[T any](fn func(T)) *Callback[T] {
	return &Callback[T]{box: &internal.Callback{Fn: func(v any) { fn(as[T](v)) }}}
}

// Subscription cancels one listener. The zero value is inert.
type Subscription struct {
	inner internal.Subscription
}

// Cancel removes the listener from the registry. Idempotent: the second
// call reports false. A listener already captured in an in-flight working
// set still fires for that pass.
func (s Subscription) Cancel() bool {
	return s.inner.Cancel()
}

// CleanUp adapts the subscription into a run-once guard: releasing the
// guard cancels the listener.
func (s Subscription) CleanUp() *CleanUp {
	return CleanUpFunc(func() { s.Cancel() })
}

func callbackOf[T any](fn func(T)) *internal.Callback {
	return &internal.Callback{Fn: func(v any) { fn(as[T](v)) }}
}
