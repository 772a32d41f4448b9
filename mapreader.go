package observe

import (
	"weak"

	"github.com/mindbeam/observe/internal"
)

// MapReader is the read handle of a derived value. It is the only strong
// owner of the recomputation trigger; every upstream registry reaches the
// trigger weakly, so dropping the handle both breaks the would-be cycle
// between sources and the derived value and stops all recomputation.
type MapReader[T any] struct {
	cell    *Cell[T]
	set     *internal.Set
	deps    *depList
	trigger *internal.Callback
}

// Ctx records which upstream readers one recomputation pass consulted, in
// call order. Position, not set membership, is the comparison key across
// passes: the same reader at the same position keeps its subscription,
// anything else replaces the slot.
type Ctx struct {
	index   int
	deps    weak.Pointer[depList]
	trigger weak.Pointer[internal.Callback]
}

type depList struct {
	set   *internal.Set // the derived value's own registry
	slots []depSlot
}

type depSlot struct {
	src internal.Reader
	h   internal.Handle // downstream entry whose finalizer cancels this slot's subscription
}

// NewMapReader computes f once to seed the derived value, subscribing to
// every reader tracked during the pass, and recomputes whenever one of the
// currently tracked readers fires.
func NewMapReader[T any](f func(*Ctx) T) *MapReader[T] {
	set := internal.NewSet()
	var zero T
	cell := NewCell(zero)
	deps := &depList{set: set}
	trigger := &internal.Callback{}

	wCell := weak.Make(cell)
	wSet := weak.Make(set)
	wDeps := weak.Make(deps)
	wTrigger := weak.Make(trigger)

	// The trigger reaches everything it needs weakly. If any upgrade fails
	// the derived value is already gone and the fire is a silent no-op;
	// recomputation must not resurrect a dead node.
	trigger.Fn = func(any) {
		c := wCell.Value()
		s := wSet.Value()
		d := wDeps.Value()
		if c == nil || s == nil || d == nil {
			return
		}
		ctx := &Ctx{deps: wDeps, trigger: wTrigger}
		v := f(ctx)
		d.truncate(ctx.index)
		c.Set(v)
		s.Notify(v)
	}

	ctx := &Ctx{deps: wDeps, trigger: wTrigger}
	cell.Set(f(ctx))

	return &MapReader[T]{cell: cell, set: set, deps: deps, trigger: trigger}
}

// Track reads r's current value and records it as a dependency of the
// recomputation in progress.
func Track[V any](ctx *Ctx, r Reader[V]) V {
	ctx.track(r.ref)
	return r.cell.Get()
}

func (ctx *Ctx) track(src internal.Reader) {
	deps := ctx.deps.Value()
	trigger := ctx.trigger.Value()
	if deps == nil || trigger == nil {
		return
	}
	i := ctx.index
	ctx.index++
	if i < len(deps.slots) {
		if deps.slots[i].src.Same(src) {
			return // same source at the same position, keep its subscription
		}
		old := deps.slots[i].h
		deps.slots[i] = depSlot{src: src, h: deps.install(src, trigger)}
		deps.set.Unsubscribe(old)
		return
	}
	deps.slots = append(deps.slots, depSlot{src: src, h: deps.install(src, trigger)})
}

// install subscribes the trigger weakly on src and records the cancellation
// as a downstream-unsubscribe entry on the derived registry, so retiring the
// slot or tearing the registry down cancels the upstream subscription.
func (d *depList) install(src internal.Reader, trigger *internal.Callback) internal.Handle {
	sub, ok := src.SubscribeWeak(trigger)
	if !ok {
		// Source already gone; the slot is inert until the next recomputation.
		return d.set.OnDownstreamUnsubscribe(func() {})
	}
	return d.set.OnDownstreamUnsubscribe(func() { sub.Cancel() })
}

// truncate retires every slot past n: dependencies not re-consulted on the
// latest pass must neither keep firing nor keep their sources subscribed.
func (d *depList) truncate(n int) {
	for _, slot := range d.slots[n:] {
		d.set.Unsubscribe(slot.h)
	}
	d.slots = d.slots[:n]
}

// Get returns the derived value as of the last recomputation.
func (m *MapReader[T]) Get() T {
	return m.cell.Get()
}

// Reader returns a non-owning handle to the derived value.
func (m *MapReader[T]) Reader() Reader[T] {
	return Reader[T]{cell: m.cell, ref: m.set.Reader()}
}

// Subscribe registers fn to fire after every recomputation.
func (m *MapReader[T]) Subscribe(fn func(T)) Subscription {
	sub, _ := m.set.Reader().Subscribe(callbackOf(fn))
	return Subscription{inner: sub}
}

// Once registers fn for the next recomputation only.
func (m *MapReader[T]) Once(fn func(T)) Subscription {
	sub, _ := m.set.Reader().Once(callbackOf(fn))
	return Subscription{inner: sub}
}

// OnCleanup registers a finalizer that runs when the derived value is closed.
func (m *MapReader[T]) OnCleanup(fn func()) {
	m.set.OnCleanup(fn)
}

// ListenerCount reports the number of live registry entries, the derived
// value's own dependency bookkeeping included.
func (m *MapReader[T]) ListenerCount() int {
	return m.set.Len()
}

// Close retires the whole dependency set (cancelling every upstream
// subscription), then runs cleanup entries and marks the registry dead.
func (m *MapReader[T]) Close() {
	m.set.ClearDownstreams()
	m.set.Close()
}
