package internal

import "weak"

// Reader is a non-owning handle to a Set. It never keeps the Set alive;
// every operation on a collected or closed Set reports absence.
type Reader struct {
	set weak.Pointer[Set]
}

func (r Reader) upgrade() *Set {
	s := r.set.Value()
	if s == nil || s.dead {
		return nil
	}
	return s
}

// Live reports whether the underlying Set still exists.
func (r Reader) Live() bool { return r.upgrade() != nil }

// Same reports whether both handles point at the same live Set. A Reader
// whose Set is gone compares unequal to everything, itself included.
func (r Reader) Same(o Reader) bool {
	a, b := r.upgrade(), o.upgrade()
	return a != nil && a == b
}

// Subscribe registers a durable callback. Reports false when the Set is gone.
func (r Reader) Subscribe(cb *Callback) (Subscription, bool) {
	s := r.upgrade()
	if s == nil {
		return Subscription{}, false
	}
	return Subscription{set: r.set, h: s.Subscribe(cb)}, true
}

// SubscribeWeak registers a durable callback that the Set holds weakly.
func (r Reader) SubscribeWeak(cb *Callback) (Subscription, bool) {
	s := r.upgrade()
	if s == nil {
		return Subscription{}, false
	}
	return Subscription{set: r.set, h: s.SubscribeWeak(cb)}, true
}

// Once registers a callback for the next notification only.
func (r Reader) Once(cb *Callback) (Subscription, bool) {
	s := r.upgrade()
	if s == nil {
		return Subscription{}, false
	}
	return Subscription{set: r.set, h: s.Once(cb)}, true
}

// OnCleanup registers a teardown finalizer. Reports false when the Set is gone.
func (r Reader) OnCleanup(fin func()) bool {
	s := r.upgrade()
	if s == nil {
		return false
	}
	s.OnCleanup(fin)
	return true
}

// Subscription cancels one registry entry. The zero value is inert. It holds
// the Set weakly, so an outstanding Subscription never delays teardown.
type Subscription struct {
	set weak.Pointer[Set]
	h   Handle
}

// Cancel tombstones the entry. Idempotent: the second call, or a call after
// the Set is gone, reports false.
func (s Subscription) Cancel() bool {
	set := s.set.Value()
	if set == nil {
		return false
	}
	return set.Unsubscribe(s.h)
}
