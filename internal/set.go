package internal

import (
	"sort"
	"weak"
)

// Callback boxes a listener function so registries can hold it either
// strongly or weakly. Identity is the box pointer.
type Callback struct {
	Fn func(any)
}

type kind uint8

const (
	kindNone kind = iota // tombstone
	kindDurable
	kindOnce
	kindCleanup
	kindDownstream
)

// Handle identifies one registered entry for later cancellation.
type Handle struct {
	id uint64
}

// finalizer runs its function at most once.
type finalizer struct {
	fn func()
}

func (f *finalizer) run() {
	if f.fn == nil {
		return
	}
	fn := f.fn
	f.fn = nil
	fn()
}

type item struct {
	id   uint64
	kind kind

	strong *Callback              // durable/once callback owned by the registry
	weakCb weak.Pointer[Callback] // durable callback owned by the subscriber
	fin    *finalizer             // cleanup/downstream entry
}

// Set stores the listeners of one reactive value. Entries are kept in
// registration order under monotonically increasing ids; removal tombstones
// the entry so ids stay binary-searchable while a dispatch is in flight,
// and compaction happens on the next working-set pass.
type Set struct {
	af     affinity
	nextID uint64
	items  []item
	dead   bool
}

func NewSet() *Set {
	return &Set{af: newAffinity()}
}

func (s *Set) add(it item) Handle {
	s.af.check()
	it.id = s.nextID
	s.nextID++
	s.items = append(s.items, it)
	return Handle{id: it.id}
}

// Subscribe registers a durable callback owned by the registry.
func (s *Set) Subscribe(cb *Callback) Handle {
	return s.add(item{kind: kindDurable, strong: cb})
}

// SubscribeWeak registers a durable callback owned by the subscriber. Once
// the subscriber drops its Callback, the entry is pruned on the next
// working-set pass.
func (s *Set) SubscribeWeak(cb *Callback) Handle {
	return s.add(item{kind: kindDurable, weakCb: weak.Make(cb)})
}

// Once registers a callback that fires on at most one notification.
func (s *Set) Once(cb *Callback) Handle {
	return s.add(item{kind: kindOnce, strong: cb})
}

// OnCleanup registers a finalizer that runs when the set is cleared or
// closed. It never fires on Notify.
func (s *Set) OnCleanup(fin func()) Handle {
	return s.add(item{kind: kindCleanup, fin: &finalizer{fn: fin}})
}

// OnDownstreamUnsubscribe registers a finalizer like OnCleanup, but in the
// bucket reserved for the map engine's upstream subscriptions, so the whole
// dependency set can be retired with ClearDownstreams.
func (s *Set) OnDownstreamUnsubscribe(fin func()) Handle {
	return s.add(item{kind: kindDownstream, fin: &finalizer{fn: fin}})
}

// Unsubscribe tombstones the entry for h. Returns false when the handle is
// unknown or already removed. Cleanup-bearing entries run their finalizer.
func (s *Set) Unsubscribe(h Handle) bool {
	s.af.check()
	i := sort.Search(len(s.items), func(i int) bool { return s.items[i].id >= h.id })
	if i >= len(s.items) || s.items[i].id != h.id || s.items[i].kind == kindNone {
		return false
	}
	it := &s.items[i]
	fin := it.fin
	*it = item{id: it.id}
	if fin != nil {
		fin.run()
	}
	return true
}

// workingSet snapshots the callbacks to fire for one notification and
// compacts the entry list in the same pass: once entries move into the
// snapshot and leave the registry, dead weak durables and tombstones are
// dropped, everything else stays. The snapshot is built before any callback
// runs, so listeners registered during dispatch only see the next
// notification.
func (s *Set) workingSet() []*Callback {
	ws := make([]*Callback, 0, len(s.items))
	kept := s.items[:0]
	for _, it := range s.items {
		switch it.kind {
		case kindOnce:
			ws = append(ws, it.strong)
		case kindDurable:
			cb := it.strong
			if cb == nil {
				cb = it.weakCb.Value()
				if cb == nil {
					continue // subscriber released its callback
				}
			}
			ws = append(ws, cb)
			kept = append(kept, it)
		case kindCleanup, kindDownstream:
			kept = append(kept, it)
		case kindNone:
		}
	}
	s.items = kept
	return ws
}

// Notify fires every live durable and once callback exactly once, in
// registration order, passing v. Callbacks are free to subscribe,
// unsubscribe, or notify reentrantly; the in-flight snapshot is unaffected.
func (s *Set) Notify(v any) {
	s.af.check()
	if s.dead {
		return
	}
	for _, cb := range s.workingSet() {
		cb.Fn(v)
	}
}

// Clear drops every entry. Cleanup and downstream finalizers run in
// registration order; durable and once callbacks are discarded silently.
func (s *Set) Clear() {
	s.af.check()
	items := s.items
	s.items = nil
	for i := range items {
		if items[i].fin != nil {
			items[i].fin.run()
		}
	}
}

// ClearDownstreams removes and runs only the downstream-unsubscribe entries,
// leaving durable, once, and plain cleanup entries in place.
func (s *Set) ClearDownstreams() {
	s.af.check()
	var fins []*finalizer
	kept := s.items[:0]
	for _, it := range s.items {
		switch it.kind {
		case kindDownstream:
			fins = append(fins, it.fin)
		case kindNone:
		default:
			kept = append(kept, it)
		}
	}
	s.items = kept
	for _, fin := range fins {
		fin.run()
	}
}

// Close clears the set and marks it dead: Notify becomes a no-op and every
// Reader pointing here reports absence from now on.
func (s *Set) Close() {
	s.af.check()
	if s.dead {
		return
	}
	s.dead = true
	s.Clear()
}

// Len counts live entries, tombstones excluded.
func (s *Set) Len() int {
	n := 0
	for _, it := range s.items {
		if it.kind != kindNone {
			n++
		}
	}
	return n
}

// Reader returns a non-owning handle to this set.
func (s *Set) Reader() Reader {
	return Reader{set: weak.Make(s)}
}
