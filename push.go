package observe

// Push appends item to a slice-valued observable, then notifies with the
// whole slice. Subscribers always receive the complete current state, never
// the appended element alone.
func Push[S ~[]E, E any](o *Observable[S], item E) {
	o.cell.Set(append(o.cell.Get(), item))
	o.set.Notify(o.cell.Get())
}

// Pushable is a growable container with its own append operation.
type Pushable[E any] interface {
	Push(E)
}

// PushItem appends in place through the container's Push, then notifies
// with the container.
func PushItem[P Pushable[E], E any](o *Observable[P], item E) {
	v := o.cell.Get()
	v.Push(item)
	o.set.Notify(v)
}
