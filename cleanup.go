package observe

// CleanUp holds a finalizer that runs at most once, so releasing the guard
// can stand in for whatever resource-disposal convention the holder uses.
type CleanUp struct {
	fn func()
}

func CleanUpFunc(fn func()) *CleanUp {
	return &CleanUp{fn: fn}
}

// Release runs the finalizer if it has not run yet. Safe to call any number
// of times, and on a nil guard.
func (c *CleanUp) Release() {
	if c == nil || c.fn == nil {
		return
	}
	fn := c.fn
	c.fn = nil
	fn()
}
