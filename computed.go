package tracked

import "sync"

// Computed is a lazily evaluated, cached derivation of tracked state. The
// first Value call computes and collects dependencies; later calls return
// the cache until a dependency changes. Reading a computed inside an effect
// chains the dependency through it, so effects re-run when the computed's
// inputs change even if they never touch those inputs directly.
type Computed struct {
	realm  *Realm
	effect *Effect

	mu    sync.Mutex
	value any
	dirty bool

	// dep holds the subscribers reading this computed.
	dep *depSet
}

// Computed creates a computed value in this realm. fn must read its inputs
// through views of this realm for invalidation to work.
func (r *Realm) Computed(fn func() any) *Computed {
	c := &Computed{
		realm: r,
		dirty: true,
		dep:   &depSet{},
	}
	c.effect = &Effect{
		realm: r,
		fn:    func() { c.value = fn() },
	}
	// Invalidate instead of recomputing eagerly; the next Value call pays.
	c.effect.scheduler = func(func()) { c.invalidate() }
	c.effect.active.Store(true)
	return c
}

// Value returns the current derivation, recomputing only when dirty.
func (c *Computed) Value() any {
	if e := c.realm.currentEffect(); e != nil && e.active.Load() {
		c.dep.add(e)
		e.recordDep(c.dep)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty && c.effect.active.Load() {
		c.effect.run()
		c.dirty = false
	}
	return c.value
}

// Dirty reports whether the next Value call will recompute.
func (c *Computed) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Stop releases the computed: it detaches from its inputs and stops
// notifying readers. Value keeps returning the last cached result.
func (c *Computed) Stop() {
	c.effect.Stop()
}

func (c *Computed) invalidate() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true
	c.mu.Unlock()

	// Wake readers; Target is nil because the source is derived.
	change := Change{Op: OpSet}
	subs := c.dep.collect(nil)
	current := c.realm.currentEffect()
	for _, sub := range subs {
		if current != nil && sub == Subscriber(current) {
			continue
		}
		sub.Notify(change)
	}
}

var _ Subscriber = (*Effect)(nil)
