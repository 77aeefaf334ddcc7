package tracked

import (
	"sync"
	"sync/atomic"
	"time"
)

// Effect is a function that re-runs whenever a tracked value it read during
// its previous run changes. Effects subscribe themselves through the
// per-container dependency tables; the wrapping core never populates those
// tables on its own.
type Effect struct {
	realm *Realm
	fn    func()

	scheduler func(run func())

	depMu sync.Mutex
	deps  []*depSet

	cleanupMu sync.Mutex
	cleanups  []func() error

	active atomic.Bool
	runs   atomic.Uint64
}

// EffectOption is a modifier for effects
type EffectOption func(*Effect)

// WithEffectScheduler returns an option that routes this effect's re-runs
// through submit, overriding the realm's scheduler.
func WithEffectScheduler(submit func(run func())) EffectOption {
	return func(e *Effect) {
		e.scheduler = submit
	}
}

// Watch creates an effect, runs fn once immediately to collect its
// dependencies, and re-runs it on every change to one of them. Call Stop to
// release the effect.
func (r *Realm) Watch(fn func(), opts ...EffectOption) *Effect {
	e := &Effect{
		realm:     r,
		fn:        fn,
		scheduler: r.scheduler,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.active.Store(true)
	e.run()
	return e
}

// Notify implements Subscriber. Re-runs go through the effect's scheduler
// when one is configured, otherwise they run inline on the triggering call
// stack.
func (e *Effect) Notify(Change) {
	if !e.active.Load() {
		return
	}
	if e.scheduler != nil {
		e.scheduler(e.run)
		return
	}
	e.run()
}

// run executes one tracked pass: previous cleanups fire, previous
// dependencies are dropped, and fn collects a fresh dependency set.
func (e *Effect) run() {
	if !e.active.Load() {
		return
	}
	e.runCleanups()
	e.releaseDeps()

	r := e.realm
	r.pushEffect(e)
	defer r.popEffect()

	start := time.Now()
	e.fn()
	e.runs.Add(1)

	r.count(MetricEffectRuns, nil)
	r.recordDuration(MetricEffectRunSeconds, time.Since(start), nil)
}

// OnCleanup registers a cleanup function to run before the next re-run and
// on Stop. Cleanups run newest first.
func (e *Effect) OnCleanup(fn func() error) {
	e.cleanupMu.Lock()
	defer e.cleanupMu.Unlock()
	e.cleanups = append(e.cleanups, fn)
}

// Stop deactivates the effect, fires its cleanups and detaches it from every
// dependency. A stopped effect ignores further notifications.
func (e *Effect) Stop() {
	if !e.active.CompareAndSwap(true, false) {
		return
	}
	e.runCleanups()
	e.releaseDeps()
}

// Active reports whether the effect still reacts to changes.
func (e *Effect) Active() bool { return e.active.Load() }

// Runs returns how many times the effect body has executed.
func (e *Effect) Runs() uint64 { return e.runs.Load() }

func (e *Effect) runCleanups() {
	e.cleanupMu.Lock()
	cleanups := e.cleanups
	e.cleanups = nil
	e.cleanupMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		if err := cleanups[i](); err != nil {
			e.realm.logWarn("effect cleanup failed", "error", err)
		}
	}
}

func (e *Effect) recordDep(set *depSet) {
	e.depMu.Lock()
	for _, existing := range e.deps {
		if existing == set {
			e.depMu.Unlock()
			return
		}
	}
	e.deps = append(e.deps, set)
	e.depMu.Unlock()
}

func (e *Effect) releaseDeps() {
	e.depMu.Lock()
	deps := e.deps
	e.deps = nil
	e.depMu.Unlock()

	for _, set := range deps {
		set.remove(e)
	}
}

// pushEffect makes e the realm's current effect. Effects nest: a Watch
// created inside a running effect collects its own dependencies, then the
// outer effect resumes collecting.
func (r *Realm) pushEffect(e *Effect) {
	r.depMu.Lock()
	r.stack = append(r.stack, e)
	r.depMu.Unlock()
}

func (r *Realm) popEffect() {
	r.depMu.Lock()
	if n := len(r.stack); n > 0 {
		r.stack = r.stack[:n-1]
	}
	r.depMu.Unlock()
}

// currentEffect returns the innermost running effect, nil outside any run.
// Dependency attribution assumes a realm runs its effects on one goroutine
// at a time; reads from unrelated goroutines during a run would be credited
// to that run.
func (r *Realm) currentEffect() *Effect {
	r.depMu.Lock()
	defer r.depMu.Unlock()
	if n := len(r.stack); n > 0 {
		return r.stack[n-1]
	}
	return nil
}

// track records that the current effect depends on (raw, key). Without a
// running effect it is a no-op: wrapping guarantees the table exists, but
// only interested parties populate it.
func (r *Realm) track(raw Composite, key any) {
	e := r.currentEffect()
	if e == nil || !e.active.Load() {
		return
	}
	kd := r.slots.ensure(raw)
	if kd == nil {
		return
	}
	set := kd.setFor(key, true)
	if set == nil {
		return
	}
	set.add(e)
	e.recordDep(set)
}

// trigger notifies the subscribers of (raw, key) about a committed change.
// Additions, deletions and clears also notify iteration subscribers. The
// currently running effect is skipped so an effect writing a key it tracks
// does not retrigger itself.
func (r *Realm) trigger(raw Composite, op Op, key, old, new any) {
	change := Change{Target: raw, Op: op, Key: key, Old: old, New: new}

	buf := r.pool.get()
	if kd, ok := r.slots.lookup(raw); ok {
		switch op {
		case OpClear:
			buf = kd.collectAll(buf)
		case OpAdd, OpDelete:
			buf = kd.collect(key, buf)
			buf = kd.collect(IterateKey, buf)
		default:
			buf = kd.collect(key, buf)
		}
	}

	r.observeChange(change, len(buf))

	current := r.currentEffect()
	for _, sub := range buf {
		if current != nil && sub == Subscriber(current) {
			continue
		}
		sub.Notify(change)
	}
	r.pool.put(buf)
}
