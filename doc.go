// Package tracked provides identity-preserving observation wrapping for
// container values in Go.
//
// # Overview
//
// Tracked organizes state around three core concepts:
//
//  1. Containers: a closed set of observable value shapes (Record, List,
//     Set, Map, WeakSet, WeakMap)
//  2. Views: identity-stable mutable or readonly facades over containers
//     that observe every access
//  3. Effects: functions that re-run when a tracked value they read changes
//
// Wrapping the same container twice returns the identical view. Wrapping a
// view is a no-op. A container has at most one live mutable view and one
// live readonly view, and neither the views nor the internal registries keep
// the container alive.
//
// # Basic Usage
//
// Build containers and take a mutable view:
//
//	user := tracked.RecordOf(map[string]any{
//	    "name":   "Ada",
//	    "visits": 0,
//	})
//
//	state := tracked.Mutable(user).(tracked.Composite)
//
// Observe reads with an effect:
//
//	tracked.Watch(func() {
//	    name, _ := state.Get("name")
//	    fmt.Println("current user:", name)
//	})
//
//	state.Set("name", "Grace") // effect re-runs
//
// Reads through a view inside an effect subscribe the effect to exactly the
// keys it touched. Writes through a view notify subscribers of the written
// key; additions, deletions and clears also notify length and iteration
// subscribers.
//
// # Views
//
// Mutable and Readonly return the two view kinds:
//
//	m := tracked.Mutable(user)  // read-write view
//	r := tracked.Readonly(user) // rejects writes
//
//	m == tracked.Mutable(user)  // identical view every time
//	r != m                      // the two kinds are disjoint
//
//	tracked.Unwrap(m) == user   // both unwrap to the container
//
// Readonly is sticky through the mutable entry point: once a value has been
// observed readonly, Mutable returns the same readonly view instead of
// downgrading it. The reverse direction converts: Readonly of a mutable view
// produces the readonly view of the underlying container. This asymmetry is
// intentional.
//
// Nested containers wrap lazily on read, matching the parent view's access
// mode, so a readonly tree is readonly all the way down.
//
// # Marks
//
// Caller intent recorded before wrapping changes how wrapping behaves:
//
//	tracked.MarkReadonly(cfg)  // Mutable(cfg) now yields the readonly view
//	tracked.MarkUntracked(buf) // wrap requests return buf unchanged
//
// Marks persist for the container's lifetime and are never removed.
//
// # Effects and Computed
//
//	total := tracked.NewComputed(func() any {
//	    n, _ := state.Get("visits")
//	    return n.(int) * 2
//	})
//
//	eff := tracked.Watch(func() {
//	    fmt.Println("doubled visits:", total.Value())
//	})
//
//	eff.OnCleanup(func() error { return nil }) // runs once, before the next re-run or on Stop
//	eff.Stop()
//
// Computed values are lazy: they recompute on the first Value call after an
// input changed and cache otherwise. Reading a computed inside an effect
// chains the dependency through it.
//
// # Typed Fields
//
// Field gives typed access to one key:
//
//	visits, _ := tracked.NewField[int](state, "visits")
//	n, err := visits.Get()     // tracked inside effects
//	n, ok := visits.Peek()     // never tracked
//	err = visits.Set(n + 1)
//	err = visits.Update(func(n int) int { return n + 1 })
//
// # Realms
//
// The package-level functions operate on a default realm. Independent
// universes with their own identity tables and instrumentation come from
// New:
//
//	realm := tracked.New(
//	    tracked.WithLogger(logger),
//	    tracked.WithMetrics(collector),
//	    tracked.WithJournal(512),
//	)
//
//	view := realm.Mutable(user)
//
// Views belong to the realm that made them; other realms treat them as
// plain values.
//
// # Diagnostics
//
// Wrapping a scalar or writing through a readonly view is a documented
// no-op, not an error. With a Logger configured both are reported as
// warnings, and a MetricsCollector observes wrap, trigger and effect
// activity. An Inspector receives wrap and change callbacks, and WithJournal
// retains a bounded history of committed changes:
//
//	realm.Journal().Walk(func(e tracked.JournalEntry) bool {
//	    fmt.Printf("%d %s %s.%s -> %d subscribers\n",
//	        e.Seq, e.Op, e.Kind, e.Key, e.Subscribers)
//	    return true
//	})
//
// # Serialization
//
// JSON documents round-trip through containers with field order preserved:
//
//	doc, err := tracked.FromJSON([]byte(`{"a": 1, "b": [2, 3]}`))
//	out, err := tracked.ToJSON(doc)
//
// Views serialize exactly as their targets. Weak containers do not
// serialize.
//
// # Thread Safety
//
// Containers, registries and dependency tables are safe for concurrent use.
// Dependency attribution is not: a realm expects its effects to run on one
// goroutine at a time, matching the synchronous, run-to-completion model the
// package is built around. Reads from unrelated goroutines while an effect
// runs would be credited to that effect.
package tracked
