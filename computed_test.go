package tracked

import (
	"testing"
)

// TestComputed_LazyAndCached verifies computation is deferred to the first
// Value call and cached until an input changes.
func TestComputed_LazyAndCached(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"n": 1})
	m := realm.Mutable(rec).(Composite)

	calls := 0
	c := realm.Computed(func() any {
		calls++
		v, _ := m.Get("n")
		return v.(int) * 2
	})
	defer c.Stop()

	if calls != 0 {
		t.Fatalf("Expected creation to not compute, got %d calls", calls)
	}
	if !c.Dirty() {
		t.Fatalf("Expected a fresh computed to be dirty")
	}

	if got := c.Value(); got != 2 {
		t.Fatalf("Expected 2, got %v", got)
	}
	if calls != 1 {
		t.Fatalf("Expected 1 computation, got %d", calls)
	}

	if got := c.Value(); got != 2 {
		t.Errorf("Expected the cached 2, got %v", got)
	}
	if calls != 1 {
		t.Errorf("Expected the cache to be reused, got %d calls", calls)
	}

	m.Set("n", 3)

	if calls != 1 {
		t.Errorf("Expected invalidation to not recompute eagerly, got %d calls", calls)
	}
	if !c.Dirty() {
		t.Errorf("Expected the computed to be dirty after an input change")
	}
	if got := c.Value(); got != 6 {
		t.Errorf("Expected 6, got %v", got)
	}
	if calls != 2 {
		t.Errorf("Expected 2 computations, got %d", calls)
	}
}

// TestComputed_EqualWriteKeepsCache verifies an equal input write does not
// invalidate.
func TestComputed_EqualWriteKeepsCache(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"n": 1})
	m := realm.Mutable(rec).(Composite)

	calls := 0
	c := realm.Computed(func() any {
		calls++
		v, _ := m.Get("n")
		return v
	})
	defer c.Stop()

	c.Value()
	m.Set("n", 1)

	if c.Dirty() {
		t.Errorf("Expected an equal write to keep the cache valid")
	}
	if c.Value(); calls != 1 {
		t.Errorf("Expected 1 computation, got %d", calls)
	}
}

// TestComputed_ChainsThroughEffects verifies an effect reading a computed
// re-runs when the computed's inputs change.
func TestComputed_ChainsThroughEffects(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"n": 1})
	m := realm.Mutable(rec).(Composite)

	c := realm.Computed(func() any {
		v, _ := m.Get("n")
		return v.(int) * 2
	})
	defer c.Stop()

	var got int
	effect := realm.Watch(func() { got = c.Value().(int) })
	defer effect.Stop()

	if got != 2 {
		t.Fatalf("Expected the initial run to read 2, got %d", got)
	}

	m.Set("n", 5)

	if effect.Runs() != 2 {
		t.Errorf("Expected the reader to re-run, got %d runs", effect.Runs())
	}
	if got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
}

// TestComputed_ChainsThroughComputeds verifies a computed can derive from
// another computed.
func TestComputed_ChainsThroughComputeds(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"n": 1})
	m := realm.Mutable(rec).(Composite)

	double := realm.Computed(func() any {
		v, _ := m.Get("n")
		return v.(int) * 2
	})
	defer double.Stop()
	square := realm.Computed(func() any {
		v := double.Value().(int)
		return v * v
	})
	defer square.Stop()

	if got := square.Value(); got != 4 {
		t.Fatalf("Expected 4, got %v", got)
	}

	m.Set("n", 3)

	if !square.Dirty() {
		t.Fatalf("Expected the outer computed to be invalidated through the chain")
	}
	if got := square.Value(); got != 36 {
		t.Errorf("Expected 36, got %v", got)
	}
}

// TestComputed_StopFreezesCache verifies a stopped computed detaches from its
// inputs and keeps serving the last result.
func TestComputed_StopFreezesCache(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"n": 1})
	m := realm.Mutable(rec).(Composite)

	calls := 0
	c := realm.Computed(func() any {
		calls++
		v, _ := m.Get("n")
		return v
	})

	if got := c.Value(); got != 1 {
		t.Fatalf("Expected 1, got %v", got)
	}

	c.Stop()
	m.Set("n", 99)

	if c.Dirty() {
		t.Errorf("Expected no invalidation after Stop")
	}
	if got := c.Value(); got != 1 {
		t.Errorf("Expected the frozen cache, got %v", got)
	}
	if calls != 1 {
		t.Errorf("Expected 1 computation, got %d", calls)
	}
}
