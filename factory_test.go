package tracked

import (
	"testing"
)

// TestFactory_SameViewEveryTime verifies wrap identity stability: one live
// mutable view and one live readonly view per container.
func TestFactory_SameViewEveryTime(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	m1 := realm.Mutable(rec)
	m2 := realm.Mutable(rec)
	if m1 != m2 {
		t.Errorf("Expected the same mutable view on repeat wraps, got distinct values")
	}

	r1 := realm.Readonly(rec)
	r2 := realm.Readonly(rec)
	if r1 != r2 {
		t.Errorf("Expected the same readonly view on repeat wraps, got distinct values")
	}
}

// TestFactory_WrapIsIdempotent verifies that wrapping a view returns the view.
func TestFactory_WrapIsIdempotent(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	m := realm.Mutable(rec)
	if got := realm.Mutable(m); got != m {
		t.Errorf("Expected Mutable(view) to return the view")
	}

	r := realm.Readonly(rec)
	if got := realm.Readonly(r); got != r {
		t.Errorf("Expected Readonly(view) to return the view")
	}
}

// TestFactory_MutableAndReadonlyAreDistinct verifies the two view kinds are
// separate identities over the same container.
func TestFactory_MutableAndReadonlyAreDistinct(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	m := realm.Mutable(rec)
	r := realm.Readonly(rec)

	if m == r {
		t.Fatalf("Expected distinct mutable and readonly views")
	}
	if !realm.IsTracked(m) || !realm.IsTracked(r) {
		t.Errorf("Expected both views to be tracked")
	}
	if realm.IsReadonly(m) {
		t.Errorf("Expected the mutable view to not be readonly")
	}
	if !realm.IsReadonly(r) {
		t.Errorf("Expected the readonly view to be readonly")
	}
	if realm.IsTracked(rec) {
		t.Errorf("Expected the raw container to not count as tracked")
	}
}

// TestFactory_ReadonlyWinsOverMutableRequest verifies the readonly view is
// sticky: asking for mutable on a readonly view returns the readonly view.
func TestFactory_ReadonlyWinsOverMutableRequest(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	r := realm.Readonly(rec)
	if got := realm.Mutable(r); got != r {
		t.Errorf("Expected Mutable(readonly view) to return the readonly view")
	}
}

// TestFactory_ReadonlyOfMutableViewConverts verifies the reverse direction:
// readonly of a mutable view is the readonly view of the container.
func TestFactory_ReadonlyOfMutableViewConverts(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	m := realm.Mutable(rec)
	r := realm.Readonly(m)

	if r == m {
		t.Fatalf("Expected a distinct readonly view")
	}
	if got := realm.Readonly(rec); got != r {
		t.Errorf("Expected Readonly(mutable view) to equal Readonly(container)")
	}
	if got := realm.Unwrap(r); got != any(rec) {
		t.Errorf("Expected the readonly view to unwrap to the container")
	}
}

// TestFactory_UnwrapReturnsContainer verifies unwrap on views and
// passthrough on everything else.
func TestFactory_UnwrapReturnsContainer(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	m := realm.Mutable(rec)
	r := realm.Readonly(rec)

	if got := realm.Unwrap(m); got != any(rec) {
		t.Errorf("Expected Unwrap(mutable view) to return the container")
	}
	if got := realm.Unwrap(r); got != any(rec) {
		t.Errorf("Expected Unwrap(readonly view) to return the container")
	}
	if got := realm.Unwrap(rec); got != any(rec) {
		t.Errorf("Expected Unwrap(container) to return the container")
	}
	if got := realm.Unwrap(42); got != 42 {
		t.Errorf("Expected Unwrap(scalar) to return the scalar, got %v", got)
	}
}

// TestFactory_ScalarsPassThrough verifies non-containers are returned
// unchanged by both entry points.
func TestFactory_ScalarsPassThrough(t *testing.T) {
	realm := New()

	if got := realm.Mutable(42); got != 42 {
		t.Errorf("Expected Mutable(42) to return 42, got %v", got)
	}
	if got := realm.Readonly("hello"); got != "hello" {
		t.Errorf("Expected Readonly(string) to return the string, got %v", got)
	}
	if got := realm.Mutable(nil); got != nil {
		t.Errorf("Expected Mutable(nil) to return nil, got %v", got)
	}

	type plain struct{ n int }
	p := &plain{n: 1}
	if got := realm.Mutable(p); got != any(p) {
		t.Errorf("Expected a non-container pointer to pass through")
	}
}

// TestFactory_MarkReadonlyRedirectsMutable verifies the forced-readonly mark.
func TestFactory_MarkReadonlyRedirectsMutable(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	realm.MarkReadonly(rec)

	m := realm.Mutable(rec)
	if !realm.IsReadonly(m) {
		t.Fatalf("Expected Mutable of a marked container to return a readonly view")
	}
	if got := realm.Readonly(rec); got != m {
		t.Errorf("Expected the redirected view to equal Readonly(container)")
	}
}

// TestFactory_MarkReadonlyOnViewMarksContainer verifies marks applied through
// a view land on the underlying container.
func TestFactory_MarkReadonlyOnViewMarksContainer(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	m := realm.Mutable(rec)
	realm.MarkReadonly(m)

	if got := realm.Mutable(rec); !realm.IsReadonly(got) {
		t.Errorf("Expected future Mutable calls to yield the readonly view")
	}
}

// TestFactory_MarkUntrackedDisablesWrapping verifies the untracked mark makes
// both entry points pass-throughs.
func TestFactory_MarkUntrackedDisablesWrapping(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	realm.MarkUntracked(rec)

	if got := realm.Mutable(rec); got != any(rec) {
		t.Errorf("Expected Mutable of an untracked container to return the container")
	}
	if got := realm.Readonly(rec); got != any(rec) {
		t.Errorf("Expected Readonly of an untracked container to return the container")
	}
	if realm.CanTrack(rec) {
		t.Errorf("Expected CanTrack to report false for an untracked container")
	}
}

// TestFactory_MarkIsIdempotent verifies re-marking is a harmless no-op.
func TestFactory_MarkIsIdempotent(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	realm.MarkReadonly(rec)
	realm.MarkReadonly(rec)

	if got := realm.Mutable(rec); !realm.IsReadonly(got) {
		t.Errorf("Expected the mark to persist across repeat calls")
	}
}

// TestFactory_NestedContainersWrapLazily verifies nested values wrap on first
// read, in the parent's access mode, with stable identity.
func TestFactory_NestedContainersWrapLazily(t *testing.T) {
	realm := New()
	child := RecordOf(map[string]any{"n": 1})
	parent := NewRecord()
	parent.Set("child", child)

	m := realm.Mutable(parent).(Composite)

	if _, wrapped := realm.registry.lookupWrapper(child, WrapMutable); wrapped {
		t.Fatalf("Expected the nested container to stay unwrapped until read")
	}

	got1, ok := m.Get("child")
	if !ok {
		t.Fatalf("Failed to read nested container")
	}
	if !realm.IsTracked(got1) || realm.IsReadonly(got1) {
		t.Errorf("Expected a mutable view of the nested container")
	}

	got2, _ := m.Get("child")
	if got1 != got2 {
		t.Errorf("Expected the same nested view on repeat reads")
	}

	r := realm.Readonly(parent).(Composite)
	roChild, _ := r.Get("child")
	if !realm.IsReadonly(roChild) {
		t.Errorf("Expected readonly views to wrap nested containers readonly")
	}
	if got := realm.Unwrap(roChild); got != any(child) {
		t.Errorf("Expected the nested readonly view to unwrap to the child container")
	}
}

// TestFactory_WritesStoreRawContainers verifies values written through views
// are normalized to their underlying containers.
func TestFactory_WritesStoreRawContainers(t *testing.T) {
	realm := New()
	item := RecordOf(map[string]any{"n": 1})
	parent := NewRecord()

	m := realm.Mutable(parent).(Composite)
	itemView := realm.Mutable(item)

	if !m.Set("item", itemView) {
		t.Fatalf("Failed to write through the mutable view")
	}

	stored, _ := parent.Get("item")
	if stored != any(item) {
		t.Errorf("Expected the container to store the raw child, got %T", stored)
	}

	readBack, _ := m.Get("item")
	if readBack != itemView {
		t.Errorf("Expected the read to return the child's mutable view")
	}
}

// TestFactory_RealmsAreIsolated verifies views belong to the realm that made
// them and other realms treat them as plain values.
func TestFactory_RealmsAreIsolated(t *testing.T) {
	realmA := New()
	realmB := New()
	rec := RecordOf(map[string]any{"a": 1})

	viewA := realmA.Mutable(rec)
	viewB := realmB.Mutable(rec)

	if viewA == viewB {
		t.Fatalf("Expected each realm to mint its own view")
	}
	if realmB.IsTracked(viewA) {
		t.Errorf("Expected realm B to not recognize realm A's view")
	}
	if got := realmB.Mutable(viewA); got != viewA {
		t.Errorf("Expected a foreign view to pass through unchanged")
	}
	if got := realmB.Unwrap(viewA); got != viewA {
		t.Errorf("Expected Unwrap of a foreign view to pass through unchanged")
	}
}

// TestFactory_AllKindsWrap verifies every container kind accepts both view
// kinds.
func TestFactory_AllKindsWrap(t *testing.T) {
	realm := New()
	containers := []Composite{
		NewRecord(), NewList(), NewSet(), NewMap(), NewWeakSet(), NewWeakMap(),
	}

	for _, c := range containers {
		m := realm.Mutable(c)
		if !realm.IsTracked(m) {
			t.Errorf("Expected a tracked mutable view for %s", c.Kind())
		}
		r := realm.Readonly(c)
		if !realm.IsReadonly(r) {
			t.Errorf("Expected a tracked readonly view for %s", c.Kind())
		}
		if kind, _ := KindOf(m); kind != c.Kind() {
			t.Errorf("Expected the view to report kind %s, got %s", c.Kind(), kind)
		}
	}
}

// TestFactory_DuplicateRegistrationPanics verifies the write-once registry
// invariant is enforced with an internal error.
func TestFactory_DuplicateRegistrationPanics(t *testing.T) {
	realm := New()
	rec := RecordOf(map[string]any{"a": 1})

	view := realm.Mutable(rec).(*proxy)

	defer func() {
		recovered := recover()
		if recovered == nil {
			t.Fatalf("Expected duplicate registration to panic")
		}
		ierr, ok := recovered.(*InternalError)
		if !ok {
			t.Fatalf("Expected an *InternalError panic value, got %T", recovered)
		}
		if ierr.Context != "registration" {
			t.Errorf("Expected registration context, got %q", ierr.Context)
		}
		if len(ierr.StackTrace) == 0 {
			t.Errorf("Expected a captured stack trace")
		}
	}()

	realm.registry.register(rec, view, WrapMutable)
}
