package extensions

import (
	"strings"
	"testing"

	tracked "github.com/pumped-fn/tracked-go"
)

func TestDependencyTree_DrawsSubscribedKeys(t *testing.T) {
	realm := tracked.New()
	rec := tracked.RecordOf(map[string]any{"name": "grace", "age": 40})
	view := realm.Mutable(rec).(tracked.Composite)

	effect := realm.Watch(func() {
		view.Get("name")
		view.Get("age")
	})
	defer effect.Stop()

	out, err := DependencyTree(realm, view)
	if err != nil {
		t.Fatalf("Expected tree, got error: %v", err)
	}

	if !strings.Contains(out, "record") {
		t.Error("Expected root label 'record'")
	}
	if !strings.Contains(out, "name (1)") {
		t.Error("Expected leaf 'name (1)'")
	}
	if !strings.Contains(out, "age (1)") {
		t.Error("Expected leaf 'age (1)'")
	}
}

func TestDependencyTree_CountsSubscribersPerKey(t *testing.T) {
	realm := tracked.New()
	rec := tracked.RecordOf(map[string]any{"n": 1})
	view := realm.Mutable(rec).(tracked.Composite)

	first := realm.Watch(func() { view.Get("n") })
	defer first.Stop()
	second := realm.Watch(func() { view.Get("n") })
	defer second.Stop()

	out, err := DependencyTree(realm, view)
	if err != nil {
		t.Fatalf("Expected tree, got error: %v", err)
	}

	if !strings.Contains(out, "n (2)") {
		t.Errorf("Expected leaf 'n (2)', got:\n%s", out)
	}
}

func TestDependencyTree_LabelsIterationSlot(t *testing.T) {
	realm := tracked.New()
	list := tracked.ListOf("a", "b")
	view := realm.Mutable(list).(tracked.Composite)

	effect := realm.Watch(func() { view.Len() })
	defer effect.Stop()

	out, err := DependencyTree(realm, view)
	if err != nil {
		t.Fatalf("Expected tree, got error: %v", err)
	}

	if !strings.Contains(out, "<iterate> (1)") {
		t.Errorf("Expected leaf '<iterate> (1)', got:\n%s", out)
	}
}

func TestDependencyTree_AcceptsContainerOrView(t *testing.T) {
	realm := tracked.New()
	rec := tracked.NewRecord()
	view := realm.Mutable(rec).(tracked.Composite)

	effect := realm.Watch(func() { view.Get("k") })
	defer effect.Stop()

	fromView, err := DependencyTree(realm, view)
	if err != nil {
		t.Fatalf("Expected tree from view, got error: %v", err)
	}
	fromRaw, err := DependencyTree(realm, rec)
	if err != nil {
		t.Fatalf("Expected tree from container, got error: %v", err)
	}
	if fromView != fromRaw {
		t.Error("Expected identical trees for container and view")
	}
}

func TestDependencyTree_RejectsUnwrappedValue(t *testing.T) {
	realm := tracked.New()

	if _, err := DependencyTree(realm, 42); err == nil {
		t.Error("Expected error for scalar")
	}
	if _, err := DependencyTree(realm, tracked.NewRecord()); err == nil {
		t.Error("Expected error for container that was never wrapped")
	}
}

func TestDependencyTree_NilRealmUsesDefault(t *testing.T) {
	rec := tracked.NewRecord()
	view := tracked.Mutable(rec).(tracked.Composite)

	effect := tracked.Watch(func() { view.Get("k") })
	defer effect.Stop()

	out, err := DependencyTree(nil, view)
	if err != nil {
		t.Fatalf("Expected tree, got error: %v", err)
	}
	if !strings.Contains(out, "k (1)") {
		t.Errorf("Expected leaf 'k (1)', got:\n%s", out)
	}
}
