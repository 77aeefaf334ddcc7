package tracked

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestJSON_DecodePreservesFieldOrder verifies objects decode to records in
// document order.
func TestJSON_DecodePreservesFieldOrder(t *testing.T) {
	doc := []byte(`{"z":1,"a":{"y":true,"b":[1,"two",null]}}`)

	c, err := FromJSON(doc)
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	rec, ok := c.(*Record)
	if !ok {
		t.Fatalf("Expected a record root, got %T", c)
	}
	keys := rec.Keys()
	if len(keys) != 2 || keys[0] != "z" || keys[1] != "a" {
		t.Fatalf("Expected document order [z a], got %v", keys)
	}

	z, _ := rec.Get("z")
	if z != float64(1) {
		t.Errorf("Expected numbers to decode as float64, got %T", z)
	}

	nestedAny, _ := rec.Get("a")
	nested, ok := nestedAny.(*Record)
	if !ok {
		t.Fatalf("Expected a nested record, got %T", nestedAny)
	}
	if nk := nested.Keys(); nk[0] != "y" || nk[1] != "b" {
		t.Errorf("Expected nested order [y b], got %v", nk)
	}

	listAny, _ := nested.Get("b")
	list, ok := listAny.(*List)
	if !ok {
		t.Fatalf("Expected a list, got %T", listAny)
	}
	if list.Len() != 3 {
		t.Fatalf("Expected 3 elements, got %d", list.Len())
	}
	if v, _ := list.Get(1); v != "two" {
		t.Errorf("Expected the string element, got %v", v)
	}
	if v, _ := list.Get(2); v != nil {
		t.Errorf("Expected null to decode as nil, got %v", v)
	}
}

// TestJSON_DecodeArrayRoot verifies arrays are accepted at the root.
func TestJSON_DecodeArrayRoot(t *testing.T) {
	c, err := FromJSON([]byte(`[1,2,3]`))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if c.Kind() != KindList || c.Len() != 3 {
		t.Errorf("Expected a 3-element list, got %s with %d", c.Kind(), c.Len())
	}
}

// TestJSON_ScalarRootRejected verifies scalar documents are refused.
func TestJSON_ScalarRootRejected(t *testing.T) {
	for _, doc := range []string{`42`, `"hello"`, `true`, `null`} {
		_, err := FromJSON([]byte(doc))
		if !errors.Is(err, ErrScalarDocument) {
			t.Errorf("Expected ErrScalarDocument for %s, got %v", doc, err)
		}
	}
}

// TestJSON_DecodeMalformed verifies syntax errors surface.
func TestJSON_DecodeMalformed(t *testing.T) {
	if _, err := FromJSON([]byte(`{"a":`)); err == nil {
		t.Errorf("Expected a decode error")
	}
}

// TestJSON_EncodePreservesInsertionOrder verifies records serialize in
// insertion order.
func TestJSON_EncodePreservesInsertionOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("b", 1)
	rec.Set("a", 2)
	rec.Set("c", 3)

	out, err := ToJSON(rec)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if string(out) != `{"b":1,"a":2,"c":3}` {
		t.Errorf("Expected insertion order, got %s", out)
	}
}

// TestJSON_ViewEncodesLikeTarget verifies a view and its container produce
// identical bytes.
func TestJSON_ViewEncodesLikeTarget(t *testing.T) {
	realm := New()
	rec := NewRecord()
	rec.Set("a", 1)
	rec.Set("nested", ListOf(1, 2))

	direct, err := ToJSON(rec)
	if err != nil {
		t.Fatalf("Failed to encode the container: %v", err)
	}
	viaView, err := ToJSON(realm.Mutable(rec))
	if err != nil {
		t.Fatalf("Failed to encode the view: %v", err)
	}
	if string(direct) != string(viaView) {
		t.Errorf("Expected identical bytes, got %s and %s", direct, viaView)
	}
}

// TestJSON_CollectionShapes verifies sets encode as arrays and maps as
// objects with stringified keys.
func TestJSON_CollectionShapes(t *testing.T) {
	set := SetOf("a", "b")
	out, err := ToJSON(set)
	if err != nil {
		t.Fatalf("Failed to encode the set: %v", err)
	}
	if string(out) != `["a","b"]` {
		t.Errorf("Expected an array of members, got %s", out)
	}

	mp := MapOf("k", 1, 2, "two")
	out, err = ToJSON(mp)
	if err != nil {
		t.Fatalf("Failed to encode the map: %v", err)
	}
	if string(out) != `{"k":1,"2":"two"}` {
		t.Errorf("Expected stringified keys, got %s", out)
	}

	out, err = ToJSON(42)
	if err != nil || string(out) != `42` {
		t.Errorf("Expected a bare scalar encoding, got %s, %v", out, err)
	}
}

// TestJSON_WeakKindsError verifies weak containers refuse to serialize.
func TestJSON_WeakKindsError(t *testing.T) {
	if _, err := ToJSON(NewWeakSet()); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("Expected ErrNotSerializable for a weak set, got %v", err)
	}
	if _, err := ToJSON(NewWeakMap()); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("Expected ErrNotSerializable for a weak map, got %v", err)
	}

	rec := NewRecord()
	rec.Set("weak", NewWeakSet())
	if _, err := ToJSON(rec); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("Expected nested weak containers to fail, got %v", err)
	}
}

// TestJSON_CyclesError verifies self-referencing documents fail instead of
// recursing forever.
func TestJSON_CyclesError(t *testing.T) {
	rec := NewRecord()
	rec.Set("self", rec)

	if _, err := ToJSON(rec); !errors.Is(err, ErrTooDeep) {
		t.Errorf("Expected ErrTooDeep, got %v", err)
	}
}

// TestJSON_RoundTripThroughViews verifies decode, mutate through a view,
// encode.
func TestJSON_RoundTripThroughViews(t *testing.T) {
	realm := New()
	c, err := FromJSON([]byte(`{"name":"ada","tags":["a"]}`))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	m := realm.Mutable(c).(Composite)
	m.Set("name", "grace")
	tags, _ := m.Get("tags")
	tags.(Composite).Set(1, "b")

	out, err := ToJSON(m)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if string(out) != `{"name":"grace","tags":["a","b"]}` {
		t.Errorf("Expected the mutated document, got %s", out)
	}
}

// TestJSON_MarshalerIntegration verifies containers embed cleanly in plain
// encoding/json output.
func TestJSON_MarshalerIntegration(t *testing.T) {
	rec := NewRecord()
	rec.Set("b", 1)
	rec.Set("a", 2)

	out, err := json.Marshal(map[string]any{"payload": rec})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(out) != `{"payload":{"b":1,"a":2}}` {
		t.Errorf("Expected the marshaler to preserve order, got %s", out)
	}
}
