package tracked

import (
	"reflect"

	"github.com/spf13/cast"
)

// Composite is the capability set shared by every container kind and by the
// views produced over them. Access through a view behaves like access to the
// underlying container, with reads observed and writes gated by the view's
// access mode.
//
// Key handling is tolerant: Record coerces keys to strings and List coerces
// keys to integer indices. Set treats the key as the member itself. Map,
// WeakSet and WeakMap use keys as given (identity for containers, equality
// for scalars).
type Composite interface {
	// Kind reports the container's runtime shape.
	Kind() Kind
	// Get returns the value stored under key and whether it was present.
	Get(key any) (any, bool)
	// Set stores value under key. It reports whether the write was applied.
	Set(key, value any) bool
	// Has reports whether key is present.
	Has(key any) bool
	// Delete removes key and reports whether an entry was removed.
	Delete(key any) bool
	// Len returns the number of entries. Weak kinds count live entries.
	Len() int
	// Each visits entries in insertion order until fn returns false.
	// Set passes the member as both key and value.
	Each(fn func(key, value any) bool)
	// Clear removes all entries.
	Clear()
}

// asComposite returns v as a Composite, rejecting nil and typed-nil values.
func asComposite(v any) (Composite, bool) {
	if v == nil {
		return nil, false
	}
	c, ok := v.(Composite)
	if !ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return c, true
}

// internalValue marks values that belong to this package's own machinery so
// the observability policy never wraps them.
type internalValue interface {
	trackedInternal()
}

func recordKey(key any) (string, bool) {
	s, err := cast.ToStringE(key)
	if err != nil {
		return "", false
	}
	return s, true
}

func listIndex(key any) (int, bool) {
	i, err := cast.ToIntE(key)
	if err != nil {
		return 0, false
	}
	return i, true
}

// comparableValue reports whether v can be used as a Go map key without
// panicking. nil is comparable.
func comparableValue(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

// safeEqual compares two values, treating uncomparable dynamic types as
// never equal instead of panicking.
func safeEqual(a, b any) bool {
	if !comparableValue(a) || !comparableValue(b) {
		return false
	}
	return a == b
}
