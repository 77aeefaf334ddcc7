package tracked

import (
	"fmt"
	"sync"
)

// tagEntry holds all tag values of one container.
type tagEntry struct {
	mu     sync.Mutex
	values map[string]any
}

// Tag is a type-safe key for labeling containers in a realm. Tag values live
// in a realm-held side table keyed by container identity; they never extend
// a container's lifetime and vanish with it. Marking a view tags the
// underlying container.
type Tag[T any] struct {
	key string
}

// NewTag creates a new tag with the given key.
func NewTag[T any](key string) Tag[T] {
	return Tag[T]{key: key}
}

// Key returns the tag's key (for debugging)
func (t Tag[T]) Key() string {
	return t.key
}

// Set stores the tag value for the container behind target.
func (t Tag[T]) Set(r *Realm, target any, val T) error {
	c, ok := asComposite(r.Unwrap(target))
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotComposite, target)
	}
	entry, _ := r.tags.ensure(c, func() any { return &tagEntry{values: map[string]any{}} })
	e := entry.(*tagEntry)
	e.mu.Lock()
	e.values[t.key] = val
	e.mu.Unlock()
	return nil
}

// Get retrieves the tag value for the container behind target.
func (t Tag[T]) Get(r *Realm, target any) (T, bool) {
	c, ok := asComposite(r.Unwrap(target))
	if !ok {
		var zero T
		return zero, false
	}
	entry, ok := r.tags.get(c)
	if !ok {
		var zero T
		return zero, false
	}
	e := entry.(*tagEntry)
	e.mu.Lock()
	val, ok := e.values[t.key]
	e.mu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// MustGet retrieves the tag value or panics if not found.
func (t Tag[T]) MustGet(r *Realm, target any) T {
	val, ok := t.Get(r, target)
	if !ok {
		panic("tag " + t.key + " not found")
	}
	return val
}

// GetOrDefault retrieves the tag value or returns a default.
func (t Tag[T]) GetOrDefault(r *Realm, target any, defaultVal T) T {
	if val, ok := t.Get(r, target); ok {
		return val
	}
	return defaultVal
}
