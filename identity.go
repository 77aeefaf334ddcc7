package tracked

import (
	"runtime"
	"sync"
	"weak"
)

// ident is a comparable identity handle for a container or view. Handles
// made from the same object always compare equal and never keep it alive.
type ident struct {
	key    any
	deref  func() any
	attach func(m *identMap)
}

// identityOf returns the identity handle for v. Only the concrete container
// types and views carry identities.
func identityOf(v any) (ident, bool) {
	switch t := v.(type) {
	case *Record:
		return identOf(t), true
	case *List:
		return identOf(t), true
	case *Set:
		return identOf(t), true
	case *Map:
		return identOf(t), true
	case *WeakSet:
		return identOf(t), true
	case *WeakMap:
		return identOf(t), true
	case *proxy:
		return identOf(t), true
	}
	return ident{}, false
}

func identOf[T any](t *T) ident {
	wp := weak.Make(t)
	return ident{
		key: wp,
		deref: func() any {
			if p := wp.Value(); p != nil {
				return p
			}
			return nil
		},
		attach: func(m *identMap) {
			// The cleanup closure must not capture t, only the weak handle.
			runtime.AddCleanup(t, func(target *identMap) { target.purge(wp) }, m)
		},
	}
}

type identEntry struct {
	value any
	deref func() any
}

// identMap associates values with object identities without extending any
// identity's lifetime. Entries whose key object is collected are purged by
// the runtime; until the purge runs they are unreachable through lookups
// because a caller cannot present a dead object.
type identMap struct {
	mu      sync.Mutex
	entries map[any]identEntry
}

func newIdentMap() *identMap {
	return &identMap{entries: make(map[any]identEntry)}
}

// set stores value under v's identity, replacing any previous value. It
// reports whether v carries an identity.
func (m *identMap) set(v any, value any) bool {
	id, ok := identityOf(v)
	if !ok {
		return false
	}
	m.mu.Lock()
	_, existed := m.entries[id.key]
	m.entries[id.key] = identEntry{value: value, deref: id.deref}
	m.mu.Unlock()
	if !existed {
		id.attach(m)
	}
	return true
}

// ensure returns the value stored under v's identity, creating it with
// create on first call. The create call happens under the map lock so two
// racing ensures observe one value.
func (m *identMap) ensure(v any, create func() any) (any, bool) {
	id, ok := identityOf(v)
	if !ok {
		return nil, false
	}
	m.mu.Lock()
	if e, exists := m.entries[id.key]; exists {
		m.mu.Unlock()
		return e.value, true
	}
	value := create()
	m.entries[id.key] = identEntry{value: value, deref: id.deref}
	m.mu.Unlock()
	id.attach(m)
	return value, true
}

func (m *identMap) get(v any) (any, bool) {
	id, ok := identityOf(v)
	if !ok {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, exists := m.entries[id.key]
	if !exists {
		return nil, false
	}
	return e.value, true
}

func (m *identMap) has(v any) bool {
	_, ok := m.get(v)
	return ok
}

func (m *identMap) delete(v any) bool {
	id, ok := identityOf(v)
	if !ok {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.entries[id.key]; !exists {
		return false
	}
	delete(m.entries, id.key)
	return true
}

func (m *identMap) purge(key any) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *identMap) clear() {
	m.mu.Lock()
	m.entries = make(map[any]identEntry)
	m.mu.Unlock()
}

// each visits entries whose key object is still live, passing a strong
// reference to it. Visit order is unspecified.
func (m *identMap) each(fn func(obj any, value any) bool) {
	m.mu.Lock()
	snapshot := make([]identEntry, 0, len(m.entries))
	for _, e := range m.entries {
		snapshot = append(snapshot, e)
	}
	m.mu.Unlock()
	for _, e := range snapshot {
		obj := e.deref()
		if obj == nil {
			continue
		}
		if !fn(obj, e.value) {
			return
		}
	}
}

// liveLen counts entries whose key object is still live.
func (m *identMap) liveLen() int {
	n := 0
	m.each(func(any, any) bool {
		n++
		return true
	})
	return n
}
