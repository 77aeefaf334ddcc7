package tracked

import "sync"

// Set is a membership container that preserves insertion order. Members must
// be comparable values; containers qualify because membership is identity.
type Set struct {
	mu      sync.RWMutex
	order   []any
	members map[any]struct{}
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{members: make(map[any]struct{})}
}

// SetOf creates a set from the given members, converted deeply.
func SetOf(members ...any) *Set {
	s := NewSet()
	for _, m := range members {
		s.Set(m, m)
	}
	return s
}

func (s *Set) Kind() Kind { return KindSet }

// Get returns the member itself when present.
func (s *Set) Get(key any) (any, bool) {
	if !comparableValue(key) {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.members[key]; ok {
		return key, true
	}
	return nil, false
}

// Set adds key as a member; the value argument is ignored.
func (s *Set) Set(key, _ any) bool {
	if !comparableValue(key) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[key]; !ok {
		s.members[key] = struct{}{}
		s.order = append(s.order, key)
	}
	return true
}

// Add inserts a member and reports whether it was newly added.
func (s *Set) Add(member any) bool {
	if !comparableValue(member) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[member]; ok {
		return false
	}
	s.members[member] = struct{}{}
	s.order = append(s.order, member)
	return true
}

func (s *Set) Has(key any) bool {
	if !comparableValue(key) {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[key]
	return ok
}

func (s *Set) Delete(key any) bool {
	if !comparableValue(key) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[key]; !ok {
		return false
	}
	delete(s.members, key)
	for i, m := range s.order {
		if m == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Each visits members in insertion order, passing each as key and value.
func (s *Set) Each(fn func(key, value any) bool) {
	s.mu.RLock()
	order := make([]any, len(s.order))
	copy(order, s.order)
	s.mu.RUnlock()
	for _, m := range order {
		if !fn(m, m) {
			return
		}
	}
}

func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.members = make(map[any]struct{})
}

// Map is an associative container that preserves insertion order and accepts
// any comparable key, including containers (keyed by identity).
type Map struct {
	mu      sync.RWMutex
	order   []any
	entries map[any]any
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{entries: make(map[any]any)}
}

// MapOf creates a map from alternating key, value pairs.
func MapOf(pairs ...any) *Map {
	m := NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], FromGo(pairs[i+1]))
	}
	return m
}

func (m *Map) Kind() Kind { return KindMap }

func (m *Map) Get(key any) (any, bool) {
	if !comparableValue(key) {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *Map) Set(key, value any) bool {
	if !comparableValue(key) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = value
	return true
}

func (m *Map) Has(key any) bool {
	if !comparableValue(key) {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

func (m *Map) Delete(key any) bool {
	if !comparableValue(key) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

func (m *Map) Each(fn func(key, value any) bool) {
	m.mu.RLock()
	order := make([]any, len(m.order))
	copy(order, m.order)
	values := make([]any, len(order))
	for i, k := range order {
		values[i] = m.entries[k]
	}
	m.mu.RUnlock()
	for i, k := range order {
		if !fn(k, values[i]) {
			return
		}
	}
}

func (m *Map) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.order = nil
	m.entries = make(map[any]any)
}
