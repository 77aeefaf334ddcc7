package tracked

// WeakSet is a membership container that holds its members weakly. Members
// must be containers or views; scalars are rejected. A member with no other
// holders is collected and silently drops out of the set. Iteration order is
// unspecified and reflects live members only.
type WeakSet struct {
	entries *identMap
}

// NewWeakSet creates an empty weak set.
func NewWeakSet() *WeakSet {
	return &WeakSet{entries: newIdentMap()}
}

func (s *WeakSet) Kind() Kind { return KindWeakSet }

// Get returns the member itself when present and live.
func (s *WeakSet) Get(key any) (any, bool) {
	if s.entries.has(key) {
		return key, true
	}
	return nil, false
}

// Set adds key as a member; the value argument is ignored.
func (s *WeakSet) Set(key, _ any) bool {
	return s.entries.set(key, struct{}{})
}

// Add inserts a member and reports whether it was accepted.
func (s *WeakSet) Add(member any) bool {
	return s.entries.set(member, struct{}{})
}

func (s *WeakSet) Has(key any) bool {
	return s.entries.has(key)
}

func (s *WeakSet) Delete(key any) bool {
	return s.entries.delete(key)
}

func (s *WeakSet) Len() int {
	return s.entries.liveLen()
}

func (s *WeakSet) Each(fn func(key, value any) bool) {
	s.entries.each(func(obj, _ any) bool {
		return fn(obj, obj)
	})
}

func (s *WeakSet) Clear() {
	s.entries.clear()
}

// WeakMap is an associative container that holds its keys weakly. Keys must
// be containers or views. The value of an entry is held strongly until the
// key is collected; a value that references its own key therefore keeps the
// entry alive.
type WeakMap struct {
	entries *identMap
}

// NewWeakMap creates an empty weak map.
func NewWeakMap() *WeakMap {
	return &WeakMap{entries: newIdentMap()}
}

func (m *WeakMap) Kind() Kind { return KindWeakMap }

func (m *WeakMap) Get(key any) (any, bool) {
	return m.entries.get(key)
}

func (m *WeakMap) Set(key, value any) bool {
	return m.entries.set(key, value)
}

func (m *WeakMap) Has(key any) bool {
	return m.entries.has(key)
}

func (m *WeakMap) Delete(key any) bool {
	return m.entries.delete(key)
}

func (m *WeakMap) Len() int {
	return m.entries.liveLen()
}

func (m *WeakMap) Each(fn func(key, value any) bool) {
	m.entries.each(fn)
}

func (m *WeakMap) Clear() {
	m.entries.clear()
}
