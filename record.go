package tracked

import "sync"

// Record is a string-keyed container that preserves insertion order.
type Record struct {
	mu     sync.RWMutex
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// RecordOf creates a record from a plain map. Keys are inserted in sorted
// order so the result is deterministic; values are converted deeply.
func RecordOf(fields map[string]any) *Record {
	r := NewRecord()
	for _, k := range sortedKeys(fields) {
		r.Set(k, FromGo(fields[k]))
	}
	return r
}

func (r *Record) Kind() Kind { return KindRecord }

func (r *Record) Get(key any) (any, bool) {
	k, ok := recordKey(key)
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[k]
	return v, ok
}

func (r *Record) Set(key, value any) bool {
	k, ok := recordKey(key)
	if !ok {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[k]; !exists {
		r.keys = append(r.keys, k)
	}
	r.values[k] = value
	return true
}

func (r *Record) Has(key any) bool {
	k, ok := recordKey(key)
	if !ok {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.values[k]
	return exists
}

func (r *Record) Delete(key any) bool {
	k, ok := recordKey(key)
	if !ok {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.values[k]; !exists {
		return false
	}
	delete(r.values, k)
	for i, existing := range r.keys {
		if existing == k {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return true
}

func (r *Record) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys)
}

// Each visits fields in insertion order. The snapshot taken up front keeps
// mutation from inside fn safe.
func (r *Record) Each(fn func(key, value any) bool) {
	r.mu.RLock()
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = r.values[k]
	}
	r.mu.RUnlock()
	for i, k := range keys {
		if !fn(k, values[i]) {
			return
		}
	}
}

func (r *Record) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = nil
	r.values = make(map[string]any)
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}
