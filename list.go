package tracked

import "sync"

// List is an indexed sequence container.
type List struct {
	mu    sync.RWMutex
	items []any
}

// NewList creates an empty list.
func NewList() *List {
	return &List{}
}

// ListOf creates a list from the given values, converted deeply.
func ListOf(values ...any) *List {
	l := NewList()
	for _, v := range values {
		l.items = append(l.items, FromGo(v))
	}
	return l
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Get(key any) (any, bool) {
	i, ok := listIndex(key)
	if !ok {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		return nil, false
	}
	return l.items[i], true
}

// Set assigns the element at an existing index, or appends when the index
// equals the current length. Out-of-range indices are rejected.
func (l *List) Set(key, value any) bool {
	i, ok := listIndex(key)
	if !ok {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case i >= 0 && i < len(l.items):
		l.items[i] = value
	case i == len(l.items):
		l.items = append(l.items, value)
	default:
		return false
	}
	return true
}

func (l *List) Has(key any) bool {
	i, ok := listIndex(key)
	if !ok {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return i >= 0 && i < len(l.items)
}

// Delete removes the element at the index and shifts the remainder down.
func (l *List) Delete(key any) bool {
	i, ok := listIndex(key)
	if !ok {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *List) Each(fn func(key, value any) bool) {
	l.mu.RLock()
	items := make([]any, len(l.items))
	copy(items, l.items)
	l.mu.RUnlock()
	for i, v := range items {
		if !fn(i, v) {
			return
		}
	}
}

func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Push appends values and returns the new length.
func (l *List) Push(values ...any) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, values...)
	return len(l.items)
}

// Pop removes and returns the last element.
func (l *List) Pop() (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return nil, false
	}
	v := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return v, true
}
