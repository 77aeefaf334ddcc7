package tracked

import "fmt"

// Field provides typed access to one key of a container or view. Reads
// through a view participate in dependency tracking; reads through a raw
// container do not. The zero value is not usable, construct with NewField.
type Field[T any] struct {
	target Composite
	key    any
}

// NewField creates a typed handle on target's key. target may be a
// container or a view of one.
func NewField[T any](target any, key any) (*Field[T], error) {
	c, ok := asComposite(target)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotComposite, target)
	}
	return &Field[T]{target: c, key: key}, nil
}

// Get retrieves the value under the key. Inside an effect the read is
// tracked when the field targets a view.
func (f *Field[T]) Get() (T, error) {
	v, ok := f.target.Get(f.key)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrKeyMissing, f.key)
	}
	return SafeTypeAssertion[T](v)
}

// Peek retrieves the value without tracking, even through a view.
func (f *Field[T]) Peek() (T, bool) {
	target := f.target
	if p, ok := target.(*proxy); ok {
		target = p.target
	}
	v, ok := target.Get(f.key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, err := SafeTypeAssertion[T](v)
	if err != nil {
		var zero T
		return zero, false
	}
	return typed, true
}

// Set writes a new value under the key.
func (f *Field[T]) Set(value T) error {
	if !f.target.Set(f.key, value) {
		return fmt.Errorf("%w: %v", ErrRejectedWrite, f.key)
	}
	return nil
}

// Update reads the current value, applies fn and writes the result back.
// A missing key passes the zero value to fn.
func (f *Field[T]) Update(fn func(T) T) error {
	current, _ := f.Peek()
	return f.Set(fn(current))
}

// Clear removes the key and reports whether an entry was removed.
func (f *Field[T]) Clear() bool {
	return f.target.Delete(f.key)
}

// Present reports whether the key currently holds a value. Tracked through
// views like Get.
func (f *Field[T]) Present() bool {
	return f.target.Has(f.key)
}
