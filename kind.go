package tracked

// Kind identifies the runtime shape of a container.
type Kind string

const (
	KindRecord  Kind = "record"
	KindList    Kind = "list"
	KindSet     Kind = "set"
	KindMap     Kind = "map"
	KindWeakSet Kind = "weakset"
	KindWeakMap Kind = "weakmap"
)

// Collection reports whether the kind uses collection access semantics
// (member and entry operations) rather than keyed field access.
func (k Kind) Collection() bool {
	switch k {
	case KindSet, KindMap, KindWeakSet, KindWeakMap:
		return true
	}
	return false
}

// Weak reports whether the kind holds its members or keys weakly.
func (k Kind) Weak() bool {
	return k == KindWeakSet || k == KindWeakMap
}

// KindOf returns the container kind of v. The second result is false when v
// is not a container (or a view over one).
func KindOf(v any) (Kind, bool) {
	c, ok := asComposite(v)
	if !ok {
		return "", false
	}
	return c.Kind(), true
}

// whitelisted reports whether v is one of the concrete container types this
// package can observe. Views are not whitelisted; they are already observed.
func whitelisted(v any) bool {
	switch v.(type) {
	case *Record, *List, *Set, *Map, *WeakSet, *WeakMap:
		return true
	}
	return false
}
