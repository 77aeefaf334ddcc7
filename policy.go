package tracked

// CanTrack reports whether v is eligible for wrapping. The rules apply in
// order: v must be a container; values belonging to this package's own
// machinery (views among them) are excluded; the concrete type must be one
// of the six container kinds; containers marked untracked are excluded.
//
// CanTrack is a pure predicate with no side effects. A false result makes
// wrapping a documented pass-through, not an error.
func (r *Realm) CanTrack(v any) bool {
	c, ok := asComposite(v)
	if !ok {
		return false
	}
	if _, internal := v.(internalValue); internal {
		return false
	}
	if !whitelisted(v) {
		return false
	}
	return !r.marks.untracked.has(c)
}
