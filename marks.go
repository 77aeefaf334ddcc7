package tracked

// markSet is an identity set recording out-of-band caller intent for a
// container. Entries impose no lifetime and persist until the container is
// collected; the core never removes them.
type markSet struct {
	entries *identMap
}

func newMarkSet() markSet {
	return markSet{entries: newIdentMap()}
}

// add records v. It reports whether v carries an identity; re-adding is
// idempotent and still reports true.
func (m markSet) add(v any) bool {
	return m.entries.set(v, struct{}{})
}

func (m markSet) has(v any) bool {
	return m.entries.has(v)
}

// marks bundles the two annotation sets a realm consults while wrapping.
type marks struct {
	// forced redirects mutable wrap requests to the readonly view.
	forced markSet
	// untracked excludes a container from wrapping entirely.
	untracked markSet
}

func newMarks() marks {
	return marks{forced: newMarkSet(), untracked: newMarkSet()}
}
