package tracked

// The factory implements the two wrap entry points. Decision order matters
// and is covered one to one by the tests: the fast paths keep identity
// stable, the mark checks apply caller intent, and only then is a view
// constructed and registered.

// Mutable returns the mutable view of v, creating and registering it on
// first request. Readonly views pass through unchanged: once a value has
// been observed through the readonly lens, this entry point will not
// downgrade it. A container marked readonly up front is redirected to
// Readonly. Scalars, nil and non-container values are returned unchanged.
func (r *Realm) Mutable(v any) any {
	// A readonly view stays readonly, even when asked for mutable.
	if _, ok := r.registry.lookupRaw(v, WrapReadonly); ok {
		return v
	}
	// Caller intent recorded before wrapping wins over the entry point.
	if r.marks.forced.has(r.Unwrap(v)) {
		return r.Readonly(v)
	}
	return r.createWrapper(v, WrapMutable)
}

// Readonly returns the readonly view of v, creating and registering it on
// first request. A mutable view is unwrapped first: readonly-ness is always
// computed from the underlying container, never layered over another view.
// Scalars, nil and non-container values are returned unchanged.
func (r *Realm) Readonly(v any) any {
	if _, ok := r.registry.lookupRaw(v, WrapReadonly); ok {
		return v
	}
	if raw, ok := r.registry.lookupRaw(v, WrapMutable); ok {
		v = raw
	}
	return r.createWrapper(v, WrapReadonly)
}

// createWrapper is the shared tail of both entry points.
func (r *Realm) createWrapper(v any, kind WrapKind) any {
	c, ok := asComposite(v)
	if !ok {
		r.warnMisuse("wrap", v)
		return v
	}

	// Serialized so concurrent wrap calls for the same container observe
	// exactly one view and registration stays write-once.
	r.wrapMu.Lock()
	defer r.wrapMu.Unlock()

	if view, exists := r.registry.lookupWrapper(c, kind); exists {
		return view
	}
	if _, isView := r.registry.lookupRaw(c, kind); isView {
		return v
	}
	if !r.CanTrack(c) {
		return v
	}

	view := &proxy{
		realm:   r,
		target:  c,
		access:  kind,
		handler: handlerFor(c.Kind(), kind),
	}
	r.registry.register(c, view, kind)
	r.slots.ensure(c)
	r.observeWrap(view)
	return view
}

// Unwrap returns the container behind v when v is a view of either kind
// created by this realm; any other value is returned unchanged.
func (r *Realm) Unwrap(v any) any {
	if raw, ok := r.registry.lookupRaw(v, WrapMutable); ok {
		return raw
	}
	if raw, ok := r.registry.lookupRaw(v, WrapReadonly); ok {
		return raw
	}
	return v
}

// IsTracked reports whether v is a view of either kind created by this
// realm.
func (r *Realm) IsTracked(v any) bool {
	if _, ok := r.registry.lookupRaw(v, WrapMutable); ok {
		return true
	}
	_, ok := r.registry.lookupRaw(v, WrapReadonly)
	return ok
}

// IsReadonly reports whether v is a readonly view created by this realm.
func (r *Realm) IsReadonly(v any) bool {
	_, ok := r.registry.lookupRaw(v, WrapReadonly)
	return ok
}

// MarkReadonly records that the container behind v must only ever be
// observed readonly: future Mutable calls yield the readonly view. The mark
// persists for the container's lifetime. Returns v for chaining.
func (r *Realm) MarkReadonly(v any) any {
	if !r.marks.forced.add(r.Unwrap(v)) {
		r.warnMisuse("mark-readonly", v)
	}
	return v
}

// MarkUntracked excludes the container behind v from wrapping: both entry
// points return it unchanged. The mark persists for the container's
// lifetime. Returns v for chaining.
func (r *Realm) MarkUntracked(v any) any {
	if !r.marks.untracked.add(r.Unwrap(v)) {
		r.warnMisuse("mark-untracked", v)
	}
	return v
}

// Dependencies returns the per-key subscriber table of the container behind
// v. The table exists once the container has been wrapped.
func (r *Realm) Dependencies(v any) (*KeyDeps, bool) {
	c, ok := asComposite(r.Unwrap(v))
	if !ok {
		return nil, false
	}
	return r.slots.lookup(c)
}
