package tracked

// Collection access goes through member and entry operations instead of
// field access, and keys may themselves be containers or views. Keys are
// normalized to the underlying container before every operation so a view
// and its target always address the same entry.

// Assigned in init: a direct initializer is an initialization cycle, since
// the bundle's traps reach handlerFor (via wrapNested and the factory), which
// refers back to the bundle.
var (
	collectionMutableHandlers  *handlerBundle
	collectionReadonlyHandlers *handlerBundle
)

func init() {
	collectionMutableHandlers = &handlerBundle{
		get:    collectionGet,
		set:    collectionSet,
		has:    collectionHas,
		del:    collectionDelete,
		length: trackedLen,
		each:   collectionEach,
		clear:  mutableClear,
	}
	collectionReadonlyHandlers = &handlerBundle{
		get:    collectionGet,
		set:    rejectSet,
		has:    collectionHas,
		del:    rejectDelete,
		length: trackedLen,
		each:   collectionEach,
		clear:  rejectClear,
	}
}

func collectionKey(key any) (any, bool) {
	key = rawOf(key)
	return key, comparableValue(key)
}

func collectionGet(p *proxy, key any) (any, bool) {
	k, ok := collectionKey(key)
	if !ok {
		return nil, false
	}
	raw := p.target
	p.realm.track(raw, k)
	v, present := raw.Get(k)
	if !present {
		return nil, false
	}
	return p.wrapNested(v), true
}

func collectionSet(p *proxy, key, value any) bool {
	k, ok := collectionKey(key)
	if !ok {
		return false
	}
	raw := p.target
	switch raw.Kind() {
	case KindSet, KindWeakSet:
		// Member semantics: the key is the member, the value is ignored.
		if raw.Has(k) {
			return true
		}
		if !raw.Set(k, k) {
			return false
		}
		p.realm.trigger(raw, OpAdd, k, nil, k)
		return true
	default:
		value = rawOf(value)
		old, existed := raw.Get(k)
		if !raw.Set(k, value) {
			return false
		}
		if !existed {
			p.realm.trigger(raw, OpAdd, k, nil, value)
		} else if !safeEqual(old, value) {
			p.realm.trigger(raw, OpSet, k, old, value)
		}
		return true
	}
}

func collectionHas(p *proxy, key any) bool {
	k, ok := collectionKey(key)
	if !ok {
		return false
	}
	p.realm.track(p.target, k)
	return p.target.Has(k)
}

func collectionDelete(p *proxy, key any) bool {
	k, ok := collectionKey(key)
	if !ok {
		return false
	}
	raw := p.target
	old, existed := raw.Get(k)
	if !raw.Delete(k) {
		return false
	}
	if existed {
		p.realm.trigger(raw, OpDelete, k, old, nil)
	}
	return true
}

// collectionEach wraps composite keys as well as values: iterating a set of
// containers yields views matching the parent's access mode.
func collectionEach(p *proxy, fn func(key, value any) bool) {
	raw := p.target
	p.realm.track(raw, IterateKey)
	raw.Each(func(k, v any) bool {
		if comparableValue(k) {
			p.realm.track(raw, k)
		}
		return fn(p.wrapNested(k), p.wrapNested(v))
	})
}
