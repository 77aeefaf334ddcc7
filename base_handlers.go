package tracked

// handlerBundle is one interception strategy: the trap functions a view
// delegates to. Four bundles exist, keyed access and collection access in
// mutable and readonly variants. Bundles are stateless singletons; all state
// lives on the proxy and its realm.
type handlerBundle struct {
	get    func(p *proxy, key any) (any, bool)
	set    func(p *proxy, key, value any) bool
	has    func(p *proxy, key any) bool
	del    func(p *proxy, key any) bool
	length func(p *proxy) int
	each   func(p *proxy, fn func(key, value any) bool)
	clear  func(p *proxy)
}

// handlerFor selects the bundle for a container kind and access mode.
// Collection kinds get the collection bundle, everything else the base one.
func handlerFor(kind Kind, access WrapKind) *handlerBundle {
	switch {
	case kind.Collection() && access == WrapReadonly:
		return collectionReadonlyHandlers
	case kind.Collection():
		return collectionMutableHandlers
	case access == WrapReadonly:
		return baseReadonlyHandlers
	default:
		return baseMutableHandlers
	}
}

// Assigned in init: a direct initializer is an initialization cycle, since
// the bundle's traps reach handlerFor (via wrapNested and the factory), which
// refers back to the bundle.
var (
	baseMutableHandlers  *handlerBundle
	baseReadonlyHandlers *handlerBundle
)

func init() {
	baseMutableHandlers = &handlerBundle{
		get:    baseGet,
		set:    baseSet,
		has:    baseHas,
		del:    baseDelete,
		length: trackedLen,
		each:   baseEach,
		clear:  mutableClear,
	}
	baseReadonlyHandlers = &handlerBundle{
		get:    baseGet,
		set:    rejectSet,
		has:    baseHas,
		del:    rejectDelete,
		length: trackedLen,
		each:   baseEach,
		clear:  rejectClear,
	}
}

// trackKey normalizes key the same way the container will, so tracked keys
// and triggered keys always meet.
func trackKey(raw Composite, key any) (any, bool) {
	switch raw.Kind() {
	case KindRecord:
		return recordKey(key)
	case KindList:
		i, ok := listIndex(key)
		return i, ok
	}
	key = rawOf(key)
	return key, comparableValue(key)
}

func baseGet(p *proxy, key any) (any, bool) {
	raw := p.target
	if k, ok := trackKey(raw, key); ok {
		p.realm.track(raw, k)
	}
	v, present := raw.Get(key)
	if !present {
		return nil, false
	}
	return p.wrapNested(v), true
}

func baseSet(p *proxy, key, value any) bool {
	raw := p.target
	value = rawOf(value)
	old, existed := raw.Get(key)
	if !raw.Set(key, value) {
		return false
	}
	k, _ := trackKey(raw, key)
	if !existed {
		p.realm.trigger(raw, OpAdd, k, nil, value)
	} else if !safeEqual(old, value) {
		p.realm.trigger(raw, OpSet, k, old, value)
	}
	return true
}

func baseHas(p *proxy, key any) bool {
	raw := p.target
	if k, ok := trackKey(raw, key); ok {
		p.realm.track(raw, k)
	}
	return raw.Has(key)
}

func baseDelete(p *proxy, key any) bool {
	raw := p.target
	if raw.Kind() == KindList {
		return listDelete(p, key)
	}
	old, existed := raw.Get(key)
	if !raw.Delete(key) {
		return false
	}
	if existed {
		k, _ := trackKey(raw, key)
		p.realm.trigger(raw, OpDelete, k, old, nil)
	}
	return true
}

// listDelete mirrors the index shifting a removal causes: every index from
// the removal point on observes its new value, and the final index observes
// its disappearance.
func listDelete(p *proxy, key any) bool {
	raw := p.target
	i, ok := listIndex(key)
	if !ok || i < 0 || i >= raw.Len() {
		return false
	}
	n := raw.Len()
	pre := make([]any, 0, n-i)
	for j := i; j < n; j++ {
		v, _ := raw.Get(j)
		pre = append(pre, v)
	}
	if !raw.Delete(i) {
		return false
	}
	for j := i; j < n-1; j++ {
		oldV, newV := pre[j-i], pre[j-i+1]
		if !safeEqual(oldV, newV) {
			p.realm.trigger(raw, OpSet, j, oldV, newV)
		}
	}
	p.realm.trigger(raw, OpDelete, n-1, pre[n-1], nil)
	return true
}

func trackedLen(p *proxy) int {
	p.realm.track(p.target, IterateKey)
	return p.target.Len()
}

// baseEach tracks the iteration itself and every visited key: an effect that
// walks a container re-runs on membership changes and on value changes.
func baseEach(p *proxy, fn func(key, value any) bool) {
	raw := p.target
	p.realm.track(raw, IterateKey)
	raw.Each(func(k, v any) bool {
		if tk, ok := trackKey(raw, k); ok {
			p.realm.track(raw, tk)
		}
		return fn(k, p.wrapNested(v))
	})
}

func mutableClear(p *proxy) {
	raw := p.target
	if raw.Len() == 0 {
		return
	}
	raw.Clear()
	p.realm.trigger(raw, OpClear, nil, nil, nil)
}

func rejectSet(p *proxy, key, _ any) bool {
	p.realm.rejectWrite(p.target, OpSet, key)
	return false
}

func rejectDelete(p *proxy, key any) bool {
	p.realm.rejectWrite(p.target, OpDelete, key)
	return false
}

func rejectClear(p *proxy) {
	p.realm.rejectWrite(p.target, OpClear, nil)
}
