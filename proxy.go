package tracked

import "fmt"

// proxy is the view type: an identity-distinct facade over one container,
// bound to the handler bundle that implements its access semantics. A proxy
// always wraps the underlying container directly, never another proxy.
type proxy struct {
	realm   *Realm
	target  Composite
	access  WrapKind
	handler *handlerBundle
}

func (p *proxy) trackedInternal() {}

// Kind reports the underlying container's kind; views are shape-transparent.
func (p *proxy) Kind() Kind { return p.target.Kind() }

func (p *proxy) Get(key any) (any, bool) { return p.handler.get(p, key) }

func (p *proxy) Set(key, value any) bool { return p.handler.set(p, key, value) }

func (p *proxy) Has(key any) bool { return p.handler.has(p, key) }

func (p *proxy) Delete(key any) bool { return p.handler.del(p, key) }

func (p *proxy) Len() int { return p.handler.length(p) }

func (p *proxy) Each(fn func(key, value any) bool) { p.handler.each(p, fn) }

func (p *proxy) Clear() { p.handler.clear(p) }

// wrapNested returns nested containers through the same access mode as the
// parent view, so a readonly tree stays readonly all the way down.
func (p *proxy) wrapNested(v any) any {
	if _, ok := asComposite(v); !ok {
		return v
	}
	if p.access == WrapReadonly {
		return p.realm.Readonly(v)
	}
	return p.realm.Mutable(v)
}

// MarshalJSON serializes the underlying container, so a view serializes
// identically to its target.
func (p *proxy) MarshalJSON() ([]byte, error) {
	return marshalComposite(p.target)
}

func (p *proxy) String() string {
	return fmt.Sprintf("%s(%s)", p.access, p.target.Kind())
}

// rawOf strips a view from v regardless of which realm created it. Values
// written through views are normalized with it so containers never store
// views of their own realm's making.
func rawOf(v any) any {
	if p, ok := v.(*proxy); ok {
		return p.target
	}
	return v
}
