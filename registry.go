package tracked

import (
	"fmt"
	"sync"
	"weak"
)

// WrapKind selects one of the two view kinds.
type WrapKind string

const (
	WrapMutable  WrapKind = "mutable"
	WrapReadonly WrapKind = "readonly"
)

// identityRegistry holds the four associations between containers and their
// views: container to mutable view, mutable view to container, container to
// readonly view, readonly view to container. All keys are identities, and no
// entry extends the lifetime of either side: container keys are weak, view
// values are weak, and view-keyed entries die with the view they describe.
//
// Registration is write-once per (container, kind) while the registered view
// is alive. A collected view counts as absent and may be re-registered.
type identityRegistry struct {
	mu            sync.Mutex
	rawToMutable  *identMap
	rawToReadonly *identMap
	mutableToRaw  *identMap
	readonlyToRaw *identMap
}

func newIdentityRegistry() *identityRegistry {
	return &identityRegistry{
		rawToMutable:  newIdentMap(),
		rawToReadonly: newIdentMap(),
		mutableToRaw:  newIdentMap(),
		readonlyToRaw: newIdentMap(),
	}
}

func (r *identityRegistry) viewTable(kind WrapKind) *identMap {
	if kind == WrapReadonly {
		return r.rawToReadonly
	}
	return r.rawToMutable
}

func (r *identityRegistry) rawTable(kind WrapKind) *identMap {
	if kind == WrapReadonly {
		return r.readonlyToRaw
	}
	return r.mutableToRaw
}

// lookupWrapper returns the live view of the given kind for raw.
func (r *identityRegistry) lookupWrapper(raw any, kind WrapKind) (*proxy, bool) {
	v, ok := r.viewTable(kind).get(raw)
	if !ok {
		return nil, false
	}
	p := v.(weak.Pointer[proxy]).Value()
	if p == nil {
		return nil, false
	}
	return p, true
}

// lookupRaw returns the container behind v when v is a view of the given
// kind. It doubles as the "is v a view of this kind" test.
func (r *identityRegistry) lookupRaw(v any, kind WrapKind) (Composite, bool) {
	raw, ok := r.rawTable(kind).get(v)
	if !ok {
		return nil, false
	}
	return raw.(Composite), true
}

// register establishes both directions for (raw, view) atomically. A live
// entry already present for (raw, kind) means the factory's fast path was
// bypassed; that is an unrecoverable internal fault.
func (r *identityRegistry) register(raw Composite, view *proxy, kind WrapKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.lookupWrapper(raw, kind); exists {
		panic(createInternalError("registration",
			fmt.Errorf("%s view already registered for %s", kind, raw.Kind())))
	}
	r.viewTable(kind).set(raw, weak.Make(view))
	r.rawTable(kind).set(view, raw)
}
