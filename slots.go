package tracked

import "sync"

// Subscriber is an interested party for changes to one or more keys of a
// container. Effect and Computed are the implementations in this package;
// external implementations may attach themselves through KeyDeps.
type Subscriber interface {
	Notify(Change)
}

// iterateKey stands for "the key set" of a container. Length and iteration
// reads depend on it; additions, deletions and clears notify it.
type iterateKey struct{}

// IterateKey is the key under which iteration dependencies are recorded.
var IterateKey any = iterateKey{}

// depSet is an ordered set of subscribers for a single key.
type depSet struct {
	mu   sync.Mutex
	subs []Subscriber
}

func (d *depSet) add(s Subscriber) {
	d.mu.Lock()
	d.subs = appendUnique(d.subs, s)
	d.mu.Unlock()
}

func (d *depSet) remove(s Subscriber) {
	d.mu.Lock()
	d.subs = removeElement(d.subs, s)
	d.mu.Unlock()
}

func (d *depSet) collect(buf []Subscriber) []Subscriber {
	d.mu.Lock()
	for _, s := range d.subs {
		buf = appendUnique(buf, s)
	}
	d.mu.Unlock()
	return buf
}

func (d *depSet) size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// KeyDeps maps each key of one container to its subscribers. The factory
// creates it empty on first wrap; the tracking layer populates it.
type KeyDeps struct {
	mu   sync.Mutex
	deps map[any]*depSet
}

func newKeyDeps() *KeyDeps {
	return &KeyDeps{deps: make(map[any]*depSet)}
}

func (kd *KeyDeps) setFor(key any, create bool) *depSet {
	if !comparableValue(key) {
		return nil
	}
	kd.mu.Lock()
	defer kd.mu.Unlock()
	set, ok := kd.deps[key]
	if !ok && create {
		set = &depSet{}
		kd.deps[key] = set
	}
	return set
}

// Attach subscribes s to key.
func (kd *KeyDeps) Attach(key any, s Subscriber) {
	if set := kd.setFor(key, true); set != nil {
		set.add(s)
	}
}

// Detach removes s from key's subscribers.
func (kd *KeyDeps) Detach(key any, s Subscriber) {
	if set := kd.setFor(key, false); set != nil {
		set.remove(s)
	}
}

// Subscribers returns a snapshot of key's subscribers.
func (kd *KeyDeps) Subscribers(key any) []Subscriber {
	set := kd.setFor(key, false)
	if set == nil {
		return nil
	}
	return set.collect(nil)
}

// Keys returns every key that currently has at least one subscriber.
func (kd *KeyDeps) Keys() []any {
	kd.mu.Lock()
	type pair struct {
		key any
		set *depSet
	}
	pairs := make([]pair, 0, len(kd.deps))
	for k, set := range kd.deps {
		pairs = append(pairs, pair{k, set})
	}
	kd.mu.Unlock()
	keys := make([]any, 0, len(pairs))
	for _, p := range pairs {
		if p.set.size() > 0 {
			keys = append(keys, p.key)
		}
	}
	return keys
}

func (kd *KeyDeps) collect(key any, buf []Subscriber) []Subscriber {
	set := kd.setFor(key, false)
	if set == nil {
		return buf
	}
	return set.collect(buf)
}

func (kd *KeyDeps) collectAll(buf []Subscriber) []Subscriber {
	kd.mu.Lock()
	sets := make([]*depSet, 0, len(kd.deps))
	for _, set := range kd.deps {
		sets = append(sets, set)
	}
	kd.mu.Unlock()
	for _, set := range sets {
		buf = set.collect(buf)
	}
	return buf
}

// slotTable maps containers to their KeyDeps without extending their
// lifetime.
type slotTable struct {
	tables *identMap
}

func newSlotTable() *slotTable {
	return &slotTable{tables: newIdentMap()}
}

// ensure returns the table for raw, creating it empty on first call.
func (t *slotTable) ensure(raw Composite) *KeyDeps {
	v, ok := t.tables.ensure(raw, func() any { return newKeyDeps() })
	if !ok {
		return nil
	}
	return v.(*KeyDeps)
}

func (t *slotTable) lookup(raw Composite) (*KeyDeps, bool) {
	v, ok := t.tables.get(raw)
	if !ok {
		return nil, false
	}
	return v.(*KeyDeps), true
}

func appendUnique(subs []Subscriber, s Subscriber) []Subscriber {
	for _, existing := range subs {
		if existing == s {
			return subs
		}
	}
	return append(subs, s)
}

func removeElement(subs []Subscriber, s Subscriber) []Subscriber {
	for i, existing := range subs {
		if existing == s {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}
