package tracked

import "sort"

// FromGo converts canonical Go document shapes into containers:
// map[string]any becomes a Record with keys inserted in sorted order, []any
// becomes a List, and everything else passes through unchanged, containers
// and views included. The conversion is deep.
func FromGo(v any) any {
	switch t := v.(type) {
	case map[string]any:
		r := NewRecord()
		for _, k := range sortedKeys(t) {
			r.Set(k, FromGo(t[k]))
		}
		return r
	case []any:
		l := NewList()
		for _, item := range t {
			l.Push(FromGo(item))
		}
		return l
	}
	return v
}

// ToGo exports v to plain Go values, deeply: Records become map[string]any,
// Lists and the set kinds become []any, the map kinds become map[string]any
// with stringified keys, scalars pass through. Exporting through a view
// reads through it, so an effect exporting state tracks what it exports;
// exporting a raw container reads silently.
func ToGo(v any) any {
	c, ok := asComposite(v)
	if !ok {
		return v
	}
	switch c.Kind() {
	case KindRecord:
		out := make(map[string]any, c.Len())
		c.Each(func(k, val any) bool {
			name, _ := recordKey(k)
			out[name] = ToGo(val)
			return true
		})
		return out
	case KindList, KindSet, KindWeakSet:
		out := make([]any, 0, c.Len())
		c.Each(func(_, val any) bool {
			out = append(out, ToGo(val))
			return true
		})
		return out
	default:
		out := make(map[string]any, c.Len())
		c.Each(func(k, val any) bool {
			out[keyLabel(k)] = ToGo(val)
			return true
		})
		return out
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
