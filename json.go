package tracked

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// maxEncodeDepth bounds recursive serialization so cyclic documents fail
// instead of overflowing the stack.
const maxEncodeDepth = 512

// FromJSON decodes a JSON document into containers. Objects become Records
// with field order preserved from the document, arrays become Lists, numbers
// become float64. The document root must be an object or an array.
func FromJSON(data []byte) (Composite, error) {
	iter := jsonAPI.BorrowIterator(data)
	defer jsonAPI.ReturnIterator(iter)

	v := decodeValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("decode document: %w", iter.Error)
	}
	c, ok := v.(Composite)
	if !ok {
		return nil, ErrScalarDocument
	}
	return c, nil
}

func decodeValue(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		r := NewRecord()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			r.Set(field, decodeValue(it))
			return true
		})
		return r
	case jsoniter.ArrayValue:
		l := NewList()
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			l.Push(decodeValue(it))
			return true
		})
		return l
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		return iter.ReadFloat64()
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		iter.ReportError("decode", "unexpected token")
		return nil
	}
}

// ToJSON serializes a container, view or scalar. Views serialize exactly as
// their targets. Set serializes as an array of members, Map as an object
// with stringified keys. Weak containers are not serializable.
func ToJSON(v any) ([]byte, error) {
	if c, ok := asComposite(v); ok {
		if p, isView := c.(*proxy); isView {
			c = p.target
		}
		return marshalComposite(c)
	}
	return jsonAPI.Marshal(v)
}

func marshalComposite(c Composite) ([]byte, error) {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	writeValue(stream, c, 0)
	if stream.Error != nil {
		return nil, stream.Error
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

func writeValue(s *jsoniter.Stream, v any, depth int) {
	if depth > maxEncodeDepth {
		s.Error = ErrTooDeep
		return
	}
	v = rawOf(v)
	c, ok := asComposite(v)
	if !ok {
		s.WriteVal(v)
		return
	}
	switch c.Kind() {
	case KindRecord:
		s.WriteObjectStart()
		first := true
		c.Each(func(k, val any) bool {
			if !first {
				s.WriteMore()
			}
			first = false
			name, _ := recordKey(k)
			s.WriteObjectField(name)
			writeValue(s, val, depth+1)
			return true
		})
		s.WriteObjectEnd()
	case KindList, KindSet:
		s.WriteArrayStart()
		first := true
		c.Each(func(_, val any) bool {
			if !first {
				s.WriteMore()
			}
			first = false
			writeValue(s, val, depth+1)
			return true
		})
		s.WriteArrayEnd()
	case KindMap:
		s.WriteObjectStart()
		first := true
		c.Each(func(k, val any) bool {
			if !first {
				s.WriteMore()
			}
			first = false
			s.WriteObjectField(keyLabel(k))
			writeValue(s, val, depth+1)
			return true
		})
		s.WriteObjectEnd()
	default:
		s.Error = ErrNotSerializable
	}
}

func (r *Record) MarshalJSON() ([]byte, error) { return marshalComposite(r) }

func (l *List) MarshalJSON() ([]byte, error) { return marshalComposite(l) }

func (s *Set) MarshalJSON() ([]byte, error) { return marshalComposite(s) }

func (m *Map) MarshalJSON() ([]byte, error) { return marshalComposite(m) }
