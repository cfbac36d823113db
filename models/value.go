package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValueKind enumerates the variants a Value can hold.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
)

// Value is a tagged variant holding one of: null, bool, number, string, list
// or map. It is the boundary representation for entity payloads whose schema
// is not fully known in advance; components project Values into typed records
// as soon as possible.
type Value struct {
	kind ValueKind
	b    bool
	n    float64
	s    string
	l    []Value
	m    map[string]Value
}

// ValueMap is a field-name → Value mapping used for change payloads and raw
// entity records.
type ValueMap map[string]Value

func Null() Value                  { return Value{kind: KindNull} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func Number(n float64) Value       { return Value{kind: KindNumber, n: n} }
func String(s string) Value        { return Value{kind: KindString, s: s} }
func List(items ...Value) Value    { return Value{kind: KindList, l: items} }
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

func (v Value) Bool() bool      { return v.b }
func (v Value) Number() float64 { return v.n }

func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	return fmt.Sprintf("%v", v.Any())
}

func (v Value) List() []Value         { return v.l }
func (v Value) Map() map[string]Value { return v.m }

// FromAny converts a decoded JSON value (bool, float64, string, []any,
// map[string]any, nil and the integer types produced by callers) into a
// Value. Returns an error for unsupported dynamic types.
func FromAny(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("convert json number %q: %w", t.String(), err)
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, el := range t {
			v, err := FromAny(el)
			if err != nil {
				return Null(), fmt.Errorf("list element %d: %w", i, err)
			}
			items = append(items, v)
		}
		return List(items...), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, el := range t {
			v, err := FromAny(el)
			if err != nil {
				return Null(), fmt.Errorf("map key %q: %w", k, err)
			}
			m[k] = v
		}
		return Map(m), nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", raw)
	}
}

// Any converts the Value back into the plain dynamic representation used by
// encoding/json.
func (v Value) Any() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindList:
		out := make([]any, 0, len(v.l))
		for _, el := range v.l {
			out = append(out, el.Any())
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, el := range v.m {
			out[k] = el.Any()
		}
		return out
	default:
		return nil
	}
}

// Equal reports deep equality of two Values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindList:
		if len(v.l) != len(other.l) {
			return false
		}
		for i := range v.l {
			if !v.l[i].Equal(other.l[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, el := range v.m {
			o, ok := other.m[k]
			if !ok || !el.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// FromAnyMap converts a decoded JSON object into a ValueMap.
func FromAnyMap(raw map[string]any) (ValueMap, error) {
	out := make(ValueMap, len(raw))
	for k, el := range raw {
		v, err := FromAny(el)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// Any converts the ValueMap back into map[string]any.
func (m ValueMap) Any() map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Any()
	}
	return out
}

// Keys returns the sorted field names of the map.
func (m ValueMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the map; Values themselves are immutable.
func (m ValueMap) Clone() ValueMap {
	out := make(ValueMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
