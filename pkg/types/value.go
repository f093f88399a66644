package types

import "fmt"

// Kind tags the concrete shape held by a Value.
type Kind int

const (
	// KindNull holds no value at all (the zero Value).
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindList
	KindMap
	// KindOpaque carries anything not covered by the other tags, for
	// handlers that pass through arbitrary data (e.g. an HTTP response
	// body decoded as interface{}).
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is the universal value type carried along edges of the graph.
// Dataflow values are heterogeneous at the source (spec.md §9), so this
// is a tagged union rather than a Go interface{} passthrough — the tag
// lets the engine format events and log fields without type assertions
// at every call site.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
	list []Value
	m    map[string]Value
	opq  any
}

// Nil is the zero Value (KindNull).
var Nil = Value{}

func Int(v int64) Value       { return Value{kind: KindInt, i: v} }
func Float(v float64) Value   { return Value{kind: KindFloat, f: v} }
func String(v string) Value   { return Value{kind: KindString, s: v} }
func Bool(v bool) Value       { return Value{kind: KindBool, b: v} }
func List(v []Value) Value    { return Value{kind: KindList, list: v} }
func Map(v map[string]Value) Value { return Value{kind: KindMap, m: v} }
func Opaque(v any) Value      { return Value{kind: KindOpaque, opq: v} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNil() bool  { return v.kind == KindNull }

func (v Value) Int() (int64, bool)            { return v.i, v.kind == KindInt }
func (v Value) Float() (float64, bool)        { return v.f, v.kind == KindFloat }
func (v Value) Str() (string, bool)           { return v.s, v.kind == KindString }
func (v Value) Boolean() (bool, bool)         { return v.b, v.kind == KindBool }
func (v Value) ListItems() ([]Value, bool)    { return v.list, v.kind == KindList }
func (v Value) MapItems() (map[string]Value, bool) { return v.m, v.kind == KindMap }
func (v Value) Any() any                      { return v.opq }

// Unwrap returns the underlying Go value behind the tag, mainly for
// logging, expr-lang evaluation, and JSON encoding — anywhere a plain
// interface{} is more useful than the tagged form.
func (v Value) Unwrap() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Unwrap()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, item := range v.m {
			out[k] = item.Unwrap()
		}
		return out
	default:
		return v.opq
	}
}

// FromAny boxes a native Go value into a Value, guessing the tag from
// its dynamic type. Used at the edges of the engine (JSON decoding,
// expr-lang results, entry bindings) where callers hand in interface{}.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil
	case Value:
		return x
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case float64:
		return Float(x)
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case []any:
		list := make([]Value, len(x))
		for i, item := range x {
			list[i] = FromAny(item)
		}
		return List(list)
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, item := range x {
			m[k] = FromAny(item)
		}
		return Map(m)
	default:
		return Opaque(x)
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "<nil>"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return v.s
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return fmt.Sprintf("%v", v.Unwrap())
	}
}
