// Package value defines the runtime value representation shared by the
// tree-walking interpreter, the stack VM, and the register VM, so the
// three backends agree on observable semantics.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type is the tag identifying the concrete shape of a Value.
type Type byte

const (
	TypeNull Type = iota
	TypeNumber
	TypeString
	TypeBool
	TypeArray
	TypeMap
	TypeCallable
	TypeHostObject
)

var typeNames = [...]string{
	TypeNull:       "null",
	TypeNumber:     "number",
	TypeString:     "string",
	TypeBool:       "bool",
	TypeArray:      "array",
	TypeMap:        "map",
	TypeCallable:   "callable",
	TypeHostObject: "object",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Callable is any value that can appear on the callee side of a call
// expression: a native Go function or a user-defined function object
// carried by a specific backend (interpreter closure, stack code object,
// register code object).
type Callable interface {
	Arity() int
	Name() string
}

// NativeFunc wraps a Go function as a Callable built-in.
type NativeFunc struct {
	FuncName string
	NumArgs  int // -1 means variadic
	Fn       func(args []Value) (Value, error)
}

func (n *NativeFunc) Arity() int  { return n.NumArgs }
func (n *NativeFunc) Name() string { return n.FuncName }

// Map is an insertion-order preserving mapping from text keys to values,
// used for both object literals and the `dict` built-in.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set inserts or updates key. New keys are appended to the insertion order.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value bound to key and whether it was present.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// SortedKeys returns a copy of the keys sorted lexicographically; used
// only where a deterministic non-insertion order is explicitly wanted
// (e.g. debugging dumps), never for JSON/iteration order.
func (m *Map) SortedKeys() []string {
	ks := append([]string(nil), m.keys...)
	sort.Strings(ks)
	return ks
}

// Value is a tagged-union runtime value. This representation is the
// common currency between the interpreter and both virtual machines.
type Value struct {
	Type Type
	num  float64
	str  string
	b    bool
	arr  *[]Value
	m    *Map
	call Callable
	host any
}

// Null is the singleton null value.
var Null = Value{Type: TypeNull}

// Number builds a numeric value.
func Number(f float64) Value { return Value{Type: TypeNumber, num: f} }

// String builds a text value.
func String(s string) Value { return Value{Type: TypeString, str: s} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{Type: TypeBool, b: b} }

// Array builds a sequence value wrapping elems. The slice is shared, not
// copied, so callers that need value semantics should clone first.
func Array(elems []Value) Value {
	return Value{Type: TypeArray, arr: &elems}
}

// Mapping builds a mapping value.
func Mapping(m *Map) Value { return Value{Type: TypeMap, m: m} }

// Call builds a callable value.
func Call(c Callable) Value { return Value{Type: TypeCallable, call: c} }

// Host builds an opaque host-object value supplied by the built-in
// library (e.g. a sentinel module for an unavailable capability).
func Host(v any) Value { return Value{Type: TypeHostObject, host: v} }

// AsNumber returns the underlying float64; the caller must have checked Type.
func (v Value) AsNumber() float64 { return v.num }

// AsString returns the underlying string; the caller must have checked Type.
func (v Value) AsString() string { return v.str }

// AsBool returns the underlying bool; the caller must have checked Type.
func (v Value) AsBool() bool { return v.b }

// AsArray returns the underlying slice pointer; the caller must have
// checked Type.
func (v Value) AsArray() *[]Value { return v.arr }

// AsMap returns the underlying ordered map; the caller must have checked Type.
func (v Value) AsMap() *Map { return v.m }

// AsCallable returns the underlying callable; the caller must have checked Type.
func (v Value) AsCallable() Callable { return v.call }

// AsHost returns the underlying host object; the caller must have checked Type.
func (v Value) AsHost() any { return v.host }

// Truthy implements the language's notion of "falsy": null, false, zero,
// empty string, and empty sequences are falsy; everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Type {
	case TypeNull:
		return false
	case TypeBool:
		return v.b
	case TypeNumber:
		return v.num != 0
	case TypeString:
		return v.str != ""
	case TypeArray:
		return len(*v.arr) != 0
	case TypeMap:
		return v.m.Len() != 0
	default:
		return true
	}
}

// Equal implements the language's cross-type equality: equal type and
// value for atomics, pointer identity for arrays/maps/callables/hosts.
// Mixed-type comparisons such as 1 == "1" always evaluate to false;
// no coercion is performed.
func Equal(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeNull:
		return true
	case TypeNumber:
		return a.num == b.num
	case TypeString:
		return a.str == b.str
	case TypeBool:
		return a.b == b.b
	case TypeArray:
		return a.arr == b.arr
	case TypeMap:
		return a.m == b.m
	case TypeCallable:
		return a.call == b.call
	case TypeHostObject:
		return a.host == b.host
	}
	return false
}

// Inspect renders v for `say`/`print` output and error messages.
func Inspect(v Value) string {
	switch v.Type {
	case TypeNull:
		return "null"
	case TypeNumber:
		return formatNumber(v.num)
	case TypeString:
		return v.str
	case TypeBool:
		if v.b {
			return "true"
		}
		return "false"
	case TypeArray:
		parts := make([]string, len(*v.arr))
		for i, e := range *v.arr {
			parts[i] = Inspect(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TypeMap:
		parts := make([]string, 0, v.m.Len())
		for _, k := range v.m.Keys() {
			val, _ := v.m.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, Inspect(val)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case TypeCallable:
		return "<function " + v.call.Name() + ">"
	case TypeHostObject:
		return fmt.Sprintf("<object %v>", v.host)
	default:
		return "<unknown>"
	}
}

// formatNumber renders a float the way the language's str()/say expect:
// integral doubles still show a trailing ".0" so that 4.0 and 4 remain
// visibly distinct from integer literals in output.
func formatNumber(f float64) string {
	if f == float64(int64(f)) && !strings.Contains(strconv.FormatFloat(f, 'g', -1, 64), "e") {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
