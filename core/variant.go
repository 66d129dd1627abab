// Package core provides the fundamental primitives of the lfr scripting
// runtime: the Variant tagged value and the SparseTable identity scheme.
//
// Both types are leaves in the dependency graph of the runtime — they are
// used by every other package (model, vm, builtin, runtime, serialize) but
// depend on nothing else themselves.
package core

import "fmt"

// Kind identifies which alternative of a Variant is populated.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindVec2
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Vec2 is a pair of 32-bit floats, lfr's only composite value type.
type Vec2 struct {
	X, Y float32
}

// Variant is a tagged union over {nil, bool, int, float, vec2}. The zero
// value is Nil — "no value carried".
type Variant struct {
	kind Kind
	b    bool
	i    int64
	f    float32
	v    Vec2
}

// Nil returns the nil Variant — lfr's "use the default" signal.
func Nil() Variant { return Variant{kind: KindNil} }

// Bool wraps a bool value.
func Bool(b bool) Variant { return Variant{kind: KindBool, b: b} }

// Int wraps an integer value.
func Int(i int64) Variant { return Variant{kind: KindInt, i: i} }

// Float wraps a float value.
func Float(f float32) Variant { return Variant{kind: KindFloat, f: f} }

// MakeVec2 wraps an (x, y) pair.
func MakeVec2(x, y float32) Variant { return Variant{kind: KindVec2, v: Vec2{X: x, Y: y}} }

// VecVariant wraps a Vec2 value.
func VecVariant(v Vec2) Variant { return Variant{kind: KindVec2, v: v} }

// Kind reports which alternative is populated.
func (v Variant) Kind() Kind { return v.kind }

// IsNil reports whether v carries no value.
func (v Variant) IsNil() bool { return v.kind == KindNil }

// Vec2 returns the raw vec2 payload; zero value if v is not a vec2.
func (v Variant) Vec2() Vec2 { return v.v }

// Bool returns the raw bool payload without coercion; zero value if v is not a bool.
func (v Variant) Bool() bool { return v.b }

// Int returns the raw int payload without coercion; zero value if v is not an int.
func (v Variant) Int() int64 { return v.i }

// Float returns the raw float payload without coercion; zero value if v is not a float.
func (v Variant) Float() float32 { return v.f }

// ToFloat is the total to_float coercion: bool -> {0,1}; int -> cast;
// float -> self; vec2 -> x component; nil -> 0.
func (v Variant) ToFloat() float32 {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return float32(v.i)
	case KindFloat:
		return v.f
	case KindVec2:
		return v.v.X
	default:
		return 0
	}
}

// ToInt is the total to_int coercion: bool -> {0,1}; int -> self;
// float -> truncation; vec2 -> x truncated; nil -> 0.
func (v Variant) ToInt() int64 {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindInt:
		return v.i
	case KindFloat:
		return int64(v.f)
	case KindVec2:
		return int64(v.v.X)
	default:
		return 0
	}
}

// ToBool is the total to_bool coercion: to_int(v) != 0.
func (v Variant) ToBool() bool {
	return v.ToInt() != 0
}

// Equal reports whether two Variants carry the same kind and value.
func (v Variant) Equal(other Variant) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindVec2:
		return v.v == other.v
	default:
		return false
	}
}

// String renders v for diagnostics and the print_value/print_string builtins.
func (v Variant) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%g", v.f)
	case KindVec2:
		return fmt.Sprintf("(%g, %g)", v.v.X, v.v.Y)
	default:
		return "<invalid>"
	}
}
