package builtin

import (
	"math"

	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/vm"
)

// arith applies op to two resolved inputs, preserving Int arithmetic when
// both operands are integers and falling back to Float otherwise, per
// spec.md §3's Variant coercion rules.
func arith(a, b core.Variant, opI func(x, y int64) int64, opF func(x, y float32) float32) core.Variant {
	if a.Kind() == core.KindInt && b.Kind() == core.KindInt {
		return core.Int(opI(a.ToInt(), b.ToInt()))
	}
	return core.Float(opF(a.ToFloat(), b.ToFloat()))
}

// foldVariants folds identity through every non-nil entry of in, preserving
// Int arithmetic as long as every folded-in operand is an Int and falling
// back to Float as soon as one isn't. Slots beyond the first two default to
// Nil and are skipped unwired, so add/mul's "any extra float slots" (spec.md
// §4.7) never forces the Float path for the common two-operand case.
func foldVariants(in []core.Variant, identity core.Variant, opI func(acc, x int64) int64, opF func(acc, x float32) float32) core.Variant {
	acc := identity
	allInt := identity.Kind() == core.KindInt
	for _, v := range in {
		if v.IsNil() {
			continue
		}
		if v.Kind() != core.KindInt {
			allInt = false
		}
		if allInt {
			acc = core.Int(opI(acc.ToInt(), v.ToInt()))
		} else {
			acc = core.Float(opF(acc.ToFloat(), v.ToFloat()))
		}
	}
	return acc
}

// arithSlots declares a required "a"/"b" pair (spec.md §4.7's minimum
// signature) followed by MaxSlots-2 optional extra float slots that default
// to Nil and are ignored unless a graph author wires them.
func arithSlots(zero core.Variant) []vm.Slot {
	slots := []vm.Slot{
		{Name: "a", Default: zero},
		{Name: "b", Default: zero},
	}
	for i := len(slots); i < vm.MaxSlots; i++ {
		slots = append(slots, vm.Slot{Name: "extra", Default: core.Nil()})
	}
	return slots
}

func addDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:    "add",
		Inputs:  arithSlots(core.Float(0)),
		Outputs: []vm.Slot{{Name: "sum", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			out[0] = foldVariants(in, core.Int(0), func(acc, x int64) int64 { return acc + x }, func(acc, x float32) float32 { return acc + x })
			return vm.Continue
		},
	}
}

func subDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "sub",
		Inputs: []vm.Slot{
			{Name: "a", Default: core.Float(0)},
			{Name: "b", Default: core.Float(0)},
		},
		Outputs: []vm.Slot{{Name: "diff", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			out[0] = arith(in[0], in[1], func(x, y int64) int64 { return x - y }, func(x, y float32) float32 { return x - y })
			return vm.Continue
		},
	}
}

func mulDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:    "mul",
		Inputs:  arithSlots(core.Float(1)),
		Outputs: []vm.Slot{{Name: "product", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			out[0] = foldVariants(in, core.Int(1), func(acc, x int64) int64 { return acc * x }, func(acc, x float32) float32 { return acc * x })
			return vm.Continue
		},
	}
}

func distanceDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "distance",
		Inputs: []vm.Slot{
			{Name: "a", Default: core.VecVariant(core.Vec2{})},
			{Name: "b", Default: core.VecVariant(core.Vec2{})},
		},
		Outputs: []vm.Slot{{Name: "distance", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			a, b := in[0].Vec2(), in[1].Vec2()
			dx, dy := a.X-b.X, a.Y-b.Y
			out[0] = core.Float(float32(math.Sqrt(float64(dx*dx + dy*dy))))
			return vm.Continue
		},
	}
}

func clampDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "clamp",
		Inputs: []vm.Slot{
			{Name: "value", Default: core.Float(0)},
			{Name: "min", Default: core.Float(0)},
			{Name: "max", Default: core.Float(1)},
		},
		Outputs: []vm.Slot{{Name: "result", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			v, lo, hi := in[0].ToFloat(), in[1].ToFloat(), in[2].ToFloat()
			switch {
			case v < lo:
				out[0] = core.Float(lo)
			case v > hi:
				out[0] = core.Float(hi)
			default:
				out[0] = in[0]
			}
			return vm.Continue
		},
	}
}

func negateDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:    "negate",
		Inputs:  []vm.Slot{{Name: "value", Default: core.Float(0)}},
		Outputs: []vm.Slot{{Name: "result", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			switch v := in[0]; v.Kind() {
			case core.KindBool:
				out[0] = core.Bool(!v.Bool())
			case core.KindInt:
				out[0] = core.Int(-v.ToInt())
			case core.KindVec2:
				p := v.Vec2()
				out[0] = core.MakeVec2(-p.X, -p.Y)
			default:
				out[0] = core.Float(-v.ToFloat())
			}
			return vm.Continue
		},
	}
}

func vec2MakeDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "vec2_make",
		Inputs: []vm.Slot{
			{Name: "x", Default: core.Float(0)},
			{Name: "y", Default: core.Float(0)},
		},
		Outputs: []vm.Slot{{Name: "vec", Default: core.VecVariant(core.Vec2{})}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			out[0] = core.MakeVec2(in[0].ToFloat(), in[1].ToFloat())
			return vm.Continue
		},
	}
}
