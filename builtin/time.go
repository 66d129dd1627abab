package builtin

import (
	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/vm"
)

// tickDef re-schedules itself every step it runs, turning a single node
// into a continuous per-step pulse, and reports the host's current
// simulation time on its output slot.
func tickDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:    "tick",
		Outputs: []vm.Slot{{Name: "time", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			out[0] = core.Float(env.Time)
			env.Sched.ScheduleNode(env.NodeID)
			return vm.Continue
		},
	}
}

func randomizeNumberDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "randomize_number",
		Inputs: []vm.Slot{
			{Name: "min", Default: core.Float(0)},
			{Name: "max", Default: core.Float(1)},
		},
		Outputs: []vm.Slot{{Name: "value", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			lo, hi := in[0].ToFloat(), in[1].ToFloat()
			if hi < lo {
				lo, hi = hi, lo
			}
			r := hostFrom(env.CustomData).Rand.Float32()
			out[0] = core.Float(lo + r*(hi-lo))
			return vm.Continue
		},
	}
}
