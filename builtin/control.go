package builtin

import (
	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/vm"
)

func ifBetweenDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "if_between",
		Inputs: []vm.Slot{
			{Name: "value", Default: core.Float(0)},
			{Name: "min", Default: core.Float(0)},
			{Name: "max", Default: core.Float(0)},
		},
		Outputs: []vm.Slot{{Name: "in_range", Default: core.Bool(false)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			v, lo, hi := in[0].ToFloat(), in[1].ToFloat(), in[2].ToFloat()
			inRange := v >= lo && v <= hi
			out[0] = core.Bool(inRange)
			if !inRange {
				return vm.Halt
			}
			return vm.Continue
		},
	}
}

// branchDef gates flow on a boolean input: Continue (schedule flow targets)
// when the condition holds, Halt otherwise. The graph model carries a
// single unlabeled set of flow targets per node, so branch cannot steer to
// distinct then/else targets — only whether to proceed at all.
func branchDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:   "branch",
		Inputs: []vm.Slot{{Name: "condition", Default: core.Bool(false)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			if in[0].ToBool() {
				return vm.Continue
			}
			return vm.Halt
		},
	}
}

// repeatDef fires its flow targets count times, once per Wait-returning
// invocation, halting (without firing) on the invocation that finds the
// count already reached. *env.Work counts invocations up from 0 — Wait does
// not itself trigger flow propagation, so each firing invocation schedules
// its own flow targets explicitly before returning.
func repeatDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:    "repeat",
		Inputs:  []vm.Slot{{Name: "count", Default: core.Int(1)}},
		Outputs: []vm.Slot{{Name: "iteration", Default: core.Int(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			times := in[0].ToInt()
			out[0] = core.Int(int64(*env.Work))
			if int64(*env.Work) >= times {
				return vm.Halt
			}
			env.Sched.ScheduleFlowTargets(env.NodeID)
			*env.Work++
			out[0] = core.Int(int64(*env.Work))
			return vm.Wait
		},
	}
}

// delayDef waits until env.Time reaches a deadline computed on first
// invocation. The deadline is stored in *env.Work as whole milliseconds
// since node-relative work tokens are uint32, not float32.
func delayDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:   "delay",
		Inputs: []vm.Slot{{Name: "duration", Default: core.Float(0)}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			if *env.Work == 0 {
				durMS := in[0].ToFloat() * 1000
				if durMS <= 0 {
					return vm.Continue
				}
				*env.Work = uint32(env.Time*1000) + uint32(durMS)
			}
			if uint32(env.Time*1000) >= *env.Work {
				*env.Work = 0
				return vm.Continue
			}
			return vm.Wait
		},
	}
}
