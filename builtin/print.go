package builtin

import (
	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/vm"
)

func printOwnIDDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name: "print_own_id",
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			hostFrom(env.CustomData).Logger.Printf("node %d", env.NodeID)
			return vm.Continue
		},
	}
}

func printValueDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:   "print_value",
		Inputs: []vm.Slot{{Name: "value", Default: core.Nil()}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			hostFrom(env.CustomData).Logger.Printf("node %d: %s", env.NodeID, in[0].String())
			return vm.Continue
		},
	}
}

func printStringDef() vm.InstructionDef {
	return vm.InstructionDef{
		Name:   "print_string",
		Inputs: []vm.Slot{{Name: "text", Default: core.Nil()}},
		Proc: func(in, out []core.Variant, env *vm.Env) vm.Result {
			hostFrom(env.CustomData).Logger.Printf("%s", in[0].String())
			return vm.Continue
		},
	}
}
