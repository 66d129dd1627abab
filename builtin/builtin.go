// Package builtin implements lfr's fixed built-in instruction table
// (spec.md §4.2, §4.7): the opcodes every host gets for free, keyed by name
// and addressed by the fixed indices below HostOpcodeBase.
//
// Built-ins are appended to in a fixed order so that opcode values stay
// stable for old save files: new built-ins are added at the end, never
// inserted in the middle.
package builtin

import (
	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/vm"
)

// Opcodes for the spec-mandated built-ins, in table order.
const (
	OpPrintOwnID core.Opcode = iota
	OpTick
	OpRandomizeNumber
	OpAdd
	OpSub
	OpMul
	OpDistance
	OpPrintValue
	OpIfBetween
	OpRepeat
	OpDelay
)

// Opcodes for the supplemental built-ins, placed after the spec-mandated
// set so that the original eleven keep stable opcode values.
const (
	OpClamp core.Opcode = iota + 11
	OpNegate
	OpPrintString
	OpVec2Make
	OpBranch
)

// Table returns the built-in instruction definitions in fixed opcode order.
// Callers must not reorder or filter this slice before handing it to
// vm.New — doing so would change opcode assignments out from under it.
func Table() []vm.InstructionDef {
	return []vm.InstructionDef{
		printOwnIDDef(),
		tickDef(),
		randomizeNumberDef(),
		addDef(),
		subDef(),
		mulDef(),
		distanceDef(),
		printValueDef(),
		ifBetweenDef(),
		repeatDef(),
		delayDef(),
		clampDef(),
		negateDef(),
		printStringDef(),
		vec2MakeDef(),
		branchDef(),
	}
}
