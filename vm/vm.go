// Package vm implements lfr's instruction registry: the built-in
// instruction table, a caller-supplied host table, and the lookup rules
// that bind opcodes and names to InstructionDefs (spec.md §4.2).
package vm

import (
	"fmt"

	"github.com/jakobeklund/lfr/core"
)

// MaxSlots bounds the number of input or output slots an instruction may
// declare (spec.md §3's "S is a small fixed bound (e.g. 8)").
const MaxSlots = 8

// Result is what an instruction procedure reports back to the scheduler.
type Result uint8

const (
	// Continue schedules every FlowLink target of the invoking node.
	Continue Result = iota
	// Wait re-enqueues the node onto the deferred queue with the
	// (possibly updated) work token.
	Wait
	// Halt does nothing further this step.
	Halt
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "Continue"
	case Wait:
		return "Wait"
	case Halt:
		return "Halt"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// Slot is one entry of an instruction's input or output signature. A slot is
// "real" iff Name is non-empty (spec.md §3).
type Slot struct {
	Name    string
	Default core.Variant
}

// Real reports whether this signature entry names an actual slot.
func (s Slot) Real() bool { return s.Name != "" }

// GraphView is the read-only graph surface exposed to an executing
// instruction via Env. model.Graph satisfies it structurally; vm does not
// import model, and both packages depend only on core.
type GraphView interface {
	HasNode(id uint32) bool
}

// SchedulerView is the scheduling-mutation surface exposed to an executing
// instruction via Env — the "instruction scheduling helpers" of spec.md
// §4.5, usable by host code and by instructions like repeat and tick.
type SchedulerView interface {
	ScheduleNode(id uint32)
	DeferNode(id uint32, work uint32)
	ScheduleInstruction(op core.Opcode)
	DeferInstruction(op core.Opcode, work uint32)
	ScheduleFlowTargets(id uint32)
}

// Env is passed to every instruction invocation (spec.md §4.5 step 4 and
// §6's instruction procedure contract).
type Env struct {
	NodeID     uint32
	Graph      GraphView
	Sched      SchedulerView
	Work       *uint32
	Time       float32
	CustomData any
}

// InstructionFunc is the instruction procedure contract: inputs are
// pre-resolved Variants, outputs start pre-filled with Nil and writing them
// is optional.
type InstructionFunc func(inputs []core.Variant, outputs []core.Variant, env *Env) Result

// InstructionDef describes one instruction: its name, procedure, and typed
// input/output signatures (spec.md §3).
type InstructionDef struct {
	Name    string
	Proc    InstructionFunc
	Inputs  []Slot
	Outputs []Slot
}

// Registry holds the built-in definition array, a caller-supplied host
// array, and opaque custom data passed to every invocation (spec.md §4.2).
type Registry struct {
	builtins   []InstructionDef
	host       []InstructionDef
	CustomData any
	onWarn     func(format string, args ...any)
}

// New constructs a Registry. onWarn receives registry-miss and other
// recoverable-warning messages (spec.md §7's "registry miss" policy); a nil
// onWarn silences them.
func New(builtins, host []InstructionDef, customData any, onWarn func(string, ...any)) *Registry {
	if onWarn == nil {
		onWarn = func(string, ...any) {}
	}
	return &Registry{builtins: builtins, host: host, CustomData: customData, onWarn: onWarn}
}

// Get resolves an opcode to its definition. Opcode out of range for its
// partition is a programmer error (precondition violation) and panics.
func (r *Registry) Get(op core.Opcode) *InstructionDef {
	if op.IsBuiltin() {
		idx := int(op)
		if idx < 0 || idx >= len(r.builtins) {
			panic(fmt.Sprintf("vm: builtin opcode %d out of range", op))
		}
		return &r.builtins[idx]
	}
	idx := op.HostIndex()
	if idx < 0 || idx >= len(r.host) {
		panic(fmt.Sprintf("vm: host opcode %d out of range", op))
	}
	return &r.host[idx]
}

// Find resolves a name to an opcode. The host table is searched first so
// that host instructions override built-ins of the same name — deliberate,
// to preserve scripts when new built-ins are added (spec.md §4.2). On a
// total miss, Find warns and falls back to the opcode of print_own_id as a
// non-destructive default; this fallback is observable behavior that must
// be preserved (spec.md §7 "registry miss").
func (r *Registry) Find(name string) core.Opcode {
	for i := range r.host {
		if r.host[i].Name == name {
			return core.HostOpcode(i)
		}
	}
	for i := range r.builtins {
		if r.builtins[i].Name == name {
			return core.Opcode(i)
		}
	}
	r.onWarn("vm: unknown instruction %q, substituting print_own_id", name)
	return r.Find("print_own_id")
}

// CountInputs returns the number of real input slots an opcode declares
// (spec.md §4.2).
func (r *Registry) CountInputs(op core.Opcode) int {
	return countSlots(r.Get(op).Inputs)
}

// CountOutputs returns the number of real output slots an opcode declares.
func (r *Registry) CountOutputs(op core.Opcode) int {
	return countSlots(r.Get(op).Outputs)
}

func countSlots(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Real() {
			n++
		}
	}
	return n
}
