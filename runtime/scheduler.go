// Package runtime implements lfr's stepper (spec.md §4.5): the
// scheduled/deferred queue pair, per-node execution state, and the Step
// function that executes at most one instruction invocation per call.
package runtime

import (
	"errors"

	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/vm"
)

// ErrQueueFull is returned when a queue has reached its bounded capacity —
// the host is scheduling faster than it steps (spec.md §5's backpressure
// note).
var ErrQueueFull = errors.New("runtime: scheduling queue is full")

// GraphView is the graph surface Step needs: liveness, per-node signature
// lookup, and flow targets. model.Graph satisfies it structurally.
type GraphView interface {
	vm.GraphView
	Opcode(id uint32) core.Opcode
	Input(id uint32, slot int) (sourceNode uint32, sourceSlot int, fixed core.Variant, linked bool)
	DefaultOutput(id uint32, slot int) core.Variant
	FlowTargets(id uint32) []uint32
}

// boundedQueue is a FIFO ring buffer bounded by a fixed capacity, adapted
// from the bounded fixed-capacity bookkeeping idea behind lfr's sparse
// tables: indices wrap modulo capacity rather than growing unboundedly.
type boundedQueue struct {
	buf  []uint32
	head int
	n    int
}

func newBoundedQueue(capacity int) *boundedQueue {
	return &boundedQueue{buf: make([]uint32, capacity)}
}

func (q *boundedQueue) push(id uint32) error {
	if q.n >= len(q.buf) {
		return ErrQueueFull
	}
	q.buf[(q.head+q.n)%len(q.buf)] = id
	q.n++
	return nil
}

// pop removes and returns the queue's head, reporting false on an empty
// queue.
func (q *boundedQueue) pop() (uint32, bool) {
	if q.n == 0 {
		return 0, false
	}
	id := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return id, true
}

func (q *boundedQueue) len() int { return q.n }

// GraphState is the per-graph scheduling state: the scheduled queue (newly
// triggered nodes), the deferred queue (Wait'd nodes resuming on a later
// Step call), pending ephemeral (node-less) instruction calls, and
// simulation time (spec.md §4.5).
type GraphState struct {
	scheduled *boundedQueue
	deferred  *boundedQueue
	ephemeral []ephemeralCall
	Time      float32
	step      int64
}

// NewGraphState allocates scheduling queues bounded by capacity entries
// each.
func NewGraphState(capacity int) *GraphState {
	return &GraphState{
		scheduled: newBoundedQueue(capacity),
		deferred:  newBoundedQueue(capacity),
	}
}

// StepIndex returns the index of the step currently running (or, between
// calls to Step, the index of the step that ran last; 0 before the first
// call).
func (s *GraphState) StepIndex() int64 { return s.step }

// Pending reports the combined length of the scheduled and deferred
// queues, useful for hosts deciding whether the graph has quiesced.
func (s *GraphState) Pending() int { return s.scheduled.len() + s.deferred.len() }

// ScheduleNode enqueues id to run on a future Step call. Safe to call for a
// node currently executing — tick's self-reschedule relies on this not
// causing infinite recursion within a single Step call, since the id just
// lands at the back of the scheduled queue for a later call to dequeue.
func (s *GraphState) ScheduleNode(id uint32) error {
	return s.scheduled.push(id)
}

// DeferNode enqueues id onto the deferred queue so it resumes on a later
// Step call; the work token itself lives in NodeStateTable, not here.
func (s *GraphState) DeferNode(id uint32) error {
	return s.deferred.push(id)
}

type ephemeralCall struct {
	op   core.Opcode
	work *uint32
}

// schedulerView adapts a GraphState + GraphView pair to vm.SchedulerView so
// instruction procedures can schedule through env.Sched without depending
// on runtime's concrete types.
type schedulerView struct {
	state *GraphState
	graph GraphView
	warn  func(string, ...any)
}

func (v *schedulerView) ScheduleNode(id uint32) {
	if err := v.state.ScheduleNode(id); err != nil {
		v.warn("runtime: %v scheduling node %d", err, id)
	}
}

func (v *schedulerView) DeferNode(id uint32, work uint32) {
	_ = work // the work token lives in NodeStateTable, addressed via env.Work
	if err := v.state.DeferNode(id); err != nil {
		v.warn("runtime: %v deferring node %d", err, id)
	}
}

// ScheduleInstruction and DeferInstruction let host code or instruction
// procedures trigger an opcode invocation that is not bound to any graph
// node — an ephemeral call whose inputs are entirely instruction defaults
// and whose outputs are discarded after running, used for host-driven
// one-off effects (e.g. firing print_string from outside the graph).
func (v *schedulerView) ScheduleInstruction(op core.Opcode) {
	v.state.ephemeral = append(v.state.ephemeral, ephemeralCall{op: op, work: new(uint32)})
}

func (v *schedulerView) DeferInstruction(op core.Opcode, work uint32) {
	w := work
	v.state.ephemeral = append(v.state.ephemeral, ephemeralCall{op: op, work: &w})
}

func (v *schedulerView) ScheduleFlowTargets(id uint32) {
	for _, t := range v.graph.FlowTargets(id) {
		v.ScheduleNode(t)
	}
}

// Step executes at most one instruction invocation (spec.md §5): the head
// of the scheduled queue if non-empty, else the head of the deferred queue,
// else — lowest priority, since ephemeral calls have no graph presence — one
// pending ephemeral instruction call. A node popped off either queue that
// has since been removed from the graph is silently skipped (spec.md §4.5's
// liveness check); this still consumes the call, since the spec bounds Step
// to at most one dequeue attempt, not one successful execution.
func Step(reg *vm.Registry, g GraphView, st *GraphState, states *NodeStateTable, dt float32, onWarn func(string, ...any)) {
	if onWarn == nil {
		onWarn = func(string, ...any) {}
	}
	st.Time += dt
	st.step++

	sched := &schedulerView{state: st, graph: g, warn: onWarn}

	if id, ok := st.scheduled.pop(); ok {
		if g.HasNode(id) {
			runNode(reg, g, states, sched, id, st.Time, st.step, onWarn)
		}
		return
	}
	if id, ok := st.deferred.pop(); ok {
		if g.HasNode(id) {
			runNode(reg, g, states, sched, id, st.Time, st.step, onWarn)
		}
		return
	}
	if len(st.ephemeral) > 0 {
		call := st.ephemeral[0]
		st.ephemeral = st.ephemeral[1:]
		runEphemeral(reg, sched, call, st.Time)
	}
}

func runNode(reg *vm.Registry, g GraphView, states *NodeStateTable, sched *schedulerView, id uint32, simTime float32, step int64, onWarn func(string, ...any)) {
	op := g.Opcode(id)
	def := reg.Get(op)

	inputs := make([]core.Variant, len(def.Inputs))
	for i := range def.Inputs {
		if def.Inputs[i].Real() {
			inputs[i] = resolveInput(g, states, id, i, def)
		}
	}

	outputs := make([]core.Variant, len(def.Outputs))

	state := states.Get(id)
	env := &vm.Env{
		NodeID:     id,
		Graph:      g,
		Sched:      sched,
		Work:       &state.Work,
		Time:       simTime,
		CustomData: reg.CustomData,
	}

	result := def.Proc(inputs, outputs, env)

	copy(state.Outputs[:], outputs)
	state.LastRanAtStep = step

	switch result {
	case vm.Continue:
		sched.ScheduleFlowTargets(id)
	case vm.Wait:
		sched.DeferNode(id, state.Work)
	case vm.Halt:
	default:
		onWarn("runtime: node %d returned unknown result %v", id, result)
	}
}

func runEphemeral(reg *vm.Registry, sched *schedulerView, call ephemeralCall, simTime float32) {
	def := reg.Get(call.op)
	inputs := make([]core.Variant, len(def.Inputs))
	for i, slot := range def.Inputs {
		if slot.Real() {
			inputs[i] = slot.Default
		}
	}
	outputs := make([]core.Variant, len(def.Outputs))
	env := &vm.Env{Sched: sched, Work: call.work, Time: simTime, CustomData: reg.CustomData}
	def.Proc(inputs, outputs, env)
}

// resolveInput implements the lazy single-hop fallback chain of spec.md
// §4.6: a linked input reads its source node's last-produced output —
// however many steps ago that was — else the source's configured default
// output, else the instruction's own default for that slot; an unlinked
// input uses its fixed value.
func resolveInput(g GraphView, states *NodeStateTable, id uint32, slot int, def *vm.InstructionDef) core.Variant {
	sourceNode, sourceSlot, fixed, linked := g.Input(id, slot)
	if !linked {
		if fixed.IsNil() {
			return def.Inputs[slot].Default
		}
		return fixed
	}
	if !g.HasNode(sourceNode) {
		return def.Inputs[slot].Default
	}
	srcState := states.Get(sourceNode)
	if srcState.LastRanAtStep >= 0 {
		return srcState.Outputs[sourceSlot]
	}
	if dv := g.DefaultOutput(sourceNode, sourceSlot); !dv.IsNil() {
		return dv
	}
	return def.Inputs[slot].Default
}
