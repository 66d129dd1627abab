// Package lfr implements an embeddable graph-based scripting runtime for
// games and interactive applications.
//
// Authors build a directed graph of nodes; each node invokes a named
// instruction (a built-in or host-registered procedure) and is wired to
// neighbors by two independent edge kinds: flow edges that sequence
// execution, and data edges that carry typed values between output and
// input slots. A host application drives the runtime forward in discrete
// steps, scheduling entry points and polling results.
//
// # Architecture Overview
//
// lfr is built from several independent layers:
//
//   - core: the Variant tagged value and the SparseTable id/index scheme
//   - model: Node, Graph and FlowLink — the graph's data model
//   - vm: the InstructionRegistry (built-in and host-registered instructions)
//   - builtin: the standard instruction library (tick, add, sub, delay, ...)
//   - runtime: NodeStateTable, GraphState and the step scheduler
//   - serialize: the tab-separated textual save/load format
//
// # Basic Usage
//
//	limits := lfrconfig.Default()
//	g := model.New(limits.MaxNodes, limits.MaxIDRange)
//	a, _ := g.AddNode(builtin.OpPrintOwnID)
//	b, _ := g.AddNode(builtin.OpPrintOwnID)
//	g.Link(a, b)
//
//	reg := vm.New(builtin.Table(), nil, nil, nil)
//	state := runtime.NewGraphState(limits.QueueCapacity)
//	states := runtime.NewNodeStateTable()
//	state.ScheduleNode(a)
//	runtime.Step(reg, g, state, states, 1.0/60.0, nil)
//
// # Package Structure
//
//   - core: Variant value type and SparseTable identity scheme
//   - model: graph/node/flow-link data model
//   - vm: instruction registry, signatures and opcode partitioning
//   - builtin: the standard instruction set
//   - runtime: node state, scheduled/deferred queues, the step function
//   - serialize: textual save/load format
//   - lfrconfig: bounded-capacity tuning
//   - internal/lfrlog: per-subsystem diagnostic logging
//   - cmd: demo hosts (lfrhost, lfrfmt)
//
// The immediate-mode GUI editor, its rendering, and window bootstrap are
// deliberately out of scope — lfr covers the editor only at its interaction
// contract with this core.
package lfr
