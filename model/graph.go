// Package model implements the node/graph data model of lfr (spec.md §4.3,
// §4.4): nodes identified by a SparseTable id, flow edges sequencing
// execution, and data edges (plus fixed values) feeding instruction inputs.
package model

import (
	"fmt"

	"github.com/jakobeklund/lfr/core"
)

// MaxSlots bounds the number of input or output slots tracked per node,
// mirroring vm.MaxSlots without importing vm (model and vm both depend only
// on core; Graph satisfies vm.GraphView structurally).
const MaxSlots = 8

// InputSlot is one input pin on a node: either linked to another node's
// output (SourceNode != core.NullID) or carrying a fixed value, never both
// (spec.md §4.3's input invariant).
type InputSlot struct {
	SourceNode uint32
	SourceSlot int
	Fixed      core.Variant
}

// Linked reports whether this slot is fed by a data edge rather than a
// fixed value.
func (s InputSlot) Linked() bool { return s.SourceNode != core.NullID }

// Node is one instruction invocation site in a graph.
type Node struct {
	Opcode         core.Opcode
	Inputs         [MaxSlots]InputSlot
	DefaultOutputs [MaxSlots]core.Variant
	X, Y           float32
}

// flowLink is an unlabeled flow edge: invoking From schedules To.
type flowLink struct {
	From, To uint32
}

// Graph is lfr's complete script: a node table plus the flow edges between
// them. Data edges live inside Node.Inputs rather than as a separate table,
// since each input slot has at most one source (spec.md §4.4).
type Graph struct {
	Nodes *core.SparseTable[Node]
	flows []flowLink
}

// New constructs an empty graph bounded by maxNodes live nodes with ids in
// [1, maxIDRange).
func New(maxNodes int, maxIDRange uint32) *Graph {
	return &Graph{Nodes: core.NewSparseTable[Node](maxNodes, maxIDRange)}
}

// HasNode satisfies vm.GraphView.
func (g *Graph) HasNode(id uint32) bool { return g.Nodes.Has(id) }

// AddNode inserts a node with the given opcode, all inputs unlinked and
// zero-valued, all outputs Nil. Returns the new node's id.
func (g *Graph) AddNode(op core.Opcode) (uint32, error) {
	id, err := g.Nodes.Insert()
	if err != nil {
		return core.NullID, fmt.Errorf("model: add node: %w", err)
	}
	row := g.Nodes.Row(id)
	row.Opcode = op
	return id, nil
}

// RemoveNode deletes a node and cascades: every flow edge touching it, and
// every input slot on any other node that was linked to one of its outputs,
// is cleared too (spec.md §4.4's removal-cascade invariant). Panics if id
// is unknown, matching SparseTable's precondition policy.
func (g *Graph) RemoveNode(id uint32) {
	g.Nodes.Row(id) // validates id is live; panics otherwise

	kept := g.flows[:0]
	for _, l := range g.flows {
		if l.From != id && l.To != id {
			kept = append(kept, l)
		}
	}
	g.flows = kept

	g.Nodes.ForEachRow(func(_ uint32, row *Node) bool {
		for i := range row.Inputs {
			if row.Inputs[i].SourceNode == id {
				row.Inputs[i] = InputSlot{}
			}
		}
		return true
	})

	g.Nodes.Remove(id)
}

// Link adds a flow edge from -> to. Duplicate (from, to) pairs are rejected
// (spec.md §4.4: "no duplicate FlowLinks"). Panics if either id is unknown.
func (g *Graph) Link(from, to uint32) error {
	g.Nodes.Row(from)
	g.Nodes.Row(to)
	if g.HasLink(from, to) {
		return fmt.Errorf("model: flow link %d->%d already exists", from, to)
	}
	g.flows = append(g.flows, flowLink{From: from, To: to})
	return nil
}

// Unlink removes a flow edge, if present. A no-op if the edge does not
// exist.
func (g *Graph) Unlink(from, to uint32) {
	for i, l := range g.flows {
		if l.From == from && l.To == to {
			g.flows = append(g.flows[:i], g.flows[i+1:]...)
			return
		}
	}
}

// HasLink reports whether a flow edge from -> to exists.
func (g *Graph) HasLink(from, to uint32) bool {
	for _, l := range g.flows {
		if l.From == from && l.To == to {
			return true
		}
	}
	return false
}

// ForEachNode visits every live node in dense order. fn returning false
// stops iteration early.
func (g *Graph) ForEachNode(fn func(id uint32, node *Node) bool) {
	g.Nodes.ForEachRow(fn)
}

// ForEachFlowLink visits every flow edge in insertion order. fn returning
// false stops iteration early.
func (g *Graph) ForEachFlowLink(fn func(from, to uint32) bool) {
	for _, l := range g.flows {
		if !fn(l.From, l.To) {
			return
		}
	}
}

// FlowTargets returns the ids scheduled when id finishes with Continue.
// Satisfies the FlowTargets half of runtime's GraphView usage.
func (g *Graph) FlowTargets(id uint32) []uint32 {
	var targets []uint32
	for _, l := range g.flows {
		if l.From == id {
			targets = append(targets, l.To)
		}
	}
	return targets
}

// CountSourceLinks counts outgoing flow edges from id.
func (g *Graph) CountSourceLinks(id uint32) int {
	n := 0
	for _, l := range g.flows {
		if l.From == id {
			n++
		}
	}
	return n
}

// CountTargetLinks counts incoming flow edges into id.
func (g *Graph) CountTargetLinks(id uint32) int {
	n := 0
	for _, l := range g.flows {
		if l.To == id {
			n++
		}
	}
	return n
}

// LinkData connects targetNode's input slot to sourceNode's output slot,
// replacing any fixed value or prior link on that input (spec.md §4.4:
// inputs are fixed-xor-linked). Panics if either node is unknown.
func (g *Graph) LinkData(targetNode uint32, targetSlot int, sourceNode uint32, sourceSlot int) error {
	g.Nodes.Row(sourceNode)
	target := g.Nodes.Row(targetNode)
	if targetSlot < 0 || targetSlot >= MaxSlots {
		return fmt.Errorf("model: input slot %d out of range", targetSlot)
	}
	target.Inputs[targetSlot] = InputSlot{SourceNode: sourceNode, SourceSlot: sourceSlot}
	return nil
}

// UnlinkInput clears a target node's input slot back to an unlinked,
// zero-valued state.
func (g *Graph) UnlinkInput(targetNode uint32, targetSlot int) {
	target := g.Nodes.Row(targetNode)
	target.Inputs[targetSlot] = InputSlot{}
}

// SetFixedInput sets a target node's input slot to a fixed value, replacing
// any existing link (spec.md §4.4).
func (g *Graph) SetFixedInput(targetNode uint32, targetSlot int, value core.Variant) error {
	target := g.Nodes.Row(targetNode)
	if targetSlot < 0 || targetSlot >= MaxSlots {
		return fmt.Errorf("model: input slot %d out of range", targetSlot)
	}
	target.Inputs[targetSlot] = InputSlot{Fixed: value}
	return nil
}

// SetDefaultOutput sets a node's fallback output value, used by
// resolve_output while the node has never run (spec.md §4.6).
func (g *Graph) SetDefaultOutput(id uint32, slot int, value core.Variant) error {
	row := g.Nodes.Row(id)
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("model: output slot %d out of range", slot)
	}
	row.DefaultOutputs[slot] = value
	return nil
}

// Opcode returns a node's instruction opcode, satisfying runtime.GraphView.
func (g *Graph) Opcode(id uint32) core.Opcode {
	return g.Nodes.Row(id).Opcode
}

// Input returns a node's input slot decomposed for the stepper's lazy
// resolution chain, satisfying runtime.GraphView.
func (g *Graph) Input(id uint32, slot int) (sourceNode uint32, sourceSlot int, fixed core.Variant, linked bool) {
	s := g.Nodes.Row(id).Inputs[slot]
	return s.SourceNode, s.SourceSlot, s.Fixed, s.Linked()
}

// DefaultOutput returns a node's configured fallback output value,
// satisfying runtime.GraphView.
func (g *Graph) DefaultOutput(id uint32, slot int) core.Variant {
	return g.Nodes.Row(id).DefaultOutputs[slot]
}

// Position returns a node's editor placement.
func (g *Graph) Position(id uint32) (x, y float32) {
	row := g.Nodes.Row(id)
	return row.X, row.Y
}

// SetPosition sets a node's editor placement. Purely cosmetic: it has no
// effect on execution.
func (g *Graph) SetPosition(id uint32, x, y float32) {
	row := g.Nodes.Row(id)
	row.X, row.Y = x, y
}
