package runtime

import "github.com/jakobeklund/lfr/core"

// MaxSlots mirrors model.MaxSlots; kept independent to avoid a cosmetic
// import solely for a constant.
const MaxSlots = 8

// NodeState is a node's execution-only state: the persistent work token
// Wait-based instructions use across steps, the outputs it produced the
// last step it ran, and the step index that output was produced at
// (spec.md §4.5, §4.6).
type NodeState struct {
	Work          uint32
	Outputs       [MaxSlots]core.Variant
	LastRanAtStep int64
}

func newNodeState() *NodeState {
	return &NodeState{LastRanAtStep: -1}
}

// NodeStateTable holds one NodeState per live node id, created lazily so
// that hosts need not pre-size it to match the graph's node table.
type NodeStateTable struct {
	states map[uint32]*NodeState
}

// NewNodeStateTable constructs an empty table.
func NewNodeStateTable() *NodeStateTable {
	return &NodeStateTable{states: make(map[uint32]*NodeState)}
}

// Get returns id's state, creating a fresh zero-work entry if none exists
// yet.
func (t *NodeStateTable) Get(id uint32) *NodeState {
	s, ok := t.states[id]
	if !ok {
		s = newNodeState()
		t.states[id] = s
	}
	return s
}

// Remove discards id's state. Called when a node is deleted from the graph
// so a later id reuse (spec.md §4.1) starts from a clean slate.
func (t *NodeStateTable) Remove(id uint32) {
	delete(t.states, id)
}
