package runtime

// Remover is the subset of model.Graph's removal API the stepper needs to
// keep NodeStateTable in sync with node deletions.
type Remover interface {
	RemoveNode(id uint32)
}

// RemoveNode deletes id from g and discards its execution state, so a
// later id reuse (spec.md §4.1) never observes a stale work token or
// leftover output.
func RemoveNode(g Remover, states *NodeStateTable, id uint32) {
	g.RemoveNode(id)
	states.Remove(id)
}
