package runtime

import (
	"testing"

	"github.com/jakobeklund/lfr/builtin"
	"github.com/jakobeklund/lfr/core"
	"github.com/jakobeklund/lfr/model"
	"github.com/jakobeklund/lfr/vm"
)

func newTestRegistry() *vm.Registry {
	return vm.New(builtin.Table(), nil, nil, nil)
}

func TestStepRunsMinimalChain(t *testing.T) {
	t.Parallel()
	g := model.New(8, 32)
	a, _ := g.AddNode(builtin.OpPrintOwnID)
	b, _ := g.AddNode(builtin.OpPrintOwnID)
	if err := g.Link(a, b); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	reg := newTestRegistry()
	st := NewGraphState(16)
	states := NewNodeStateTable()

	if err := st.ScheduleNode(a); err != nil {
		t.Fatalf("ScheduleNode() error = %v", err)
	}
	Step(reg, g, st, states, 0.016, nil)

	if states.Get(a).LastRanAtStep != 1 {
		t.Errorf("a should have run at step 1, got %d", states.Get(a).LastRanAtStep)
	}
	if states.Get(b).LastRanAtStep == 1 {
		t.Error("b should not run in the same Step call that scheduled it")
	}

	Step(reg, g, st, states, 0.016, nil)
	if states.Get(b).LastRanAtStep != 2 {
		t.Errorf("b should run on the Step call after a schedules it, got %d", states.Get(b).LastRanAtStep)
	}
}

func TestStepPullsDataAcrossLink(t *testing.T) {
	t.Parallel()
	g := model.New(8, 32)
	src, _ := g.AddNode(builtin.OpAdd)
	if err := g.SetFixedInput(src, 0, core.Int(2)); err != nil {
		t.Fatalf("SetFixedInput() error = %v", err)
	}
	if err := g.SetFixedInput(src, 1, core.Int(3)); err != nil {
		t.Fatalf("SetFixedInput() error = %v", err)
	}

	dst, _ := g.AddNode(builtin.OpPrintValue)
	if err := g.LinkData(dst, 0, src, 0); err != nil {
		t.Fatalf("LinkData() error = %v", err)
	}
	if err := g.Link(src, dst); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	reg := newTestRegistry()
	st := NewGraphState(16)
	states := NewNodeStateTable()

	if err := st.ScheduleNode(src); err != nil {
		t.Fatalf("ScheduleNode() error = %v", err)
	}
	Step(reg, g, st, states, 0.016, nil)
	if got := states.Get(src).Outputs[0]; got.ToInt() != 5 {
		t.Fatalf("src output = %v, want 5", got)
	}

	Step(reg, g, st, states, 0.016, nil)
	if states.Get(dst).LastRanAtStep != 2 {
		t.Fatalf("dst should run on step 2, got %d", states.Get(dst).LastRanAtStep)
	}
}

func TestStepDequeuesOneFanOutTargetPerCall(t *testing.T) {
	t.Parallel()
	g := model.New(8, 32)
	a, _ := g.AddNode(builtin.OpPrintOwnID)
	b, _ := g.AddNode(builtin.OpPrintOwnID)
	c, _ := g.AddNode(builtin.OpPrintOwnID)
	if err := g.Link(a, b); err != nil {
		t.Fatalf("Link(a,b) error = %v", err)
	}
	if err := g.Link(a, c); err != nil {
		t.Fatalf("Link(a,c) error = %v", err)
	}

	reg := newTestRegistry()
	st := NewGraphState(16)
	states := NewNodeStateTable()

	if err := st.ScheduleNode(a); err != nil {
		t.Fatalf("ScheduleNode() error = %v", err)
	}

	Step(reg, g, st, states, 0.016, nil)
	if states.Get(a).LastRanAtStep != 1 {
		t.Fatalf("a should have run at step 1, got %d", states.Get(a).LastRanAtStep)
	}
	if states.Get(b).LastRanAtStep == 1 || states.Get(c).LastRanAtStep == 1 {
		t.Fatal("neither flow target should run in the same Step call that scheduled them")
	}
	if st.Pending() != 2 {
		t.Fatalf("both b and c should still be queued after one Step call, Pending() = %d", st.Pending())
	}

	Step(reg, g, st, states, 0.016, nil)
	if states.Get(b).LastRanAtStep != 2 {
		t.Fatalf("b should run on the second Step call, got %d", states.Get(b).LastRanAtStep)
	}
	if states.Get(c).LastRanAtStep == 2 {
		t.Fatal("c should not run in the same Step call as b — Step executes at most one instruction")
	}
	if st.Pending() != 1 {
		t.Fatalf("c should still be queued after the second Step call, Pending() = %d", st.Pending())
	}

	Step(reg, g, st, states, 0.016, nil)
	if states.Get(c).LastRanAtStep != 3 {
		t.Fatalf("c should run on the third Step call, got %d", states.Get(c).LastRanAtStep)
	}
	if st.Pending() != 0 {
		t.Fatalf("queue should be empty after all three nodes ran, Pending() = %d", st.Pending())
	}
}

func TestRepeatFiresDownstreamThreeTimesAcrossFourInvocations(t *testing.T) {
	t.Parallel()
	g := model.New(8, 32)
	r, _ := g.AddNode(builtin.OpRepeat)
	if err := g.SetFixedInput(r, 0, core.Int(3)); err != nil {
		t.Fatalf("SetFixedInput() error = %v", err)
	}
	downstream, _ := g.AddNode(builtin.OpPrintOwnID)
	if err := g.Link(r, downstream); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	reg := newTestRegistry()
	st := NewGraphState(16)
	states := NewNodeStateTable()

	if err := st.ScheduleNode(r); err != nil {
		t.Fatalf("ScheduleNode() error = %v", err)
	}

	runCount := 0
	for st.Pending() > 0 {
		before := states.Get(downstream).LastRanAtStep
		Step(reg, g, st, states, 0.016, nil)
		if states.Get(downstream).LastRanAtStep != before {
			runCount++
		}
	}

	if states.Get(r).Work != 3 {
		t.Errorf("repeat's work counter should settle at 3, got %d", states.Get(r).Work)
	}
	if runCount != 3 {
		t.Errorf("downstream should run 3 times across repeat's invocations, ran %d times", runCount)
	}
}

func TestRemoveNodeDuringWaitStopsExecution(t *testing.T) {
	t.Parallel()
	g := model.New(8, 32)
	n, _ := g.AddNode(builtin.OpDelay)
	if err := g.SetFixedInput(n, 0, core.Float(10)); err != nil {
		t.Fatalf("SetFixedInput() error = %v", err)
	}

	reg := newTestRegistry()
	st := NewGraphState(16)
	states := NewNodeStateTable()
	if err := st.ScheduleNode(n); err != nil {
		t.Fatalf("ScheduleNode() error = %v", err)
	}
	Step(reg, g, st, states, 0.1, nil)

	RemoveNode(g, states, n)
	Step(reg, g, st, states, 10, nil)

	if g.HasNode(n) {
		t.Fatal("node should remain removed")
	}
	if got := states.Get(n).LastRanAtStep; got != -1 {
		t.Errorf("removed node should not run again, last ran at step %d", got)
	}
}
