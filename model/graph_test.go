package model

import (
	"testing"

	"github.com/jakobeklund/lfr/core"
)

func TestAddNodeAndLinkFlow(t *testing.T) {
	t.Parallel()
	g := New(8, 32)

	a, err := g.AddNode(0)
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}
	b, err := g.AddNode(1)
	if err != nil {
		t.Fatalf("AddNode() error = %v", err)
	}

	if err := g.Link(a, b); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if !g.HasLink(a, b) {
		t.Error("expected link a->b")
	}
	if err := g.Link(a, b); err == nil {
		t.Error("duplicate Link() should error")
	}

	targets := g.FlowTargets(a)
	if len(targets) != 1 || targets[0] != b {
		t.Errorf("FlowTargets(a) = %v, want [%d]", targets, b)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	t.Parallel()
	g := New(8, 32)
	a, _ := g.AddNode(0)
	b, _ := g.AddNode(0)
	c, _ := g.AddNode(0)

	if err := g.Link(a, b); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if err := g.Link(b, c); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if err := g.LinkData(c, 0, b, 0); err != nil {
		t.Fatalf("LinkData() error = %v", err)
	}

	g.RemoveNode(b)

	if g.HasNode(b) {
		t.Error("b should be gone")
	}
	if g.HasLink(a, b) || g.HasLink(b, c) {
		t.Error("flow links touching b should be removed")
	}
	cRow := g.Nodes.Row(c)
	if cRow.Inputs[0].Linked() {
		t.Error("c's input linked to b should be cleared")
	}
}

func TestSetFixedInputReplacesLink(t *testing.T) {
	t.Parallel()
	g := New(8, 32)
	a, _ := g.AddNode(0)
	b, _ := g.AddNode(0)

	if err := g.LinkData(b, 0, a, 0); err != nil {
		t.Fatalf("LinkData() error = %v", err)
	}
	if !g.Nodes.Row(b).Inputs[0].Linked() {
		t.Fatal("expected linked input")
	}

	if err := g.SetFixedInput(b, 0, core.Int(7)); err != nil {
		t.Fatalf("SetFixedInput() error = %v", err)
	}
	slot := g.Nodes.Row(b).Inputs[0]
	if slot.Linked() {
		t.Error("fixed input should no longer be linked")
	}
	if slot.Fixed.ToInt() != 7 {
		t.Errorf("fixed value = %v, want 7", slot.Fixed)
	}
}

func TestCountLinks(t *testing.T) {
	t.Parallel()
	g := New(8, 32)
	a, _ := g.AddNode(0)
	b, _ := g.AddNode(0)
	c, _ := g.AddNode(0)
	_ = g.Link(a, b)
	_ = g.Link(a, c)

	if got := g.CountSourceLinks(a); got != 2 {
		t.Errorf("CountSourceLinks(a) = %d, want 2", got)
	}
	if got := g.CountTargetLinks(b); got != 1 {
		t.Errorf("CountTargetLinks(b) = %d, want 1", got)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	t.Parallel()
	g := New(8, 32)
	a, _ := g.AddNode(0)
	g.SetPosition(a, 1.5, -2.5)
	x, y := g.Position(a)
	if x != 1.5 || y != -2.5 {
		t.Errorf("Position(a) = (%v, %v), want (1.5, -2.5)", x, y)
	}
}
