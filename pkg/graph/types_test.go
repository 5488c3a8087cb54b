package graph

import "testing"

func TestNodeIDUnique(t *testing.T) {
	a := NewNodeID()
	b := NewNodeID()
	if a == b {
		t.Error("two generated node ids should differ")
	}
	if a.IsZero() {
		t.Error("generated id should not be zero")
	}
	var zero NodeID
	if !zero.IsZero() {
		t.Error("zero-value NodeID should be zero")
	}
}

func TestNodeIDShort(t *testing.T) {
	id := NewNodeID()
	if len(id.Short()) != 8 {
		t.Errorf("Short() len = %d, want 8", len(id.Short()))
	}
	if NodeID("abc").Short() != "abc" {
		t.Error("Short() should return short ids unchanged")
	}
}

func TestKindFromTag(t *testing.T) {
	cases := []struct {
		tag  string
		kind NodeKind
	}{
		{TagDisplay, NodeCounter},
		{TagIncrement, NodeIncrement},
		{TagDecrement, NodeDecrement},
	}
	for _, c := range cases {
		got, err := KindFromTag(c.tag)
		if err != nil {
			t.Errorf("KindFromTag(%q) error: %v", c.tag, err)
			continue
		}
		if got != c.kind {
			t.Errorf("KindFromTag(%q) = %s, want %s", c.tag, got, c.kind)
		}
	}

	if _, err := KindFromTag("widget"); err == nil {
		t.Error("unknown tag should be rejected")
	}
}

func TestKindDelta(t *testing.T) {
	if NodeIncrement.Delta() != 1 {
		t.Errorf("increment delta = %d, want 1", NodeIncrement.Delta())
	}
	if NodeDecrement.Delta() != -1 {
		t.Errorf("decrement delta = %d, want -1", NodeDecrement.Delta())
	}
	if NodeCounter.Delta() != 0 {
		t.Errorf("counter delta = %d, want 0", NodeCounter.Delta())
	}
}

func TestStringers(t *testing.T) {
	if NodeCounter.String() != "counter" {
		t.Errorf("NodeCounter.String() = %q", NodeCounter.String())
	}
	if NodeIncrement.String() != "increment" {
		t.Errorf("NodeIncrement.String() = %q", NodeIncrement.String())
	}
	if NodeDecrement.String() != "decrement" {
		t.Errorf("NodeDecrement.String() = %q", NodeDecrement.String())
	}
	if NodeKind(99).String() != "unknown" {
		t.Errorf("unknown kind String() = %q", NodeKind(99).String())
	}

	v := Vec2{1.5, 2.5}
	if v.String() != "(1.5, 2.5)" {
		t.Errorf("Vec2.String() = %q", v.String())
	}
}

func TestIsOperator(t *testing.T) {
	if NodeCounter.IsOperator() {
		t.Error("counter should not be an operator")
	}
	if !NodeIncrement.IsOperator() || !NodeDecrement.IsOperator() {
		t.Error("increment and decrement should be operators")
	}
}

func TestNodeDataInterface(t *testing.T) {
	// Verify all concrete types implement NodeData at compile time.
	var _ NodeData = &CounterData{}
	var _ NodeData = &OperatorData{}
}

func TestEdgeOther(t *testing.T) {
	e := &Edge{ID: NewEdgeID(), Source: "a", Target: "b"}
	if e.Other("a") != "b" || e.Other("b") != "a" {
		t.Error("Other should return the opposite endpoint")
	}
	if e.Other("c") != ZeroID {
		t.Error("Other should return ZeroID for non-endpoints")
	}
	if !e.Touches("a") || !e.Touches("b") || e.Touches("c") {
		t.Error("Touches endpoint check failed")
	}
}
