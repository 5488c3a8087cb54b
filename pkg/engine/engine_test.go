package engine

import (
	"strings"
	"sync"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if d == nil {
		t.Fatal("expected non-nil diagram")
	}
	if d.NodeCount() != 0 {
		t.Errorf("expected empty diagram, got %d nodes", d.NodeCount())
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if d == nil || d.NodeCount() != 0 {
		t.Error("expected empty diagram")
	}
}

func TestEvaluatePlainLisp(t *testing.T) {
	eng := NewEngine()

	// Ordinary Lisp that never touches the diagram builtins.
	d, evalErrs, err := eng.Evaluate("(def x 10)\n(+ x 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if d.NodeCount() != 0 {
		t.Errorf("expected empty diagram, got %d nodes", d.NodeCount())
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate(`(counter "c1"`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Fatal("expected nil diagram on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
}

func TestEvaluateRuntimeErrorHasMessage(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate(`(node "missing")`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Fatal("expected nil diagram on runtime error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, "missing") {
		t.Errorf("error message = %q, want node name in it", evalErrs[0].Message)
	}
}

func TestEvaluateBuildsDiagram(t *testing.T) {
	eng := NewEngine()

	source := `
; a counter fed by one increment node
(def c (counter "total" :at (vec2 120 80)))
(def i (increment :at (vec2 240 80)))
(connect i c)
`
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if d.NodeCount() != 2 {
		t.Fatalf("node count = %d, want 2", d.NodeCount())
	}
	if d.EdgeCount() != 1 {
		t.Fatalf("edge count = %d, want 1", d.EdgeCount())
	}

	c := d.Lookup("total")
	if c == nil {
		t.Fatal("counter 'total' not found")
	}
	if c.Pos.X != 120 || c.Pos.Y != 80 {
		t.Errorf("counter pos = %v, want (120, 80)", c.Pos)
	}
	if c.Count() != 0 {
		t.Errorf("counter = %d, want 0 before any click", c.Count())
	}
}

func TestEvaluateClickSemantics(t *testing.T) {
	eng := NewEngine()

	source := `
(def c (counter "total"))
(def i (increment))
(def dn (decrement))
(connect i c)
(connect dn c)
(click i 3)
(click dn)
`
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if got := d.Lookup("total").Count(); got != 2 {
		t.Errorf("count = %d, want 2 (three increments, one decrement)", got)
	}
}

func TestEvaluateFanOut(t *testing.T) {
	eng := NewEngine()

	source := `
(def a (counter "a"))
(def b (counter "b"))
(def i (increment))
(connect i a)
(connect i b)
(click i)
`
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if d.Lookup("a").Count() != 1 || d.Lookup("b").Count() != 1 {
		t.Errorf("fan-out counts = %d/%d, want 1/1",
			d.Lookup("a").Count(), d.Lookup("b").Count())
	}
}

func TestEvaluateNodeLookup(t *testing.T) {
	eng := NewEngine()

	source := `
(counter "total")
(def i (increment))
(connect i (node "total"))
(click i)
`
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if got := d.Lookup("total").Count(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestEvaluateDuplicateName(t *testing.T) {
	eng := NewEngine()

	d, evalErrs, err := eng.Evaluate(`(counter "x") (counter "x")`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if d != nil {
		t.Fatal("expected nil diagram on duplicate name")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for duplicate counter name")
	}
}

func TestEvaluateClickOnNonOperator(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(click (counter "c"))`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for clicking a counter")
	}
	if !strings.Contains(evalErrs[0].Message, "not an operator") {
		t.Errorf("error = %q, want not-an-operator message", evalErrs[0].Message)
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	eng := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Concurrent evaluations may be superseded by each other's
			// generation bump; anything but a crash is acceptable here.
			eng.Evaluate(`(counter "c")`)
		}()
	}
	wg.Wait()
}

func TestEvalErrorString(t *testing.T) {
	e := EvalError{Line: 3, Message: "boom"}
	if e.Error() != "line 3: boom" {
		t.Errorf("Error() = %q", e.Error())
	}
	e = EvalError{Message: "boom"}
	if e.Error() != "boom" {
		t.Errorf("Error() = %q", e.Error())
	}
}
