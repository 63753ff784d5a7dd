package funcgraph

import "testing"

func TestNew_BuildsReverseIndex(t *testing.T) {
	g := New(map[string]string{
		"a": "b",
		"b": "c",
		"c": "b",
	})

	if got := g.NodeCount(); got != 3 {
		t.Errorf("NodeCount() = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}

	preds := g.Predecessors("b")
	if len(preds) != 2 {
		t.Fatalf("Predecessors(b) = %v, want 2 entries", preds)
	}
	seen := map[string]bool{}
	for _, p := range preds {
		seen[p] = true
	}
	if !seen["a"] || !seen["c"] {
		t.Errorf("Predecessors(b) = %v, want a and c", preds)
	}
}

func TestNew_EmptyInput(t *testing.T) {
	g := New(nil)

	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
	if g.Predecessors("x") != nil {
		t.Error("Predecessors on empty graph should be nil")
	}
}

func TestNew_NoSuccessorSentinel(t *testing.T) {
	g := New(map[string]string{
		"x": "y",
		"y": NoSuccessor,
	})

	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
	if _, ok := g.Next("y"); ok {
		t.Error("Next(y) should report no successor")
	}
	if next, ok := g.Next("x"); !ok || next != "y" {
		t.Errorf("Next(x) = %q, %v, want y, true", next, ok)
	}
}

func TestNew_DanglingSuccessor(t *testing.T) {
	// "ghost" never appears as a key; it is still a node.
	g := New(map[string]string{"x": "ghost"})

	if !g.Has("ghost") {
		t.Error("Has(ghost) = false, want true")
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if _, ok := g.Next("ghost"); ok {
		t.Error("Next(ghost) should report no successor (dangling = dead end)")
	}
}

func TestNew_CopiesInput(t *testing.T) {
	forward := map[string]string{"a": "b"}
	g := New(forward)
	forward["a"] = "c"

	if next, _ := g.Next("a"); next != "b" {
		t.Errorf("Next(a) = %q after caller mutation, want b", next)
	}
}

func TestGraph_InDegree(t *testing.T) {
	g := New(map[string]string{
		"a": "t",
		"b": "t",
		"c": "t",
	})

	if got := g.InDegree("t"); got != 3 {
		t.Errorf("InDegree(t) = %d, want 3", got)
	}
	if got := g.InDegree("a"); got != 0 {
		t.Errorf("InDegree(a) = %d, want 0", got)
	}
}
