package render

import (
	"strings"
	"testing"

	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
)

// chainGraph builds Cat -> Animal -> Life -> Philosophy -> Reality -> Philosophy.
func chainGraph() (*funcgraph.Graph, *funcgraph.Classification) {
	g := funcgraph.New(map[string]string{
		"Cat":        "Animal",
		"Animal":     "Life",
		"Life":       "Philosophy",
		"Philosophy": "Reality",
		"Reality":    "Philosophy",
	})
	return g, funcgraph.Classify(g)
}

func TestNeighborhoodUnknownCenter(t *testing.T) {
	g, _ := chainGraph()
	if nodes := Neighborhood(g, "Missing", Options{}); nodes != nil {
		t.Errorf("Neighborhood(unknown) = %v, want nil", nodes)
	}
}

func TestNeighborhoodExpandsBothSides(t *testing.T) {
	g, _ := chainGraph()

	nodes := Neighborhood(g, "Life", Options{Depth: 2})
	want := []string{"Animal", "Cat", "Life", "Philosophy", "Reality"}
	if len(nodes) != len(want) {
		t.Fatalf("Neighborhood() = %v, want %v", nodes, want)
	}
	for i, id := range want {
		if nodes[i] != id {
			t.Errorf("Neighborhood()[%d] = %q, want %q", i, nodes[i], id)
		}
	}
}

func TestNeighborhoodDepthLimit(t *testing.T) {
	g, _ := chainGraph()

	nodes := Neighborhood(g, "Life", Options{Depth: 1})
	for _, id := range nodes {
		if id == "Cat" {
			t.Error("Neighborhood(depth=1) includes Cat, two levels up")
		}
	}
}

func TestNeighborhoodMaxNodes(t *testing.T) {
	g, _ := chainGraph()

	nodes := Neighborhood(g, "Life", Options{Depth: 5, MaxNodes: 2})
	if len(nodes) > 2 {
		t.Errorf("Neighborhood(max=2) returned %d nodes", len(nodes))
	}
}

func TestToDOT(t *testing.T) {
	g, cls := chainGraph()

	dot := ToDOT(g, cls, "Life", Options{Depth: 2})

	if !strings.HasPrefix(dot, "digraph wikiflow {") {
		t.Error("ToDOT() missing digraph header")
	}
	if !strings.Contains(dot, `"Cat" -> "Animal";`) {
		t.Error("ToDOT() missing Cat -> Animal edge")
	}
	if !strings.Contains(dot, `"Reality" -> "Philosophy";`) {
		t.Error("ToDOT() missing cycle-closing edge")
	}
	// Center is highlighted, terminals are dashed grey.
	if !strings.Contains(dot, "fillcolor=gold") {
		t.Error("ToDOT() center node not highlighted")
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Error("ToDOT() terminal nodes not marked")
	}
}

func TestToDOTHeatLabels(t *testing.T) {
	g, cls := chainGraph()
	heat := funcgraph.Heat(g, cls)

	dot := ToDOT(g, cls, "Philosophy", Options{Heat: heat})
	if !strings.Contains(dot, "heat: 4") {
		t.Error("ToDOT() missing heat annotation on cycle member")
	}
}

func TestToDOTOmitsEdgesLeavingNeighborhood(t *testing.T) {
	g, cls := chainGraph()

	// Depth 1 around Cat: no predecessors, forward chain pulls in the rest
	// until the budget stops it.
	dot := ToDOT(g, cls, "Cat", Options{Depth: 1, MaxNodes: 2})
	if strings.Contains(dot, `"Animal" -> "Life";`) {
		t.Error("ToDOT() includes edge to node outside the neighborhood")
	}
}
