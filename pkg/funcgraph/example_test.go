package funcgraph_test

import (
	"fmt"

	"github.com/wikiflowhq/wikiflow/pkg/funcgraph"
)

func Example() {
	g := funcgraph.New(map[string]string{
		"Cat":        "Mammal",
		"Mammal":     "Biology",
		"Dog":        "Mammal",
		"Biology":    "Philosophy",
		"Philosophy": "Reality",
		"Reality":    "Philosophy",
	})

	cls := funcgraph.Classify(g)
	heat := funcgraph.Heat(g, cls)
	dist := funcgraph.Distances(g, "Philosophy")

	fmt.Println("terminals:", cls.TerminalCount())
	fmt.Println("heat(Mammal):", heat["Mammal"])
	fmt.Println("dist(Cat):", dist["Cat"])
	// Output:
	// terminals: 2
	// heat(Mammal): 2
	// dist(Cat): 3
}

func ExampleDistances_unreachable() {
	g := funcgraph.New(map[string]string{
		"Island": "Atoll",
		"Atoll":  "Island",
		"Cat":    "Philosophy",
	})

	dist := funcgraph.Distances(g, "Philosophy")

	_, ok := dist["Island"]
	fmt.Println("Island reachable:", ok)
	// Output:
	// Island reachable: false
}
