// Package funcgraph analyzes functional graphs: directed graphs in which
// every node has at most one outgoing edge.
//
// The Wikipedia "first link" graph is the motivating instance - every article
// links to at most one successor article, so following links from any starting
// point either reaches an article with no links or enters a loop. The package
// computes two derived properties for every node in such a graph:
//
//   - Heat: the number of distinct nodes whose forward path eventually passes
//     through a node (see [Heat]).
//   - Distance: the number of hops from a node to a designated target,
//     following forward edges (see [Distances]).
//
// Both computations are built on the same two precomputed structures: a
// reverse (predecessor) index owned by [Graph], and the terminal-node
// classification produced by [Classify]. Heat and distance are independent of
// each other and may be computed concurrently once the graph and
// classification exist; nothing in this package mutates a Graph or
// Classification after construction.
//
// # Usage
//
//	g := funcgraph.New(map[string]string{
//	    "Cat":        "Mammal",
//	    "Mammal":     "Animal",
//	    "Animal":     "Biology",
//	    "Biology":    "Philosophy",
//	    "Philosophy": "Reality",
//	    "Reality":    "Philosophy",
//	})
//	cls := funcgraph.Classify(g)
//	heat := funcgraph.Heat(g, cls)
//	dist := funcgraph.Distances(g, "Philosophy")
//
// All traversal uses explicit path lists and work stacks rather than
// recursion; chains tens of thousands of nodes deep are common in real data
// and must not grow the call stack.
package funcgraph
