// Package graphio reads and writes the plain data structures at the engine
// boundary: the forward edge map consumed by funcgraph, and the heat and
// distance maps it produces.
//
// # Edge files
//
// An edge file is a single JSON object mapping article titles to the title
// of the first article they link to; an empty string marks an article with
// no links:
//
//	{
//	  "Cat": "Mammal",
//	  "Mammal": "Animal",
//	  "Orphan": ""
//	}
//
// The crawler that produces these files shards them alphabetically
// (edges_a.json ... edges_z.json, edges_num.json, edges_other.json).
// [LoadEdges] accepts either one file or a directory of shards and merges
// them, rejecting input where the same title maps to two different
// successors - the analysis depends on every node having at most one
// outgoing edge.
//
// # Result files
//
// Heat and distance maps are exported as flat JSON objects of title to
// integer. Key order is irrelevant; encoding/json emits map keys sorted, so
// output is deterministic and diffs cleanly.
package graphio
