package funcgraph

// NoSuccessor is the sentinel successor value for a node with no outgoing
// edge. It matches the representation used by the edge cache files, where a
// linkless article maps to the empty string.
const NoSuccessor = ""

// Graph is an immutable functional graph: a set of string-keyed nodes where
// every node has at most one successor. It owns both the forward edge map and
// the reverse (predecessor) index built from it.
//
// Construct a Graph with [New]. The zero value is not usable. A Graph is safe
// for concurrent reads; it is never mutated after New returns.
type Graph struct {
	forward map[string]string
	reverse map[string][]string
	nodes   map[string]struct{}
	edges   int
}

// New builds a Graph from a forward edge map. Each key maps to its single
// successor, or to [NoSuccessor] if it has none.
//
// The input is taken as-is: no validation of successor existence is performed.
// A successor that never appears as a key (a dangling reference) is legal and
// behaves as a dead end when traversal reaches it. The map is copied, so the
// caller may reuse or mutate its map afterwards.
//
// New runs in O(E) time and space, where E is the number of edges.
func New(forward map[string]string) *Graph {
	g := &Graph{
		forward: make(map[string]string, len(forward)),
		reverse: make(map[string][]string),
		nodes:   make(map[string]struct{}, len(forward)),
	}
	for k, v := range forward {
		g.forward[k] = v
		g.nodes[k] = struct{}{}
		if v != NoSuccessor {
			g.nodes[v] = struct{}{}
			g.reverse[v] = append(g.reverse[v], k)
			g.edges++
		}
	}
	return g
}

// Next returns the successor of id and true, or "" and false if id has no
// successor. A node has no successor when it maps to [NoSuccessor] or does
// not appear as a key at all (a dangling reference).
func (g *Graph) Next(id string) (string, bool) {
	v, ok := g.forward[id]
	if !ok || v == NoSuccessor {
		return "", false
	}
	return v, true
}

// Predecessors returns the IDs of nodes whose forward edge points to id.
// Returns nil if id has no predecessors or is unknown. The returned slice
// should not be modified - use it as a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.reverse[id] }

// InDegree returns the number of nodes pointing to id.
func (g *Graph) InDegree(id string) int { return len(g.reverse[id]) }

// Has reports whether id appears anywhere in the graph, as a key of the
// forward map or as some node's successor.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeCount returns the number of distinct nodes: forward-map keys plus
// successors that appear only as targets.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of real edges, excluding [NoSuccessor]
// entries.
func (g *Graph) EdgeCount() int { return g.edges }

// Nodes returns all node IDs in unspecified order.
func (g *Graph) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}
