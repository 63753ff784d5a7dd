package funcgraph

// Distances computes the hop count from every node to target, following
// forward edges. The result maps node ID to its shortest distance; nodes with
// no forward path to target are absent. distance(target) is 0 when target is
// known to the graph.
//
// An unknown target is not an error: the result is simply empty, meaning
// every node is unreachable.
//
// The search is a level-synchronous BFS over the reverse index: the frontier
// starts at target, and each round assigns the next distance to every not yet
// discovered predecessor of the current frontier. First discovery wins, which
// in a unit-weight graph is exactly the shortest path. Runs in O(N+E).
func Distances(g *Graph, target string) map[string]int {
	dist := make(map[string]int)
	if !g.Has(target) {
		return dist
	}

	dist[target] = 0
	frontier := []string{target}

	for level := 1; len(frontier) > 0; level++ {
		var next []string
		for _, id := range frontier {
			for _, p := range g.reverse[id] {
				if _, seen := dist[p]; seen {
					continue
				}
				dist[p] = level
				next = append(next, p)
			}
		}
		frontier = next
	}

	return dist
}

// Path returns the forward walk from id towards target, inclusive on both
// ends, using a precomputed distance map. Returns nil if id has no recorded
// distance. The walk always terminates: each step moves to a node one hop
// closer to target.
func Path(g *Graph, dist map[string]int, id, target string) []string {
	if _, ok := dist[id]; !ok {
		return nil
	}
	path := []string{id}
	for id != target {
		next, ok := g.Next(id)
		if !ok {
			return path
		}
		path = append(path, next)
		id = next
	}
	return path
}
