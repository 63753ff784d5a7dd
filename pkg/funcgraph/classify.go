package funcgraph

// Classification partitions a graph's nodes into terminal nodes - the
// stopping points of forward traversal - and the feeder nodes that flow into
// them. A terminal node is either a member of a cycle or a node with no
// successor (including dangling successors that never appear as forward-map
// keys).
//
// A Classification is immutable once returned by [Classify] and safe for
// concurrent reads.
type Classification struct {
	terminal map[string]struct{}
	cycle    map[string]struct{}
}

// Terminal reports whether id is a terminal node.
func (c *Classification) Terminal(id string) bool {
	_, ok := c.terminal[id]
	return ok
}

// InCycle reports whether id is a member of a cycle. Self-loops count as
// single-node cycles; dead-end terminals do not.
func (c *Classification) InCycle(id string) bool {
	_, ok := c.cycle[id]
	return ok
}

// Terminals returns all terminal node IDs in unspecified order.
func (c *Classification) Terminals() []string {
	ids := make([]string, 0, len(c.terminal))
	for id := range c.terminal {
		ids = append(ids, id)
	}
	return ids
}

// TerminalCount returns the number of terminal nodes.
func (c *Classification) TerminalCount() int { return len(c.terminal) }

// CycleCount returns the number of cycle-member nodes.
func (c *Classification) CycleCount() int { return len(c.cycle) }

// Classify finds every terminal node in g.
//
// It walks forward from each unresolved node, recording the path, until one
// of three things happens:
//
//  1. The current node has no successor. The node itself is a dead-end
//     terminal; the nodes leading up to it are plain feeders.
//  2. The successor already appears in this walk's path. The path suffix
//     from that earlier occurrence onward is exactly one cycle, and only
//     those nodes become terminals - never the lead-in from the walk's
//     starting point.
//  3. The successor was resolved by a previous walk. The path merges into
//     known territory and contributes no new terminals.
//
// Every node touched by a walk is marked resolved before the next walk
// starts, so each node is traversed by at most one walk and total work is
// O(N). The resolved set is local to the call: independent graphs can be
// classified concurrently.
//
// Every forward path in a finite functional graph must end in a cycle or a
// dead end, so the terminal set is empty only for an empty graph.
func Classify(g *Graph) *Classification {
	cls := &Classification{
		terminal: make(map[string]struct{}),
		cycle:    make(map[string]struct{}),
	}
	resolved := make(map[string]struct{}, len(g.nodes))

	// Both are reused across walks; pathIndex is wiped incrementally after
	// each walk so cycle closure stays an O(1) lookup.
	var path []string
	pathIndex := make(map[string]int)

	for start := range g.forward {
		if _, done := resolved[start]; done {
			continue
		}

		path = append(path[:0], start)
		pathIndex[start] = 0

		for {
			cur := path[len(path)-1]
			next, ok := g.Next(cur)
			if !ok {
				// Dead end: only the final node terminates traversal.
				cls.terminal[cur] = struct{}{}
				break
			}
			if i, seen := pathIndex[next]; seen {
				// Cycle closed: the minimal repeated suffix is the cycle.
				for _, id := range path[i:] {
					cls.terminal[id] = struct{}{}
					cls.cycle[id] = struct{}{}
				}
				break
			}
			if _, done := resolved[next]; done {
				// Merged into a previously classified path.
				break
			}
			path = append(path, next)
			pathIndex[next] = len(path) - 1
		}

		for _, id := range path {
			resolved[id] = struct{}{}
			delete(pathIndex, id)
		}
	}

	return cls
}
