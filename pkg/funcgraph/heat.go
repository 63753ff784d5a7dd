package funcgraph

// Heat computes, for every node in g, the number of distinct nodes whose
// forward path eventually passes through it. The returned map has an entry
// for every node that appears as a forward-map key or as a successor; nodes
// nothing flows into have heat 0.
//
// Conceptually, ignoring the edges between terminal nodes turns the graph
// into a forest: each tree is rooted at a terminal node and its remaining
// nodes are feeders. Heat is computed in three passes:
//
//  1. Tree pass: every feeder's heat is the sum over its predecessors p of
//     heat(p)+1, evaluated bottom-up. Predecessors of a feeder are always
//     feeders themselves, so this is a plain post-order sum over trees,
//     done with an explicit stack.
//  2. Cycle pass: each terminal's own feeder contribution (predecessors
//     outside the terminal set) is captured first, then propagated forward
//     around its cycle, because everything that flows into one cycle member
//     eventually reaches all of them. Propagation stops on returning to the
//     starting node, or immediately for a dead-end terminal with no
//     successor.
//  3. Self-link pass: every cycle member's heat is incremented by one, since
//     its cycle-mates (itself, for a self-loop) reach it through the cycle.
//     Dead-end terminals are left alone - no node reaches a dead end through
//     itself, so an extra count would overstate its heat.
//
// Heat does not modify g or cls and runs in time linear in the graph size
// plus the sum of squared cycle lengths (cycles are short in practice).
func Heat(g *Graph, cls *Classification) map[string]int {
	heat := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		heat[id] = 0
	}

	// Tree pass: post-order sums over the feeder trees hanging off each
	// terminal node.
	for t := range cls.terminal {
		for _, p := range g.reverse[t] {
			if !cls.Terminal(p) {
				sumSubtree(g, p, heat)
			}
		}
	}

	// Cycle pass: capture all feeder bases before propagating so that the
	// result is independent of terminal iteration order.
	base := make(map[string]int, len(cls.terminal))
	for t := range cls.terminal {
		b := 0
		for _, p := range g.reverse[t] {
			if !cls.Terminal(p) {
				b += heat[p] + 1
			}
		}
		base[t] = b
		heat[t] = b
	}
	for t, b := range base {
		if b == 0 {
			continue
		}
		cur := t
		for {
			next, ok := g.Next(cur)
			if !ok || next == t {
				break
			}
			heat[next] += b
			cur = next
		}
	}

	// Self-link pass.
	for id := range cls.cycle {
		heat[id]++
	}

	return heat
}

// sumFrame tracks one node of an in-progress post-order traversal: the node
// and how many of its predecessors have been expanded so far.
type sumFrame struct {
	node string
	next int
}

// sumSubtree fills heat for root and every node in its predecessor subtree.
// Predecessors of a non-terminal node are never terminal, so the subtree is a
// finite tree and the traversal needs no visited set. The stack is explicit;
// feeder chains routinely run tens of thousands of nodes deep.
func sumSubtree(g *Graph, root string, heat map[string]int) {
	stack := []sumFrame{{node: root}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		preds := g.reverse[f.node]
		if f.next < len(preds) {
			child := preds[f.next]
			f.next++
			stack = append(stack, sumFrame{node: child})
			continue
		}
		sum := 0
		for _, p := range preds {
			sum += heat[p] + 1
		}
		heat[f.node] = sum
		stack = stack[:len(stack)-1]
	}
}
