package testkit

import (
	"fmt"

	"passlens/internal/cfg"
)

// CheckGraphInvariants runs the structural invariants every built graph
// must hold:
// 1) every edge target exists in the graph
// 2) traversal order starts at the entry block, then ascends by block id
// 3) the entry block is never marked unreachable
func CheckGraphInvariants(g *cfg.Graph) error {
	if g == nil {
		return fmt.Errorf("nil graph")
	}
	if len(g.Nodes) == 0 {
		if g.Entry != -1 {
			return fmt.Errorf("empty graph with entry %d", g.Entry)
		}
		return nil
	}

	// 1) edges resolve
	for i := range g.Nodes {
		n := &g.Nodes[i]
		for _, e := range n.Edges {
			if g.Node(e.To) == nil {
				return fmt.Errorf("edge bb%d -> bb%d dangles", n.ID, e.To)
			}
		}
	}

	// 2) deterministic order
	if g.Nodes[0].ID != g.Entry {
		return fmt.Errorf("traversal order does not start at entry: got bb%d want bb%d",
			g.Nodes[0].ID, g.Entry)
	}
	for i := 2; i < len(g.Nodes); i++ {
		if g.Nodes[i-1].ID >= g.Nodes[i].ID {
			return fmt.Errorf("non-entry blocks out of order: bb%d before bb%d",
				g.Nodes[i-1].ID, g.Nodes[i].ID)
		}
	}

	// 3) entry reachability
	if entry := g.Node(g.Entry); entry == nil || entry.Unreachable {
		return fmt.Errorf("entry block bb%d missing or marked unreachable", g.Entry)
	}
	return nil
}
