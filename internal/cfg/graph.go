package cfg

import (
	"fmt"
	"sort"

	"passlens/internal/diag"
	"passlens/internal/dump"
	"passlens/internal/irparse"
)

// Node is one basic block inside a built graph.
type Node struct {
	ID    int
	Stmts []irparse.Statement
	Edges []irparse.Edge

	// Unreachable is set when no path from the entry block reaches this
	// node. Such nodes stay in the graph.
	Unreachable bool
}

// Terminal reports whether the node has no outgoing edges.
func (n *Node) Terminal() bool {
	return len(n.Edges) == 0
}

// Graph is a validated, deterministically ordered CFG for one snapshot.
type Graph struct {
	Tier  dump.Tier
	Entry int // block id of the entry node; -1 for an empty graph

	// Nodes in traversal order: the entry block first, then the remaining
	// blocks by ascending original id. This order is what rendering and
	// diffing iterate, so it must never depend on map iteration.
	Nodes []Node

	index map[int]int
}

// DanglingEdgeError reports an edge whose target block does not exist in
// the same listing — a parser/compiler-format mismatch.
type DanglingEdgeError struct {
	From int
	To   int
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("edge bb%d -> bb%d targets a nonexistent block", e.From, e.To)
}

// Code returns the diagnostic code this error maps to.
func (e *DanglingEdgeError) Code() diag.Code {
	return diag.DanglingEdge
}

// Build validates a listing and produces its graph.
// The entry block is the block that appears first in the dump text.
func Build(l *irparse.Listing) (*Graph, error) {
	g := &Graph{Tier: l.Tier, Entry: -1, index: make(map[int]int, len(l.Blocks))}
	if len(l.Blocks) == 0 {
		return g, nil
	}
	g.Entry = l.Blocks[0].ID

	exists := make(map[int]bool, len(l.Blocks))
	for i := range l.Blocks {
		exists[l.Blocks[i].ID] = true
	}
	for i := range l.Blocks {
		b := &l.Blocks[i]
		for _, e := range b.Edges {
			if !exists[e.To] {
				return nil, &DanglingEdgeError{From: b.ID, To: e.To}
			}
		}
	}

	g.Nodes = make([]Node, 0, len(l.Blocks))
	rest := make([]*irparse.Block, 0, len(l.Blocks)-1)
	for i := range l.Blocks {
		if l.Blocks[i].ID == g.Entry && i == 0 {
			g.Nodes = append(g.Nodes, Node{ID: g.Entry, Stmts: l.Blocks[i].Stmts, Edges: l.Blocks[i].Edges})
			continue
		}
		rest = append(rest, &l.Blocks[i])
	}
	sort.SliceStable(rest, func(i, j int) bool { return rest[i].ID < rest[j].ID })
	for _, b := range rest {
		g.Nodes = append(g.Nodes, Node{ID: b.ID, Stmts: b.Stmts, Edges: b.Edges})
	}
	for i := range g.Nodes {
		g.index[g.Nodes[i].ID] = i
	}

	g.markUnreachable()
	return g, nil
}

// Node returns the node with the given block id, or nil.
func (g *Graph) Node(id int) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return &g.Nodes[i]
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for i := range g.Nodes {
		n += len(g.Nodes[i].Edges)
	}
	return n
}

// BlockCount returns the number of blocks in the graph.
func (g *Graph) BlockCount() int {
	return len(g.Nodes)
}

// markUnreachable flags every node with no path from the entry.
func (g *Graph) markUnreachable() {
	if len(g.Nodes) == 0 {
		return
	}
	seen := make(map[int]bool, len(g.Nodes))
	stack := []int{g.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		n := g.Node(id)
		for _, e := range n.Edges {
			if !seen[e.To] {
				stack = append(stack, e.To)
			}
		}
	}
	for i := range g.Nodes {
		g.Nodes[i].Unreachable = !seen[g.Nodes[i].ID]
	}
}

// Preds returns the ids of blocks with an edge into id, in traversal order.
func (g *Graph) Preds(id int) []int {
	var preds []int
	for i := range g.Nodes {
		for _, e := range g.Nodes[i].Edges {
			if e.To == id {
				preds = append(preds, g.Nodes[i].ID)
				break
			}
		}
	}
	return preds
}
