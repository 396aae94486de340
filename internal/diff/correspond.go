package diff

import (
	"passlens/internal/cfg"
)

// correspondence is the heuristic block matching between two snapshots.
// Blocks are matched by largest shared-statement overlap on normalized
// text, ties broken by traversal-order proximity. It annotates hunks and
// feeds the structural summary; it is never treated as exact.
type correspondence struct {
	eliminated []int
	merged     []int
	split      []int

	noteOf []string // per before-node traversal index
}

// noteForRange returns the first structural note covering any line of the
// flattened range [i1, i2).
func (c *correspondence) noteForRange(f flattened, i1, i2 int) string {
	for i := i1; i < i2 && i < len(f.blockOf); i++ {
		if note := c.noteOf[f.blockOf[i]]; note != "" {
			return note
		}
	}
	return ""
}

func matchBlocks(before, after *cfg.Graph) correspondence {
	c := correspondence{noteOf: make([]string, len(before.Nodes))}
	if len(before.Nodes) == 0 || len(after.Nodes) == 0 {
		return c
	}

	afterSets := make([]map[string]int, len(after.Nodes))
	for j := range after.Nodes {
		afterSets[j] = stmtMultiset(&after.Nodes[j], after)
	}

	// bestAfter[i] is the after-node index each before block maps to, -1
	// when nothing overlaps.
	bestAfter := make([]int, len(before.Nodes))
	for i := range before.Nodes {
		set := stmtMultiset(&before.Nodes[i], before)
		bestAfter[i] = bestMatch(set, afterSets, i)
	}

	// claimedBy[j] counts after blocks per best-matched before block for
	// merge detection; the reverse pass detects splits.
	claimedBy := make(map[int][]int)
	for i, j := range bestAfter {
		if j >= 0 {
			claimedBy[j] = append(claimedBy[j], i)
		}
	}

	beforeSets := make([]map[string]int, len(before.Nodes))
	for i := range before.Nodes {
		beforeSets[i] = stmtMultiset(&before.Nodes[i], before)
	}
	reverseClaims := make(map[int]int)
	for j := range after.Nodes {
		set := stmtMultiset(&after.Nodes[j], after)
		if i := bestMatch(set, beforeSets, j); i >= 0 {
			reverseClaims[i]++
		}
	}

	for i := range before.Nodes {
		id := before.Nodes[i].ID
		switch {
		case bestAfter[i] < 0:
			c.eliminated = append(c.eliminated, id)
			c.noteOf[i] = "block eliminated"
		case len(claimedBy[bestAfter[i]]) > 1:
			c.merged = append(c.merged, id)
			c.noteOf[i] = "block merged"
		case reverseClaims[i] > 1:
			c.split = append(c.split, id)
			c.noteOf[i] = "block split"
		}
	}
	return c
}

// stmtMultiset counts each normalized statement of a block.
func stmtMultiset(n *cfg.Node, g *cfg.Graph) map[string]int {
	set := make(map[string]int, len(n.Stmts))
	for _, s := range n.Stmts {
		set[Normalize(s.Text, g.Tier)]++
	}
	return set
}

// bestMatch returns the candidate index with the largest multiset overlap,
// ties broken by traversal-order distance from pos, then by lower index.
// Returns -1 when no candidate shares a statement.
func bestMatch(set map[string]int, candidates []map[string]int, pos int) int {
	best, bestScore, bestDist := -1, 0, 0
	for j, cand := range candidates {
		score := overlap(set, cand)
		if score == 0 {
			continue
		}
		dist := pos - j
		if dist < 0 {
			dist = -dist
		}
		if score > bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = j, score, dist
		}
	}
	return best
}

func overlap(a, b map[string]int) int {
	n := 0
	for k, ca := range a {
		if cb, ok := b[k]; ok {
			if cb < ca {
				n += cb
			} else {
				n += ca
			}
		}
	}
	return n
}
