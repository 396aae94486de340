package irparse

import "passlens/internal/dump"

// Parse dispatches to the tier-specific grammar.
//
// Both grammars are tolerant of interleaved compiler diagnostic lines and
// surrounding whitespace, and both accept dumps with zero basic blocks
// (a valid, empty listing). They fail with MalformedError only when the
// text carries statement content with no recognizable block structure.
func Parse(text string, tier dump.Tier) (*Listing, error) {
	if tier == dump.TierRTL {
		return parseRTL(text)
	}
	return parseGimple(text)
}

// dropPseudoEdges removes successor references to GCC's reserved ENTRY (0)
// and EXIT (1) blocks when the dump never declares them. Successor lists
// routinely name EXIT by number; keeping such edges would fail validation
// against blocks that exist only inside the compiler.
func dropPseudoEdges(l *Listing) {
	for i := range l.Blocks {
		b := &l.Blocks[i]
		kept := b.Edges[:0]
		for _, e := range b.Edges {
			if (e.To == 0 || e.To == 1) && l.BlockIndex(e.To) < 0 {
				continue
			}
			kept = append(kept, e)
		}
		b.Edges = kept
	}
}
