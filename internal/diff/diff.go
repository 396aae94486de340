package diff

import (
	"github.com/pmezard/go-difflib/difflib"

	"passlens/internal/cfg"
)

// HunkKind classifies a run of lines within a delta.
type HunkKind uint8

const (
	HunkUnchanged HunkKind = iota
	HunkAdded
	HunkRemoved
)

func (k HunkKind) String() string {
	switch k {
	case HunkUnchanged:
		return "unchanged"
	case HunkAdded:
		return "added"
	case HunkRemoved:
		return "removed"
	}
	return "unknown"
}

// Hunk is a maximal run of added, removed, or unchanged lines.
// Lines hold the raw statement text; matching happened on the normalized
// form, so a line can be "unchanged" while its temporaries were renumbered.
type Hunk struct {
	Kind        HunkKind
	Lines       []string
	BeforeStart int // offset into the flattened before-sequence
	AfterStart  int // offset into the flattened after-sequence

	// BlockNote is a best-effort structural annotation for changed hunks:
	// "block eliminated", "block merged", "block split", or empty.
	BlockNote string
}

// Summary is the structural half of a delta.
type Summary struct {
	BlocksBefore int
	BlocksAfter  int
	EdgesBefore  int
	EdgesAfter   int

	// EliminatedBlocks lists before-side block ids with no content match
	// on the after side. MergedBlocks lists before-side ids whose best
	// match is shared with another block; SplitBlocks lists before-side
	// ids claimed as best match by more than one after-side block.
	// All three are heuristic, derived from statement-overlap scoring.
	EliminatedBlocks []int
	MergedBlocks     []int
	SplitBlocks      []int
}

// BlockDelta returns the block-count change (after - before).
func (s *Summary) BlockDelta() int { return s.BlocksAfter - s.BlocksBefore }

// EdgeDelta returns the edge-count change (after - before).
func (s *Summary) EdgeDelta() int { return s.EdgesAfter - s.EdgesBefore }

// Empty reports whether the summary records no structural change.
func (s *Summary) Empty() bool {
	return s.BlockDelta() == 0 && s.EdgeDelta() == 0 &&
		len(s.EliminatedBlocks) == 0 && len(s.MergedBlocks) == 0 && len(s.SplitBlocks) == 0
}

// Delta is the full difference between two adjacent snapshots.
type Delta struct {
	Hunks   []Hunk
	Summary Summary
}

// Changed reports whether the delta carries any added or removed lines.
func (d *Delta) Changed() bool {
	for i := range d.Hunks {
		if d.Hunks[i].Kind != HunkUnchanged {
			return true
		}
	}
	return false
}

// AddedLines and RemovedLines count changed lines across all hunks.
func (d *Delta) AddedLines() int   { return d.countLines(HunkAdded) }
func (d *Delta) RemovedLines() int { return d.countLines(HunkRemoved) }

func (d *Delta) countLines(kind HunkKind) int {
	n := 0
	for i := range d.Hunks {
		if d.Hunks[i].Kind == kind {
			n += len(d.Hunks[i].Lines)
		}
	}
	return n
}

// flattened is one snapshot's statement sequence in traversal order, with
// enough bookkeeping to map a line offset back to its block.
type flattened struct {
	norm    []string // normalized lines, diffed
	raw     []string // original lines, displayed
	blockOf []int    // line offset -> index into graph.Nodes
}

func flatten(g *cfg.Graph) flattened {
	var f flattened
	for i := range g.Nodes {
		n := &g.Nodes[i]
		for _, s := range n.Stmts {
			f.norm = append(f.norm, Normalize(s.Text, g.Tier))
			f.raw = append(f.raw, s.Text)
			f.blockOf = append(f.blockOf, i)
		}
	}
	return f
}

// Compute produces the delta between two adjacent snapshots' graphs.
// Given identical inputs the result is byte-for-byte reproducible: every
// step iterates slices in traversal order, never maps.
func Compute(before, after *cfg.Graph) *Delta {
	fb := flatten(before)
	fa := flatten(after)

	d := &Delta{
		Summary: Summary{
			BlocksBefore: before.BlockCount(),
			BlocksAfter:  after.BlockCount(),
			EdgesBefore:  before.EdgeCount(),
			EdgesAfter:   after.EdgeCount(),
		},
	}

	corr := matchBlocks(before, after)
	d.Summary.EliminatedBlocks = corr.eliminated
	d.Summary.MergedBlocks = corr.merged
	d.Summary.SplitBlocks = corr.split

	matcher := difflib.NewMatcher(fb.norm, fa.norm)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			d.Hunks = append(d.Hunks, Hunk{
				Kind:        HunkUnchanged,
				Lines:       append([]string(nil), fb.raw[op.I1:op.I2]...),
				BeforeStart: op.I1,
				AfterStart:  op.J1,
			})
		case 'd', 'r':
			d.Hunks = append(d.Hunks, Hunk{
				Kind:        HunkRemoved,
				Lines:       append([]string(nil), fb.raw[op.I1:op.I2]...),
				BeforeStart: op.I1,
				AfterStart:  op.J1,
				BlockNote:   corr.noteForRange(fb, op.I1, op.I2),
			})
			if op.Tag == 'r' {
				d.Hunks = append(d.Hunks, Hunk{
					Kind:        HunkAdded,
					Lines:       append([]string(nil), fa.raw[op.J1:op.J2]...),
					BeforeStart: op.I2,
					AfterStart:  op.J1,
				})
			}
		case 'i':
			d.Hunks = append(d.Hunks, Hunk{
				Kind:        HunkAdded,
				Lines:       append([]string(nil), fa.raw[op.J1:op.J2]...),
				BeforeStart: op.I1,
				AfterStart:  op.J1,
			})
		}
	}
	return d
}
