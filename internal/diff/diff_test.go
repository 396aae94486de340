package diff_test

import (
	"reflect"
	"testing"

	"passlens/internal/cfg"
	"passlens/internal/diff"
	"passlens/internal/dump"
	"passlens/internal/irparse"
)

func stmts(lines ...string) []irparse.Statement {
	out := make([]irparse.Statement, len(lines))
	for i, l := range lines {
		out[i] = irparse.Statement{Text: l}
	}
	return out
}

func graphFrom(t *testing.T, tier dump.Tier, blocks ...irparse.Block) *cfg.Graph {
	t.Helper()
	g, err := cfg.Build(&irparse.Listing{Tier: tier, Blocks: blocks})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestComputeIdenticalSnapshots(t *testing.T) {
	mk := func() *cfg.Graph {
		return graphFrom(t, dump.TierGimple,
			irparse.Block{
				ID:    2,
				Stmts: stmts("x_1 = a_2 + b_3;", "goto <bb 3>;"),
				Edges: []irparse.Edge{{To: 3, Kind: irparse.EdgeUnconditional}},
			},
			irparse.Block{ID: 3, Stmts: stmts("return x_1;")},
		)
	}
	d := diff.Compute(mk(), mk())
	if d.Changed() {
		t.Fatalf("identical snapshots report a change: %+v", d.Hunks)
	}
	if !d.Summary.Empty() {
		t.Fatalf("identical snapshots report structure: %+v", d.Summary)
	}
	if d.AddedLines() != 0 || d.RemovedLines() != 0 {
		t.Fatalf("added=%d removed=%d, want 0/0", d.AddedLines(), d.RemovedLines())
	}
}

func TestComputeIgnoresRenumbering(t *testing.T) {
	before := graphFrom(t, dump.TierGimple,
		irparse.Block{ID: 2, Stmts: stmts("x_1 = a_2 + 1;", "return x_1;")},
	)
	after := graphFrom(t, dump.TierGimple,
		irparse.Block{ID: 5, Stmts: stmts("x_7 = a_9 + 1;", "return x_7;")},
	)
	d := diff.Compute(before, after)
	if d.Changed() {
		t.Fatalf("renumbering-only delta reports a change: %+v", d.Hunks)
	}
	if !d.Summary.Empty() {
		t.Fatalf("summary = %+v, want empty", d.Summary)
	}
}

// Two blocks collapse into one: the goto disappears, its statements land in
// the surviving block. The summary must show the block loss and the removed
// hunk must carry the merge note.
func mergeGraphs(t *testing.T) (before, after *cfg.Graph) {
	t.Helper()
	before = graphFrom(t, dump.TierGimple,
		irparse.Block{
			ID:    2,
			Stmts: stmts("sum_1 = a_2 + b_3;", "goto <bb 3>;"),
			Edges: []irparse.Edge{{To: 3, Kind: irparse.EdgeUnconditional}},
		},
		irparse.Block{ID: 3, Stmts: stmts("ret_4 = sum_1 * 2;", "return ret_4;")},
	)
	after = graphFrom(t, dump.TierGimple,
		irparse.Block{
			ID:    2,
			Stmts: stmts("sum_1 = a_2 + b_3;", "ret_4 = sum_1 * 2;", "return ret_4;"),
		},
	)
	return before, after
}

func TestComputeBlockMerge(t *testing.T) {
	before, after := mergeGraphs(t)
	d := diff.Compute(before, after)

	if got := d.Summary.BlockDelta(); got != -1 {
		t.Fatalf("BlockDelta = %d, want -1", got)
	}
	if got := d.Summary.EdgeDelta(); got != -1 {
		t.Fatalf("EdgeDelta = %d, want -1", got)
	}
	if !reflect.DeepEqual(d.Summary.MergedBlocks, []int{2, 3}) {
		t.Fatalf("MergedBlocks = %v, want [2 3]", d.Summary.MergedBlocks)
	}
	if len(d.Summary.EliminatedBlocks) != 0 {
		t.Fatalf("EliminatedBlocks = %v, want none", d.Summary.EliminatedBlocks)
	}

	if d.AddedLines() != 0 || d.RemovedLines() != 1 {
		t.Fatalf("added=%d removed=%d, want 0/1", d.AddedLines(), d.RemovedLines())
	}
	var removed *diff.Hunk
	for i := range d.Hunks {
		if d.Hunks[i].Kind == diff.HunkRemoved {
			removed = &d.Hunks[i]
		}
	}
	if removed == nil {
		t.Fatalf("no removed hunk: %+v", d.Hunks)
	}
	if removed.BlockNote != "block merged" {
		t.Fatalf("BlockNote = %q, want \"block merged\"", removed.BlockNote)
	}
	if len(removed.Lines) != 1 || removed.Lines[0] != "goto <bb 3>;" {
		t.Fatalf("removed lines = %v", removed.Lines)
	}
}

func TestComputeBlockEliminated(t *testing.T) {
	before := graphFrom(t, dump.TierGimple,
		irparse.Block{ID: 2, Stmts: stmts("a_1 = 1;")},
		irparse.Block{ID: 3, Stmts: stmts("unused_5 = probe (a_1);")},
	)
	after := graphFrom(t, dump.TierGimple,
		irparse.Block{ID: 2, Stmts: stmts("a_1 = 1;")},
	)
	d := diff.Compute(before, after)

	if !reflect.DeepEqual(d.Summary.EliminatedBlocks, []int{3}) {
		t.Fatalf("EliminatedBlocks = %v, want [3]", d.Summary.EliminatedBlocks)
	}
	var note string
	for i := range d.Hunks {
		if d.Hunks[i].Kind == diff.HunkRemoved {
			note = d.Hunks[i].BlockNote
		}
	}
	if note != "block eliminated" {
		t.Fatalf("BlockNote = %q, want \"block eliminated\"", note)
	}
}

// The delta must be byte-for-byte reproducible for the same inputs.
func TestComputeDeterministic(t *testing.T) {
	b1, a1 := mergeGraphs(t)
	b2, a2 := mergeGraphs(t)
	d1 := diff.Compute(b1, a1)
	d2 := diff.Compute(b2, a2)
	if !reflect.DeepEqual(d1, d2) {
		t.Fatalf("repeated runs diverge:\n%+v\n%+v", d1, d2)
	}
}

func TestComputeReplacePairsHunks(t *testing.T) {
	before := graphFrom(t, dump.TierGimple,
		irparse.Block{ID: 2, Stmts: stmts("x_1 = 1 + 2;", "return x_1;")},
	)
	after := graphFrom(t, dump.TierGimple,
		irparse.Block{ID: 2, Stmts: stmts("x_1 = 3;", "return x_1;")},
	)
	d := diff.Compute(before, after)

	if d.RemovedLines() != 1 || d.AddedLines() != 1 {
		t.Fatalf("added=%d removed=%d, want 1/1", d.AddedLines(), d.RemovedLines())
	}
	// A replacement yields the removed hunk first, then the added one.
	if d.Hunks[0].Kind != diff.HunkRemoved || d.Hunks[1].Kind != diff.HunkAdded {
		t.Fatalf("hunks = %v, %v", d.Hunks[0].Kind, d.Hunks[1].Kind)
	}
	if d.Hunks[1].Lines[0] != "x_1 = 3;" {
		t.Fatalf("added line = %q", d.Hunks[1].Lines[0])
	}
}
