package classify_test

import (
	"testing"

	"passlens/internal/cfg"
	"passlens/internal/classify"
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

func graphFrom(t *testing.T, blocks ...irparse.Block) *cfg.Graph {
	t.Helper()
	g, err := cfg.Build(&irparse.Listing{Tier: dump.TierGimple, Blocks: blocks})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

// A block merge must land in a real category, never in the Other fallback.
func TestCategorizeBlockMerge(t *testing.T) {
	before := graphFrom(t,
		irparse.Block{
			ID:    2,
			Stmts: stmts("sum_1 = a_2 + b_3;", "goto <bb 3>;"),
			Edges: []irparse.Edge{{To: 3, Kind: irparse.EdgeUnconditional}},
		},
		irparse.Block{ID: 3, Stmts: stmts("ret_4 = sum_1 * 2;", "return ret_4;")},
	)
	after := graphFrom(t,
		irparse.Block{
			ID:    2,
			Stmts: stmts("sum_1 = a_2 + b_3;", "ret_4 = sum_1 * 2;", "return ret_4;"),
		},
	)
	d := diff.Compute(before, after)

	res := classify.DefaultRules().Categorize(d, "fre1", dump.TierGimple)
	if !res.Has(classify.DeadCodeElimination) && !res.Has(classify.CommonSubexpressionElimination) {
		t.Fatalf("merge categorized as %v, want DCE or CSE", res.All)
	}
	if res.Has(classify.Other) {
		t.Fatalf("merge fell through to Other: %v", res.All)
	}
	if len(res.PerHunk) != len(d.Hunks) {
		t.Fatalf("PerHunk has %d entries for %d hunks", len(res.PerHunk), len(d.Hunks))
	}
	for i, cats := range res.PerHunk {
		if len(cats) == 0 {
			t.Fatalf("hunk %d carries no category", i)
		}
	}
}

func TestCategorizeInliningFootprint(t *testing.T) {
	d := &diff.Delta{
		Hunks: []diff.Hunk{{
			Kind:  diff.HunkRemoved,
			Lines: []string{"tmp_1 = helper (x_2);"},
		}},
		Summary: diff.Summary{BlocksBefore: 3, BlocksAfter: 2},
	}
	res := classify.DefaultRules().Categorize(d, "einline", dump.TierGimple)
	if len(res.All) != 1 || res.All[0] != classify.Inlining {
		t.Fatalf("All = %v, want [Inlining]", res.All)
	}
}

func TestCategorizeFallbackIsOther(t *testing.T) {
	d := &diff.Delta{
		Hunks: []diff.Hunk{{Kind: diff.HunkAdded, Lines: []string{"zzz_stub;"}}},
	}
	res := classify.DefaultRules().Categorize(d, "mystery99", dump.TierGimple)
	if len(res.All) != 1 || res.All[0] != classify.Other {
		t.Fatalf("All = %v, want [Other]", res.All)
	}
	if len(res.PerHunk[0]) != 1 || res.PerHunk[0][0] != classify.Other {
		t.Fatalf("PerHunk = %v, want [[Other]]", res.PerHunk)
	}
}

func TestCategorizePassNamePrior(t *testing.T) {
	d := &diff.Delta{
		Hunks: []diff.Hunk{{Kind: diff.HunkAdded, Lines: []string{"x_5 = 7;"}}},
	}
	res := classify.DefaultRules().Categorize(d, "ccp", dump.TierGimple)
	if !res.Has(classify.ConstantFolding) {
		t.Fatalf("All = %v, want ConstantFolding via the pass name", res.All)
	}
}

func TestCategorizeTierRestriction(t *testing.T) {
	d := func() *diff.Delta {
		return &diff.Delta{
			Hunks: []diff.Hunk{{Kind: diff.HunkAdded, Lines: []string{"x_5 = 7;"}}},
		}
	}
	rules := classify.DefaultRules()

	// Scheduling rules are machine-dependent and never fire on GIMPLE.
	res := rules.Categorize(d(), "sched2", dump.TierGimple)
	if res.Has(classify.InstructionScheduling) {
		t.Fatalf("All = %v, scheduling must not fire on the GIMPLE tier", res.All)
	}

	res = rules.Categorize(d(), "sched2", dump.TierRTL)
	if !res.Has(classify.InstructionScheduling) {
		t.Fatalf("All = %v, want InstructionScheduling on RTL", res.All)
	}
}

func TestCategorizeUnchangedDelta(t *testing.T) {
	d := &diff.Delta{
		Hunks: []diff.Hunk{{Kind: diff.HunkUnchanged, Lines: []string{"return;"}}},
	}
	res := classify.DefaultRules().Categorize(d, "ccp", dump.TierGimple)
	if len(res.All) != 0 {
		t.Fatalf("All = %v, an unchanged delta carries no categories", res.All)
	}
	if len(res.PerHunk[0]) != 1 || res.PerHunk[0][0] != classify.Other {
		t.Fatalf("PerHunk = %v", res.PerHunk)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := classify.ParseCategory("Dead Code Elimination")
	if err != nil || c != classify.DeadCodeElimination {
		t.Fatalf("ParseCategory = %v, %v", c, err)
	}
	if _, err := classify.ParseCategory("Vectorization"); err == nil {
		t.Fatal("unknown category must error")
	}
}
