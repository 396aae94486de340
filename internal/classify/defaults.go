package classify

import "passlens/internal/dump"

func tierRTL() *dump.Tier {
	t := dump.TierRTL
	return &t
}

// DefaultRules is the built-in rule table, in priority order: structural
// evidence first, then textual tokens, then pass-name priors, with the
// Other fallback applied by the matcher when nothing fires.
//
// The token sets follow the keyword families GCC dumps actually use
// (inline, fold/constant, loop/unroll/ivopts, dce/eliminate/unused,
// reload/spill, reorder/schedule).
func DefaultRules() *RuleSet {
	return &RuleSet{Rules: []Rule{
		// A call disappearing while the block count drops is the classic
		// inlining footprint.
		{Kind: KindStructural, Category: Inlining, Exclusive: true,
			Structural: Structural{BlockDecrease: true, CallRemoved: true, HunkRemoves: true}},

		// Whole blocks gone from the graph.
		{Kind: KindStructural, Category: DeadCodeElimination, Exclusive: true,
			Structural: Structural{HunkRemoves: true, BlockNote: "block eliminated"}},

		// Statements folded into a surviving block. Non-exclusive: the
		// block-decrease rule below may also tag the same hunk.
		{Kind: KindStructural, Category: CommonSubexpressionElimination, Exclusive: false,
			Structural: Structural{BlockDecrease: true, HunkRemoves: true, BlockNote: "block merged"}},

		// Any removal that shrinks the graph is at minimum dead code.
		{Kind: KindStructural, Category: DeadCodeElimination, Exclusive: true,
			Structural: Structural{BlockDecrease: true, HunkRemoves: true}},

		// Textual evidence in changed lines.
		{Kind: KindToken, Category: Inlining, Exclusive: true,
			Tokens: []string{"inline"}},
		{Kind: KindToken, Category: DeadCodeElimination, Exclusive: true, Scope: ScopeRemoved,
			Tokens: []string{"dce", "eliminate", "unused"}},
		{Kind: KindToken, Category: ConstantFolding, Exclusive: true,
			Tokens: []string{"fold", "constant"}},
		{Kind: KindToken, Category: LoopOptimization, Exclusive: true,
			Tokens: []string{"unroll", "ivopt", "ivtmp", "loop", "strength reduction"}},
		{Kind: KindToken, Category: RegisterAllocation, Exclusive: true, Tier: tierRTL(),
			Tokens: []string{"reload", "spill"}},
		{Kind: KindToken, Category: InstructionScheduling, Exclusive: true, Tier: tierRTL(),
			Tokens: []string{"reorder", "schedul"}},

		// Pass name as a weak prior, consulted only when nothing above fired.
		{Kind: KindPassName, Category: Inlining, Exclusive: true,
			PassNames: []string{"einline", "inline"}},
		{Kind: KindPassName, Category: LoopOptimization, Exclusive: true,
			PassNames: []string{"loop", "cunroll", "unswitch", "ivopts", "ivcanon", "lim"}},
		{Kind: KindPassName, Category: ConstantFolding, Exclusive: true,
			PassNames: []string{"ccp", "fab", "fold"}},
		{Kind: KindPassName, Category: CommonSubexpressionElimination, Exclusive: true,
			PassNames: []string{"fre", "pre", "cse", "dom"}},
		{Kind: KindPassName, Category: DeadCodeElimination, Exclusive: true,
			PassNames: []string{"dce", "cddce", "dse"}},
		{Kind: KindPassName, Category: RegisterAllocation, Exclusive: true, Tier: tierRTL(),
			PassNames: []string{"ira", "reload", "lra"}},
		{Kind: KindPassName, Category: InstructionScheduling, Exclusive: true, Tier: tierRTL(),
			PassNames: []string{"sched", "combine", "peephole"}},
	}}
}
