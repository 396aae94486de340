package timeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"passlens/internal/cfg"
	"passlens/internal/classify"
	"passlens/internal/diag"
	"passlens/internal/diff"
	"passlens/internal/dump"
	"passlens/internal/irparse"
	"passlens/internal/sequence"
)

// Options configures a build.
type Options struct {
	// Jobs limits parallel per-function pipelines; <= 0 means GOMAXPROCS.
	Jobs int
	// Rules is the categorizer table; nil uses the built-in defaults.
	Rules *classify.RuleSet
	// MaxDiagnostics caps each function's diagnostic bag.
	MaxDiagnostics int
}

// Build runs the full pipeline over every function in the store.
//
// Functions are processed in independent goroutines: the engine is pure
// computation over the immutable store, so no locking is needed until the
// final join. A failure in one function (or one pass) is recorded as a
// marker in its place and never aborts the others.
func Build(ctx context.Context, store *dump.Store, opts Options) (*Model, *diag.Bag, error) {
	rules := opts.Rules
	if rules == nil {
		rules = classify.DefaultRules()
	}
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 100
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	names := store.Functions()
	// One slot per function: goroutines write disjoint indices, no mutex.
	funcs := make([]*Function, len(names))
	bags := make([]*diag.Bag, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(names), 1)))

	for i, name := range names {
		g.Go(func(i int, name string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				bag := diag.NewBag(maxDiag)
				funcs[i] = buildFunction(store, name, rules, bag)
				bags[i] = bag
				return nil
			}
		}(i, name))
	}

	if err := g.Wait(); err != nil {
		// A superseded or cancelled run: partial results are discarded.
		return nil, nil, err
	}

	merged := diag.NewBag(maxDiag * max(len(names), 1))
	for _, b := range bags {
		merged.Merge(b)
	}
	merged.Sort()
	return newModel(funcs), merged, nil
}

// buildFunction runs parse -> CFG -> sequence -> diff -> categorize for one
// function. Failures become markers: a bad snapshot leaves a gap in the
// chain, a sequencing conflict marks the whole function.
func buildFunction(store *dump.Store, name string, rules *classify.RuleSet, bag *diag.Bag) *Function {
	reporter := diag.BagReporter{Bag: bag}
	fn := &Function{Name: name}

	recs, err := store.Snapshots(name)
	if err != nil {
		d := failureDiag(diag.EmptyInput, diag.Locus{Function: name}, err.Error())
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
		fn.Failure = &d
		return fn
	}

	ordered, err := sequence.Order(recs)
	if err != nil {
		d := failureDiag(diag.SequencingConflict, diag.Locus{Function: name}, err.Error())
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
		fn.Failure = &d
		return fn
	}

	fn.Gimple = buildTier(ordered.Gimple, rules, reporter)
	fn.RTL = buildTier(ordered.RTL, rules, reporter)
	return fn
}

func buildTier(recs []dump.Record, rules *classify.RuleSet, reporter diag.Reporter) []Entry {
	entries := make([]Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, buildEntry(rec, reporter))
	}

	// Delta chaining is inherently sequential along the pass chain: each
	// delta needs the prior snapshot. Skip pairs with an unavailable side.
	for i := 1; i < len(entries); i++ {
		prev, cur := &entries[i-1], &entries[i]
		if prev.Unavailable() || cur.Unavailable() {
			continue
		}
		cur.Delta = diff.Compute(prev.Graph, cur.Graph)
		cur.Categories = rules.Categorize(cur.Delta, cur.Record.Pass, cur.Record.Tier)
	}
	return entries
}

func buildEntry(rec dump.Record, reporter diag.Reporter) Entry {
	entry := Entry{Record: rec}
	locus := diag.Locus{Function: rec.Function, PassName: rec.Pass, PassIndex: rec.Index}

	listing, err := irparse.Parse(rec.Text, rec.Tier)
	if err != nil {
		d := failureDiag(errCode(err), locus, err.Error())
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
		entry.Failure = &d
		return entry
	}

	graph, err := cfg.Build(listing)
	if err != nil {
		d := failureDiag(errCode(err), locus, err.Error())
		reporter.Report(d.Code, d.Severity, d.Primary, d.Message, nil)
		entry.Failure = &d
		return entry
	}

	entry.Listing = listing
	entry.Graph = graph
	return entry
}

func failureDiag(code diag.Code, at diag.Locus, msg string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: code.DefaultSeverity(),
		Code:     code,
		Message:  msg,
		Primary:  at,
	}
}

// errCode recovers the diagnostic code carried by engine errors.
func errCode(err error) diag.Code {
	type coded interface{ Code() diag.Code }
	if c, ok := err.(coded); ok {
		return c.Code()
	}
	return diag.UnknownCode
}
