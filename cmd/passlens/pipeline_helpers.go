package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passlens/internal/classify"
	"passlens/internal/diag"
	"passlens/internal/diagfmt"
	"passlens/internal/dump"
	"passlens/internal/observ"
	"passlens/internal/timeline"
)

// collectStore reads a dump directory into a store, reporting collection
// diagnostics to stderr.
func collectStore(cmd *cobra.Command, dumpDir string) (*dump.Store, error) {
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	bag := diag.NewBag(maxDiagnostics)
	store, err := dump.CollectDir(dumpDir, diag.BagReporter{Bag: bag})
	printDiagnostics(cmd, bag)
	return store, err
}

// buildModel runs the engine over a collected store, honoring the shared
// flags. Per-function failures are reported to stderr and reflected in the
// model as unavailable markers; they are never fatal.
func buildModel(cmd *cobra.Command, store *dump.Store) (*timeline.Model, error) {
	flags := cmd.Root().PersistentFlags()
	jobs, _ := flags.GetInt("jobs")
	maxDiagnostics, _ := flags.GetInt("max-diagnostics")
	quiet, _ := flags.GetBool("quiet")
	showTimings, _ := flags.GetBool("timings")

	rules, err := loadRules(cmd)
	if err != nil {
		return nil, err
	}

	timer := observ.NewTimer()
	phase := timer.Begin("pipeline")
	model, bag, err := timeline.Build(context.Background(), store, timeline.Options{
		Jobs:           jobs,
		Rules:          rules,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return nil, err
	}
	timer.End(phase, fmt.Sprintf("%d functions", model.Len()))

	if !quiet {
		printDiagnostics(cmd, bag)
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return model, nil
}

// runPipeline is collectStore followed by buildModel.
func runPipeline(cmd *cobra.Command, dumpDir string) (*timeline.Model, *dump.Store, error) {
	store, err := collectStore(cmd, dumpDir)
	if err != nil {
		return nil, nil, err
	}
	model, err := buildModel(cmd, store)
	if err != nil {
		return nil, nil, err
	}
	return model, store, nil
}

// loadRules resolves the categorizer table: --rules flag first, then the
// manifest's rules.path, then the built-in defaults.
func loadRules(cmd *cobra.Command) (*classify.RuleSet, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("rules")
	if path == "" {
		manifest, found, err := loadProjectManifest(".")
		if err != nil {
			return nil, err
		}
		if found && manifest.Config.Rules.Path != "" {
			path = manifest.Config.Rules.Path
		}
	}
	if path == "" {
		return classify.DefaultRules(), nil
	}
	return classify.LoadRules(path)
}

func printDiagnostics(cmd *cobra.Command, bag *diag.Bag) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)})
}
