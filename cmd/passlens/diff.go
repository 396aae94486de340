package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"passlens/internal/cfg"
	"passlens/internal/diff"
	"passlens/internal/dump"
	"passlens/internal/irparse"
	"passlens/internal/sequence"
)

var diffCmd = &cobra.Command{
	Use:   "diff [flags] dumpdir",
	Short: "Show the categorized diff between two passes of one function",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().String("func", "", "function name (required)")
	diffCmd.Flags().String("from", "", "earlier pass name or index (required)")
	diffCmd.Flags().String("to", "", "later pass name or index (required)")
	_ = diffCmd.MarkFlagRequired("func")
	_ = diffCmd.MarkFlagRequired("from")
	_ = diffCmd.MarkFlagRequired("to")
}

func runDiff(cmd *cobra.Command, args []string) error {
	funcName, _ := cmd.Flags().GetString("func")
	fromArg, _ := cmd.Flags().GetString("from")
	toArg, _ := cmd.Flags().GetString("to")
	useColor(cmd, os.Stdout)

	store, err := collectStore(cmd, args[0])
	if err != nil {
		return err
	}
	recs, err := store.Snapshots(funcName)
	if err != nil {
		return err
	}
	ordered, err := sequence.Order(recs)
	if err != nil {
		return err
	}
	all := append(ordered.Gimple, ordered.RTL...)

	from, ok := findSnapshot(all, fromArg)
	if !ok {
		return fmt.Errorf("function %q has no pass %q", funcName, fromArg)
	}
	to, ok := findSnapshot(all, toArg)
	if !ok {
		return fmt.Errorf("function %q has no pass %q", funcName, toArg)
	}
	if from.Tier != to.Tier {
		return fmt.Errorf("passes %s and %s belong to different IR tiers", fromArg, toArg)
	}

	before, err := snapshotGraph(from)
	if err != nil {
		return err
	}
	after, err := snapshotGraph(to)
	if err != nil {
		return err
	}

	delta := diff.Compute(before, after)
	rules, err := loadRules(cmd)
	if err != nil {
		return err
	}
	result := rules.Categorize(delta, to.Pass, to.Tier)
	categories := make([]string, 0, len(result.All))
	for _, c := range result.All {
		categories = append(categories, c.String())
	}

	printDelta(funcName, from, to, delta, categories)
	return nil
}

func snapshotGraph(rec dump.Record) (*cfg.Graph, error) {
	listing, err := irparse.Parse(rec.Text, rec.Tier)
	if err != nil {
		return nil, err
	}
	return cfg.Build(listing)
}

func printDelta(funcName string, from, to dump.Record, delta *diff.Delta, categories []string) {
	headColor := color.New(color.FgCyan, color.Bold)
	addColor := color.New(color.FgGreen)
	delColor := color.New(color.FgRed)
	noteColor := color.New(color.FgYellow)

	headColor.Printf("%s: %03d.%s → %03d.%s\n", funcName, from.Index, from.Pass, to.Index, to.Pass)
	if len(categories) > 0 {
		fmt.Printf("categories: %s\n", strings.Join(categories, ", "))
	}
	s := &delta.Summary
	fmt.Printf("Δblocks=%+d Δedges=%+d\n\n", s.BlockDelta(), s.EdgeDelta())

	for i := range delta.Hunks {
		h := &delta.Hunks[i]
		switch h.Kind {
		case diff.HunkUnchanged:
			fmt.Printf("  … %d unchanged lines …\n", len(h.Lines))
		case diff.HunkRemoved:
			if h.BlockNote != "" {
				noteColor.Printf("  ◦ %s\n", h.BlockNote)
			}
			for _, line := range h.Lines {
				delColor.Printf("- %s\n", line)
			}
		case diff.HunkAdded:
			for _, line := range h.Lines {
				addColor.Printf("+ %s\n", line)
			}
		}
	}
}
