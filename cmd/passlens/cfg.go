package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"passlens/internal/cfg"
	"passlens/internal/dump"
	"passlens/internal/irparse"
	"passlens/internal/sequence"
)

var cfgCmd = &cobra.Command{
	Use:   "cfg [flags] dumpdir",
	Short: "Emit one snapshot's control-flow graph as Graphviz DOT",
	Long: `Cfg parses a single (function, pass) dump and writes its control-flow
graph in DOT form, ready for an external layout tool such as dot -Tsvg.`,
	Args: cobra.ExactArgs(1),
	RunE: runCfg,
}

func init() {
	cfgCmd.Flags().String("func", "", "function name (required)")
	cfgCmd.Flags().String("pass", "", "pass name or numeric pass index (required)")
	cfgCmd.Flags().StringP("output", "o", "", "write DOT here instead of stdout")
	_ = cfgCmd.MarkFlagRequired("func")
	_ = cfgCmd.MarkFlagRequired("pass")
}

func runCfg(cmd *cobra.Command, args []string) error {
	funcName, _ := cmd.Flags().GetString("func")
	passArg, _ := cmd.Flags().GetString("pass")
	output, _ := cmd.Flags().GetString("output")

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

	rec, ok := findSnapshot(append(ordered.Gimple, ordered.RTL...), passArg)
	if !ok {
		return fmt.Errorf("function %q has no pass %q", funcName, passArg)
	}

	listing, err := irparse.Parse(rec.Text, rec.Tier)
	if err != nil {
		return err
	}
	graph, err := cfg.Build(listing)
	if err != nil {
		return err
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	title := fmt.Sprintf("%s %03d.%s", funcName, rec.Index, rec.Pass)
	return cfg.WriteDOT(out, graph, title)
}

// findSnapshot resolves a --pass argument that is either a pass name or a
// numeric pass index.
func findSnapshot(recs []dump.Record, passArg string) (dump.Record, bool) {
	if idx, err := strconv.Atoi(passArg); err == nil {
		for _, r := range recs {
			if r.Index == idx {
				return r, true
			}
		}
		return dump.Record{}, false
	}
	for _, r := range recs {
		if r.Pass == passArg {
			return r, true
		}
	}
	return dump.Record{}, false
}
