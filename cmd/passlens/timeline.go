package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"passlens/internal/dump"
	"passlens/internal/runcache"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline [flags] dumpdir",
	Short: "Print the categorized pass timeline for every function",
	Long: `Timeline walks a dump directory, reconstructs each function's pass
sequence, and prints what changed at every pass with its categories.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().String("func", "", "only this function")
	timelineCmd.Flags().String("tier", "all", "IR tier to show (gimple|rtl|all)")
	timelineCmd.Flags().Bool("no-cache", false, "ignore and do not update the run cache")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	funcFilter, _ := cmd.Flags().GetString("func")
	tierFilter, _ := cmd.Flags().GetString("tier")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	if tierFilter != "all" && tierFilter != "gimple" && tierFilter != "rtl" {
		return fmt.Errorf("unknown tier %q", tierFilter)
	}
	useColor(cmd, os.Stdout)

	payload, err := timelinePayload(cmd, args[0], noCache)
	if err != nil {
		return err
	}
	printPayload(payload, funcFilter, tierFilter)
	return nil
}

// timelinePayload returns the run summary, straight from the cache when the
// dump set is byte-identical to a previously processed run. Cache failures
// only disable caching, they never fail the command.
func timelinePayload(cmd *cobra.Command, dumpDir string, noCache bool) (*runcache.Payload, error) {
	store, err := collectStore(cmd, dumpDir)
	if err != nil {
		return nil, err
	}

	var cache *runcache.Cache
	var digest runcache.Digest
	if !noCache {
		if c, err := runcache.Open("passlens"); err == nil {
			cache = c
			digest = runcache.DigestStore(store)
			if p, err := cache.Load(digest); err == nil {
				return p, nil
			}
		}
	}

	model, err := buildModel(cmd, store)
	if err != nil {
		return nil, err
	}
	payload := runcache.Summarize(model)
	if cache != nil {
		_ = cache.Store(digest, payload)
	}
	return payload, nil
}

func printPayload(p *runcache.Payload, funcFilter, tierFilter string) {
	funcColor := color.New(color.FgCyan, color.Bold)
	failColor := color.New(color.FgRed)
	tagColor := color.New(color.FgMagenta)

	for _, fn := range p.Functions {
		name := fn.Name
		if name == "" {
			name = "<toplevel>"
		}
		if funcFilter != "" && name != funcFilter {
			continue
		}
		funcColor.Printf("%s:\n", name)
		if fn.Failed {
			failColor.Printf("  unavailable: %s\n", fn.Failure)
			continue
		}
		for _, tier := range []string{"gimple", "rtl"} {
			if tierFilter != "all" && tierFilter != tier {
				continue
			}
			printed := false
			for _, e := range fn.Entries {
				if dump.Tier(e.Tier).String() != tier {
					continue
				}
				if !printed {
					fmt.Printf("  %s:\n", tier)
					printed = true
				}
				printEntry(e, failColor, tagColor)
			}
		}
	}
}

func printEntry(e runcache.EntrySummary, failColor, tagColor *color.Color) {
	label := fmt.Sprintf("%03d %-16s", e.Index, e.Pass)
	if e.Failed {
		fmt.Printf("    %s %s\n", label, failColor.Sprintf("unavailable: %s", e.Failure))
		return
	}
	if len(e.Categories) == 0 && e.Added == 0 && e.Removed == 0 {
		fmt.Printf("    %s blocks=%d edges=%d\n", label, e.Blocks, e.Edges)
		return
	}
	tags := ""
	if len(e.Categories) > 0 {
		tags = " " + tagColor.Sprintf("[%s]", strings.Join(e.Categories, ", "))
	}
	fmt.Printf("    %s +%d \u2212%d \u0394blocks=%+d \u0394edges=%+d%s\n",
		label, e.Added, e.Removed, e.BlockDelta, e.EdgeDelta, tags)
}
