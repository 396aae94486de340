// Package main implements the passlens CLI.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"passlens/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "passlens",
	Short: "Inspect how a compiler transforms a function across optimization passes",
	Long: `Passlens parses the per-pass dump files GCC emits with -fdump-tree-all
and -fdump-rtl-all, reconstructs each function's control-flow graph at every
pass, and categorizes what changed between consecutive passes.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(cfgCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel per-function pipelines (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per function")
	rootCmd.PersistentFlags().String("rules", "", "path to a TOML categorizer rule table")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the output's terminal-ness and
// flips fatih/color's global switch to match.
func useColor(cmd *cobra.Command, out *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	on := flag == "on" || (flag == "auto" && isTerminal(out))
	color.NoColor = !on
	return on
}
