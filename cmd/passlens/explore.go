package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"passlens/internal/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [flags] dumpdir",
	Short: "Browse the pass timeline interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	model, _, err := runPipeline(cmd, args[0])
	if err != nil {
		return err
	}
	if model.Len() == 0 {
		return fmt.Errorf("nothing to explore: no functions in %s", args[0])
	}

	program := tea.NewProgram(ui.NewBrowser(model), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
