package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"passlens/internal/version"
)

var versionShowFull bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the passlens version",
	Run:   runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "include commit hash and build date")
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("passlens %s\n", version.Version)
	if !versionShowFull {
		return
	}
	if version.GitCommit != "" {
		fmt.Printf("commit: %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Printf("built:  %s\n", version.BuildDate)
	}
}
