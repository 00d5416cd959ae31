package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flow-dev/flow/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "flow",
		Short:   "Turn pasted financial notes into a categorized, reconciled ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newProcessCommand())
	rootCmd.AddCommand(newSummaryCommand())
	rootCmd.AddCommand(newDebtsCommand())

	return rootCmd
}
