package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flow-dev/flow/internal/reconcile"
)

func newDebtsCommand() *cobra.Command {
	var repoDir string
	var month string

	cmd := &cobra.Command{
		Use:   "debts",
		Short: "Show who owes what, reconciled against money received",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runDebts(absDir, month, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "notes repository directory")
	cmd.Flags().StringVar(&month, "month", "", "restrict to one month (YYYY-MM)")

	return cmd
}

func runDebts(repoRoot, month string, out io.Writer) error {
	cfg, records, err := loadRecords(repoRoot, month)
	if err != nil {
		return err
	}

	l := reconcile.Reconcile(records)
	if len(l.Entries) == 0 {
		fmt.Fprintln(out, "no lending records")
		return nil
	}

	marker := cfg.Currency.Marker
	for _, e := range l.Entries {
		status := fmt.Sprintf("owes %s", marker+e.Balance.StringFixed(0))
		switch {
		case e.Balance.IsZero():
			status = "settled"
		case e.Balance.IsNegative():
			status = fmt.Sprintf("over-repaid %s", marker+e.Balance.Neg().StringFixed(0))
		}
		fmt.Fprintf(out, "%-12s lent %10s  received %10s  settled %10s  %s\n",
			e.DisplayName, marker+e.Lent.StringFixed(0), marker+e.Received.StringFixed(0),
			marker+e.Settled.StringFixed(0), status)
	}

	fmt.Fprintf(out, "\ntotal lent %s, settled %s (%s%% recovered)\n",
		marker+l.TotalLent.StringFixed(0), marker+l.TotalSettled.StringFixed(0), l.RecoveryRate().String())
	return nil
}
