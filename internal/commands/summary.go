package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/flow-dev/flow/internal/catalog"
	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/ledger"
	"github.com/flow-dev/flow/internal/model"
	"github.com/flow-dev/flow/internal/reconcile"
	"github.com/flow-dev/flow/internal/report"
)

func newSummaryCommand() *cobra.Command {
	var repoDir string
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-category totals and adjusted headline numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runSummary(absDir, month, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "notes repository directory")
	cmd.Flags().StringVar(&month, "month", "", "restrict to one month (YYYY-MM)")

	return cmd
}

func runSummary(repoRoot, month string, out io.Writer) error {
	cfg, records, err := loadRecords(repoRoot, month)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no saved records")
		return nil
	}

	marker := cfg.Currency.Marker
	groups := report.SortedByTotal(report.ByCategory(records))

	grand := report.Overall(records)
	spent := grand.Expense
	for _, g := range groups {
		share := report.Percent(g.Total, spent)
		if g.Direction == model.DirectionIncome {
			share = report.Percent(g.Total, grand.Income)
		}
		fmt.Fprintf(out, "%-10s %-8s %10s  %3s%%  (%d items)\n",
			g.Category, g.Direction, marker+g.Total.StringFixed(0), share.String(), len(g.Items))
	}

	settled := reconcile.Reconcile(records).TotalSettled
	adjusted := grand.Adjusted(settled)

	fmt.Fprintf(out, "\nincome   %10s  adjusted %10s\n", marker+grand.Income.StringFixed(0), marker+adjusted.Income.StringFixed(0))
	fmt.Fprintf(out, "expense  %10s  adjusted %10s\n", marker+grand.Expense.StringFixed(0), marker+adjusted.Expense.StringFixed(0))
	fmt.Fprintf(out, "net      %10s\n", marker+grand.Net.StringFixed(0))
	return nil
}

// loadRecords reads the saved record collection, optionally restricted to a
// single YYYY-MM month.
func loadRecords(repoRoot, month string) (*config.Config, []model.TransactionRecord, error) {
	cfg, err := config.Load(filepath.Join(repoRoot, config.FileName))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store := ledger.NewService(repoRoot, catalog.FromConfig(cfg))

	var stored []ledger.StoredRecord
	if month == "" {
		stored, err = store.ReadAll()
	} else {
		var when time.Time
		when, err = time.Parse("2006-01", month)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
		}
		stored, err = store.ReadMonth(when.Year(), int(when.Month()))
	}
	if err != nil {
		return nil, nil, err
	}

	return cfg, ledger.Transactions(stored), nil
}
