package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/flow-dev/flow/internal/catalog"
	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/gitops"
	"github.com/flow-dev/flow/internal/ledger"
	"github.com/flow-dev/flow/internal/parser"
	"github.com/flow-dev/flow/internal/runlog"
)

func newProcessCommand() *cobra.Command {
	var repoDir string
	var save bool

	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Classify a note into transaction records",
		Long: `Process reads a hand-written note (from a file or stdin), classifies each
line into a transaction record, and prints what it understood. With --save the
recognized records are appended to this month's snapshot; lines already saved
are skipped by fingerprint.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(repoDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runProcess(absDir, file, save, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "notes repository directory")
	cmd.Flags().BoolVar(&save, "save", false, "append recognized records to the monthly snapshot")

	return cmd
}

func runProcess(repoRoot, file string, save bool, stdin io.Reader, out io.Writer) error {
	cfg, err := config.Load(filepath.Join(repoRoot, config.FileName))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	text, source, err := readNote(file, stdin)
	if err != nil {
		return err
	}

	p, err := parser.New(cfg)
	if err != nil {
		return fmt.Errorf("building parser: %w", err)
	}
	result := p.Parse(text)

	for _, rec := range result.Recognized {
		annotation := rec.Detail
		if rec.Counterparty != "" {
			annotation = rec.Counterparty
		}
		fmt.Fprintf(out, "%-8s %-10s %10s  %s\n",
			rec.Date, rec.Category, cfg.Currency.Marker+rec.Amount.StringFixed(0), annotation)
	}
	fmt.Fprintf(out, "%d recognized\n", len(result.Recognized))

	if len(result.Unrecognized) > 0 {
		fmt.Fprintf(out, "%d lines were not understood:\n", len(result.Unrecognized))
		for _, line := range result.Unrecognized {
			fmt.Fprintf(out, "  ! %s\n", line)
		}
	}

	if !save {
		return nil
	}

	now := time.Now()
	store := ledger.NewService(repoRoot, catalog.FromConfig(cfg))
	saved, err := store.Append(result.Recognized, now)
	if err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	fmt.Fprintf(out, "saved %d new records (%d duplicates skipped)\n", saved.Added, saved.Duplicates)

	hash := ""
	if cfg.Git.AutoCommit && gitops.IsRepo(repoRoot) {
		dirty, err := gitops.HasChanges(repoRoot)
		if err != nil {
			return err
		}
		if dirty {
			msg := fmt.Sprintf("notes: save %s (%d records)", now.Format("2006-01"), saved.Added)
			hash, err = gitops.CommitAll(repoRoot, msg, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
			if err != nil {
				return fmt.Errorf("committing snapshot: %w", err)
			}
			fmt.Fprintf(out, "committed %s\n", hash)
		}
	}

	entry := runlog.Entry{
		Timestamp:    now,
		Source:       source,
		Recognized:   len(result.Recognized),
		Unrecognized: len(result.Unrecognized),
		Added:        saved.Added,
		Duplicates:   saved.Duplicates,
		CommitHash:   hash,
	}
	if err := runlog.Append(repoRoot, []runlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write process log: %v\n", err)
	}

	return nil
}

// readNote returns the note text and a source label for the run log.
func readNote(file string, stdin io.Reader) (text, source string, err error) {
	if file == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", fmt.Errorf("reading note %s: %w", file, err)
	}
	return string(data), filepath.Base(file), nil
}
