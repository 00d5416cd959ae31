package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flow-dev/flow/internal/config"
	"github.com/flow-dev/flow/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new notes repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "notebook name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(dir, name string) error {
	// Create directory structure.
	dirs := []string{
		"notes",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write flow.yaml.
	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write .gitignore.
	gitignore := "exports/\n.flow-cache/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write notes/.gitkeep so the empty tree survives the first commit.
	if err := os.WriteFile(filepath.Join(dir, "notes", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: Initialize "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized Flow notebook at %s (%s)\n", dir, hash)
	return nil
}
