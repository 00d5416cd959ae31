// Package gitops shells out to git so that every saved snapshot leaves a
// commit behind in the notes repo.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// HasChanges reports whether the working tree has anything to commit.
func HasChanges(dir string) (bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// CommitAll stages all files and creates a commit. Returns the short commit
// hash.
func CommitAll(dir, message, authorName, authorEmail string) (string, error) {
	author := fmt.Sprintf("%s <%s>", authorName, authorEmail)

	add := exec.Command("git", "add", "-A")
	add.Dir = dir
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	commit := exec.Command("git", "commit", "-m", message, "--author", author)
	commit.Dir = dir
	// Commits must work without a global git identity.
	commit.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+authorName,
		"GIT_COMMITTER_EMAIL="+authorEmail,
	)
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := exec.Command("git", "rev-parse", "--short", "HEAD")
	rev.Dir = dir
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
