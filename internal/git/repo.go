package git

import (
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v5"
)

// GetRepoRoot returns the root directory of the Git repository containing
// the current working directory.
func GetRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return FindRepoRoot(wd)
}

// FindRepoRoot returns the root directory of the Git repository containing dir.
func FindRepoRoot(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to get worktree: %w", err)
	}

	return worktree.Filesystem.Root(), nil
}
