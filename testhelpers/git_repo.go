// Package testhelpers provides real temporary git repositories and bare
// backup destinations for tests.
package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo represents a Git repository for testing purposes.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory using 'git init'.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	// Use git -c flags to avoid reading global config and set local configs
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Configure Git user (required for commits)
	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// runGitCommand executes a git command in the repository directory.
// Uses GIT_CONFIG_GLOBAL=/dev/null to avoid reading global config.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange writes a test file. When unstaged is false the file is staged.
func (r *GitRepo) CreateChange(textValue string, prefix string, unstaged bool) error {
	fileName := textFileName
	if prefix != "" {
		fileName = prefix + "_" + fileName
	}
	filePath := filepath.Join(r.Dir, fileName)

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(filePath, []byte(textValue), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if !unstaged {
		return r.runGitCommand("add", filePath)
	}

	return nil
}

// CreateChangeAndCommit creates a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(textValue string, prefix string) error {
	if err := r.CreateChange(textValue, prefix, false); err != nil {
		return err
	}
	if err := r.runGitCommand("add", "."); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", textValue)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", name)
}

// DeleteBranch deletes a branch.
func (r *GitRepo) DeleteBranch(name string) error {
	return r.runGitCommand("branch", "-D", name)
}

// CurrentBranchName returns the name of the currently checked out branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.RunGitCommandAndGetOutput("rev-parse", "--abbrev-ref", "HEAD")
}

// GetLocalBranches returns all local branch names.
func (r *GitRepo) GetLocalBranches() ([]string, error) {
	output, err := r.RunGitCommandAndGetOutput("for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// HasUncommittedChanges reports whether the working tree or index is dirty.
func (r *GitRepo) HasUncommittedChanges() (bool, error) {
	output, err := r.RunGitCommandAndGetOutput("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return output != "", nil
}

// ReadFile returns the content of a file in the repository.
func (r *GitRepo) ReadFile(name string) (string, error) {
	content, err := os.ReadFile(filepath.Join(r.Dir, name))
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// CreateBareBackupRepo creates a bare repository as a sibling directory and
// returns its path. The path doubles as the backup destination URL; no named
// remote is registered.
func (r *GitRepo) CreateBareBackupRepo(name string) (string, error) {
	bareDir := r.Dir + "-" + name + ".git"

	cmd := exec.Command("git", "init", "--bare", bareDir)
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to create bare repo: %w", err)
	}

	return bareDir, nil
}

// ListHeads returns the branch names present in a bare repository.
func ListHeads(bareDir string) ([]string, error) {
	cmd := exec.Command("git", "--git-dir="+bareDir, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list heads: %w", err)
	}
	return splitLines(strings.TrimSpace(string(output))), nil
}

// splitLines splits output into lines, returning an empty slice for empty output.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
