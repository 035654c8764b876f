package git

import (
	"context"
	goerrors "errors"
	"fmt"
	"os/exec"
	"strings"
)

// Client defines the narrow set of git operations the backup workflow needs.
// This allows the orchestrator to be used with both the real git binary and
// fake implementations in tests.
type Client interface {
	// Repository and config
	IsWorkTree(ctx context.Context) bool
	ConfigGet(ctx context.Context, key string) (string, error)
	ConfigSet(ctx context.Context, key, value string) error

	// Branch management
	CurrentBranch(ctx context.Context) (string, error)
	BranchExists(ctx context.Context, branchName string) (bool, error)
	LocalBranches(ctx context.Context, prefix string) ([]string, error)
	CreateAndCheckoutBranch(ctx context.Context, branchName string) error
	CheckoutBranch(ctx context.Context, branchName string) error
	DeleteBranch(ctx context.Context, branchName string) error

	// Working tree state
	HasUncommittedChanges(ctx context.Context) (bool, error)
	StashPush(ctx context.Context, message string) error
	StashApply(ctx context.Context) error
	StashPop(ctx context.Context) error
	StageAll(ctx context.Context) error
	HasStagedChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) error
	ListFiles(ctx context.Context) ([]string, error)

	// Destination operations. env is an environment overlay applied for the
	// duration of the call only, used to inject the SSH identity file.
	Push(ctx context.Context, env []string, url, refspec string) error
	Fetch(ctx context.Context, env []string, url, refspec string) error
	LsRemoteHeads(ctx context.Context, env []string, url, pattern string) ([]string, error)

	// Diff between the working tree and a revision, raw output
	DiffWorkingTree(ctx context.Context, revision string) (string, error)
}

// NewClient returns a Client backed by the git binary, rooted at repoRoot.
func NewClient(repoRoot string) Client {
	return &execClient{runner: NewCommandRunner(repoRoot)}
}

// execClient implements Client by shelling out through a CommandRunner
type execClient struct {
	runner *CommandRunner
}

// exitCode extracts the process exit code from a failed command, or -1
// when the command did not run at all.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if goerrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (c *execClient) IsWorkTree(ctx context.Context) bool {
	output, err := c.runner.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && output == "true"
}

func (c *execClient) ConfigGet(ctx context.Context, key string) (string, error) {
	output, err := c.runner.Run(ctx, "config", "--get", key)
	if err != nil {
		// git config --get exits 1 when the key is unset
		if exitCode(err) == 1 {
			return "", nil
		}
		return "", err
	}
	return output, nil
}

func (c *execClient) ConfigSet(ctx context.Context, key, value string) error {
	_, err := c.runner.Run(ctx, "config", key, value)
	if err != nil {
		return fmt.Errorf("failed to set config %s: %w", key, err)
	}
	return nil
}

func (c *execClient) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.runner.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return output, nil
}

func (c *execClient) BranchExists(ctx context.Context, branchName string) (bool, error) {
	_, err := c.runner.Run(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branchName)
	if err != nil {
		if exitCode(err) == 1 {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *execClient) LocalBranches(ctx context.Context, prefix string) ([]string, error) {
	args := []string{"for-each-ref", "--format=%(refname:short)"}
	if prefix != "" {
		args = append(args, "refs/heads/"+prefix)
	} else {
		args = append(args, "refs/heads")
	}
	return c.runner.RunLines(ctx, args...)
}

func (c *execClient) CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	_, err := c.runner.Run(ctx, "checkout", "-b", branchName)
	if err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

func (c *execClient) CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := c.runner.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

func (c *execClient) DeleteBranch(ctx context.Context, branchName string) error {
	_, err := c.runner.Run(ctx, "branch", "-D", branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

func (c *execClient) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := c.runner.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return output != "", nil
}

func (c *execClient) StashPush(ctx context.Context, message string) error {
	args := []string{"stash", "push", "-u"}
	if message != "" {
		args = append(args, "-m", message)
	}
	if _, err := c.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("stash push failed: %w", err)
	}
	return nil
}

func (c *execClient) StashApply(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "stash", "apply"); err != nil {
		return fmt.Errorf("stash apply failed: %w", err)
	}
	return nil
}

func (c *execClient) StashPop(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "stash", "pop"); err != nil {
		return fmt.Errorf("stash pop failed: %w", err)
	}
	return nil
}

func (c *execClient) StageAll(ctx context.Context) error {
	if _, err := c.runner.Run(ctx, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

func (c *execClient) HasStagedChanges(ctx context.Context) (bool, error) {
	_, err := c.runner.Run(ctx, "diff", "--cached", "--quiet")
	if err != nil {
		// diff --quiet exits 1 when there are staged changes
		if exitCode(err) == 1 {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func (c *execClient) Commit(ctx context.Context, message string) error {
	if _, err := c.runner.Run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func (c *execClient) ListFiles(ctx context.Context) ([]string, error) {
	return c.runner.RunLines(ctx, "ls-files", "-c", "-o", "--exclude-standard")
}

func (c *execClient) Push(ctx context.Context, env []string, url, refspec string) error {
	if _, err := c.runner.RunWithEnv(ctx, env, "push", url, refspec); err != nil {
		return fmt.Errorf("failed to push %s: %w", refspec, err)
	}
	return nil
}

func (c *execClient) Fetch(ctx context.Context, env []string, url, refspec string) error {
	if _, err := c.runner.RunWithEnv(ctx, env, "fetch", "--no-tags", url, refspec); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", refspec, err)
	}
	return nil
}

func (c *execClient) LsRemoteHeads(ctx context.Context, env []string, url, pattern string) ([]string, error) {
	args := []string{"ls-remote", "--heads", url}
	if pattern != "" {
		args = append(args, pattern)
	}
	output, err := c.runner.RunWithEnv(ctx, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query backup repository: %w", err)
	}
	if output == "" {
		return []string{}, nil
	}

	// Each line is "<sha>\t<refname>"
	var names []string
	for _, line := range strings.Split(output, "\n") {
		_, ref, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		names = append(names, strings.TrimPrefix(ref, "refs/heads/"))
	}
	return names, nil
}

func (c *execClient) DiffWorkingTree(ctx context.Context, revision string) (string, error) {
	output, err := c.runner.RunRaw(ctx, "diff", revision)
	if err != nil {
		return "", fmt.Errorf("failed to diff against %s: %w", revision, err)
	}
	return output, nil
}
