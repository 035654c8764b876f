// Package git provides a wrapper around the git binary for repository operations.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
)

// DefaultCommandTimeout is the default timeout for git commands
const DefaultCommandTimeout = 5 * time.Minute

// CommandRunner handles execution of git commands
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner rooted at workingDir.
// An empty workingDir runs commands in the process working directory.
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// WorkingDir returns the directory commands run in.
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// Run executes a git command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, true, args...)
}

// RunRaw executes a git command and returns the raw output (no trimming)
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, nil, false, args...)
}

// RunWithEnv executes a git command with extra environment variables layered
// over the process environment. The overlay lives only for this invocation.
func (r *CommandRunner) RunWithEnv(ctx context.Context, env []string, args ...string) (string, error) {
	return r.runInternal(ctx, env, true, args...)
}

// RunLines executes a git command and returns its output as lines
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// runInternal is the internal implementation that handles env overlay and trimming
func (r *CommandRunner) runInternal(ctx context.Context, env []string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", stasherrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), ctx.Err())
		}
		return "", stasherrors.NewGitCommandError("git", args, stdout.String(), stderr.String(), err)
	}
	if trim {
		return strings.TrimSpace(stdout.String()), nil
	}
	return stdout.String(), nil
}
