package git_test

import (
	"context"
	goerrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/testhelpers"
)

func TestCommandRunnerRun(t *testing.T) {
	scene := testhelpers.NewScene(t)
	runner := git.NewCommandRunner(scene.Dir)

	t.Run("returns trimmed output", func(t *testing.T) {
		output, err := runner.Run(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")
		require.NoError(t, err)
		require.Equal(t, "main", output)
	})

	t.Run("failed commands return a GitCommandError with stderr", func(t *testing.T) {
		_, err := runner.Run(context.Background(), "checkout", "no-such-branch")
		require.Error(t, err)

		var cmdErr *stasherrors.GitCommandError
		require.True(t, goerrors.As(err, &cmdErr))
		require.Equal(t, []string{"checkout", "no-such-branch"}, cmdErr.Args)
		require.NotEmpty(t, cmdErr.Stderr)
	})

	t.Run("honors context deadlines", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()

		_, err := runner.Run(ctx, "status")
		require.Error(t, err)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestCommandRunnerRunLines(t *testing.T) {
	scene := testhelpers.NewScene(t)
	runner := git.NewCommandRunner(scene.Dir)

	t.Run("splits output into lines", func(t *testing.T) {
		require.NoError(t, scene.Repo.CreateAndCheckoutBranch("feature"))
		require.NoError(t, scene.Repo.CheckoutBranch("main"))

		lines, err := runner.RunLines(context.Background(), "for-each-ref", "--format=%(refname:short)", "refs/heads")
		require.NoError(t, err)
		require.Equal(t, []string{"feature", "main"}, lines)
	})

	t.Run("empty output yields an empty slice", func(t *testing.T) {
		lines, err := runner.RunLines(context.Background(), "for-each-ref", "--format=%(refname:short)", "refs/heads/nope")
		require.NoError(t, err)
		require.Empty(t, lines)
	})
}

func TestCommandRunnerRunWithEnv(t *testing.T) {
	scene := testhelpers.NewScene(t)
	runner := git.NewCommandRunner(scene.Dir)

	env := []string{
		"GIT_AUTHOR_NAME=Overlay User",
		"GIT_AUTHOR_EMAIL=overlay@example.com",
	}
	output, err := runner.RunWithEnv(context.Background(), env, "var", "GIT_AUTHOR_IDENT")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(output, "Overlay User <overlay@example.com>"))

	// The overlay must not leak into later invocations.
	output, err = runner.Run(context.Background(), "var", "GIT_AUTHOR_IDENT")
	require.NoError(t, err)
	require.False(t, strings.Contains(output, "Overlay User"))
}

func TestCommandRunnerRunRaw(t *testing.T) {
	scene := testhelpers.NewScene(t)
	runner := git.NewCommandRunner(scene.Dir)

	raw, err := runner.RunRaw(context.Background(), "rev-parse", "--abbrev-ref", "HEAD")
	require.NoError(t, err)
	require.Equal(t, "main\n", raw)
}
