package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/testhelpers"
)

func TestClientConfig(t *testing.T) {
	scene := testhelpers.NewScene(t)
	client := git.NewClient(scene.Dir)
	ctx := context.Background()

	t.Run("unset keys read as empty without error", func(t *testing.T) {
		value, err := client.ConfigGet(ctx, "backup.url")
		require.NoError(t, err)
		require.Empty(t, value)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		require.NoError(t, client.ConfigSet(ctx, "backup.url", "git@example.com:backups/project.git"))
		value, err := client.ConfigGet(ctx, "backup.url")
		require.NoError(t, err)
		require.Equal(t, "git@example.com:backups/project.git", value)
	})
}

func TestClientIsWorkTree(t *testing.T) {
	scene := testhelpers.NewScene(t)
	ctx := context.Background()

	require.True(t, git.NewClient(scene.Dir).IsWorkTree(ctx))

	plainDir := t.TempDir()
	require.False(t, git.NewClient(plainDir).IsWorkTree(ctx))
}

func TestClientBranches(t *testing.T) {
	scene := testhelpers.NewScene(t)
	client := git.NewClient(scene.Dir)
	ctx := context.Background()

	t.Run("current branch", func(t *testing.T) {
		branch, err := client.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "main", branch)
	})

	t.Run("branch existence", func(t *testing.T) {
		exists, err := client.BranchExists(ctx, "main")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = client.BranchExists(ctx, "backup/2026-01-01_00-00-00")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("create checkout and delete", func(t *testing.T) {
		require.NoError(t, client.CreateAndCheckoutBranch(ctx, "backup/2026-01-01_00-00-00"))

		branch, err := client.CurrentBranch(ctx)
		require.NoError(t, err)
		require.Equal(t, "backup/2026-01-01_00-00-00", branch)

		require.NoError(t, client.CheckoutBranch(ctx, "main"))
		require.NoError(t, client.DeleteBranch(ctx, "backup/2026-01-01_00-00-00"))

		exists, err := client.BranchExists(ctx, "backup/2026-01-01_00-00-00")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("local branches filtered by prefix", func(t *testing.T) {
		require.NoError(t, client.CreateAndCheckoutBranch(ctx, "backup/2026-01-02_00-00-00"))
		require.NoError(t, client.CheckoutBranch(ctx, "main"))

		branches, err := client.LocalBranches(ctx, "backup/")
		require.NoError(t, err)
		require.Equal(t, []string{"backup/2026-01-02_00-00-00"}, branches)

		branches, err = client.LocalBranches(ctx, "")
		require.NoError(t, err)
		require.Contains(t, branches, "main")

		require.NoError(t, client.DeleteBranch(ctx, "backup/2026-01-02_00-00-00"))
	})
}

func TestClientWorkingTreeState(t *testing.T) {
	scene := testhelpers.NewScene(t)
	client := git.NewClient(scene.Dir)
	ctx := context.Background()

	t.Run("clean tree", func(t *testing.T) {
		dirty, err := client.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		require.False(t, dirty)
	})

	t.Run("stash push and pop restore untracked files", func(t *testing.T) {
		require.NoError(t, scene.Repo.CreateChange("work in progress", "wip", true))

		dirty, err := client.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		require.True(t, dirty)

		require.NoError(t, client.StashPush(ctx, "test stash"))
		dirty, err = client.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		require.False(t, dirty)

		require.NoError(t, client.StashPop(ctx))
		content, err := scene.Repo.ReadFile("wip_test.txt")
		require.NoError(t, err)
		require.Equal(t, "work in progress", content)
	})

	t.Run("stage all then commit", func(t *testing.T) {
		staged, err := client.HasStagedChanges(ctx)
		require.NoError(t, err)
		require.False(t, staged)

		require.NoError(t, client.StageAll(ctx))
		staged, err = client.HasStagedChanges(ctx)
		require.NoError(t, err)
		require.True(t, staged)

		require.NoError(t, client.Commit(ctx, "snapshot"))
		dirty, err := client.HasUncommittedChanges(ctx)
		require.NoError(t, err)
		require.False(t, dirty)
	})
}

func TestClientListFiles(t *testing.T) {
	scene := testhelpers.NewScene(t)
	client := git.NewClient(scene.Dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, ".gitignore"), []byte("*.log\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, "untracked.txt"), []byte("u"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, "debug.log"), []byte("x"), 0600))

	files, err := client.ListFiles(ctx)
	require.NoError(t, err)
	require.Contains(t, files, "initial_test.txt")
	require.Contains(t, files, "untracked.txt")
	require.Contains(t, files, ".gitignore")
	require.NotContains(t, files, "debug.log")
}

func TestClientRemoteOperations(t *testing.T) {
	scene := testhelpers.NewScene(t, testhelpers.WithBackupRepo())
	client := git.NewClient(scene.Dir)
	ctx := context.Background()

	t.Run("ls-remote on an empty destination", func(t *testing.T) {
		refs, err := client.LsRemoteHeads(ctx, nil, scene.BackupDir, "refs/heads/backup/*")
		require.NoError(t, err)
		require.Empty(t, refs)
	})

	t.Run("push then ls-remote", func(t *testing.T) {
		require.NoError(t, client.Push(ctx, nil, scene.BackupDir, "main:backup/2026-01-01_00-00-00"))

		refs, err := client.LsRemoteHeads(ctx, nil, scene.BackupDir, "refs/heads/backup/*")
		require.NoError(t, err)
		require.Equal(t, []string{"backup/2026-01-01_00-00-00"}, refs)
	})

	t.Run("fetch into a local branch", func(t *testing.T) {
		require.NoError(t, client.Fetch(ctx, nil, scene.BackupDir, "backup/2026-01-01_00-00-00:restore/2026-01-01_00-00-00"))

		exists, err := client.BranchExists(ctx, "restore/2026-01-01_00-00-00")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("ls-remote failure surfaces an error", func(t *testing.T) {
		_, err := client.LsRemoteHeads(ctx, nil, filepath.Join(scene.Dir, "no-such-remote.git"), "")
		require.Error(t, err)
	})
}

func TestClientDiffWorkingTree(t *testing.T) {
	scene := testhelpers.NewScene(t)
	client := git.NewClient(scene.Dir)
	ctx := context.Background()

	diff, err := client.DiffWorkingTree(ctx, "HEAD")
	require.NoError(t, err)
	require.Empty(t, diff)

	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, "initial_test.txt"), []byte("changed"), 0600))

	diff, err = client.DiffWorkingTree(ctx, "HEAD")
	require.NoError(t, err)
	require.Contains(t, diff, "initial_test.txt")
	require.Contains(t, diff, "+changed")
}
