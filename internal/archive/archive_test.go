package archive_test

import (
	"archive/tar"
	"compress/gzip"
	"context"
	goerrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmissoh/stash-away/internal/archive"
	stasherrors "github.com/dmissoh/stash-away/internal/errors"
	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/internal/tui"
	"github.com/dmissoh/stash-away/testhelpers"
)

func quietSplog(t *testing.T) *tui.Splog {
	t.Helper()
	splog, err := tui.NewSplogWithConfig(io.Discard, "")
	require.NoError(t, err)
	return splog
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// readTarball returns the file names and contents of a tar.gz archive.
func readTarball(t *testing.T, path string) map[string]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	gzr, err := gzip.NewReader(f)
	require.NoError(t, err)

	entries := map[string]string{}
	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		var content []byte
		if header.Typeflag == tar.TypeReg {
			content, err = io.ReadAll(tr)
			require.NoError(t, err)
		}
		entries[header.Name] = string(content)
	}
	return entries
}

func TestCreateInRepository(t *testing.T) {
	scene := testhelpers.NewScene(t)
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, ".gitignore"), []byte("*.log\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, "untracked.txt"), []byte("untracked"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(scene.Dir, "debug.log"), []byte("noise"), 0600))

	builder := archive.NewBuilder(scene.Dir, git.NewClient(scene.Dir),
		archive.WithSplog(quietSplog(t)),
		archive.WithClock(fixedClock(at)))

	name, err := builder.Create(context.Background())
	require.NoError(t, err)
	require.Equal(t, "stash-away-backup-2026-03-14_09-26-53.tar.gz", name)

	entries := readTarball(t, filepath.Join(scene.Dir, name))
	require.Contains(t, entries, "initial_test.txt")
	require.Equal(t, "untracked", entries["untracked.txt"])
	require.Contains(t, entries, ".gitignore")
	require.NotContains(t, entries, "debug.log")
	require.NotContains(t, entries, name)
}

func TestCreateOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.txt"), []byte("b"), 0600))

	builder := archive.NewBuilder(dir, git.NewClient(dir),
		archive.WithSplog(quietSplog(t)),
		archive.WithClock(fixedClock(at)))

	name, err := builder.Create(context.Background())
	require.NoError(t, err)

	entries := readTarball(t, filepath.Join(dir, name))
	require.Equal(t, "a", entries["a.txt"])
	require.Equal(t, "b", entries["nested/b.txt"])
	require.NotContains(t, entries, name)
}

func TestCreateEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	builder := archive.NewBuilder(dir, git.NewClient(dir), archive.WithSplog(quietSplog(t)))

	_, err := builder.Create(context.Background())
	require.Error(t, err)

	var archiveErr *stasherrors.ArchiveError
	require.True(t, goerrors.As(err, &archiveErr))
}

func TestCreatePreservesSymlinks(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "target.txt"), []byte("t"), 0600))
	require.NoError(t, os.Symlink("target.txt", filepath.Join(dir, "link.txt")))

	builder := archive.NewBuilder(dir, git.NewClient(dir), archive.WithSplog(quietSplog(t)))

	name, err := builder.Create(context.Background())
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, name))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	gzr, err := gzip.NewReader(f)
	require.NoError(t, err)

	found := false
	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if header.Name == "link.txt" {
			found = true
			require.Equal(t, byte(tar.TypeSymlink), header.Typeflag)
			require.Equal(t, "target.txt", header.Linkname)
		}
	}
	require.True(t, found)
}
