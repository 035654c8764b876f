// Package archive creates compressed tar snapshots of the project directory.
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/internal/tui"
)

// NamePrefix is the file name prefix of every archive this tool writes
const NamePrefix = "stash-away-backup-"

// timestampFormat matches the timestamp used for backup labels
const timestampFormat = "2006-01-02_15-04-05"

// Builder writes full tar.gz snapshots of a directory. Inside a git work
// tree only files not excluded by ignore rules are archived; elsewhere the
// whole directory tree is.
type Builder struct {
	dir    string
	client git.Client
	splog  *tui.Splog
	now    func() time.Time
}

// Option customizes a Builder
type Option func(*Builder)

// WithClock overrides the clock used for archive names
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		b.now = now
	}
}

// WithSplog overrides the output logger
func WithSplog(splog *tui.Splog) Option {
	return func(b *Builder) {
		b.splog = splog
	}
}

// NewBuilder creates a Builder for dir
func NewBuilder(dir string, client git.Client, opts ...Option) *Builder {
	b := &Builder{
		dir:    dir,
		client: client,
		splog:  tui.NewSplog(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Create writes the archive into the builder's directory and returns its
// file name. Always a full snapshot, never incremental.
func (b *Builder) Create(ctx context.Context) (string, error) {
	name := NamePrefix + b.now().Format(timestampFormat) + ".tar.gz"
	path := filepath.Join(b.dir, name)

	var files []string
	if b.client.IsWorkTree(ctx) {
		listed, err := b.client.ListFiles(ctx)
		if err != nil {
			return "", stasherrors.NewArchiveError(name, err)
		}
		files = listed
	} else {
		b.splog.Warn("Not a git repository; archiving all files without ignore rules")
		walked, err := b.walkAll(name)
		if err != nil {
			return "", stasherrors.NewArchiveError(name, err)
		}
		files = walked
	}

	if len(files) == 0 {
		return "", stasherrors.NewArchiveError(name, fmt.Errorf("no files to archive"))
	}

	b.splog.Info("Creating archive: %s", name)
	if err := b.write(path, files); err != nil {
		// Best effort; the partial file is useless either way.
		_ = os.Remove(path)
		return "", stasherrors.NewArchiveError(name, err)
	}

	b.splog.Info("Successfully created archive: %s", name)
	return name, nil
}

// walkAll collects every path under the builder's directory, skipping only
// the in-progress archive file itself.
func (b *Builder) walkAll(archiveName string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(b.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.dir, path)
		if err != nil {
			return err
		}
		if rel == "." || rel == archiveName {
			return nil
		}
		if !d.IsDir() {
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// write streams the named files into a gzipped tarball at path
func (b *Builder) write(path string, files []string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	gzw := gzip.NewWriter(out)
	tw := tar.NewWriter(gzw)

	for _, file := range files {
		if file == "" {
			continue
		}
		if err := b.addFile(tw, file); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := gzw.Close(); err != nil {
		return err
	}
	return out.Close()
}

// addFile writes one file entry. Symlinks are stored as links, not followed.
func (b *Builder) addFile(tw *tar.Writer, file string) error {
	full := filepath.Join(b.dir, filepath.FromSlash(file))
	info, err := os.Lstat(full)
	if err != nil {
		return err
	}

	link := ""
	if info.Mode()&os.ModeSymlink != 0 {
		link, err = os.Readlink(full)
		if err != nil {
			return err
		}
	}

	header, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	header.Name = file

	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}

	f, err := os.Open(full)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(tw, f); err != nil {
		return err
	}
	return nil
}
