package testhelpers

import (
	"os"
	"path/filepath"
	"testing"
)

// Scene is a test scenario holding a real git repository and, optionally, a
// bare backup destination. The current working directory is switched to the
// repository for the duration of the test.
type Scene struct {
	Dir       string
	Repo      *GitRepo
	BackupDir string
}

// SceneOption configures a Scene.
type SceneOption func(*sceneConfig)

type sceneConfig struct {
	withBackup bool
	setup      func(*GitRepo) error
}

// WithBackupRepo creates a bare backup repository and configures backup.url
// to point at it.
func WithBackupRepo() SceneOption {
	return func(c *sceneConfig) {
		c.withBackup = true
	}
}

// WithSetup runs a setup function against the repository after creation.
func WithSetup(fn func(*GitRepo) error) SceneOption {
	return func(c *sceneConfig) {
		c.setup = fn
	}
}

// NewScene creates a temporary git repository with an initial commit, changes
// into it and registers cleanup to restore the working directory.
func NewScene(t *testing.T, opts ...SceneOption) *Scene {
	t.Helper()

	var cfg sceneConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	dir, err := os.MkdirTemp("", "stash-away-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	// Resolve symlinks so paths reported by git match (macOS /tmp).
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}

	if err := repo.CreateChangeAndCommit("initial", "initial"); err != nil {
		t.Fatalf("failed to create initial commit: %v", err)
	}

	scene := &Scene{Dir: dir, Repo: repo}

	if cfg.withBackup {
		backupDir, err := repo.CreateBareBackupRepo("backup")
		if err != nil {
			t.Fatalf("failed to create backup repo: %v", err)
		}
		if err := repo.RunGitCommand("config", "backup.url", backupDir); err != nil {
			t.Fatalf("failed to configure backup url: %v", err)
		}
		scene.BackupDir = backupDir
	}

	if cfg.setup != nil {
		if err := cfg.setup(repo); err != nil {
			t.Fatalf("scene setup failed: %v", err)
		}
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change dir: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(originalDir)
		_ = os.RemoveAll(dir)
		if scene.BackupDir != "" {
			_ = os.RemoveAll(scene.BackupDir)
		}
	})

	return scene
}
