package backup

import (
	"context"

	"github.com/dmissoh/stash-away/internal/tui"
)

// Status prints the backup configuration and repository state: destination,
// identity file, current branch, dirty/clean state, leftover temporary
// branches, and the latest backup on the destination when one is reachable.
func (s *Service) Status(ctx context.Context) error {
	cfg, err := s.loadConfig(ctx)
	if err != nil {
		return err
	}

	s.splog.Info("=== Stash-Away Status ===")
	s.splog.Newline()
	s.splog.Info("Configuration:")
	if cfg.URL != "" {
		s.splog.Info("  Backup URL: %s", cfg.URL)
	} else {
		s.splog.Info("  Backup URL: %s", tui.ColorDim("not configured (run: stash-away init <url>)"))
	}
	if cfg.IdentityFile != "" {
		s.splog.Info("  SSH identity: %s", cfg.IdentityFile)
	} else {
		s.splog.Info("  SSH identity: %s", tui.ColorDim("using default SSH configuration"))
	}

	currentBranch, err := s.client.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	dirty, err := s.client.HasUncommittedChanges(ctx)
	if err != nil {
		return err
	}

	s.splog.Newline()
	s.splog.Info("Repository:")
	s.splog.Info("  Current branch: %s", tui.ColorBranchName(currentBranch, true))
	if dirty {
		s.splog.Info("  Uncommitted changes: yes")
	} else {
		s.splog.Info("  Uncommitted changes: no")
	}

	leftovers, err := s.client.LocalBranches(ctx, BackupPrefix)
	if err != nil {
		return err
	}
	for _, leftover := range leftovers {
		s.splog.Warn("  Leftover branch %s from an interrupted backup; delete it with 'git branch -D %s'",
			tui.ColorBackupLabel(leftover), leftover)
	}

	if !cfg.IsConfigured() {
		return nil
	}

	s.splog.Newline()
	s.splog.Info("Fetching backup information...")
	labels, err := s.client.LsRemoteHeads(ctx, cfg.sshEnv(), cfg.URL, "refs/heads/"+BackupPrefix+"*")
	if err != nil {
		// An unreachable destination is worth knowing about, not fatal.
		s.splog.Warn("  Unable to reach the backup repository: %v", err)
		return nil
	}

	if len(labels) == 0 {
		s.splog.Info("  No backups found")
		return nil
	}

	last := labels[0]
	for _, label := range labels[1:] {
		if label > last {
			last = label
		}
	}
	s.splog.Info("  Last backup: %s", tui.ColorBackupLabel(last))
	s.splog.Info("  Total backups: %d", len(labels))

	return nil
}
