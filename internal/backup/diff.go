package backup

import (
	"context"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
)

// Diff prints the content diff between the working tree and the named backup.
// The backup ref is fetched into FETCH_HEAD only; no local branch is created.
func (s *Service) Diff(ctx context.Context, label string) error {
	cfg, err := s.requireConfig(ctx)
	if err != nil {
		return err
	}

	if _, err := ParseBackupLabel(label); err != nil {
		return err
	}

	if err := s.ensureBackupExists(ctx, cfg, label); err != nil {
		return err
	}

	s.splog.Info("Fetching %s to compare...", label)
	if err := s.client.Fetch(ctx, cfg.sshEnv(), cfg.URL, label); err != nil {
		return err
	}

	diff, err := s.client.DiffWorkingTree(ctx, "FETCH_HEAD")
	if err != nil {
		return err
	}

	s.splog.Info("--- Diff between current working directory and %s ---", label)
	s.splog.Page(diff)
	s.splog.Info("--- End of diff ---")

	return nil
}

// ensureBackupExists verifies that the named backup exists on the destination
func (s *Service) ensureBackupExists(ctx context.Context, cfg Config, label string) error {
	refs, err := s.client.LsRemoteHeads(ctx, cfg.sshEnv(), cfg.URL, "refs/heads/"+label)
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		return stasherrors.NewBackupNotFoundError(label)
	}
	return nil
}
