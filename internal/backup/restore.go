package backup

import (
	"context"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
	"github.com/dmissoh/stash-away/internal/tui"
)

// Restore fetches the named backup and materializes it as a new local branch
// named restore/<timestamp>, checked out for the user to inspect or merge.
// It never overwrites an existing branch. Returns the restore branch name.
func (s *Service) Restore(ctx context.Context, label string) (string, error) {
	cfg, err := s.requireConfig(ctx)
	if err != nil {
		return "", err
	}

	if _, err := ParseBackupLabel(label); err != nil {
		return "", err
	}

	restoreBranch := RestoreBranchFor(label)
	exists, err := s.client.BranchExists(ctx, restoreBranch)
	if err != nil {
		return "", err
	}
	if exists {
		return "", stasherrors.NewRestoreBranchExistsError(restoreBranch)
	}

	if err := s.ensureBackupExists(ctx, cfg, label); err != nil {
		return "", err
	}

	s.splog.Info("Fetching and restoring %s to a new local branch: %s", label, tui.ColorBranchName(restoreBranch, false))
	if err := s.client.Fetch(ctx, cfg.sshEnv(), cfg.URL, label+":"+restoreBranch); err != nil {
		return "", err
	}

	if err := s.client.CheckoutBranch(ctx, restoreBranch); err != nil {
		return "", err
	}

	s.splog.Info("Successfully restored backup.")
	s.splog.Info("Your project is now on branch %s with the contents of %s.", tui.ColorBranchName(restoreBranch, true), label)
	s.splog.Info("Review the changes, commit, or switch back to your main branch.")

	return restoreBranch, nil
}
