package backup

import (
	"context"
	"slices"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
	"github.com/dmissoh/stash-away/internal/tui"
)

// Push snapshots the working tree onto a timestamped branch and pushes it to
// the backup repository. The caller is returned to the branch that was
// current before the call, with the working tree restored, whether the push
// succeeds or fails; the temporary local branch never survives the call.
// Returns the backup label on success.
func (s *Service) Push(ctx context.Context) (label string, err error) {
	cfg, err := s.requireConfig(ctx)
	if err != nil {
		return "", err
	}

	// A prior interrupted run can leave temporary branches behind. Report
	// them instead of silently working around them.
	leftovers, err := s.client.LocalBranches(ctx, BackupPrefix)
	if err != nil {
		return "", err
	}
	for _, leftover := range leftovers {
		s.splog.Warn("Found leftover branch %s from an interrupted backup; delete it with 'git branch -D %s'",
			tui.ColorBackupLabel(leftover), leftover)
	}

	originalBranch, err := s.client.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}

	timestamp := s.now().Format(TimestampFormat)
	backupBranch := BackupPrefix + timestamp

	// Labels have second granularity; never overwrite an existing one.
	if slices.Contains(leftovers, backupBranch) {
		return "", stasherrors.NewBackupExistsError(backupBranch)
	}
	remoteRefs, err := s.client.LsRemoteHeads(ctx, cfg.sshEnv(), cfg.URL, "refs/heads/"+backupBranch)
	if err != nil {
		return "", err
	}
	if len(remoteRefs) > 0 {
		return "", stasherrors.NewBackupExistsError(backupBranch)
	}

	s.splog.Info("Starting backup to %s", cfg.URL)
	s.splog.Info("Current branch: %s", tui.ColorBranchName(originalBranch, true))
	s.splog.Info("Creating backup branch: %s", tui.ColorBackupLabel(backupBranch))

	dirty, err := s.client.HasUncommittedChanges(ctx)
	if err != nil {
		return "", err
	}

	stashed := false
	if dirty {
		if err := s.client.StashPush(ctx, "stash-away backup for "+backupBranch); err != nil {
			return "", err
		}
		stashed = true
		s.splog.Info("Stashed uncommitted changes")
	}

	if err := s.client.CreateAndCheckoutBranch(ctx, backupBranch); err != nil {
		// Still on the original branch; put the working tree back.
		if stashed {
			if popErr := s.client.StashPop(ctx); popErr != nil {
				s.splog.Error("Failed to restore stashed changes: %v", popErr)
			}
		}
		return "", err
	}

	defer func() {
		// Cleanup is unconditional once the temporary branch exists: return
		// to the original branch, restore the working tree, delete the
		// temporary branch. The first error wins; cleanup failures are
		// reported but never mask it.
		if cleanupErr := s.client.CheckoutBranch(ctx, originalBranch); cleanupErr != nil {
			if err == nil {
				err = cleanupErr
			} else {
				s.splog.Error("Cleanup failed: %v", cleanupErr)
			}
		} else if stashed {
			if popErr := s.client.StashPop(ctx); popErr != nil {
				if err == nil {
					err = popErr
				} else {
					s.splog.Error("Failed to restore stashed changes: %v", popErr)
				}
			}
		}
		if cleanupErr := s.client.DeleteBranch(ctx, backupBranch); cleanupErr != nil {
			if err == nil {
				err = cleanupErr
			} else {
				s.splog.Error("Cleanup failed: %v", cleanupErr)
			}
		}
		if err == nil {
			s.splog.Info("Returned to branch %s and deleted the local backup branch.", tui.ColorBranchName(originalBranch, true))
		}
	}()

	if stashed {
		// Apply rather than pop so the stash entry survives for the cleanup
		// pop on the original branch.
		if err = s.client.StashApply(ctx); err != nil {
			return "", err
		}
		s.splog.Info("Applied stashed changes to the backup branch")
	}

	if err = s.client.StageAll(ctx); err != nil {
		return "", err
	}
	staged, err := s.client.HasStagedChanges(ctx)
	if err != nil {
		return "", err
	}
	if staged {
		if err = s.client.Commit(ctx, "Backup snapshot: "+timestamp); err != nil {
			return "", err
		}
		s.splog.Info("Committed all changes to the backup branch")
	}

	s.splog.Info("Pushing to backup repository at %s...", cfg.URL)
	if err = s.client.Push(ctx, cfg.sshEnv(), cfg.URL, backupBranch+":"+backupBranch); err != nil {
		return "", err
	}
	s.splog.Info("Push successful.")

	return backupBranch, nil
}
