package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmissoh/stash-away/internal/backup"
	"github.com/dmissoh/stash-away/internal/tui"
)

// newRestoreCmd creates the restore command
func newRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <backup_name>",
		Short: "Restore a backup to a new local branch",
		Long: `Restore a backup to a new local branch.

The backup is fetched into a new branch named restore/<timestamp> and checked
out. The branch is left for you to inspect or merge; nothing is overwritten.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			label := args[0]
			if !force {
				restoreBranch := backup.RestoreBranchFor(label)
				confirmed, err := tui.PromptConfirm(
					fmt.Sprintf("This will create a new branch '%s' with the backup contents. Continue?", restoreBranch), false)
				if err != nil {
					return fmt.Errorf("confirmation required; pass --force to skip the prompt: %w", err)
				}
				if !confirmed {
					splog.Info("Restore cancelled.")
					return nil
				}
			}

			svc := newBackupService(splog)
			_, err := svc.Restore(cmd.Context(), label)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")

	return cmd
}
