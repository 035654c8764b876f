package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmissoh/stash-away/internal/tui"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Back up the current working state to the backup repository",
		Long: `Back up the current working state to the backup repository.

Creates a temporary branch named backup/<timestamp>, commits the full state
of the working tree onto it (including untracked files, respecting ignore
rules), pushes it to the configured backup URL, and returns to the original
branch. The temporary branch never survives the command.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			svc := newBackupService(splog)
			label, err := svc.Push(cmd.Context())
			if err != nil {
				return err
			}

			splog.Info("Backup complete!")
			splog.Info("Your changes are safely stored in branch %s in your backup repository.", tui.ColorBackupLabel(label))
			return nil
		},
	}
}
