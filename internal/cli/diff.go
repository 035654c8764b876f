package cli

import (
	"github.com/spf13/cobra"
)

// newDiffCmd creates the diff command
func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <backup_name>",
		Short: "Compare the current project state with a backup",
		Long: `Compare the current project state with a backup.

The backup ref is fetched without creating a local branch, and the diff
between the working tree and the snapshot is printed.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			svc := newBackupService(splog)
			return svc.Diff(cmd.Context(), args[0])
		},
	}
}
