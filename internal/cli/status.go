package cli

import (
	"github.com/spf13/cobra"
)

// newStatusCmd creates the status command
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "status",
		Short:        "Show backup configuration and repository status",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			svc := newBackupService(splog)
			return svc.Status(cmd.Context())
		},
	}
}
