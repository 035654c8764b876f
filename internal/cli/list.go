package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmissoh/stash-away/internal/tui"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List all backups in the backup repository",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			svc := newBackupService(splog)
			labels, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			renderBackupList(splog, labels)
			return nil
		},
	}
}

// renderBackupList prints the labels, shared by the one-shot command and the menu
func renderBackupList(splog *tui.Splog, labels []string) {
	if len(labels) == 0 {
		splog.Info("No backups found.")
		return
	}
	splog.Info("Available backups:")
	for _, label := range labels {
		splog.Info("  - %s", tui.ColorBackupLabel(label))
	}
}
