package cli

import (
	"github.com/spf13/cobra"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var identityFile string

	cmd := &cobra.Command{
		Use:   "init <url>",
		Short: "Initialize the backup repository URL for the project",
		Long: `Initialize the backup repository URL for the project.

The URL and the optional SSH identity file are stored in the repository's
local git config under backup.url and backup.identityFile. Re-running init
overwrites the URL; the identity file is only changed when --identity-file
is given.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			svc := newBackupService(splog)
			return svc.Init(cmd.Context(), args[0], identityFile)
		},
	}

	cmd.Flags().StringVar(&identityFile, "identity-file", "", "Path to the SSH private key to use for the backup repository (e.g. ~/.ssh/id_rsa_personal)")

	return cmd
}
