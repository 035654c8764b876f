// Package cli wires the command surface: one cobra command per backup
// operation, plus the interactive menu.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmissoh/stash-away/internal/backup"
	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/internal/tui"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stash-away",
		Short: "Back up a project to a personal Git repository or a local archive",
		Long: `Stash-away snapshots the working state of a project into a timestamped
branch pushed to a separate backup repository, or into a local compressed
archive. Backups are out-of-band: the project's primary remote is never
touched.`,
	}

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newPushCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newRestoreCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// newSplog creates the logger used by all commands, with file logging when
// the log directory is writable.
func newSplog() *tui.Splog {
	splog, err := tui.NewSplogWithConfig(os.Stdout, tui.GetLogFilePath())
	if err != nil {
		return tui.NewSplog()
	}
	return splog
}

// newBackupService builds the orchestrator for the repository containing the
// working directory. Outside a repository the service reports the
// not-a-repository precondition on first use.
func newBackupService(splog *tui.Splog) *backup.Service {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		repoRoot = ""
	}
	return backup.NewService(git.NewClient(repoRoot), backup.WithSplog(splog))
}

// newVersionCmd creates the version command
func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stash-away %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
