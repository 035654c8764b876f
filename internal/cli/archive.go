package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmissoh/stash-away/internal/archive"
	"github.com/dmissoh/stash-away/internal/git"
)

// newArchiveCmd creates the archive command
func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Create a local compressed archive of the project",
		Long: `Create a local compressed archive of the project.

Inside a git repository only files not excluded by ignore rules are included;
elsewhere the entire directory tree is archived. The archive is written to the
current directory as stash-away-backup-<timestamp>.tar.gz.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			splog := newSplog()
			defer func() { _ = splog.Close() }()

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			builder := archive.NewBuilder(dir, git.NewClient(dir), archive.WithSplog(splog))
			_, err = builder.Create(cmd.Context())
			return err
		},
	}
}
