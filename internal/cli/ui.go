package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dmissoh/stash-away/internal/archive"
	"github.com/dmissoh/stash-away/internal/backup"
	"github.com/dmissoh/stash-away/internal/git"
	"github.com/dmissoh/stash-away/internal/tui"
)

// menu entries, in display order
const (
	menuStatus  = "status"
	menuInit    = "init"
	menuPush    = "push"
	menuArchive = "archive"
	menuList    = "list"
	menuDiff    = "diff"
	menuRestore = "restore"
	menuQuit    = "quit"
)

// newUICmd creates the ui command
func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:          "ui",
		Short:        "Launch the interactive menu",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("the interactive menu requires a terminal")
			}

			splog := newSplog()
			defer func() { _ = splog.Close() }()

			svc := newBackupService(splog)
			return runMenu(cmd.Context(), svc, splog)
		},
	}
}

// runMenu is a thin re-presentation of the one-shot commands: every entry
// dispatches to the same operations, so the two surfaces cannot drift.
func runMenu(ctx context.Context, svc *backup.Service, splog *tui.Splog) error {
	options := []tui.SelectOption{
		{Label: "Show status", Value: menuStatus},
		{Label: "Initialize backup repository", Value: menuInit},
		{Label: "Push backup", Value: menuPush},
		{Label: "Create local archive", Value: menuArchive},
		{Label: "List backups", Value: menuList},
		{Label: "Diff against a backup", Value: menuDiff},
		{Label: "Restore a backup", Value: menuRestore},
		{Label: "Quit", Value: menuQuit},
	}

	for {
		choice, err := tui.PromptSelect("Stash-Away - Git Repository Backup Tool", options, 0)
		if err != nil {
			// Ctrl+C on the menu means quit, not failure
			return nil
		}

		if choice == menuQuit {
			return nil
		}
		if err := runMenuAction(ctx, svc, splog, choice); err != nil {
			splog.Error("%v", err)
		}
		splog.Newline()
	}
}

func runMenuAction(ctx context.Context, svc *backup.Service, splog *tui.Splog, choice string) error {
	switch choice {
	case menuStatus:
		return svc.Status(ctx)

	case menuInit:
		url, err := promptInput("Backup repository URL:", "")
		if err != nil || url == "" {
			return err
		}
		identityFile, err := promptInput("SSH identity file (empty for default):", "")
		if err != nil {
			return err
		}
		return svc.Init(ctx, url, identityFile)

	case menuPush:
		confirmed, err := tui.PromptConfirm("Push a backup of the current working state?", true)
		if err != nil || !confirmed {
			return err
		}
		_, err = svc.Push(ctx)
		return err

	case menuArchive:
		dir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		builder := archive.NewBuilder(dir, git.NewClient(dir), archive.WithSplog(splog))
		_, err = builder.Create(ctx)
		return err

	case menuList:
		labels, err := svc.List(ctx)
		if err != nil {
			return err
		}
		renderBackupList(splog, labels)
		return nil

	case menuDiff:
		label, err := promptBackupLabel(ctx, svc, splog)
		if err != nil || label == "" {
			return err
		}
		return svc.Diff(ctx, label)

	case menuRestore:
		label, err := promptBackupLabel(ctx, svc, splog)
		if err != nil || label == "" {
			return err
		}
		restoreBranch := backup.RestoreBranchFor(label)
		confirmed, err := tui.PromptConfirm(
			fmt.Sprintf("This will create a new branch '%s' with the backup contents. Continue?", restoreBranch), false)
		if err != nil || !confirmed {
			return err
		}
		_, err = svc.Restore(ctx, label)
		return err
	}

	return fmt.Errorf("unknown menu entry: %s", choice)
}

// promptBackupLabel lists the available backups and lets the user pick one.
// Returns "" when there is nothing to pick or the user backs out.
func promptBackupLabel(ctx context.Context, svc *backup.Service, splog *tui.Splog) (string, error) {
	labels, err := svc.List(ctx)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		splog.Info("No backups found.")
		return "", nil
	}

	options := make([]tui.SelectOption, len(labels))
	for i, label := range labels {
		options[i] = tui.SelectOption{Label: label, Value: label}
	}
	// Default to the most recent backup
	label, err := tui.PromptSelect("Select a backup", options, len(options)-1)
	if err != nil {
		return "", nil
	}
	return label, nil
}

// promptInput asks for a line of text, empty answer allowed
func promptInput(message, defaultValue string) (string, error) {
	var value string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &value); err != nil {
		return "", nil
	}
	return value, nil
}
