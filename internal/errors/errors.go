// Package errors provides sentinel errors and custom error types for the stash-away application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for precondition failures
var (
	// ErrNotARepository indicates that the current directory is not inside a git work tree
	ErrNotARepository = errors.New("not a git repository")

	// ErrBackupURLNotSet indicates that no backup destination has been configured
	ErrBackupURLNotSet = errors.New("backup repository URL not set")

	// ErrBackupNotFound indicates that the named backup does not exist on the destination
	ErrBackupNotFound = errors.New("backup not found")

	// ErrBackupExists indicates that a backup with the same label already exists
	ErrBackupExists = errors.New("backup already exists")

	// ErrRestoreBranchExists indicates that the target restore branch already exists locally
	ErrRestoreBranchExists = errors.New("restore branch already exists")
)

// BackupNotFoundError represents an error when a named backup cannot be found on the destination
type BackupNotFoundError struct {
	Label string
}

func (e *BackupNotFoundError) Error() string {
	return fmt.Sprintf("backup %s does not exist on the backup repository", e.Label)
}

// Is returns true if the target error is ErrBackupNotFound
func (e *BackupNotFoundError) Is(target error) bool {
	return target == ErrBackupNotFound
}

// NewBackupNotFoundError creates a new BackupNotFoundError
func NewBackupNotFoundError(label string) *BackupNotFoundError {
	return &BackupNotFoundError{Label: label}
}

// BackupExistsError represents a label collision, either locally or on the destination
type BackupExistsError struct {
	Label string
}

func (e *BackupExistsError) Error() string {
	return fmt.Sprintf("backup %s already exists; retry in a moment to get a new timestamp", e.Label)
}

// Is returns true if the target error is ErrBackupExists
func (e *BackupExistsError) Is(target error) bool {
	return target == ErrBackupExists
}

// NewBackupExistsError creates a new BackupExistsError
func NewBackupExistsError(label string) *BackupExistsError {
	return &BackupExistsError{Label: label}
}

// RestoreBranchExistsError represents an error when the restore target branch already exists
type RestoreBranchExistsError struct {
	BranchName string
}

func (e *RestoreBranchExistsError) Error() string {
	return fmt.Sprintf("branch %s already exists; delete or rename it before restoring", e.BranchName)
}

// Is returns true if the target error is ErrRestoreBranchExists
func (e *RestoreBranchExistsError) Is(target error) bool {
	return target == ErrRestoreBranchExists
}

// NewRestoreBranchExistsError creates a new RestoreBranchExistsError
func NewRestoreBranchExistsError(branchName string) *RestoreBranchExistsError {
	return &RestoreBranchExistsError{BranchName: branchName}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// ArchiveError represents a failure while writing the backup archive
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to create archive %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to create archive: %v", e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// NewArchiveError creates a new ArchiveError
func NewArchiveError(path string, err error) *ArchiveError {
	return &ArchiveError{Path: path, Err: err}
}
