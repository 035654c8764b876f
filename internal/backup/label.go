package backup

import (
	"strings"
	"time"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
)

const (
	// BackupPrefix is the ref namespace backups are pushed under
	BackupPrefix = "backup/"

	// RestorePrefix is the branch namespace restores are materialized under
	RestorePrefix = "restore/"

	// TimestampFormat is the layout of the timestamp embedded in labels.
	// Lexicographic order of labels equals chronological order.
	TimestampFormat = "2006-01-02_15-04-05"
)

// NewBackupLabel builds the backup label for the given time
func NewBackupLabel(t time.Time) string {
	return BackupPrefix + t.Format(TimestampFormat)
}

// ParseBackupLabel validates a backup label and returns its timestamp
func ParseBackupLabel(label string) (time.Time, error) {
	suffix, ok := strings.CutPrefix(label, BackupPrefix)
	if !ok {
		return time.Time{}, stasherrors.NewBackupNotFoundError(label)
	}
	t, err := time.ParseInLocation(TimestampFormat, suffix, time.Local)
	if err != nil {
		return time.Time{}, stasherrors.NewBackupNotFoundError(label)
	}
	return t, nil
}

// RestoreBranchFor returns the local branch name a backup is restored to
func RestoreBranchFor(backupLabel string) string {
	return RestorePrefix + strings.TrimPrefix(backupLabel, BackupPrefix)
}
