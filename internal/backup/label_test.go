package backup

import (
	goerrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stasherrors "github.com/dmissoh/stash-away/internal/errors"
)

func TestNewBackupLabel(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	require.Equal(t, "backup/2026-03-14_09-26-53", NewBackupLabel(at))
}

func TestParseBackupLabel(t *testing.T) {
	t.Run("round trips a generated label", func(t *testing.T) {
		at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
		parsed, err := ParseBackupLabel(NewBackupLabel(at))
		require.NoError(t, err)
		require.True(t, parsed.Equal(at))
	})

	t.Run("rejects labels without the backup prefix", func(t *testing.T) {
		_, err := ParseBackupLabel("feature/2026-03-14_09-26-53")
		require.ErrorIs(t, err, stasherrors.ErrBackupNotFound)
	})

	t.Run("rejects malformed timestamps", func(t *testing.T) {
		for _, label := range []string{
			"backup/yesterday",
			"backup/2026-03-14",
			"backup/2026-03-14_09:26:53",
			"backup/",
		} {
			_, err := ParseBackupLabel(label)
			require.ErrorIs(t, err, stasherrors.ErrBackupNotFound, "label %q", label)
		}
	})

	t.Run("carries the offending label", func(t *testing.T) {
		_, err := ParseBackupLabel("nonsense")
		var notFound *stasherrors.BackupNotFoundError
		require.True(t, goerrors.As(err, &notFound))
		require.Equal(t, "nonsense", notFound.Label)
	})
}

func TestRestoreBranchFor(t *testing.T) {
	require.Equal(t, "restore/2026-03-14_09-26-53", RestoreBranchFor("backup/2026-03-14_09-26-53"))
}

func TestLabelOrderingIsChronological(t *testing.T) {
	earlier := NewBackupLabel(time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local))
	later := NewBackupLabel(time.Date(2026, 3, 14, 9, 26, 54, 0, time.Local))
	nextDay := NewBackupLabel(time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local))
	require.Less(t, earlier, later)
	require.Less(t, later, nextDay)
}
