package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If STASH_AWAY_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.stash-away/logs/stash-away.log
func GetLogFilePath() string {
	if customPath := os.Getenv("STASH_AWAY_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "stash-away.log"
	}

	return filepath.Join(homeDir, ".stash-away", "logs", "stash-away.log")
}
