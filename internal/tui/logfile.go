package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITX_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitx/logs/gitx.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITX_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "gitx.log"
	}

	return filepath.Join(homeDir, ".gitx", "logs", "gitx.log")
}
