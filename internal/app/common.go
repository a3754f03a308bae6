package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// dataDir returns ~/.claudepack, creating it if needed. The build ledger
// lives here; the scratch workspace defaults to a subdirectory.
func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".claudepack")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create claudepack directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the build ledger database path.
func getDBPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "claudepack.db"), nil
}
