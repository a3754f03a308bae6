// Package workspace manages the scratch directory tree owned by a single
// pipeline run. Every intermediate artifact — the downloaded installer, the
// extracted resource trees, the repacked application archive, and the final
// package root — lives under one Workspace, which is recreated from scratch
// at the start of each run. There is no resume support: a partial tree from
// an interrupted run is destroyed, never repaired.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the scratch tree for one pipeline run. All paths are derived
// from Root; stages receive the Workspace instead of reaching for ambient
// global directories.
type Workspace struct {
	// Root is the top-level scratch directory, e.g. ~/.claudepack/build.
	Root string
}

// New returns a Workspace rooted at dir. The directory is not touched until
// Create is called.
func New(dir string) *Workspace {
	return &Workspace{Root: dir}
}

// DefaultRoot returns the default workspace location, ~/.claudepack/build.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".claudepack", "build"), nil
}

// Create destroys any prior contents of the workspace root and recreates it
// empty. Prior work is never reused.
func (w *Workspace) Create() error {
	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("failed to clear workspace %s: %w", w.Root, err)
	}
	if err := os.MkdirAll(w.Root, 0755); err != nil {
		return fmt.Errorf("failed to create workspace %s: %w", w.Root, err)
	}
	return nil
}

// Remove deletes the entire workspace tree.
func (w *Workspace) Remove() error {
	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.Root, err)
	}
	return nil
}

// InstallerPath is where the fetched vendor installer is written.
func (w *Workspace) InstallerPath() string {
	return filepath.Join(w.Root, "Claude-Setup-x64.exe")
}

// ExtractDir holds the contents of the unpacked vendor installer and, after
// the second extraction step, the unpacked inner package.
func (w *Workspace) ExtractDir() string {
	return filepath.Join(w.Root, "extract")
}

// AppDir is the working subdirectory for the application archive while the
// native module is being neutralized.
func (w *Workspace) AppDir() string {
	return filepath.Join(w.Root, "app")
}

// IconsDir is the scratch area for icon extraction and splitting.
func (w *Workspace) IconsDir() string {
	return filepath.Join(w.Root, "icons")
}

// PackageRoot is the root of the Installation Tree handed to dpkg-deb.
func (w *Workspace) PackageRoot() string {
	return filepath.Join(w.Root, "pkgroot")
}
