// Package bundle lays out the Installation Tree under the package root:
// the repacked application archive and its side files, the bundled Electron
// runtime, a launcher script, and the desktop-integration entry.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/fsutil"
	"github.com/blackwell-systems/claudepack/internal/nodeenv"
)

// LogPath is where the launcher tees the application's runtime output. The
// file is appended on every application run.
const LogPath = "/tmp/claude-desktop-launcher.log"

// desktopEntry registers the application with the desktop environment. The
// %u placeholder and the x-scheme-handler MIME type let other processes
// open claude:// URIs through the already-running instance.
const desktopEntry = `[Desktop Entry]
Name=Claude
Comment=Claude Desktop
Exec=claude-desktop %u
Icon=claude-desktop
Type=Application
Terminal=false
Categories=Office;Utility;Network;
MimeType=x-scheme-handler/claude;
StartupWMClass=Claude
`

// launcher runs the bundled Electron against the packed archive. Sandboxing
// is disabled (the bundled Electron has no setuid helper on Debian), and
// all output is teed to the fixed log path.
const launcher = `#!/bin/bash
/usr/lib/claude-desktop/node_modules/electron/dist/electron \
  /usr/lib/claude-desktop/app.asar \
  --no-sandbox --enable-logging --v=1 "$@" 2>&1 | tee -a ` + LogPath + `
`

// Assemble builds the Installation Tree at pkgRoot from the neutralized
// application in appDir and the provisioned runtime. Every copy is
// required; any failure is fatal.
func Assemble(appDir, pkgRoot string, rt *nodeenv.Runtime) error {
	libDir := filepath.Join(pkgRoot, "usr", "lib", "claude-desktop")
	if err := os.MkdirAll(libDir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", libDir, err)
	}

	if err := fsutil.CopyFile(filepath.Join(appDir, "app.asar"), filepath.Join(libDir, "app.asar"), 0644); err != nil {
		return fmt.Errorf("copying app.asar into package: %w", err)
	}
	if err := fsutil.CopyTree(filepath.Join(appDir, "app.asar.unpacked"), filepath.Join(libDir, "app.asar.unpacked")); err != nil {
		return fmt.Errorf("copying app.asar.unpacked into package: %w", err)
	}
	if err := fsutil.CopyTree(rt.NodeModulesDir(), filepath.Join(libDir, "node_modules")); err != nil {
		return fmt.Errorf("copying electron runtime into package: %w", err)
	}
	log.WithField("lib", libDir).Debug("library tree assembled")

	appsDir := filepath.Join(pkgRoot, "usr", "share", "applications")
	if err := os.MkdirAll(appsDir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", appsDir, err)
	}
	if err := os.WriteFile(filepath.Join(appsDir, "claude-desktop.desktop"), []byte(desktopEntry), 0644); err != nil {
		return fmt.Errorf("writing desktop entry: %w", err)
	}

	binDir := filepath.Join(pkgRoot, "usr", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", binDir, err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "claude-desktop"), []byte(launcher), 0755); err != nil {
		return fmt.Errorf("writing launcher: %w", err)
	}

	return nil
}
