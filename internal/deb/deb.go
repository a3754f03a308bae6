// Package deb synthesizes the Debian package metadata and builds the final
// installable artifact with dpkg-deb.
package deb

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/pipeline"
)

// Fixed package identity. Only the version varies between builds; it is
// parsed from the vendor's inner package filename.
const (
	PackageName  = "claude-desktop"
	Architecture = "amd64"
)

const controlTemplate = `Package: %s
Version: %s
Section: web
Priority: optional
Architecture: %s
Maintainer: %s
Homepage: https://www.anthropic.com
License: Proprietary
Depends: nodejs, npm
Description: Claude Desktop for Linux
 Claude is an AI assistant from Anthropic. This package bundles the
 Claude Desktop application with a local Electron runtime and replaces
 its Windows-only native integration module with a Linux-compatible stub.
`

// postinst refreshes the desktop caches after install. Every refresh is
// best-effort: a missing or failing cache tool must never fail the install,
// since the caches are cosmetic.
const postinst = `#!/bin/sh
set -e

if command -v update-desktop-database >/dev/null 2>&1; then
    update-desktop-database /usr/share/applications || true
fi
if command -v gtk-update-icon-cache >/dev/null 2>&1; then
    gtk-update-icon-cache -f -t /usr/share/icons/hicolor || true
fi

exit 0
`

// ArtifactName is the output filename for a given version.
func ArtifactName(version string) string {
	return fmt.Sprintf("%s_%s_%s.deb", PackageName, version, Architecture)
}

// WriteMetadata creates the DEBIAN control directory under pkgRoot with the
// control file and the post-install hook.
func WriteMetadata(pkgRoot, version, maintainer string) error {
	debianDir := filepath.Join(pkgRoot, "DEBIAN")
	if err := os.MkdirAll(debianDir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", debianDir, err)
	}

	control := fmt.Sprintf(controlTemplate, PackageName, version, Architecture, maintainer)
	if err := os.WriteFile(filepath.Join(debianDir, "control"), []byte(control), 0644); err != nil {
		return fmt.Errorf("writing control file: %w", err)
	}

	// dpkg requires maintainer scripts to be executable.
	if err := os.WriteFile(filepath.Join(debianDir, "postinst"), []byte(postinst), 0755); err != nil {
		return fmt.Errorf("writing postinst: %w", err)
	}
	return nil
}

// Build invokes dpkg-deb against the Installation Tree at pkgRoot and
// returns the path of the artifact written into outDir. The tree is treated
// as read-only input. Fatal on any dpkg-deb failure; no cleanup of partial
// output is attempted.
func Build(pkgRoot, outDir, version string) (string, error) {
	artifact := filepath.Join(outDir, ArtifactName(version))

	cmd := exec.Command("dpkg-deb", "--build", "--root-owner-group", pkgRoot, artifact)
	log.WithField("artifact", artifact).Debug("dpkg-deb build")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", pipeline.ToolError("dpkg-deb", fmt.Errorf("package build failed: %w (output: %s)", err, string(output)))
	}

	if _, err := os.Stat(artifact); err != nil {
		return "", fmt.Errorf("dpkg-deb reported success but %s is missing: %w", artifact, err)
	}
	return artifact, nil
}
