// Package extract unpacks the nested vendor archives: the NSIS-style
// installer first, then the nupkg package found inside it. The inner
// package's filename carries the application version, which becomes the
// authoritative version for the rest of the pipeline.
package extract

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/pipeline"
)

// nupkgPattern matches the inner package filename and captures the version
// token, e.g. "AnthropicClaude-0.7.8-full.nupkg" → "0.7.8". Four-part
// versions are accepted too.
var nupkgPattern = regexp.MustCompile(`^AnthropicClaude-(\d+\.\d+\.\d+(?:\.\d+)?)-full\.nupkg$`)

// Installer extracts the vendor installer at path into destDir and then
// extracts the inner package found there. It returns the version parsed
// from the inner package's filename.
func Installer(path, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("cannot create extract dir %s: %w", destDir, err)
	}

	if err := sevenZip(path, destDir); err != nil {
		return "", err
	}

	nupkg, version, err := findInnerPackage(destDir)
	if err != nil {
		return "", err
	}
	log.WithFields(log.Fields{"package": nupkg, "version": version}).Debug("found inner package")

	if err := sevenZip(nupkg, destDir); err != nil {
		return "", err
	}
	return version, nil
}

// sevenZip runs `7z x` with -y so existing files are overwritten instead of
// prompting.
func sevenZip(archive, destDir string) error {
	cmd := exec.Command("7z", "x", "-y", "-o"+destDir, archive)
	log.WithField("archive", archive).Debug("7z extract")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return pipeline.ToolError("7z", fmt.Errorf("extracting %s failed: %w (output: %s)", filepath.Base(archive), err, string(output)))
	}
	return nil
}

// findInnerPackage locates the single nupkg in dir and parses its version.
func findInnerPackage(dir string) (path, version string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("cannot read extract dir %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if m := nupkgPattern.FindStringSubmatch(e.Name()); m != nil {
			return filepath.Join(dir, e.Name()), m[1], nil
		}
	}
	return "", "", fmt.Errorf("no AnthropicClaude-<version>-full.nupkg found in %s", dir)
}

// ParseVersion extracts the version token from a nupkg filename. Exposed
// for callers that already hold the filename.
func ParseVersion(filename string) (string, error) {
	m := nupkgPattern.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return "", fmt.Errorf("filename %q does not match AnthropicClaude-<version>-full.nupkg", filename)
	}
	return m[1], nil
}
