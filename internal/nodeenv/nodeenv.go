// Package nodeenv provisions the JavaScript tooling the pipeline needs:
// the npm package manager, the asar archive tool, and the Electron runtime
// that ships inside the final package.
//
// Strategy (in order):
//  1. npm already on PATH — use it.
//  2. An nvm-managed node install under ~/.nvm — put its bin dir on PATH
//     for this process (reuse before install).
//  3. Install nodejs and npm via apt.
//
// Electron and asar are then installed user-scoped into a cache prefix via
// `npm install --prefix`, reused across runs. The cached node_modules tree
// is what the Bundle Assembler later copies into the package.
package nodeenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/apt"
)

// Runtime is a provisioned Electron/asar toolchain rooted at a cache prefix.
type Runtime struct {
	// Prefix is the npm --prefix directory, e.g. ~/.cache/claudepack/runtime.
	Prefix string
}

// DefaultPrefix returns the runtime cache location, respecting
// XDG_CACHE_HOME. Defaults to ~/.cache/claudepack/runtime.
func DefaultPrefix() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "claudepack", "runtime"), nil
}

// AsarBin is the path to the asar CLI inside the runtime prefix.
func (r *Runtime) AsarBin() string {
	return filepath.Join(r.Prefix, "node_modules", ".bin", "asar")
}

// NodeModulesDir is the dependency tree bundled into the package.
func (r *Runtime) NodeModulesDir() string {
	return filepath.Join(r.Prefix, "node_modules")
}

// ElectronDist is the unpacked Electron distribution inside the runtime.
func (r *Runtime) ElectronDist() string {
	return filepath.Join(r.Prefix, "node_modules", "electron", "dist", "electron")
}

// EnsureNPM makes npm available to this process, installing nodejs and npm
// via apt as a last resort.
func EnsureNPM() error {
	if _, err := exec.LookPath("npm"); err == nil {
		return nil
	}

	// nvm installs live outside PATH for non-interactive shells; reuse one
	// if present rather than installing a second node.
	if home, err := os.UserHomeDir(); err == nil {
		matches, _ := filepath.Glob(filepath.Join(home, ".nvm", "versions", "node", "*", "bin", "npm"))
		if len(matches) > 0 {
			binDir := filepath.Dir(matches[len(matches)-1])
			log.WithField("dir", binDir).Debug("reusing nvm-managed node")
			os.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
			if _, err := exec.LookPath("npm"); err == nil {
				return nil
			}
		}
	}

	if err := apt.InstallPackages([]string{"nodejs", "npm"}); err != nil {
		return fmt.Errorf("failed to install a JavaScript runtime: %w", err)
	}
	if _, err := exec.LookPath("npm"); err != nil {
		return fmt.Errorf("npm still not found after install: %w", err)
	}
	return nil
}

// Ensure returns a usable Runtime at prefix, reusing a cached install when
// its asar binary and Electron distribution are both present.
func Ensure(prefix string) (*Runtime, error) {
	r := &Runtime{Prefix: prefix}

	if _, err := os.Stat(r.AsarBin()); err == nil {
		if _, err := os.Stat(r.ElectronDist()); err == nil {
			log.WithField("prefix", prefix).Debug("reusing cached electron runtime")
			return r, nil
		}
	}

	if err := os.MkdirAll(prefix, 0755); err != nil {
		return nil, fmt.Errorf("cannot create runtime cache %s: %w", prefix, err)
	}

	cmd := exec.Command("npm", "install", "--prefix", prefix, "electron", "@electron/asar")
	log.WithField("prefix", prefix).Debug("npm install electron @electron/asar")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("npm install electron failed: %w (output: %s)", err, string(output))
	}

	if _, err := os.Stat(r.AsarBin()); err != nil {
		return nil, fmt.Errorf("asar binary missing at %s after npm install", r.AsarBin())
	}
	return r, nil
}
