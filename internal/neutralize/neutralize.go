// Package neutralize replaces the Windows-only native support module inside
// the packed application archive with an inert stub.
//
// The archive is never patched in place: it goes through a full
// extract → overwrite → repack cycle. An interruption mid-cycle leaves the
// workspace inconsistent; the next run recreates everything from scratch,
// so no recovery logic exists here.
package neutralize

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/fsutil"
	"github.com/blackwell-systems/claudepack/internal/nodeenv"
	"github.com/blackwell-systems/claudepack/internal/pipeline"
)

// resourcesSubdir is where the extracted inner package keeps the
// application resources (the packed archive, its unpacked side files, and
// the tray icon assets).
const resourcesSubdir = "lib/net45/resources"

// stubRelPath is the native module's entry point inside both the extracted
// archive contents and the unpacked side-file tree.
const stubRelPath = "node_modules/claude-native/index.js"

// Run copies the application archive out of the extracted resource tree
// into appDir, neutralizes the native module, and repacks. rt provides the
// asar tool.
func Run(extractDir, appDir string, rt *nodeenv.Runtime) error {
	resources := filepath.Join(extractDir, filepath.FromSlash(resourcesSubdir))

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("cannot create app dir %s: %w", appDir, err)
	}

	// Step 1: take our own copy of the archive and its unpacked side files.
	asarPath := filepath.Join(appDir, "app.asar")
	unpackedDir := filepath.Join(appDir, "app.asar.unpacked")
	if err := fsutil.CopyFile(filepath.Join(resources, "app.asar"), asarPath, 0644); err != nil {
		return fmt.Errorf("copying app.asar: %w", err)
	}
	if err := fsutil.CopyTree(filepath.Join(resources, "app.asar.unpacked"), unpackedDir); err != nil {
		return fmt.Errorf("copying app.asar.unpacked: %w", err)
	}

	// Step 2: full extraction of the archive contents.
	contentsDir := filepath.Join(appDir, "app.asar.contents")
	if err := asar(rt, "extract", asarPath, contentsDir); err != nil {
		return err
	}

	// Step 3: overwrite the native module entry point in the extracted
	// contents and in the unpacked side files.
	for _, root := range []string{contentsDir, unpackedDir} {
		target := filepath.Join(root, filepath.FromSlash(stubRelPath))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("cannot create module dir: %w", err)
		}
		if err := os.WriteFile(target, []byte(stubJS), 0644); err != nil {
			return fmt.Errorf("writing native module stub: %w", err)
		}
		log.WithField("target", target).Debug("stubbed native module")
	}

	// Step 4: tray icon assets are loaded from the archive's resource
	// directory at runtime; missing assets break the tray, so this is fatal.
	if err := copyTrayIcons(resources, filepath.Join(contentsDir, "resources")); err != nil {
		return err
	}

	// Step 5: repack over the original archive.
	if err := asar(rt, "pack", contentsDir, asarPath); err != nil {
		return err
	}
	return nil
}

// copyTrayIcons copies every Tray* asset from the extracted resource tree
// into the archive contents' resource directory.
func copyTrayIcons(resources, destDir string) error {
	matches, err := filepath.Glob(filepath.Join(resources, "Tray*"))
	if err != nil {
		return fmt.Errorf("bad tray icon pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no tray icon assets found in %s", resources)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("cannot create resource dir %s: %w", destDir, err)
	}
	for _, src := range matches {
		dest := filepath.Join(destDir, filepath.Base(src))
		if err := fsutil.CopyFile(src, dest, 0644); err != nil {
			return fmt.Errorf("copying tray icon %s: %w", filepath.Base(src), err)
		}
	}
	log.WithField("count", len(matches)).Debug("copied tray icon assets")
	return nil
}

// asar runs the asar CLI from the provisioned runtime.
func asar(rt *nodeenv.Runtime, args ...string) error {
	cmd := exec.Command(rt.AsarBin(), args...)
	log.WithField("args", strings.Join(args, " ")).Debug("asar")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return pipeline.ToolError("asar", fmt.Errorf("asar %s failed: %w (output: %s)", args[0], err, string(output)))
	}
	return nil
}
