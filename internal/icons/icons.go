// Package icons extracts the multi-resolution icon resource from the
// vendor's Windows executable and installs each resolution into the hicolor
// theme under the package root. Icon availability is cosmetic: a resolution
// the splitter did not produce is downscaled from the largest one it did,
// and when even that fails the resolution is skipped with a warning, never
// a pipeline failure.
package icons

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/fsutil"
	"github.com/blackwell-systems/claudepack/internal/output"
	"github.com/blackwell-systems/claudepack/internal/pipeline"
)

// Extract pulls the icon group resource out of exePath with wrestool and
// splits it into per-resolution PNGs with icotool, all inside workDir.
func Extract(exePath, workDir string) error {
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return fmt.Errorf("cannot create icon work dir %s: %w", workDir, err)
	}

	icoPath := filepath.Join(workDir, "claude.ico")

	// Resource type 14 is the icon group directory.
	cmd := exec.Command("wrestool", "-x", "-t", "14", "-o", icoPath, exePath)
	log.WithField("exe", exePath).Debug("wrestool extract icon group")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return pipeline.ToolError("wrestool", fmt.Errorf("icon extraction from %s failed: %w (output: %s)", filepath.Base(exePath), err, string(out)))
	}

	cmd = exec.Command("icotool", "-x", "-o", workDir, icoPath)
	log.WithField("ico", icoPath).Debug("icotool split icon")
	out, err = cmd.CombinedOutput()
	if err != nil {
		return pipeline.ToolError("icotool", fmt.Errorf("icon splitting failed: %w (output: %s)", err, string(out)))
	}
	return nil
}

// Install places each discovered resolution variant at
// <pkgRoot>/usr/share/icons/hicolor/<R>x<R>/apps/claude-desktop.png.
// globs maps resolution to the discovery pattern for the splitter's output
// file. A resolution the splitter did not produce is downscaled from the
// largest variant it did produce; if that fails too the resolution is
// warned about and skipped. The returned count is the number of icons
// actually installed.
func Install(workDir, pkgRoot string, globs map[int]string) (int, error) {
	resolutions := make([]int, 0, len(globs))
	for res := range globs {
		resolutions = append(resolutions, res)
	}
	sort.Ints(resolutions)

	found := make(map[int]string, len(globs))
	for _, res := range resolutions {
		matches, err := filepath.Glob(filepath.Join(workDir, globs[res]))
		if err != nil {
			return 0, fmt.Errorf("bad icon glob %q: %w", globs[res], err)
		}
		if len(matches) > 0 {
			found[res] = matches[0]
		}
	}

	// Resize source: the largest variant the splitter produced.
	fallback := ""
	for _, res := range resolutions {
		if src, ok := found[res]; ok {
			fallback = src
		}
	}

	installed := 0
	for _, res := range resolutions {
		src, ok := found[res]
		switch {
		case ok:
			// use the splitter's own variant
		case fallback != "":
			// Downscale into the work dir first so a failed conversion
			// leaves no trace under the package root.
			src = filepath.Join(workDir, fmt.Sprintf("resized-%dx%d.png", res, res))
			if err := resize(fallback, res, src); err != nil {
				output.Warn(fmt.Sprintf("no %dx%d icon variant and resize failed (%v); skipping", res, res, err))
				continue
			}
			log.WithFields(log.Fields{"res": res, "src": fallback}).Debug("downscaled icon")
		default:
			output.Warn(fmt.Sprintf("no %dx%d icon variant found (pattern %s); skipping", res, res, globs[res]))
			continue
		}

		destDir := filepath.Join(pkgRoot, "usr", "share", "icons", "hicolor",
			fmt.Sprintf("%dx%d", res, res), "apps")
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return installed, fmt.Errorf("cannot create icon dir %s: %w", destDir, err)
		}
		dest := filepath.Join(destDir, "claude-desktop.png")
		if err := fsutil.CopyFile(src, dest, 0644); err != nil {
			return installed, fmt.Errorf("installing %dx%d icon: %w", res, res, err)
		}
		log.WithFields(log.Fields{"res": res, "src": src}).Debug("installed icon")
		installed++
	}
	return installed, nil
}

// resize downscales src to a res x res PNG at dest with imagemagick.
func resize(src string, res int, dest string) error {
	cmd := exec.Command("convert", src, "-resize", fmt.Sprintf("%dx%d", res, res), dest)
	log.WithFields(log.Fields{"src": src, "res": res}).Debug("convert resize icon")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("convert failed: %w (output: %s)", err, string(out))
	}
	return nil
}
