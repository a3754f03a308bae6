// Package probe detects whether the host can run the repackaging pipeline:
// it must be a Debian-family system, and a handful of external CLI tools
// must be present. The probe itself has no side effects; remediation of
// missing tools is the apt package's job.
package probe

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
)

// requiredTools maps each external tool the pipeline invokes to the Debian
// package that provides it.
var requiredTools = map[string]string{
	"7z":       "p7zip-full",
	"wrestool": "icoutils",
	"icotool":  "icoutils",
	"convert":  "imagemagick",
	"dpkg-deb": "dpkg",
}

// MissingTool is one required tool absent from PATH, with the apt package
// that provides it.
type MissingTool struct {
	Tool    string
	Package string
}

// Prober checks host state. The zero value is not usable; call New.
type Prober struct {
	osReleasePath string
	lookPath      func(string) (string, error)
}

// New returns a Prober reading the real host state.
func New() *Prober {
	return &Prober{
		osReleasePath: "/etc/os-release",
		lookPath:      exec.LookPath,
	}
}

// CheckPlatform verifies the host is a Linux system in the Debian packaging
// family. Any other platform is a fatal environment mismatch.
func (p *Prober) CheckPlatform() error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("unsupported platform %s: claudepack builds Debian packages and must run on Linux", runtime.GOOS)
	}
	debian, err := p.isDebianFamily()
	if err != nil {
		return fmt.Errorf("cannot determine distribution family: %w", err)
	}
	if !debian {
		return fmt.Errorf("unsupported distribution: claudepack requires a Debian-family system (dpkg/apt)")
	}
	return nil
}

// isDebianFamily reads os-release and checks ID / ID_LIKE for "debian".
func (p *Prober) isDebianFamily() (bool, error) {
	f, err := os.Open(p.osReleasePath)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			if value == "debian" {
				return true, nil
			}
		case "ID_LIKE":
			for _, id := range strings.Fields(value) {
				if id == "debian" {
					return true, nil
				}
			}
		}
	}
	return false, scanner.Err()
}

// MissingTools returns the required tools not found on PATH, sorted by tool
// name for stable output.
func (p *Prober) MissingTools() []MissingTool {
	var missing []MissingTool
	for _, tool := range sortedTools() {
		if _, err := p.lookPath(tool); err != nil {
			missing = append(missing, MissingTool{Tool: tool, Package: requiredTools[tool]})
		}
	}
	return missing
}

// Remediate installs the packages for the missing-tool set via install and
// re-checks the host exactly once. A tool still absent after that single
// pass is fatal; there is no retry.
func (p *Prober) Remediate(missing []MissingTool, install func(pkgs []string) error) error {
	if len(missing) == 0 {
		return nil
	}
	if err := install(Packages(missing)); err != nil {
		return err
	}
	if still := p.MissingTools(); len(still) > 0 {
		return fmt.Errorf("tools still missing after install: %v", still)
	}
	return nil
}

// Packages deduplicates the apt package names for a missing-tool set
// (wrestool and icotool both come from icoutils).
func Packages(missing []MissingTool) []string {
	seen := make(map[string]bool)
	var pkgs []string
	for _, m := range missing {
		if !seen[m.Package] {
			seen[m.Package] = true
			pkgs = append(pkgs, m.Package)
		}
	}
	return pkgs
}

func sortedTools() []string {
	tools := make([]string, 0, len(requiredTools))
	for t := range requiredTools {
		tools = append(tools, t)
	}
	sort.Strings(tools)
	return tools
}
