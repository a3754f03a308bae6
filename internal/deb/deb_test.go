package deb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArtifactName(t *testing.T) {
	if got := ArtifactName("0.7.8"); got != "claude-desktop_0.7.8_amd64.deb" {
		t.Errorf("ArtifactName = %q", got)
	}
}

func TestWriteMetadataControlFields(t *testing.T) {
	pkgRoot := t.TempDir()
	if err := WriteMetadata(pkgRoot, "0.7.8", "Claude Desktop Linux Maintainers"); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(pkgRoot, "DEBIAN", "control"))
	if err != nil {
		t.Fatal(err)
	}
	control := string(data)

	for _, want := range []string{
		"Package: claude-desktop",
		"Version: 0.7.8",
		"Section: web",
		"Priority: optional",
		"Architecture: amd64",
		"Maintainer: Claude Desktop Linux Maintainers",
		"Homepage: ",
		"License: ",
		"Depends: nodejs, npm",
		"Description: Claude Desktop for Linux",
	} {
		if !strings.Contains(control, want) {
			t.Errorf("control missing %q:\n%s", want, control)
		}
	}

	// Continuation lines of the description must be indented per deb822.
	for _, line := range strings.Split(control, "\n") {
		if line == "" {
			continue
		}
		if !strings.Contains(line, ":") && !strings.HasPrefix(line, " ") {
			t.Errorf("unindented continuation line: %q", line)
		}
	}
}

func TestWriteMetadataPostinst(t *testing.T) {
	pkgRoot := t.TempDir()
	if err := WriteMetadata(pkgRoot, "0.7.8", "m"); err != nil {
		t.Fatalf("WriteMetadata: %v", err)
	}

	path := filepath.Join(pkgRoot, "DEBIAN", "postinst")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm()&0111 == 0 {
		t.Error("postinst is not executable")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	script := string(data)

	// Cache refreshes are best-effort: each refresh command must be unable
	// to fail the script.
	for _, cacheCmd := range []string{"update-desktop-database", "gtk-update-icon-cache"} {
		if !strings.Contains(script, cacheCmd) {
			t.Errorf("postinst missing %s refresh", cacheCmd)
			continue
		}
		for _, line := range strings.Split(script, "\n") {
			if strings.Contains(line, cacheCmd) && !strings.Contains(line, "command -v") {
				if !strings.Contains(line, "|| true") {
					t.Errorf("cache refresh not suppressed on failure: %q", line)
				}
			}
		}
	}
}
