package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(cfg.InstallerURL, "Claude-Setup-x64.exe") {
		t.Errorf("default URL = %q", cfg.InstallerURL)
	}
	if cfg.Maintainer == "" {
		t.Error("default maintainer empty")
	}
	for _, res := range IconResolutions {
		if cfg.IconGlobs[res] == "" {
			t.Errorf("no default icon glob for %dpx", res)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	content := `
installer_url: https://example.com/Claude-Setup-x64.exe
maintainer: Someone Else
icon_globs:
  256: "icon_*_256.png"
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstallerURL != "https://example.com/Claude-Setup-x64.exe" {
		t.Errorf("installer URL not overridden: %q", cfg.InstallerURL)
	}
	if cfg.Maintainer != "Someone Else" {
		t.Errorf("maintainer not overridden: %q", cfg.Maintainer)
	}
	if cfg.IconGlobs[256] != "icon_*_256.png" {
		t.Errorf("icon glob 256 not overridden: %q", cfg.IconGlobs[256])
	}
	// Unmentioned resolutions keep their defaults.
	if cfg.IconGlobs[16] != "claude_*_16x16x32.png" {
		t.Errorf("icon glob 16 lost its default: %q", cfg.IconGlobs[16])
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n\t- bad"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if dir != "/tmp/xdg/claudepack" {
		t.Errorf("Dir = %q, want /tmp/xdg/claudepack", dir)
	}
}
