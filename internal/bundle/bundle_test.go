package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/claudepack/internal/nodeenv"
)

func fakeApp(t *testing.T) (appDir string, rt *nodeenv.Runtime) {
	t.Helper()

	appDir = t.TempDir()
	if err := os.WriteFile(filepath.Join(appDir, "app.asar"), []byte("asar"), 0644); err != nil {
		t.Fatal(err)
	}
	unpacked := filepath.Join(appDir, "app.asar.unpacked", "node_modules", "claude-native")
	if err := os.MkdirAll(unpacked, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(unpacked, "index.js"), []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	rt = &nodeenv.Runtime{Prefix: t.TempDir()}
	electron := rt.ElectronDist()
	if err := os.MkdirAll(filepath.Dir(electron), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(electron, []byte("elf"), 0755); err != nil {
		t.Fatal(err)
	}
	return appDir, rt
}

func TestAssembleLayout(t *testing.T) {
	appDir, rt := fakeApp(t)
	pkgRoot := t.TempDir()

	if err := Assemble(appDir, pkgRoot, rt); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	wantFiles := []string{
		"usr/lib/claude-desktop/app.asar",
		"usr/lib/claude-desktop/app.asar.unpacked/node_modules/claude-native/index.js",
		"usr/lib/claude-desktop/node_modules/electron/dist/electron",
		"usr/share/applications/claude-desktop.desktop",
		"usr/bin/claude-desktop",
	}
	for _, rel := range wantFiles {
		if _, err := os.Stat(filepath.Join(pkgRoot, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestLauncherIsExecutableAndTeesToLog(t *testing.T) {
	appDir, rt := fakeApp(t)
	pkgRoot := t.TempDir()

	if err := Assemble(appDir, pkgRoot, rt); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	path := filepath.Join(pkgRoot, "usr", "bin", "claude-desktop")
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm()&0111 == 0 {
		t.Error("launcher is not executable")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	script := string(content)
	for _, want := range []string{
		"#!/bin/bash",
		"--no-sandbox",
		"--enable-logging",
		"--v=1",
		"tee -a " + LogPath,
		"/usr/lib/claude-desktop/app.asar",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("launcher missing %q:\n%s", want, script)
		}
	}
}

func TestDesktopEntryRegistersURIScheme(t *testing.T) {
	appDir, rt := fakeApp(t)
	pkgRoot := t.TempDir()

	if err := Assemble(appDir, pkgRoot, rt); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(pkgRoot, "usr", "share", "applications", "claude-desktop.desktop"))
	if err != nil {
		t.Fatal(err)
	}
	entry := string(content)
	for _, want := range []string{
		"[Desktop Entry]",
		"Exec=claude-desktop %u",
		"MimeType=x-scheme-handler/claude;",
		"Icon=claude-desktop",
		"Categories=",
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("desktop entry missing %q:\n%s", want, entry)
		}
	}
}

func TestAssembleMissingArchiveIsFatal(t *testing.T) {
	_, rt := fakeApp(t)
	emptyApp := t.TempDir()

	if err := Assemble(emptyApp, t.TempDir(), rt); err == nil {
		t.Error("expected error when app.asar is absent")
	}
}
