package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateRecreatesFromScratch(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	w := New(root)

	if err := w.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Simulate leftover state from a prior, interrupted run.
	stale := filepath.Join(root, "extract", "leftover.txt")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := w.Create(); err != nil {
		t.Fatalf("second Create: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("prior contents survived Create: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("workspace root missing after Create: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty workspace, found %d entries", len(entries))
	}
}

func TestRemove(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	w := New(root)

	if err := w.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := w.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Errorf("workspace still exists after Remove")
	}

	// Removing an already-absent workspace is not an error.
	if err := w.Remove(); err != nil {
		t.Errorf("Remove on missing workspace: %v", err)
	}
}

func TestDerivedPathsAreUnderRoot(t *testing.T) {
	w := New("/tmp/claudepack-test")

	paths := []string{
		w.InstallerPath(),
		w.ExtractDir(),
		w.AppDir(),
		w.IconsDir(),
		w.PackageRoot(),
	}
	for _, p := range paths {
		if !strings.HasPrefix(p, w.Root+string(filepath.Separator)) {
			t.Errorf("path %s not under workspace root %s", p, w.Root)
		}
	}
}
