package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{
			name:     "three-part version",
			filename: "AnthropicClaude-0.7.8-full.nupkg",
			want:     "0.7.8",
		},
		{
			name:     "four-part version",
			filename: "AnthropicClaude-0.12.55.1-full.nupkg",
			want:     "0.12.55.1",
		},
		{
			name:     "full path",
			filename: "/tmp/work/extract/AnthropicClaude-1.0.0-full.nupkg",
			want:     "1.0.0",
		},
		{
			name:     "delta package rejected",
			filename: "AnthropicClaude-0.7.8-delta.nupkg",
			wantErr:  true,
		},
		{
			name:     "unrelated file",
			filename: "Setup.exe",
			wantErr:  true,
		},
		{
			name:     "missing version token",
			filename: "AnthropicClaude-full.nupkg",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.filename)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseVersion(%q) succeeded with %q, want error", tt.filename, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.filename, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestFindInnerPackage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"Setup.exe",
		"AnthropicClaude-0.7.8-full.nupkg",
		"RELEASES",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	path, version, err := findInnerPackage(dir)
	if err != nil {
		t.Fatalf("findInnerPackage: %v", err)
	}
	if version != "0.7.8" {
		t.Errorf("version = %q, want 0.7.8", version)
	}
	if filepath.Base(path) != "AnthropicClaude-0.7.8-full.nupkg" {
		t.Errorf("path = %q", path)
	}
}

func TestFindInnerPackageMissing(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Setup.exe"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := findInnerPackage(dir); err == nil {
		t.Error("expected error when no inner package present")
	}
}
