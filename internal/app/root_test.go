package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	if RootCmd.Use != "claudepack" {
		t.Errorf("expected Use to be 'claudepack', got '%s'", RootCmd.Use)
	}
	if RootCmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if RootCmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	commands := RootCmd.Commands()

	expected := []string{"build", "doctor", "history", "logs", "clean"}
	found := make(map[string]bool)
	for _, cmd := range commands {
		found[cmd.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected command '%s' to be registered", name)
		}
	}
}

func TestBuildCommandFlags(t *testing.T) {
	for _, name := range []string{"url", "workspace", "keep-workspace", "install", "no-install"} {
		if buildCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected build flag --%s to be registered", name)
		}
	}
}

func TestLogsCommandFollowFlag(t *testing.T) {
	flag := logsCmd.Flags().Lookup("follow")
	if flag == nil {
		t.Fatal("expected --follow flag to be registered")
	}
	if flag.Shorthand != "f" {
		t.Errorf("expected -f shorthand, got %q", flag.Shorthand)
	}
}

func TestGetDBPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath: %v", err)
	}
	if filepath.Base(path) != "claudepack.db" {
		t.Errorf("db path = %q", path)
	}
	if !strings.Contains(path, ".claudepack") {
		t.Errorf("db path %q not under ~/.claudepack", path)
	}
}
