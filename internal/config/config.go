// Package config provides configuration file parsing for claudepack.
//
// Configuration is optional: every field has a built-in default and the
// config file only overrides. The one setting most likely to need an
// override in the field is IconGlobs — the icon splitter's output naming
// convention is outside our control, so the resolution→pattern mapping is
// configurable rather than hardcoded.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// IconResolutions are the pixel sizes installed into the hicolor theme.
var IconResolutions = []int{16, 24, 32, 48, 64, 256}

// Config holds all claudepack settings.
type Config struct {
	// InstallerURL is the vendor installer download location.
	InstallerURL string `yaml:"installer_url"`
	// WorkspaceDir overrides the scratch directory (~/.claudepack/build).
	WorkspaceDir string `yaml:"workspace_dir"`
	// Maintainer is the package maintainer field.
	Maintainer string `yaml:"maintainer"`
	// IconGlobs maps an icon resolution to the glob pattern used to find
	// the splitter's output file for that resolution.
	IconGlobs map[int]string `yaml:"icon_globs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	globs := make(map[int]string, len(IconResolutions))
	for _, res := range IconResolutions {
		globs[res] = fmt.Sprintf("claude_*_%dx%dx32.png", res, res)
	}
	return &Config{
		InstallerURL: "https://storage.googleapis.com/osprey-downloads-c02f6035-33fd-45ea-bc0e-c5b4275d2e8a/nest-win-x64/Claude-Setup-x64.exe",
		Maintainer:   "Claude Desktop Linux Maintainers",
		IconGlobs:    globs,
	}
}

// Dir returns the claudepack config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/claudepack if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "claudepack"), nil
}

// Load reads {dir}/config.yaml and returns the defaults overlaid with any
// values the file sets. A missing file returns the defaults without error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if file.InstallerURL != "" {
		cfg.InstallerURL = file.InstallerURL
	}
	if file.WorkspaceDir != "" {
		cfg.WorkspaceDir = file.WorkspaceDir
	}
	if file.Maintainer != "" {
		cfg.Maintainer = file.Maintainer
	}
	for res, glob := range file.IconGlobs {
		cfg.IconGlobs[res] = glob
	}

	return cfg, nil
}
