// Package apt wraps the host package manager. Installs mutate system state
// and need root; when the process is not already privileged the commands run
// under sudo, which prompts interactively.
package apt

import (
	"fmt"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// InstallPackages installs the given packages in one batched apt run.
// A failed install is fatal to the pipeline; there is no partial-dependency
// degraded mode and no rollback of packages apt already installed.
func InstallPackages(pkgs []string) error {
	if len(pkgs) == 0 {
		return nil
	}

	args := append([]string{"install", "-y"}, pkgs...)
	cmd := command("apt", args...)
	log.WithField("packages", pkgs).Debug("apt install")

	// apt output goes straight to the terminal so sudo can prompt and the
	// operator sees download progress.
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("apt install %v failed: %w", pkgs, err)
	}
	return nil
}

// InstallDeb installs a local package artifact via apt, resolving its
// declared dependencies.
func InstallDeb(path string) error {
	cmd := command("apt", "install", "-y", path)
	log.WithField("artifact", path).Debug("apt install local package")

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("apt install %s failed: %w", path, err)
	}
	return nil
}

// command returns an apt invocation, prefixed with sudo when not running as
// root.
func command(name string, args ...string) *exec.Cmd {
	if os.Geteuid() == 0 {
		return exec.Command(name, args...)
	}
	return exec.Command("sudo", append([]string{name}, args...)...)
}
