package app

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepack/internal/nodeenv"
	"github.com/blackwell-systems/claudepack/internal/probe"
	"github.com/blackwell-systems/claudepack/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the host environment without building anything",
	Long: `Runs the environment checks the build pipeline relies on.

Checks:
  • Host is a Debian-family Linux system
  • Each required external tool is present
  • npm and the cached Electron runtime are available
  • The build ledger is accessible`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Running claudepack diagnostics...")
	fmt.Println()

	// Critical issues block a build; warnings only mean the build will do
	// extra work (installs) when it runs.
	criticalIssues := 0
	warningIssues := 0

	prober := probe.New()

	// Check 1: platform family — nothing works elsewhere
	if err := prober.CheckPlatform(); err != nil {
		fmt.Println("✗ Platform:", err)
		criticalIssues++
	} else {
		fmt.Println("✓ Debian-family Linux host")
	}

	// Check 2: external tools — missing ones are auto-installed by build
	missing := prober.MissingTools()
	if len(missing) == 0 {
		fmt.Println("✓ All required tools present")
	} else {
		for _, m := range missing {
			fmt.Printf("⚠ Tool %s missing (build will install %s)\n", m.Tool, m.Package)
			warningIssues++
		}
	}

	// Check 3: JavaScript tooling
	if _, err := exec.LookPath("npm"); err != nil {
		fmt.Println("⚠ npm not found (build will install nodejs and npm)")
		warningIssues++
	} else {
		fmt.Println("✓ npm found")
	}

	// Check 4: cached Electron runtime
	if prefix, err := nodeenv.DefaultPrefix(); err == nil {
		rt := nodeenv.Runtime{Prefix: prefix}
		if _, err := os.Stat(rt.AsarBin()); err == nil {
			fmt.Println("✓ Cached Electron runtime:", prefix)
		} else {
			fmt.Println("⚠ No cached Electron runtime (build will run npm install once)")
			warningIssues++
		}
	}

	// Check 5: build ledger
	if dbPath, err := getDBPath(); err != nil {
		fmt.Println("⚠ Build ledger path error:", err)
		warningIssues++
	} else if db, err := store.New(dbPath); err != nil {
		fmt.Println("⚠ Cannot open build ledger:", err)
		warningIssues++
	} else {
		db.Close()
		fmt.Println("✓ Build ledger accessible:", dbPath)
	}

	fmt.Println()
	if criticalIssues == 0 && warningIssues == 0 {
		fmt.Println("✓ All checks passed!")
		fmt.Println()
		fmt.Println("Next step: claudepack build")
		return nil
	}

	if criticalIssues > 0 {
		fmt.Printf("Found %d critical issue(s) and %d warning(s).\n", criticalIssues, warningIssues)
		return fmt.Errorf("diagnostics failed")
	}

	// Warning-only: usable host, the build just has remediation to do.
	// Exit 2 so main.go's error handler is never reached.
	fmt.Printf("Found %d warning(s). A build will remediate them automatically.\n", warningIssues)
	os.Exit(2)
	return nil // unreachable; satisfies compiler
}
