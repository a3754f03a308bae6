package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepack/internal/apt"
	"github.com/blackwell-systems/claudepack/internal/bundle"
	"github.com/blackwell-systems/claudepack/internal/config"
	"github.com/blackwell-systems/claudepack/internal/deb"
	"github.com/blackwell-systems/claudepack/internal/extract"
	"github.com/blackwell-systems/claudepack/internal/fetch"
	"github.com/blackwell-systems/claudepack/internal/fsutil"
	"github.com/blackwell-systems/claudepack/internal/icons"
	"github.com/blackwell-systems/claudepack/internal/neutralize"
	"github.com/blackwell-systems/claudepack/internal/nodeenv"
	"github.com/blackwell-systems/claudepack/internal/output"
	"github.com/blackwell-systems/claudepack/internal/pipeline"
	"github.com/blackwell-systems/claudepack/internal/probe"
	"github.com/blackwell-systems/claudepack/internal/store"
	"github.com/blackwell-systems/claudepack/internal/workspace"
)

var (
	buildURL           string
	buildWorkspaceDir  string
	buildKeepWorkspace bool
	buildInstall       bool
	buildNoInstall     bool

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Download, repackage, and build the claude-desktop .deb",
		Long: `Runs the full repackaging pipeline:

  1. Probe the host for the required external tools
  2. Install any that are missing (batched, via sudo apt)
  3. Download the vendor installer
  4. Extract the nested archives and derive the application version
  5. Extract and install the application icons
  6. Replace the Windows-only native module with an inert stub
  7. Assemble the installation tree with a bundled Electron runtime
  8. Build the .deb and drop it in the current directory

The scratch workspace is recreated from scratch; a prior partial run is
never resumed. Any stage failure aborts the whole run.`,
		Example: `  # Full build with install prompt
  claudepack build

  # Non-interactive build
  claudepack build --no-install

  # Build from a mirrored installer
  claudepack build --url https://mirror.example.com/Claude-Setup-x64.exe`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringVar(&buildURL, "url", "", "override the vendor installer URL")
	buildCmd.Flags().StringVar(&buildWorkspaceDir, "workspace", "", "override the scratch workspace directory")
	buildCmd.Flags().BoolVar(&buildKeepWorkspace, "keep-workspace", false, "leave the scratch workspace for inspection")
	buildCmd.Flags().BoolVar(&buildInstall, "install", false, "install the package without prompting")
	buildCmd.Flags().BoolVar(&buildNoInstall, "no-install", false, "skip the install prompt")

	RootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if buildURL != "" {
		cfg.InstallerURL = buildURL
	}
	if buildWorkspaceDir != "" {
		cfg.WorkspaceDir = buildWorkspaceDir
	}

	wsRoot := cfg.WorkspaceDir
	if wsRoot == "" {
		wsRoot, err = workspace.DefaultRoot()
		if err != nil {
			return err
		}
	}
	ws := workspace.New(wsRoot)

	// The ledger is bookkeeping, never a reason to refuse a build.
	ledger, buildID := beginLedger()
	if ledger != nil {
		defer ledger.Close()
	}

	if err := ws.Create(); err != nil {
		return err
	}

	// State shared between stages. Control flow is strictly linear; each
	// value is written by exactly one stage and read only by later ones.
	var (
		prober   = probe.New()
		missing  []probe.MissingTool
		rt       *nodeenv.Runtime
		version  string
		artifact string
	)

	stages := []pipeline.Stage{
		{
			State: pipeline.StateProbing,
			Title: "Probing host environment",
			Run: func() error {
				if err := prober.CheckPlatform(); err != nil {
					return err
				}
				missing = prober.MissingTools()
				for _, m := range missing {
					fmt.Printf("  missing tool %s (provided by %s)\n", m.Tool, m.Package)
				}
				return nil
			},
		},
		{
			State: pipeline.StateInstallingDep,
			Title: "Installing dependencies",
			Run: func() error {
				if err := prober.Remediate(missing, apt.InstallPackages); err != nil {
					return err
				}
				if err := nodeenv.EnsureNPM(); err != nil {
					return err
				}
				prefix, err := nodeenv.DefaultPrefix()
				if err != nil {
					return err
				}
				spinner := output.NewSpinner("Provisioning Electron runtime")
				spinner.Start()
				rt, err = nodeenv.Ensure(prefix)
				spinner.Stop()
				return err
			},
		},
		{
			State: pipeline.StateFetching,
			Title: "Fetching vendor installer",
			Run: func() error {
				return fetch.Download(cfg.InstallerURL, ws.InstallerPath())
			},
		},
		{
			State: pipeline.StateExtracting,
			Title: "Extracting nested archives",
			Run: func() error {
				version, err = extract.Installer(ws.InstallerPath(), ws.ExtractDir())
				if err != nil {
					return err
				}
				fmt.Printf("  derived version %s\n", version)
				return nil
			},
		},
		{
			State: pipeline.StateIcons,
			Title: "Processing icons",
			Run: func() error {
				exe := filepath.Join(ws.ExtractDir(), "lib", "net45", "claude.exe")
				if err := icons.Extract(exe, ws.IconsDir()); err != nil {
					return err
				}
				installed, err := icons.Install(ws.IconsDir(), ws.PackageRoot(), cfg.IconGlobs)
				if err != nil {
					return err
				}
				log.WithField("installed", installed).Debug("icon pipeline done")
				return nil
			},
		},
		{
			State: pipeline.StateNeutralizing,
			Title: "Neutralizing native module",
			Run: func() error {
				spinner := output.NewSpinner("Repacking app.asar")
				spinner.Start()
				err := neutralize.Run(ws.ExtractDir(), ws.AppDir(), rt)
				spinner.Stop()
				return err
			},
		},
		{
			State: pipeline.StateAssembling,
			Title: "Assembling installation tree",
			Run: func() error {
				return bundle.Assemble(ws.AppDir(), ws.PackageRoot(), rt)
			},
		},
		{
			State: pipeline.StateBuilding,
			Title: "Building Debian package",
			Run: func() error {
				if err := deb.WriteMetadata(ws.PackageRoot(), version, cfg.Maintainer); err != nil {
					return err
				}
				built, err := deb.Build(ws.PackageRoot(), ws.Root, version)
				if err != nil {
					return err
				}

				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("cannot determine working directory: %w", err)
				}
				artifact = filepath.Join(cwd, deb.ArtifactName(version))
				if err := fsutil.CopyFile(built, artifact, 0644); err != nil {
					return fmt.Errorf("copying artifact to %s: %w", cwd, err)
				}
				return nil
			},
		},
	}

	if err := pipeline.Run(stages); err != nil {
		failLedger(ledger, buildID, err)
		return err
	}

	finishLedger(ledger, buildID, version, artifact)

	if !buildKeepWorkspace {
		if err := ws.Remove(); err != nil {
			output.Warn(fmt.Sprintf("could not clean workspace: %v", err))
		}
	}

	fmt.Println()
	output.OK(fmt.Sprintf("Package ready: %s", artifact))

	if buildNoInstall {
		return nil
	}
	if buildInstall || promptYesNo("Install the package now?") {
		output.Step("Installing package")
		if err := apt.InstallDeb(artifact); err != nil {
			output.Fail(fmt.Sprintf("install failed: %v", err))
			return err
		}
		output.OK("Installed claude-desktop")
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve config directory: %w", err)
	}
	return config.Load(dir)
}

// promptYesNo asks on stdin; anything other than y/yes declines.
func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// Ledger helpers: the build history is recorded best-effort. A broken or
// locked database degrades to a warning, never a failed build.

func beginLedger() (*store.Store, int64) {
	dbPath, err := getDBPath()
	if err != nil {
		output.Warn(fmt.Sprintf("build ledger unavailable: %v", err))
		return nil, 0
	}
	ledger, err := store.New(dbPath)
	if err != nil {
		output.Warn(fmt.Sprintf("build ledger unavailable: %v", err))
		return nil, 0
	}
	if err := ledger.CreateSchema(); err != nil {
		output.Warn(fmt.Sprintf("build ledger unavailable: %v", err))
		ledger.Close()
		return nil, 0
	}
	id, err := ledger.BeginBuild(time.Now())
	if err != nil {
		output.Warn(fmt.Sprintf("build ledger unavailable: %v", err))
		ledger.Close()
		return nil, 0
	}
	return ledger, id
}

func failLedger(ledger *store.Store, id int64, runErr error) {
	if ledger == nil {
		return
	}
	stage := ""
	var serr *pipeline.Error
	if errors.As(runErr, &serr) {
		stage = serr.Stage
	}
	if err := ledger.FailBuild(id, time.Now(), stage); err != nil {
		log.WithError(err).Debug("could not record build failure")
	}
}

func finishLedger(ledger *store.Store, id int64, version, artifact string) {
	if ledger == nil {
		return
	}
	if err := ledger.FinishBuild(id, time.Now(), version, artifact); err != nil {
		log.WithError(err).Debug("could not record build completion")
	}
}
