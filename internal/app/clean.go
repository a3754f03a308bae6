package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepack/internal/nodeenv"
	"github.com/blackwell-systems/claudepack/internal/output"
	"github.com/blackwell-systems/claudepack/internal/workspace"
)

var (
	cleanRuntime bool

	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove the scratch workspace",
		Long: `Deletes the scratch workspace left by --keep-workspace or an
interrupted run. With --runtime, also drops the cached Electron runtime so
the next build re-downloads it.`,
		RunE: runClean,
	}
)

func init() {
	cleanCmd.Flags().BoolVar(&cleanRuntime, "runtime", false, "also remove the cached Electron runtime")
	RootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	wsRoot := cfg.WorkspaceDir
	if wsRoot == "" {
		wsRoot, err = workspace.DefaultRoot()
		if err != nil {
			return err
		}
	}
	if err := workspace.New(wsRoot).Remove(); err != nil {
		return err
	}
	output.OK(fmt.Sprintf("Removed workspace %s", wsRoot))

	if cleanRuntime {
		prefix, err := nodeenv.DefaultPrefix()
		if err != nil {
			return err
		}
		if err := os.RemoveAll(prefix); err != nil {
			return fmt.Errorf("failed to remove runtime cache %s: %w", prefix, err)
		}
		output.OK(fmt.Sprintf("Removed runtime cache %s", prefix))
	}
	return nil
}
