package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepack/internal/output"
	"github.com/blackwell-systems/claudepack/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past pipeline runs",
	Long: `Lists every recorded build: when it ran, the derived application
version, where the artifact was written, and — for failed runs — which
pipeline stage broke.`,
	RunE: runHistory,
}

func init() {
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, err := getDBPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No builds recorded yet. Run 'claudepack build' first.")
		return nil
	}

	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open build ledger: %w", err)
	}
	defer db.Close()

	builds, err := db.ListBuilds()
	if err != nil {
		return fmt.Errorf("failed to read build ledger: %w", err)
	}

	fmt.Print(output.RenderBuildTable(builds))
	return nil
}
