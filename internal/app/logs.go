package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/claudepack/internal/bundle"
)

var (
	logsFollow bool

	logsCmd = &cobra.Command{
		Use:   "logs",
		Short: "Show the application's runtime log",
		Long: `Prints the log the launcher tees every application run into
(` + bundle.LogPath + `). With --follow, keeps watching the file and prints
new output as the application writes it.`,
		Example: `  # Dump the log so far
  claudepack logs

  # Follow like tail -f
  claudepack logs -f`,
		RunE: runLogs,
	}
)

func init() {
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "keep watching for new output")
	RootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	f, err := os.Open(bundle.LogPath)
	if err != nil {
		if os.IsNotExist(err) && !logsFollow {
			fmt.Printf("No runtime log at %s yet. Launch claude-desktop first.\n", bundle.LogPath)
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot open log: %w", err)
		}
	}

	if f != nil {
		if _, err := io.Copy(os.Stdout, f); err != nil {
			f.Close()
			return fmt.Errorf("reading log: %w", err)
		}
	}
	if !logsFollow {
		f.Close()
		return nil
	}
	return followLog(f)
}

// followLog prints data appended to the launcher log until interrupted.
// The launcher recreates the file with O_APPEND via tee, so watching the
// containing directory also catches a fresh file after log rotation or
// first launch.
func followLog(f *os.File) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(bundle.LogPath)); err != nil {
		return fmt.Errorf("cannot watch %s: %w", filepath.Dir(bundle.LogPath), err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != bundle.LogPath {
				continue
			}
			if event.Op&fsnotify.Create != 0 && f == nil {
				f, err = os.Open(bundle.LogPath)
				if err != nil {
					return fmt.Errorf("cannot open log: %w", err)
				}
				defer f.Close()
			}
			if f == nil {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if _, err := io.Copy(os.Stdout, f); err != nil {
					return fmt.Errorf("reading log: %w", err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
