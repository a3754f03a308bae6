package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/claudepack/internal/store"
)

// RenderBuildTable renders the build history as an aligned text table.
func RenderBuildTable(builds []*store.Build) string {
	if len(builds) == 0 {
		return "No builds recorded yet. Run 'claudepack build' first.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-4s %-17s %-9s %-9s %-8s %s\n",
		"ID", "STARTED", "DURATION", "VERSION", "STATE", "ARTIFACT"))
	sb.WriteString(strings.Repeat("-", 78) + "\n")

	for _, b := range builds {
		state := b.State
		if IsColorEnabled() {
			switch b.State {
			case store.BuildDone:
				state = colorGreen + b.State + colorReset
			case store.BuildFailed:
				state = colorRed + b.State + colorReset
			}
		}

		detail := b.ArtifactPath
		if b.State == store.BuildFailed && b.FailedStage != "" {
			detail = "failed at " + b.FailedStage
		}

		sb.WriteString(fmt.Sprintf("%-4d %-17s %-9s %-9s %-8s %s\n",
			b.ID,
			b.StartedAt.Local().Format("2006-01-02 15:04"),
			formatDuration(b.StartedAt, b.FinishedAt),
			valueOrDash(b.Version),
			state,
			valueOrDash(detail),
		))
	}
	return sb.String()
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatDuration renders the elapsed time of a run, or "-" when the run
// never recorded a finish time (interrupted process).
func formatDuration(start, end time.Time) string {
	if end.IsZero() {
		return "-"
	}
	d := end.Sub(start).Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
