// Package pipeline runs the repackaging stages in a fixed linear order.
//
// Each stage is a named function operating on the shared Workspace. The
// runner executes stages strictly sequentially and short-circuits on the
// first failure; no stage is retried. Stage failures carry the stage name
// and, where applicable, the external tool that failed.
package pipeline

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/blackwell-systems/claudepack/internal/output"
)

// State names for the pipeline state machine. Every transition is
// unconditional-on-success; any failure goes straight to Failed.
const (
	StateProbing       = "probing"
	StateInstallingDep = "installing-deps"
	StateFetching      = "fetching"
	StateExtracting    = "extracting"
	StateIcons         = "processing-icons"
	StateNeutralizing  = "neutralizing-module"
	StateAssembling    = "assembling"
	StateBuilding      = "building-package"
	StateInstalling    = "installing"
	StateDone          = "done"
	StateFailed        = "failed"
)

// Stage is one linear unit of the pipeline.
type Stage struct {
	// State is the state-machine name the pipeline enters when this stage
	// starts, e.g. "fetching".
	State string
	// Title is the operator-facing status line printed on entry.
	Title string
	// Run does the work. A non-nil error terminates the whole pipeline.
	Run func() error
}

// Error is a stage failure: which stage failed, which external tool (if
// any) was responsible, and the underlying error.
type Error struct {
	Stage string
	Tool  string
	Err   error
}

func (e *Error) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ToolError wraps err with the name of the external tool that failed so the
// runner can report it. Stage attribution is added by Run.
func ToolError(tool string, err error) error {
	return &Error{Tool: tool, Err: err}
}

// Run executes stages in order, printing a status line on entry and a
// success or failure marker on completion of each. It stops at the first
// failing stage and returns its Error with the stage name filled in. The
// returned error is nil only if every stage succeeded.
func Run(stages []Stage) error {
	for _, st := range stages {
		log.WithField("state", st.State).Debug("entering stage")
		output.Step(st.Title)

		if err := st.Run(); err != nil {
			serr, ok := err.(*Error)
			if !ok {
				serr = &Error{Err: err}
			}
			serr.Stage = st.State
			log.WithField("state", st.State).WithError(serr.Err).Debug("stage failed")
			output.Fail(fmt.Sprintf("%s failed: %v", st.Title, serr.Err))
			return serr
		}

		log.WithField("state", st.State).Debug("stage complete")
		output.OK(st.Title)
	}
	return nil
}
