package elmdesk

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Stage is the progress of a pipeline run.
type Stage int

const (
	StageStart Stage = iota
	StageWorkspaceReady
	StageManifestMerged
	StageGlueAssembled
	StageCompiled
	StageFinalized
	StagePackaged
	StageDone
)

var stageNames = []string{
	"start",
	"workspace-ready",
	"manifest-merged",
	"glue-assembled",
	"compiled",
	"finalized",
	"packaged",
	"done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Failure is returned when a pipeline run fails. Stage is the last stage the
// run reached before the error. Files written up to that stage are left in
// place.
type Failure struct {
	Stage Stage
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("failed after stage %s: %s", f.Stage, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// SubprocessError is returned when an external tool cannot be started or
// exits with a non-zero status. ExitCode is -1 if the tool did not exit
// normally.
type SubprocessError struct {
	Tool     string
	Args     []string
	Dir      string
	ExitCode int
	Err      error
}

func newSubprocessError(tool string, args []string, dir string, err error) *SubprocessError {
	se := &SubprocessError{
		Tool:     tool,
		Args:     args,
		Dir:      dir,
		ExitCode: -1,
		Err:      err,
	}
	var xerr *exec.ExitError
	if errors.As(err, &xerr) {
		se.ExitCode = xerr.ExitCode()
	}
	return se
}

func (e *SubprocessError) Error() string {
	cmd := e.Tool
	if len(e.Args) > 0 {
		cmd += " " + strings.Join(e.Args, " ")
	}
	if e.ExitCode > 0 {
		return fmt.Sprintf("'%s' in %s exited with code %d", cmd, e.Dir, e.ExitCode)
	}
	return fmt.Sprintf("'%s' in %s: %s", cmd, e.Dir, e.Err)
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for err. It is 0 for nil, the exit
// code of a failed subprocess if err has one and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *SubprocessError
	if errors.As(err, &se) && se.ExitCode > 0 {
		return se.ExitCode
	}
	return 1
}
