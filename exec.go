package elmdesk

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// CmdOp runs an external command without a shell. Standard output and error
// of the command go to the action's [Env] unmodified.
type CmdOp struct {
	// Working directory of the command, empty means the process's working
	// directory
	CWD  string
	Exe  string
	Args []string
	// Standard input of the command, nil means the Env's input
	In   io.Reader
	Desc string
}

var _ deskkore.Operation = (*CmdOp)(nil)

func (op *CmdOp) Describe(*Action, *Env) string {
	if op.Desc == "" {
		op.Desc = fmt.Sprintf("%s%v", filepath.Base(op.Exe), op.Args)
	}
	return op.Desc
}

func (op *CmdOp) Do(tr *Trace, a *Action, env *Env) error {
	xenv, err := env.ExecEnv()
	if err != nil {
		tr.Warn(err.Error(), slog.String("action", a.String()))
	}
	cmd := exec.CommandContext(tr.Ctx(), op.Exe, op.Args...)
	cmd.Dir = op.CWD
	cmd.Env = xenv
	if op.In != nil {
		cmd.Stdin = op.In
	} else {
		cmd.Stdin = env.In
	}
	cmd.Stdout = env.Out
	cmd.Stderr = env.Err
	tr.Debug("exec `cmd` in `dir`",
		slog.String("cmd", cmd.String()),
		slog.String("dir", cmd.Dir),
	)
	if err = cmd.Run(); err != nil {
		tr.Warn("failed `cmd` in `dir` with `error`",
			slog.String("cmd", cmd.String()),
			slog.String("dir", cmd.Dir),
			slog.String("error", err.Error()),
		)
		return newSubprocessError(filepath.Base(op.Exe), op.Args, op.CWD, err)
	}
	return nil
}

// Yes returns a reader that answers every question of an interactive tool
// with "y".
func Yes() io.Reader { return new(yes) }

type yes struct{ nl bool }

func (y *yes) Read(p []byte) (int, error) {
	for i := range p {
		if y.nl {
			p[i] = '\n'
		} else {
			p[i] = 'y'
		}
		y.nl = !y.nl
	}
	return len(p), nil
}
