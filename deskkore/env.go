package deskkore

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

// Env is the environment an [Operation] runs in: the standard streams and the
// variables passed to subprocesses. Sub environments inherit the variables of
// their parent unless they override or delete them.
type Env struct {
	In       io.Reader
	Out, Err io.Writer

	vars    map[string]string
	unset   map[string]bool
	xenv    []string
	xenvErr error
	parent  *Env
}

// DefaultEnv returns an environment with the process's standard streams and
// environment variables.
func DefaultEnv(tr *Trace) *Env {
	env := &Env{
		In:   os.Stdin,
		Out:  os.Stdout,
		Err:  os.Stderr,
		vars: make(map[string]string),
	}
	for _, evar := range os.Environ() {
		k, v, _ := strings.Cut(evar, "=")
		if k == "" {
			if tr != nil {
				tr.Debug("ignoring process `env`", `env`, evar)
			}
			continue
		}
		env.vars[k] = v
	}
	return env
}

func (e *Env) Sub() *Env {
	return &Env{
		In: e.In, Out: e.Out, Err: e.Err,
		parent: e,
	}
}

func (e *Env) Var(key string) (string, bool) {
	for e != nil {
		if v, ok := e.vars[key]; ok {
			return v, true
		}
		if e.unset[key] {
			break
		}
		e = e.parent
	}
	return "", false
}

func (e *Env) SetVar(key, val string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	e.vars[key] = val
	delete(e.unset, key)
	e.clearXEnv()
}

// SetVars sets variables given in the "key=value" form of [os.Environ]. A
// missing '=' sets the variable to the empty string.
func (e *Env) SetVars(env ...string) {
	if e.vars == nil {
		e.vars = make(map[string]string)
	}
	for _, evar := range env {
		k, v, _ := strings.Cut(evar, "=")
		e.vars[k] = v
		delete(e.unset, k)
	}
	e.clearXEnv()
}

func (e *Env) DelVar(key string) {
	delete(e.vars, key)
	if e.parent != nil {
		if e.unset == nil {
			e.unset = make(map[string]bool)
		}
		e.unset[key] = true
	}
	e.clearXEnv()
}

type NonXEnvKeys []string

func (e NonXEnvKeys) Error() string {
	return fmt.Sprintf("illegal exec env keys: %s", strings.Join(e, ", "))
}

func (NonXEnvKeys) Is(target error) bool {
	_, ok := target.(NonXEnvKeys)
	return ok
}

// ExecEnv returns the variables in the form needed for [os/exec.Cmd.Env],
// sorted by key. Keys that cannot be passed to a subprocess are skipped and
// reported with a [NonXEnvKeys] error. An environment without any variables
// returns nil, i.e. subprocesses inherit the environment of this process.
func (e *Env) ExecEnv() ([]string, error) {
	if e.xenv == nil {
		vars := e.mergedVars()
		if len(vars) == 0 {
			return nil, nil
		}
		var errKeys []string
		for _, k := range slices.Sorted(maps.Keys(vars)) {
			switch {
			case k == "":
				errKeys = append(errKeys, `""`)
			case strings.ContainsRune(k, '='):
				errKeys = append(errKeys, k)
			default:
				e.xenv = append(e.xenv, k+"="+vars[k])
			}
		}
		if len(errKeys) > 0 {
			e.xenvErr = NonXEnvKeys(errKeys)
		}
	}
	return e.xenv, e.xenvErr
}

func (e *Env) clearXEnv() {
	e.xenv = nil
	e.xenvErr = nil
}

func (e *Env) mergedVars() map[string]string {
	if e.parent == nil {
		if e.vars == nil {
			return make(map[string]string)
		}
		return maps.Clone(e.vars)
	}
	mvs := e.parent.mergedVars()
	for k := range e.unset {
		delete(mvs, k)
	}
	maps.Copy(mvs, e.vars)
	return mvs
}
