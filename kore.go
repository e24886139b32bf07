package elmdesk

import (
	"errors"
	"fmt"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

type (
	Env       = deskkore.Env
	Project   = deskkore.Project
	Goal      = deskkore.Goal
	Action    = deskkore.Action
	Trace     = deskkore.Trace
	Operation = deskkore.Operation

	Abstract = deskkore.Abstract
)

const (
	UpdAlways  = deskkore.UpdAlways
	UpdMissing = deskkore.UpdMissing
)

// Edit calls do with wrappers of [deskkore] types that allow easy editing of
// project definitions. Edit recovers from any panic and returns it as an error,
// so the idiomatic error handling within do can be skipped.
func Edit(prj *Project, do func(ProjectEd)) (err error) {
	prj.Lock()
	defer func() {
		prj.Unlock()
		if p := recover(); p != nil {
			switch p := p.(type) {
			case error:
				err = p
			case string:
				err = errors.New(p)
			default:
				err = fmt.Errorf("panic: %+v", p)
			}
		}
	}()
	do(ProjectEd{prj})
	return
}

// OpFunc wraps f into an [Operation] with description desc.
func OpFunc(desc string, f func(*Trace, *Action, *Env) error) Operation {
	return funcOp{desc: desc, f: f}
}

type funcOp struct {
	desc string
	f    func(*Trace, *Action, *Env) error
}

func (fo funcOp) Describe(*Action, *Env) string { return fo.desc }

func (fo funcOp) Do(tr *Trace, a *Action, env *Env) error {
	tr.Debug("call `function`", `function`, fo.desc)
	return fo.f(tr, a, env)
}

func mustRet[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
