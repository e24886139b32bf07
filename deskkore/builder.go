package deskkore

import (
	"errors"
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// Builder reaches goals of a project. Goals are reached depth-first: all
// premises of all actions resulting in a goal are reached before the actions
// are run in the order they were added to the goal. Each goal is reached at
// most once per build. The first error stops the build. Results already
// written stay in place.
type Builder struct {
	trace *Trace
	env   *Env
	done  *bitset.BitSet // => builder must not be used concurrently
}

func NewBuilder(tr *Trace, env *Env) (*Builder, error) {
	if tr == nil {
		return nil, errors.New("no trace for new builder")
	}
	return &Builder{trace: tr, env: env}, nil
}

func (bd *Builder) Trace() *Trace { return bd.trace }

// Goals reaches all goals gs in one build. All goals must belong to the same
// project.
func (bd *Builder) Goals(gs ...*Goal) (err error) {
	if len(gs) == 0 {
		return nil
	}
	prj := gs[0].Project()
	for _, g := range gs[1:] {
		if g.Project() != prj {
			return fmt.Errorf("goal %s not in project '%s'", g, prj)
		}
	}

	prj.LockBuild()
	defer prj.Unlock()
	if bd.env == nil {
		bd.env = DefaultEnv(bd.trace)
	}
	bd.done = bitset.New(uint(len(prj.order)))

	start := time.Now()
	tr := bd.trace
	tr.buildStarted(prj)
	defer func() { tr.buildDone(prj, time.Since(start), err) }()
	for _, g := range gs {
		if err = bd.buildGoal(tr, g); err != nil {
			return err
		}
	}
	return nil
}

// NamedGoals reaches the goals with the given names in prj.
func (bd *Builder) NamedGoals(prj *Project, names ...string) error {
	var gs []*Goal
	for _, n := range names {
		g := prj.FindGoal(n)
		if g == nil {
			return fmt.Errorf("no goal named '%s' in project '%s'", n, prj.String())
		}
		gs = append(gs, g)
	}
	return bd.Goals(gs...)
}

// Reached reports whether g was handled in the last build, either by running
// its actions or by finding it up-to-date.
func (bd *Builder) Reached(g *Goal) bool {
	return bd.done != nil && bd.done.Test(g.idx)
}

func (bd *Builder) buildGoal(tr *Trace, g *Goal) error {
	if bd.done.Test(g.idx) {
		return nil
	}
	tr = tr.enter(g)
	tr.checkGoal(g)
	if len(g.ResultOf()) == 0 {
		bd.done.Set(g.idx)
		return nil
	}
	if g.UpdateMode == UpdMissing && g.Exists() {
		tr.goalUpToDate(g)
		bd.done.Set(g.idx)
		return nil
	}
	for _, act := range g.ResultOf() {
		for _, pre := range act.Premises() {
			if err := bd.buildGoal(tr, pre); err != nil {
				return err
			}
		}
	}
	if err := tr.Ctx().Err(); err != nil {
		return err
	}
	tr.goalNeedsActions(g, len(g.ResultOf()))
	for _, act := range g.ResultOf() {
		if err := act.Run(tr, bd.env); err != nil {
			return err
		}
	}
	bd.done.Set(g.idx)
	return nil
}
