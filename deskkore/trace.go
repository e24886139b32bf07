package deskkore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Tracer receives the events of a build. Messages passed to Debug, Info and
// Warn may reference their arguments with `name` placeholders. Arguments are
// given as key/value pairs or as [log/slog.Attr].
type Tracer interface {
	Debug(t *Trace, msg string, args ...any)
	Info(t *Trace, msg string, args ...any)
	Warn(t *Trace, msg string, args ...any)

	BuildStarted(t *Trace, p *Project)
	// BuildDone is called with the error that stopped the build, if any.
	BuildDone(t *Trace, p *Project, dt time.Duration, err error)

	RunAction(*Trace, *Action)
	RunImplicitAction(*Trace, *Action)

	CheckGoal(t *Trace, g *Goal)
	GoalUpToDate(t *Trace, g *Goal)
	GoalNeedsActions(t *Trace, g *Goal, n int)
}

type TraceLog int

var DefaultTraceLog TraceLog = TraceWarn

const (
	TraceWarn TraceLog = (1 << iota)
	TraceInfo
	TraceDebug
)

// Trace is the chain of goals a build followed to the goal it currently
// reaches. It also carries the context of the build.
type Trace struct {
	root *traceRoot
	up   *Trace
	goal *Goal
}

func NewTrace(ctx context.Context, t Tracer) *Trace {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Trace{root: &traceRoot{ctx: ctx, tr: t}}
}

func (t *Trace) Ctx() context.Context { return t.root.ctx }

func (t *Trace) Debug(msg string, args ...any) { t.root.tr.Debug(t, msg, args...) }
func (t *Trace) Info(msg string, args ...any)  { t.root.tr.Info(t, msg, args...) }
func (t *Trace) Warn(msg string, args ...any)  { t.root.tr.Warn(t, msg, args...) }

// Goal returns the goal being reached, nil outside of goals.
func (t *Trace) Goal() *Goal { return t.goal }

// Depth returns the number of goals in the chain.
func (t *Trace) Depth() (n int) {
	for ; t != nil && t.goal != nil; t = t.up {
		n++
	}
	return n
}

// Build returns the ID of the running build, 0 outside of builds.
func (t *Trace) Build() BuildID {
	if t.root.prj == nil {
		return 0
	}
	return t.root.prj.Build()
}

// Tag identifies the position of the trace in log output: the build ID and
// the index of the current goal, e.g. "2#5".
func (t *Trace) Tag() string {
	if t.goal == nil {
		return fmt.Sprintf("%d#-", t.Build())
	}
	return fmt.Sprintf("%d#%d", t.Build(), t.goal.idx)
}

// Path returns the names of the goals in the chain, the requested goal first.
func (t *Trace) Path() string {
	var names []string
	for s := t; s != nil; s = s.up {
		if s.goal != nil {
			names = append(names, s.goal.Name())
		}
	}
	slices.Reverse(names)
	return strings.Join(names, " > ")
}

func (t *Trace) String() string { return t.Tag() + " " + t.Path() }

func (t *Trace) enter(g *Goal) *Trace {
	return &Trace{root: t.root, up: t, goal: g}
}

func (t *Trace) buildStarted(p *Project) {
	t.root.prj = p
	t.root.tr.BuildStarted(t, p)
}

func (t *Trace) buildDone(p *Project, dt time.Duration, err error) {
	t.root.tr.BuildDone(t, p, dt, err)
	t.root.prj = nil
}

func (t *Trace) runAction(a *Action) { t.root.tr.RunAction(t, a) }

func (t *Trace) runImplicitAction(a *Action) { t.root.tr.RunImplicitAction(t, a) }

func (t *Trace) checkGoal(g *Goal) { t.root.tr.CheckGoal(t, g) }

func (t *Trace) goalUpToDate(g *Goal) { t.root.tr.GoalUpToDate(t, g) }

func (t *Trace) goalNeedsActions(g *Goal, n int) { t.root.tr.GoalNeedsActions(t, g, n) }

type traceRoot struct {
	ctx context.Context
	tr  Tracer
	prj *Project
}
