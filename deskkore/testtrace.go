package deskkore

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// TestTracer writes all trace events to the log of a test.
type TestTracer struct{ T testing.TB }

var _ Tracer = TestTracer{}

// NewTestTrace returns a trace that logs to t with the test's context.
func NewTestTrace(t testing.TB) *Trace {
	ctx := context.Background()
	if tc, ok := t.(interface{ Context() context.Context }); ok {
		ctx = tc.Context()
	}
	return NewTrace(ctx, TestTracer{t})
}

func (tr TestTracer) Debug(t *Trace, msg string, args ...any) {
	tr.T.Logf("desk-DEBUG: %s %v", msg, args)
}

func (tr TestTracer) Info(t *Trace, msg string, args ...any) {
	tr.T.Logf("desk-INFO: %s %v", msg, args)
}

func (tr TestTracer) Warn(t *Trace, msg string, args ...any) {
	tr.T.Logf("desk-WARN: %s %v", msg, args)
}

func (tr TestTracer) BuildStarted(t *Trace, p *Project) {
	tr.T.Logf("desk-BuildStarted: %s %s", t.Tag(), p)
}

func (tr TestTracer) BuildDone(t *Trace, p *Project, dt time.Duration, err error) {
	tr.T.Logf("desk-BuildDone: %s %s %s %v", t.Tag(), p, dt, err)
}

func (tr TestTracer) RunAction(_ *Trace, a *Action) {
	tr.T.Logf("desk-RunAction: %s", a)
}

func (tr TestTracer) RunImplicitAction(_ *Trace, a *Action) {
	tr.T.Logf("desk-RunImplicitAction: %s", a)
}

func (tr TestTracer) CheckGoal(t *Trace, g *Goal) {
	tr.T.Logf("desk-CheckGoal: %s", t)
}

func (tr TestTracer) GoalUpToDate(t *Trace, g *Goal) {
	tr.T.Logf("desk-GoalUpToDate: %s", g)
}

func (tr TestTracer) GoalNeedsActions(t *Trace, g *Goal, n int) {
	tr.T.Logf("desk-GoalNeedsActions: %s %d", g, n)
}

func (tr TestTracer) String() string { return fmt.Sprintf("TestTracer(%s)", tr.T.Name()) }
