package elmdesk

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/sllm/v3"
)

// WriteTracer writes the trace of builds as text lines to W. Messages are
// formatted with sllm. The lines of multi-line messages are indented.
type WriteTracer struct {
	W   io.Writer
	Log deskkore.TraceLog
}

var _ deskkore.Tracer = WriteTracer{}

func DefaultTracer() *WriteTracer {
	return &WriteTracer{W: os.Stderr, Log: deskkore.DefaultTraceLog}
}

// ParseLogFlag sets Log from a command line flag value: off, warn, info or
// debug. The empty string keeps Log unchanged.
func (tr *WriteTracer) ParseLogFlag(f string) error {
	switch f {
	case "":
		return nil
	case "off":
		tr.Log = 0
	case "warn", "w":
		tr.Log = deskkore.TraceWarn
	case "info", "i":
		tr.Log = deskkore.TraceWarn | deskkore.TraceInfo
	case "debug", "d":
		tr.Log = deskkore.TraceWarn | deskkore.TraceInfo | deskkore.TraceDebug
	default:
		return fmt.Errorf("write tracer: illegal log flag '%s'", f)
	}
	return nil
}

func (tr WriteTracer) Debug(t *Trace, msg string, args ...any) {
	if tr.Log&deskkore.TraceDebug != 0 {
		tr.message(t, "DEBUG", msg, args)
	}
}

func (tr WriteTracer) Info(t *Trace, msg string, args ...any) {
	if tr.Log&(deskkore.TraceInfo|deskkore.TraceDebug) != 0 {
		tr.message(t, "INFO ", msg, args)
	}
}

func (tr WriteTracer) Warn(t *Trace, msg string, args ...any) {
	if tr.Log != 0 {
		tr.message(t, "WARN ", msg, args)
	}
}

func (tr WriteTracer) message(t *Trace, level, msg string, args []any) {
	fmt.Fprintf(tr.W, "%s\t  %s ", t.Tag(), level)
	sllm.Fprint(newIndentWriter(tr.W, "\t        "), msg, sllmArgs(args).append)
	fmt.Fprintln(tr.W)
}

func (tr WriteTracer) BuildStarted(t *Trace, p *Project) {
	if tr.Log&(deskkore.TraceInfo|deskkore.TraceDebug) == 0 {
		return
	}
	fmt.Fprintf(tr.W, "%s\t{ build %s in %s\n", t.Tag(), p, p.Dir)
}

func (tr WriteTracer) BuildDone(t *Trace, p *Project, dt time.Duration, err error) {
	switch {
	case err != nil && tr.Log != 0:
		fmt.Fprintf(tr.W, "%s\t} build %s failed after %s\n", t.Tag(), p, dt)
	case tr.Log&(deskkore.TraceInfo|deskkore.TraceDebug) != 0:
		fmt.Fprintf(tr.W, "%s\t} build %s took %s\n", t.Tag(), p, dt)
	}
}

func (tr WriteTracer) logActions() bool {
	return tr.Log&(deskkore.TraceInfo|deskkore.TraceDebug) != 0
}

func (tr WriteTracer) RunAction(t *Trace, a *Action) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%s\t  %s\n", t.Tag(), a)
	}
}

func (tr WriteTracer) RunImplicitAction(t *Trace, _ *Action) {
	if tr.Log&deskkore.TraceDebug != 0 {
		fmt.Fprintf(tr.W, "%s\t  implied\n", t.Tag())
	}
}

func (tr WriteTracer) CheckGoal(t *Trace, g *Goal) {
	if tr.Log&deskkore.TraceDebug != 0 {
		fmt.Fprintf(tr.W, "%s\t? %s\n", t.Tag(), t.Path())
	}
}

func (tr WriteTracer) GoalUpToDate(t *Trace, g *Goal) {
	if tr.logActions() {
		fmt.Fprintf(tr.W, "%s\t. %s exists\n", t.Tag(), g.Name())
	}
}

func (tr WriteTracer) GoalNeedsActions(t *Trace, g *Goal, n int) {
	if tr.Log&deskkore.TraceDebug != 0 {
		fmt.Fprintf(tr.W, "%s\t! %s needs %d actions\n", t.Tag(), g.Name(), n)
	}
}

type sllmArgs []any

func (as sllmArgs) append(buf []byte, _ int, n string) ([]byte, error) {
	for len(as) > 0 {
		switch k := as[0].(type) {
		case string:
			if len(as) == 1 {
				return buf, fmt.Errorf("no value for key '%s'", n)
			}
			if k == n {
				return sllm.AppendArg(buf, as[1]), nil
			}
			as = as[2:]
		case slog.Attr:
			if k.Key == n {
				return sllm.AppendArg(buf, k.Value), nil
			}
			as = as[1:]
		default:
			return buf, fmt.Errorf("illegal key type %T", k)
		}
	}
	return buf, fmt.Errorf("no argument '%s'", n)
}
