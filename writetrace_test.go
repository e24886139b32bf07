package elmdesk

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestWriteTracer_ParseLogFlag(t *testing.T) {
	tr := WriteTracer{Log: deskkore.TraceWarn}
	testerr.F0(tr.ParseLogFlag("")).ShallBeNil(t)
	if tr.Log != deskkore.TraceWarn {
		t.Errorf("empty flag changed log to %d", tr.Log)
	}
	testerr.F0(tr.ParseLogFlag("debug")).ShallBeNil(t)
	if tr.Log&deskkore.TraceDebug == 0 {
		t.Error("debug not set")
	}
	testerr.F0(tr.ParseLogFlag("off")).ShallBeNil(t)
	if tr.Log != 0 {
		t.Errorf("off flag set log to %d", tr.Log)
	}
	testerr.F0(tr.ParseLogFlag("loud")).
		ShallAll(t, testerr.Msg("write tracer: illegal log flag 'loud'"))
}

func TestWriteTracer_messages(t *testing.T) {
	var buf bytes.Buffer
	wt := &WriteTracer{W: &buf, Log: deskkore.TraceWarn | deskkore.TraceInfo}
	tr := deskkore.NewTrace(context.Background(), wt)

	tr.Debug("hidden `x`", `x`, 1)
	tr.Info("reached `stage`", `stage`, StageCompiled)
	tr.Warn("failed `cmd`", slog.String("cmd", "elm make"))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written:\n%s", out)
	}
	for _, s := range []string{"INFO  reached", "compiled", "WARN  failed", "elm make"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing '%s' in:\n%s", s, out)
		}
	}
}
