package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	traceFlag, configFile, buildDot = "", "", false
	var out, errs bytes.Buffer
	code = execute(context.Background(), args, &out, &errs)
	return code, out.String(), errs.String()
}

func TestExecute_usage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"help"},
		{"--bogus"},
		{"build", "a", "b"},
	} {
		code, out, _ := runCLI(t, args...)
		if code != 0 {
			t.Errorf("%v: exit code %d", args, code)
		}
		if out != usage {
			t.Errorf("%v: unexpected output:\n%s", args, out)
		}
	}
}

func TestExecute_buildDot(t *testing.T) {
	dir := t.TempDir()
	code, out, errs := runCLI(t, "build", "--dot", dir)
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, errs)
	}
	for _, s := range []string{"digraph", "manifest-merged", "elm.js"} {
		if !strings.Contains(out, s) {
			t.Errorf("missing '%s' in:\n%s", s, out)
		}
	}
}

func TestExecute_badConfig(t *testing.T) {
	dir := t.TempDir()
	testerr.F0(os.WriteFile(
		filepath.Join(dir, ConfigFile),
		[]byte("platforms: [beos]\n"),
		0666,
	)).ShallBeNil(t)
	code, out, errs := runCLI(t, "build", dir)
	if code != 1 {
		t.Errorf("exit code %d", code)
	}
	if out != "" {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(errs, "unknown platform 'beos'") {
		t.Errorf("unexpected error output: %s", errs)
	}
}
