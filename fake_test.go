package elmdesk

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/testerr"
)

const fakeElm = `#!/bin/sh
echo "elm $* @ $(pwd -P)" >> "$FAKE_LOG"
case "$1" in
make)
	if [ -n "$FAKE_ELM_FAIL" ]; then
		echo "-- SYNTAX ERROR" >&2
		exit 3
	fi
	printf 'var Elm = {};\n' > "$4"
	;;
init)
	read answer
	echo "answer $answer" >> "$FAKE_LOG"
	printf '{"type":"application","source-directories":["src"],"elm-version":"0.19.1","dependencies":{"direct":{},"indirect":{}}}' > elm.json
	mkdir -p src
	;;
install)
	read answer
	echo "answer $answer" >> "$FAKE_LOG"
	;;
esac
`

const fakeNpm = `#!/bin/sh
echo "npm $* @ $(pwd -P)" >> "$FAKE_LOG"
case "$1" in
init)
	echo '{}' > package.json
	;;
install)
	pkg="$3"
	mkdir -p "node_modules/$pkg" node_modules/.bin
	printf '#!/bin/sh\necho "%s $* @ $(pwd -P)" >> "$FAKE_LOG"\n' "$pkg" > "node_modules/.bin/$pkg"
	chmod +x "node_modules/.bin/$pkg"
	;;
esac
`

const testManifest = `{
    "type": "application",
    "source-directories": [
        "src"
    ],
    "elm-version": "0.19.1",
    "dependencies": {
        "direct": {
            "avh4/elm-desktop-app": "1.0.0",
            "elm/core": "1.0.5",
            "elm/json": "1.1.3"
        },
        "indirect": {}
    },
    "test-dependencies": {
        "direct": {},
        "indirect": {}
    }
}`

// fakeProject is a project directory with shell scripts that stand in for
// the external tools. The scripts log their calls.
type fakeProject struct {
	dir      string
	tools    Tools
	log      string
	env      *Env
	out, err bytes.Buffer
}

func newFakeProject(t *testing.T, manifest string) *fakeProject {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}
	tmp := t.TempDir()
	fp := &fakeProject{
		dir: filepath.Join(tmp, "counter"),
		log: filepath.Join(tmp, "calls.log"),
		tools: Tools{
			Elm: filepath.Join(tmp, "bin", "elm"),
			Npm: filepath.Join(tmp, "bin", "npm"),
		},
	}
	testerr.F0(os.MkdirAll(filepath.Join(tmp, "bin"), 0777)).ShallBeNil(t)
	testerr.F0(os.WriteFile(fp.tools.Elm, []byte(fakeElm), 0777)).ShallBeNil(t)
	testerr.F0(os.WriteFile(fp.tools.Npm, []byte(fakeNpm), 0777)).ShallBeNil(t)
	testerr.F0(os.MkdirAll(fp.dir, 0777)).ShallBeNil(t)
	if manifest != "" {
		fp.write(t, ManifestFile, manifest)
		fp.write(t, DefaultEntry, "module Main exposing (main)\n")
	}
	fp.env = deskkore.DefaultEnv(nil)
	fp.env.In = nil
	fp.env.Out = &fp.out
	fp.env.Err = &fp.err
	fp.env.SetVar("FAKE_LOG", fp.log)
	return fp
}

func (fp *fakeProject) write(t *testing.T, name, content string) {
	t.Helper()
	testerr.F0(os.WriteFile(filepath.Join(fp.dir, name), []byte(content), 0666)).ShallBeNil(t)
}

func (fp *fakeProject) pipeline(t *testing.T) *Pipeline {
	t.Helper()
	l := testerr.F1(NewLayout(fp.dir, "")).ShallBeNil(t)
	return NewPipeline(l, fp.tools)
}

// calls returns the logged tool calls and truncates the log.
func (fp *fakeProject) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(fp.log)
	if os.IsNotExist(err) {
		return nil
	}
	testerr.F0(err).ShallBeNil(t)
	testerr.F0(os.Remove(fp.log)).ShallBeNil(t)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// at returns the suffix of a logged call run in dir.
func at(t *testing.T, dir string) string {
	t.Helper()
	real := testerr.F1(filepath.EvalSymlinks(dir)).ShallBeNil(t)
	return " @ " + real
}
