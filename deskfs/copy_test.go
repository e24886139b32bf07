package deskfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/testerr"
	"github.com/google/go-cmp/cmp"
)

func buildGoal(t *testing.T, g *deskkore.Goal) error {
	t.Helper()
	bd := testerr.F1(deskkore.NewBuilder(deskkore.NewTestTrace(t), &deskkore.Env{})).ShallBeNil(t)
	return bd.Goals(g)
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	return string(testerr.F1(os.ReadFile(name)).ShallBeNil(t))
}

func TestCopy_assetToFile(t *testing.T) {
	var (
		dir    = t.TempDir()
		prj    = deskkore.NewProject(dir)
		assets = fstest.MapFS{"template.js": {Data: []byte("// main")}}
	)
	dst := testerr.F1(prj.Goal(File("elm-stuff/app/index.js"))).ShallBeNil(t)
	src := testerr.F1(prj.Goal(Asset{FS: assets, File: "template.js"})).ShallBeNil(t)
	testerr.F1(prj.NewAction([]*deskkore.Goal{src}, []*deskkore.Goal{dst}, Copy{})).ShallBeNil(t)

	testerr.F0(buildGoal(t, dst)).ShallBeNil(t)
	if s := readFile(t, filepath.Join(dir, "elm-stuff/app/index.js")); s != "// main" {
		t.Errorf("unexpected copy content '%s'", s)
	}

	testerr.F0(os.WriteFile(filepath.Join(dir, "elm-stuff/app/index.js"), []byte("stale content"), 0666)).ShallBeNil(t)
	testerr.F0(buildGoal(t, dst)).ShallBeNil(t)
	if s := readFile(t, filepath.Join(dir, "elm-stuff/app/index.js")); s != "// main" {
		t.Errorf("copy did not overwrite: '%s'", s)
	}
}

func TestCopy_fileKeepsMode(t *testing.T) {
	dir := t.TempDir()
	testerr.F0(os.WriteFile(filepath.Join(dir, "main.js"), []byte("A"), 0640)).ShallBeNil(t)
	prj := deskkore.NewProject(dir)
	src := testerr.F1(prj.Goal(File("main.js"))).ShallBeNil(t)
	ord := testerr.F1(prj.Goal(deskkore.Abstract("compiled"))).ShallBeNil(t)
	dst := testerr.F1(prj.Goal(File("out/main.js"))).ShallBeNil(t)
	testerr.F1(prj.NewAction([]*deskkore.Goal{ord, src}, []*deskkore.Goal{dst}, Copy{})).ShallBeNil(t)

	testerr.F0(buildGoal(t, dst)).ShallBeNil(t)
	out := filepath.Join(dir, "out", "main.js")
	if s := readFile(t, out); s != "A" {
		t.Errorf("out/main.js: '%s'", s)
	}
	st := testerr.F1(os.Stat(out)).ShallBeNil(t)
	if m := st.Mode().Perm(); m != 0640 {
		t.Errorf("copy has mode %o", m)
	}
}

func TestCopy_sources(t *testing.T) {
	dir := t.TempDir()
	testerr.F0(os.WriteFile(filepath.Join(dir, "a.txt"), []byte("A"), 0666)).ShallBeNil(t)
	testerr.F0(os.WriteFile(filepath.Join(dir, "b.txt"), []byte("B"), 0666)).ShallBeNil(t)
	prj := deskkore.NewProject(dir)
	a := testerr.F1(prj.Goal(File("a.txt"))).ShallBeNil(t)
	b := testerr.F1(prj.Goal(File("b.txt"))).ShallBeNil(t)
	ord := testerr.F1(prj.Goal(deskkore.Abstract("ready"))).ShallBeNil(t)

	t.Run("two", func(t *testing.T) {
		dst := testerr.F1(prj.Goal(File("ab.txt"))).ShallBeNil(t)
		testerr.F1(prj.NewAction([]*deskkore.Goal{a, b}, []*deskkore.Goal{dst}, Copy{})).ShallBeNil(t)
		testerr.F0(buildGoal(t, dst)).ShallAll(t, testerr.MsgPrefix("FS copy: more than one source"))
		if _, err := os.Stat(filepath.Join(dir, "ab.txt")); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("copy written from two sources: %v", err)
		}
	})
	t.Run("none", func(t *testing.T) {
		dst := testerr.F1(prj.Goal(File("none.txt"))).ShallBeNil(t)
		testerr.F1(prj.NewAction([]*deskkore.Goal{ord}, []*deskkore.Goal{dst}, Copy{})).ShallBeNil(t)
		testerr.F0(buildGoal(t, dst)).ShallAll(t, testerr.MsgPrefix("FS copy: no source"))
	})
}

func TestCopy_missingSource(t *testing.T) {
	var (
		prj    = deskkore.NewProject(t.TempDir())
		assets = fstest.MapFS{}
	)
	dst := testerr.F1(prj.Goal(File("index.html"))).ShallBeNil(t)
	src := testerr.F1(prj.Goal(Asset{FS: assets, File: "template.html"})).ShallBeNil(t)
	testerr.F1(prj.NewAction([]*deskkore.Goal{src}, []*deskkore.Goal{dst}, Copy{})).ShallBeNil(t)

	err := buildGoal(t, dst)
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
	if fe.Op != "open" || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("unexpected error %+v", fe)
	}
}

func TestCopyTree(t *testing.T) {
	var (
		dst  = filepath.Join(t.TempDir(), "gen", "src")
		fsys = fstest.MapFS{
			"glue/src/DesktopApp.elm":                    {Data: []byte("module DesktopApp")},
			"glue/src/DesktopApp/Ports.elm":              {Data: []byte("module DesktopApp.Ports")},
			"glue/src/DesktopApp/JsonMapping.elm":        {Data: []byte("module DesktopApp.JsonMapping")},
			"glue/variants/desktop/DesktopApp/Ports.elm": {Data: []byte("port module")},
		}
	)
	tr := deskkore.NewTestTrace(t)
	testerr.F0(Reset(tr, dst, 0)).ShallBeNil(t)
	testerr.F0(os.WriteFile(filepath.Join(dst, "Stale.elm"), nil, 0666)).ShallBeNil(t)
	testerr.F0(Reset(tr, dst, 0)).ShallBeNil(t)
	testerr.F0(CopyTree(tr, fsys, "glue/src", dst, 0)).ShallBeNil(t)

	var got []string
	testerr.F0(filepath.WalkDir(dst, func(p string, e fs.DirEntry, err error) error {
		if err == nil && !e.IsDir() {
			rel, _ := filepath.Rel(dst, p)
			got = append(got, filepath.ToSlash(rel))
		}
		return err
	})).ShallBeNil(t)
	// WalkDir visits DesktopApp/ before DesktopApp.elm
	slices.Sort(got)
	want := []string{
		"DesktopApp.elm",
		"DesktopApp/JsonMapping.elm",
		"DesktopApp/Ports.elm",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("copied tree (-want +got):\n%s", diff)
	}
	if s := readFile(t, filepath.Join(dst, "DesktopApp", "Ports.elm")); s != "module DesktopApp.Ports" {
		t.Errorf("unexpected Ports.elm '%s'", s)
	}
}
