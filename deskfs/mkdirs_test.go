package deskfs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestMkDirs(t *testing.T) {
	dir := t.TempDir()
	prj := deskkore.NewProject(dir)
	gen := testerr.F1(prj.Goal(Dir("elm-stuff/elm-desktop-app/gen"))).ShallBeNil(t)
	app := testerr.F1(prj.Goal(Dir("elm-stuff/elm-desktop-app/app"))).ShallBeNil(t)
	testerr.F1(prj.NewAction(nil, []*deskkore.Goal{gen, app}, MkDirs{})).ShallBeNil(t)

	if gen.Exists() {
		t.Fatal("gen dir exists before build")
	}
	testerr.F0(buildGoal(t, app)).ShallBeNil(t)
	if !gen.Exists() || !app.Exists() {
		t.Fatal("directories not created")
	}
	keep := filepath.Join(dir, "elm-stuff/elm-desktop-app/app/package.json")
	testerr.F0(os.WriteFile(keep, []byte("{}"), 0666)).ShallBeNil(t)
	testerr.F0(buildGoal(t, app)).ShallBeNil(t)
	testerr.F1(os.Stat(keep)).ShallBeNil(t)
}

func TestMkDirs_fail(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a file as parent directory")
	}
	dir := t.TempDir()
	testerr.F0(os.WriteFile(filepath.Join(dir, "elm-stuff"), nil, 0666)).ShallBeNil(t)
	prj := deskkore.NewProject(dir)
	gen := testerr.F1(prj.Goal(Dir("elm-stuff/gen"))).ShallBeNil(t)
	testerr.F1(prj.NewAction(nil, []*deskkore.Goal{gen}, MkDirs{})).ShallBeNil(t)
	var fe *Error
	if err := buildGoal(t, gen); !errors.As(err, &fe) {
		t.Fatalf("expected filesystem error, got %v", err)
	}
	if fe.Op != "mkdir" {
		t.Errorf("unexpected op '%s'", fe.Op)
	}
}

func TestDir_Name(t *testing.T) {
	prj := deskkore.NewProject(filepath.FromSlash("/prj"))
	if n := Dir(filepath.FromSlash("/prj/elm-stuff/gen")).Name(prj); n != "elm-stuff/gen/" {
		t.Errorf("dir name '%s'", n)
	}
	if n := File(filepath.FromSlash("/prj/elm-stuff/gen/elm.json")).Name(prj); n != "elm-stuff/gen/elm.json" {
		t.Errorf("file name '%s'", n)
	}
}
