package elmdesk

import (
	"errors"
	"testing"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/testerr"
)

func TestEdit(t *testing.T) {
	prj := deskkore.NewProject(t.TempDir())
	var log []string
	step := func(name string) Operation {
		return OpFunc(name, func(*Trace, *Action, *Env) error {
			log = append(log, name)
			return nil
		})
	}
	testerr.F0(Edit(prj, func(ed ProjectEd) {
		a := ed.Goal(Abstract("a")).By(step("a"))
		b := ed.Goal(Abstract("b")).By(step("b"))
		ed.Goal(Abstract("all")).ImpliedBy(a, b)
	})).ShallBeNil(t)

	bd := testerr.F1(deskkore.NewBuilder(deskkore.NewTestTrace(t), &Env{})).ShallBeNil(t)
	testerr.F0(bd.NamedGoals(prj, "all")).ShallBeNil(t)
	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Errorf("unexpected steps %v", log)
	}

	t.Run("panic", func(t *testing.T) {
		err := Edit(prj, func(ed ProjectEd) {
			ed.Goal(Abstract("a")).ImpliedBy(ed.Goal(Abstract("all")))
		})
		if err == nil {
			t.Fatal("cycle not reported")
		}
		err = Edit(prj, func(ProjectEd) { panic("boom") })
		if err == nil || err.Error() != "boom" {
			t.Errorf("unexpected error %v", err)
		}
		fail := errors.New("fail")
		if err = Edit(prj, func(ProjectEd) { panic(fail) }); err != fail {
			t.Errorf("unexpected error %v", err)
		}
	})
}
