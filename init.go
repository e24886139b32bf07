package elmdesk

import (
	"git.fractalqb.de/fractalqb/elmdesk/deskfs"
	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// Init creates an Elm application in the project directory unless it already
// has a manifest. Then the package elm/json is installed. All questions of
// the Elm tool are answered with yes. Init does not use the project of
// [Pipeline.Project].
func (p *Pipeline) Init(tr *Trace, env *Env) error {
	var (
		l   = p.Layout
		prj = deskkore.NewProject(l.Root())
	)
	err := Edit(prj, func(ed ProjectEd) {
		root := ed.Goal(deskfs.Dir(l.Root())).
			By(deskfs.MkDirs{MkDirMode: p.MkDirMode})
		elmJSON := ed.Goal(deskfs.File(l.Manifest())).
			SetUpdateMode(UpdMissing).
			By(&CmdOp{CWD: l.Root(), Exe: p.Tools.elm(), Args: []string{"init"}, In: Yes()},
				root,
			)
		ed.Goal(Abstract(GoalInit)).
			By(&CmdOp{
				CWD:  l.Root(),
				Exe:  p.Tools.elm(),
				Args: []string{"install", "elm/json"},
				In:   Yes(),
			},
				elmJSON,
			)
	})
	if err != nil {
		return err
	}
	bd, err := deskkore.NewBuilder(tr, env)
	if err != nil {
		return err
	}
	return bd.NamedGoals(prj, GoalInit)
}
