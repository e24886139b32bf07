package elmdesk

import (
	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// ProjectEd is used with [Edit].
type ProjectEd struct{ p *Project }

func (ed ProjectEd) Project() *Project { return ed.p }

func (ed ProjectEd) Goal(atf deskkore.Artefact) GoalEd {
	return GoalEd{mustRet(ed.p.Goal(atf))}
}

// GoalEd is used with [Edit].
type GoalEd struct{ g *Goal }

func (ed GoalEd) Goal() *Goal { return ed.g }

// SetUpdateMode sets the goal's update mode and returns the goal for chaining.
func (ed GoalEd) SetUpdateMode(m deskkore.UpdateMode) GoalEd {
	ed.g.UpdateMode = m
	return ed
}

// By adds an action with op that has the goal as result.
func (result GoalEd) By(op Operation, premises ...GoalEd) GoalEd {
	prj := result.g.Project()
	mustRet(prj.NewAction(goals(premises), []*Goal{result.g}, op))
	return result
}

// ImpliedBy adds an implicit action, i.e. the goal is reached when all
// premises are reached.
func (ed GoalEd) ImpliedBy(premises ...GoalEd) GoalEd {
	prj := ed.g.Project()
	mustRet(prj.NewAction(goals(premises), []*Goal{ed.g}, nil))
	return ed
}

func goals(gs []GoalEd) []*Goal {
	var gls []*Goal
	if l := len(gs); l > 0 {
		gls = make([]*Goal, l)
		for i, p := range gs {
			gls[i] = p.g
		}
	}
	return gls
}
