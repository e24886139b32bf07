package deskkore

import (
	"fmt"
	"reflect"
	"slices"
	"time"
)

// Artefact represents the tangible outcome of a [Goal] being reached. A special
// case is the [Abstract] artefact.
type Artefact interface {
	// Name returns the name of the artefact that must be unique in the Project.
	Name(in *Project) string

	// StateAt returns the time at which the artefact reached its current state.
	// If the artefact does not exist, the zero Time is returned.
	StateAt(in *Project) time.Time
}

// Abstract artefacts only name a goal, e.g. "build". They never exist.
type Abstract string

var _ Artefact = Abstract("")

func (a Abstract) Name(*Project) string { return string(a) }

func (a Abstract) StateAt(*Project) time.Time { return time.Time{} }

type UpdateMode uint

const (
	// The actions of the goal are run every time the goal is to be reached.
	// Each action must overwrite its results deterministically.
	UpdAlways UpdateMode = iota

	// The actions of the goal are only run if the goal's artefact does not
	// exist. This is used for installations that are reused across builds.
	UpdMissing
)

func (m UpdateMode) String() string {
	switch m {
	case UpdAlways:
		return "always"
	case UpdMissing:
		return "missing"
	}
	return fmt.Sprintf("UpdateMode(%d)", uint(m))
}

// A Goal is something you want to reach in your [Project]. Each goal is
// associated with an [Artefact], generally something tangible that is
// considered available and up-to-date when the goal is reached.
//
// Goals are reached through actions ([Action]). When a goal is the result of
// several actions, they are run in the order they were added. A goal can also
// be the premise for one or more actions. Such dependent actions are not run
// before the goal is reached.
type Goal struct {
	UpdateMode UpdateMode
	Artefact   Artefact

	prj       *Project
	idx       uint
	resultOf  []*Action
	premiseOf []*Action
}

func (g *Goal) Project() *Project { return g.prj }

func (g *Goal) Name() string { return g.Artefact.Name(g.Project()) }

// ResultOf returns the actions that result in this goal.
func (g *Goal) ResultOf() []*Action { return g.resultOf }

// PremiseOf returns the actions that depend on g.
func (g *Goal) PremiseOf() []*Action { return g.premiseOf }

func (g *Goal) IsAbstract() bool {
	_, ok := g.Artefact.(Abstract)
	return ok
}

// Exists reports whether the goal's artefact currently exists.
func (g *Goal) Exists() bool {
	return !g.Artefact.StateAt(g.Project()).IsZero()
}

func (g *Goal) String() string {
	tn := reflect.Indirect(reflect.ValueOf(g.Artefact)).Type().Name()
	return fmt.Sprintf("[%s]%s", g.Name(), tn)
}

func (g *Goal) dependsOn(results []*Goal) bool {
	if slices.Contains(results, g) {
		return true
	}
	for _, act := range g.resultOf {
		for _, pre := range act.premises {
			if pre.dependsOn(results) {
				return true
			}
		}
	}
	return false
}
