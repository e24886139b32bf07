package deskkore

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type BuildID = uint64

// Project holds the goals and actions of one build pipeline. All relative
// artefact paths are relative to Dir.
type Project struct {
	Dir string

	sync.Mutex

	goals     map[string]*Goal
	order     []*Goal
	actions   []*Action
	lastBuild BuildID
}

// NewProject creates an empty project rooted in dir. An empty dir means the
// current working directory.
func NewProject(dir string) *Project {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return &Project{
		Dir:   dir,
		goals: make(map[string]*Goal),
	}
}

// Goal returns the goal for artefact atf. If the project has no goal with the
// artefact's name yet, a new goal is created.
func (prj *Project) Goal(atf Artefact) (*Goal, error) {
	if atf == nil {
		return nil, fmt.Errorf("nil artefact for goal in project '%s'", prj)
	}
	name := atf.Name(prj)
	if name == "" {
		return nil, fmt.Errorf("artefact %T without name in project '%s'", atf, prj)
	}
	if g := prj.goals[name]; g != nil {
		return g, nil
	}
	g := &Goal{
		Artefact: atf,
		prj:      prj,
		idx:      uint(len(prj.order)),
	}
	prj.goals[name] = g
	prj.order = append(prj.order, g)
	return g, nil
}

// Goals appends all goals of prj to addTo in the order they were created.
func (prj *Project) Goals(addTo []*Goal) []*Goal {
	if len(prj.order) == 0 {
		return addTo
	}
	addTo = slices.Grow(addTo, len(prj.order))
	return append(addTo, prj.order...)
}

func (prj *Project) FindGoal(name string) *Goal { return prj.goals[name] }

func (prj *Project) Actions() []*Action { return prj.actions }

func (prj *Project) Name() string { return filepath.Base(prj.Dir) }

func (prj *Project) String() string {
	tmp := prj.Dir
	if tmp == "" || tmp == "." {
		tmp, _ = filepath.Abs(tmp)
	}
	return filepath.Base(tmp)
}

// AbsPath returns p as an absolute path. Relative paths are taken relative to
// the project directory.
func (prj *Project) AbsPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Abs(filepath.Join(prj.Dir, p))
}

// RelPath returns p relative to the project directory. Paths outside the
// project are returned unchanged.
func (prj *Project) RelPath(p string) (string, error) {
	if !filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	dir, err := filepath.Abs(prj.Dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Clean(p), nil
	}
	return rel, nil
}

// Leafs returns all goals that are not a premise of any action, i.e. the final
// results of the project.
func (prj *Project) Leafs() (ls []*Goal) {
	for _, g := range prj.order {
		if len(g.premiseOf) == 0 {
			ls = append(ls, g)
		}
	}
	return ls
}

// Roots returns all goals that are not the result of any action.
func (prj *Project) Roots() (rs []*Goal) {
	for _, g := range prj.order {
		if len(g.resultOf) == 0 {
			rs = append(rs, g)
		}
	}
	return rs
}

// NewAction creates a new [Action] in project prj. There must be at least one
// result. All premises and results must belong to the same project prj. An
// action with nil op is implicit, its results are reached when its premises
// are reached.
func (prj *Project) NewAction(premises, results []*Goal, op Operation) (*Action, error) {
	if len(results) == 0 {
		if op == nil {
			return nil, fmt.Errorf("creating implicit action without result in '%s'", prj)
		}
		return nil, fmt.Errorf("creating action %s without result",
			op.Describe(nil, nil),
		)
	}
	if err := prj.consistentPrj(premises, results); err != nil {
		return nil, err
	}
	a := &Action{
		Op:       op,
		prj:      prj,
		premises: premises,
		results:  results,
	}
	for _, p := range premises {
		if p.dependsOn(results) {
			return nil, fmt.Errorf("action %s would make goal %s depend on itself", a, p)
		}
	}
	for _, p := range premises {
		p.premiseOf = append(p.premiseOf, a)
	}
	for _, r := range results {
		r.resultOf = append(r.resultOf, a)
	}
	prj.actions = append(prj.actions, a)
	return a, nil
}

// LockBuild locks prj and starts a new build. It must be unlocked with
// Unlock when the build is done.
func (prj *Project) LockBuild() BuildID {
	prj.Lock()
	prj.lastBuild++
	return prj.lastBuild
}

// Build returns the ID of the current or last build.
func (prj *Project) Build() BuildID { return prj.lastBuild }

func (prj *Project) consistentPrj(premises, results []*Goal) error {
	for _, g := range premises {
		if p := g.Project(); p != prj {
			return fmt.Errorf("premise '%s' not in project '%s'",
				g.String(),
				prj.String(),
			)
		}
	}
	for _, g := range results {
		if p := g.Project(); p != prj {
			return fmt.Errorf("result '%s' not in project '%s'",
				g.String(),
				prj.String(),
			)
		}
	}
	return nil
}
