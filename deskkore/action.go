package deskkore

// An Action is something you can do in your [Project] to reach at least one
// [Goal]. The actual implementation of the action is an [Operation]. An action
// without an operation is an "implicit" action, i.e. if all its premises are
// reached, all results of the action are implicitly given.
type Action struct {
	Op Operation

	prj      *Project
	premises []*Goal
	results  []*Goal
}

func (a *Action) Project() *Project { return a.prj }

func (a *Action) Premises() []*Goal { return a.premises }

func (a *Action) Results() []*Goal { return a.results }

// Run runs the action's operation with env. Implicit actions do nothing.
func (a *Action) Run(tr *Trace, env *Env) error {
	if a.Op == nil {
		tr.runImplicitAction(a)
		return nil
	}
	if env == nil {
		env = DefaultEnv(tr)
	}
	tr.runAction(a)
	return a.Op.Do(tr, a, env)
}

func (a *Action) String() string {
	switch {
	case a == nil:
		return "<nil:Action>"
	case a.Op == nil:
		return "implicit:" + a.Project().String()
	}
	return a.Op.Describe(a, nil)
}

type Operation interface {
	// The hints are optional
	Describe(actionHint *Action, envHint *Env) string
	Do(tr *Trace, a *Action, env *Env) error
}
