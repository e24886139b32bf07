package elmdesk

import (
	"fmt"
	"io/fs"

	"git.fractalqb.de/fractalqb/elmdesk/deskfs"
	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/elmdesk/glue"
)

// Names of the abstract goals of a [Pipeline] project.
const (
	GoalWorkspace = "workspace"
	GoalManifest  = "manifest-merged"
	GoalGlue      = "glue-assembled"
	GoalCompiled  = "compiled"
	GoalBuild     = "build"
	GoalRun       = "run"
	GoalDist      = "dist"
	GoalPackage   = "package"
	GoalInit      = "init"
)

// Pipeline builds, runs and packages the project described by Layout. The
// exported fields must not be changed after the first call to
// [Pipeline.Project].
type Pipeline struct {
	Layout Layout
	Tools  Tools
	Target glue.Target
	// Empty means [AllPlatforms]
	Platforms Platforms
	// Accept manifests that fail [manifest.Manifest.Validate]
	SkipValidation bool
	// Zero means [deskfs.DefaultDirMode]
	MkDirMode fs.FileMode

	prj   *Project
	stage Stage
}

func NewPipeline(l Layout, t Tools) *Pipeline {
	return &Pipeline{Layout: l, Tools: t, Target: glue.Desktop}
}

// Stage returns the stage reached by the last run.
func (p *Pipeline) Stage() Stage { return p.stage }

// Build reaches [StageFinalized]: the build directory holds everything to
// run the application with Electron.
func (p *Pipeline) Build(tr *Trace, env *Env) error { return p.Reach(tr, env, GoalBuild) }

// Run builds the application and runs it with Electron in the project
// directory. Run returns when the application exits.
func (p *Pipeline) Run(tr *Trace, env *Env) error { return p.Reach(tr, env, GoalRun) }

// Package builds the application and packages it for the selected
// platforms with electron-builder.
func (p *Pipeline) Package(tr *Trace, env *Env) error { return p.Reach(tr, env, GoalPackage) }

// Reach reaches the goal with name goal of the pipeline's project. Errors are
// returned as [*Failure].
func (p *Pipeline) Reach(tr *Trace, env *Env, goal string) error {
	p.stage = StageStart
	prj, err := p.Project()
	if err != nil {
		return &Failure{Stage: p.stage, Err: err}
	}
	bd, err := deskkore.NewBuilder(tr, env)
	if err != nil {
		return &Failure{Stage: p.stage, Err: err}
	}
	if err := bd.NamedGoals(prj, goal); err != nil {
		return &Failure{Stage: p.stage, Err: err}
	}
	p.stage = StageDone
	return nil
}

// Project returns the project with the goals and actions of the pipeline.
func (p *Pipeline) Project() (*Project, error) {
	if p.prj != nil {
		return p.prj, nil
	}
	prj := deskkore.NewProject(p.Layout.Root())
	if err := Edit(prj, p.define); err != nil {
		return nil, err
	}
	p.prj = prj
	return prj, nil
}

func (p *Pipeline) define(ed ProjectEd) {
	var (
		l      = p.Layout
		mkdirs = deskfs.MkDirs{MkDirMode: p.MkDirMode}
		assets = glue.Assets()
	)

	genDir := ed.Goal(deskfs.Dir(l.GenDir())).By(mkdirs)
	buildDir := ed.Goal(deskfs.Dir(l.BuildDir())).By(mkdirs)
	workspace := ed.Goal(Abstract(GoalWorkspace)).
		By(p.reach(StageWorkspaceReady), genDir, buildDir)

	// Existing installs skip their premises. Install goals must only depend
	// on other installs or the build directory.
	pkgJSON := ed.Goal(deskfs.File(l.PackageJSON())).
		SetUpdateMode(UpdMissing).
		By(p.npm("init", "-y"), buildDir)
	electron := ed.Goal(deskfs.Dir(l.NodeModule("electron"))).
		SetUpdateMode(UpdMissing).
		By(p.npm("install", "--save-dev", "electron"), pkgJSON)

	genManifest := ed.Goal(deskfs.File(l.GenManifest())).
		By(MergeManifest{
			GenSrcDir: l.GenSrcDir(),
			Self:      SelfPackage,
			Validate:  !p.SkipValidation,
		},
			ed.Goal(deskfs.File(l.Manifest())),
			workspace,
		)
	merged := ed.Goal(Abstract(GoalManifest)).
		By(p.reach(StageManifestMerged), genManifest)

	genSrc := ed.Goal(deskfs.Dir(l.GenSrcDir())).
		By(AssembleGlue{Target: p.Target, MkDirMode: p.MkDirMode}, merged)
	glued := ed.Goal(Abstract(GoalGlue)).
		By(p.reach(StageGlueAssembled), genSrc)

	bundle := ed.Goal(deskfs.File(l.Bundle())).
		By(Compile{Elm: p.Tools.elm(), Entry: l.Entry(), CWD: l.GenDir()},
			workspace,
			electron,
			glued,
			ed.Goal(deskfs.File(l.Entry())),
		)
	compiled := ed.Goal(Abstract(GoalCompiled)).
		By(p.reach(StageCompiled), bundle)

	copyOp := deskfs.Copy{MkDirMode: p.MkDirMode}
	bootstrap := ed.Goal(deskfs.File(l.Bootstrap())).
		By(copyOp, ed.Goal(deskfs.Asset{FS: assets, File: glue.TemplateJS}), compiled)
	shell := ed.Goal(deskfs.File(l.Shell())).
		By(copyOp, ed.Goal(deskfs.Asset{FS: assets, File: glue.TemplateHTML}), compiled)
	build := ed.Goal(Abstract(GoalBuild)).
		By(p.reach(StageFinalized), bootstrap, shell)

	ed.Goal(Abstract(GoalRun)).
		By(&CmdOp{CWD: l.Root(), Exe: l.Bin("electron"), Args: []string{l.BuildDir()}},
			build,
		)

	builder := ed.Goal(deskfs.Dir(l.NodeModule("electron-builder"))).
		SetUpdateMode(UpdMissing).
		By(p.npm("install", "--save-dev", "electron-builder"), pkgJSON)
	platforms := p.Platforms
	if platforms.Len() == 0 {
		platforms = AllPlatforms()
	}
	dist := ed.Goal(Abstract(GoalDist)).
		By(&CmdOp{
			CWD:  l.BuildDir(),
			Exe:  l.Bin("electron-builder"),
			Args: platforms.Flags(),
		},
			build,
			builder,
		)
	ed.Goal(Abstract(GoalPackage)).By(p.reach(StagePackaged), dist)
}

func (p *Pipeline) reach(s Stage) Operation {
	return OpFunc(fmt.Sprintf("reach %s", s), func(tr *Trace, _ *Action, _ *Env) error {
		p.stage = s
		tr.Info("reached `stage`", `stage`, s)
		return nil
	})
}

func (p *Pipeline) npm(args ...string) *CmdOp {
	return &CmdOp{CWD: p.Layout.BuildDir(), Exe: p.Tools.npm(), Args: args}
}
