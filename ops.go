package elmdesk

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.fractalqb.de/fractalqb/elmdesk/deskfs"
	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
	"git.fractalqb.de/fractalqb/elmdesk/glue"
	"git.fractalqb.de/fractalqb/elmdesk/manifest"
)

// MergeManifest [Operation] writes the manifest for building from the glue
// sources. Its single [deskfs.File] premise is the user's manifest, its single
// [deskfs.File] result the merged manifest, see [manifest.Merge].
type MergeManifest struct {
	GenSrcDir string
	Self      string
	Validate  bool
}

var _ deskkore.Operation = MergeManifest{}

func (MergeManifest) Describe(*Action, *Env) string { return "merge manifest" }

func (mm MergeManifest) Do(tr *Trace, a *Action, _ *Env) error {
	prj := a.Project()
	src, err := singleFile(a.Premises())
	if err != nil {
		return fmt.Errorf("merge manifest premise: %w", err)
	}
	dst, err := singleFile(a.Results())
	if err != nil {
		return fmt.Errorf("merge manifest result: %w", err)
	}
	srcPath, err := prj.AbsPath(src.Path())
	if err != nil {
		return err
	}
	dstPath, err := prj.AbsPath(dst.Path())
	if err != nil {
		return err
	}
	m, err := manifest.Load(srcPath)
	if err != nil {
		return err
	}
	if mm.Validate {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	removed, err := manifest.Merge(m, prj.Dir, mm.GenSrcDir, mm.Self)
	if err != nil {
		return err
	}
	if removed {
		tr.Debug("removed `package` from direct dependencies", `package`, mm.Self)
	}
	tr.Debug("write merged manifest `file`", `file`, dstPath)
	if err := m.WriteFile(dstPath); err != nil {
		return &deskfs.Error{Op: "write", Path: dstPath, Err: err}
	}
	return nil
}

// AssembleGlue [Operation] resets its [deskfs.Dir] result to the glue
// source tree for Target.
type AssembleGlue struct {
	Target    glue.Target
	MkDirMode fs.FileMode
}

var _ deskkore.Operation = AssembleGlue{}

func (ag AssembleGlue) Describe(*Action, *Env) string {
	return fmt.Sprintf("assemble %s glue", ag.Target)
}

func (ag AssembleGlue) Do(tr *Trace, a *Action, _ *Env) error {
	prj := a.Project()
	for _, res := range a.Results() {
		dir, ok := res.Artefact.(deskfs.Dir)
		if !ok {
			continue
		}
		dst, err := prj.AbsPath(dir.Path())
		if err != nil {
			return err
		}
		if err := deskfs.Reset(tr, dst, ag.MkDirMode); err != nil {
			return err
		}
		assets := glue.Assets()
		if err := deskfs.CopyTree(tr, assets, glue.SourceRoot, dst, ag.MkDirMode); err != nil {
			return err
		}
		for _, ov := range glue.Select(ag.Target) {
			tr.Debug("use `impl` for `module`", `impl`, ov.Impl, `module`, ov.File)
			err := deskfs.CopyFile(tr,
				assets, ov.Impl,
				filepath.Join(dst, filepath.FromSlash(ov.File)),
				ag.MkDirMode,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Compile [Operation] runs the Elm compiler on Entry and writes the bundle to
// its single [deskfs.File] result. The compiler runs in CWD, the directory of
// the merged manifest. A bundle left from an earlier build is removed before
// the compiler runs.
type Compile struct {
	Elm   string
	Entry string
	CWD   string
}

var _ deskkore.Operation = Compile{}

func (c Compile) Describe(*Action, *Env) string {
	return fmt.Sprintf("compile %s", filepath.Base(c.Entry))
}

func (c Compile) Do(tr *Trace, a *Action, env *Env) error {
	res, err := singleFile(a.Results())
	if err != nil {
		return fmt.Errorf("compile result: %w", err)
	}
	bundle, err := a.Project().AbsPath(res.Path())
	if err != nil {
		return err
	}
	if err := os.Remove(bundle); err == nil {
		tr.Debug("removed stale `bundle`", `bundle`, bundle)
	} else if !errors.Is(err, os.ErrNotExist) {
		return &deskfs.Error{Op: "remove", Path: bundle, Err: err}
	}
	cmd := CmdOp{
		CWD:  c.CWD,
		Exe:  c.Elm,
		Args: []string{"make", c.Entry, "--output", bundle},
	}
	if err := cmd.Do(tr, a, env); err != nil {
		return err
	}
	st, err := os.Stat(bundle)
	switch {
	case err != nil:
		return fmt.Errorf("compiler left no bundle: %w", err)
	case st.Size() == 0:
		return fmt.Errorf("compiler left empty bundle %s", bundle)
	}
	tr.Info("compiled `bundle` with `size`",
		slog.String(`bundle`, bundle),
		slog.Int64(`size`, st.Size()),
	)
	return nil
}

func singleFile(gs []*Goal) (f deskfs.File, err error) {
	n := 0
	for _, g := range gs {
		if gf, ok := g.Artefact.(deskfs.File); ok {
			f = gf
			n++
		}
	}
	if n != 1 {
		return f, fmt.Errorf("need one file goal, have %d", n)
	}
	return f, nil
}
