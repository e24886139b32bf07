package deskfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// MkDirs [deskkore.Operation] creates the directories of its results. For
// [File] results the parent directory is created. Existing directories are
// left untouched.
type MkDirs struct {
	// Zero means [DefaultDirMode]
	MkDirMode fs.FileMode
}

var _ deskkore.Operation = MkDirs{}

func (md MkDirs) Describe(*deskkore.Action, *deskkore.Env) string {
	return fmt.Sprintf("MkDirs %s", dirMode(md.MkDirMode))
}

func (md MkDirs) Do(tr *deskkore.Trace, a *deskkore.Action, _ *deskkore.Env) error {
	prj := a.Project()
	for _, res := range a.Results() {
		var dir string
		switch res := res.Artefact.(type) {
		case deskkore.Abstract:
			continue
		case File:
			dir = filepath.Dir(res.Path())
		case Dir:
			dir = res.Path()
		default:
			return fmt.Errorf("illegal MkDirs result: %T", res)
		}
		path, err := prj.AbsPath(dir)
		if err != nil {
			return err
		}
		tr.Debug("create `directory`", `directory`, path)
		if err := os.MkdirAll(path, dirMode(md.MkDirMode)); err != nil {
			return fsErr("mkdir", path, err)
		}
	}
	return nil
}
