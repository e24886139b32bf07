package deskfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// Copy [deskkore.Operation] copies its single [File] or [Asset] premise to
// each of its [File] results. Existing files are overwritten. Abstract
// premises only order the action.
type Copy struct {
	// Zero means [DefaultDirMode]
	MkDirMode fs.FileMode
}

var _ deskkore.Operation = Copy{}

func (Copy) Describe(*deskkore.Action, *deskkore.Env) string { return "FS copy" }

func (cp Copy) Do(tr *deskkore.Trace, a *deskkore.Action, _ *deskkore.Env) error {
	prj := a.Project()
	var (
		fsys fs.FS
		name string
	)
	for _, pre := range a.Premises() {
		switch atf := pre.Artefact.(type) {
		case deskkore.Abstract:
			continue
		case File:
			p, err := prj.AbsPath(atf.Path())
			if err != nil {
				return err
			}
			if fsys != nil {
				return fmt.Errorf("FS copy: more than one source: %s, %s", name, p)
			}
			fsys, name = osFS{}, p
		case Asset:
			if fsys != nil {
				return fmt.Errorf("FS copy: more than one source: %s, %s", name, atf.File)
			}
			fsys, name = atf.FS, atf.File
		default:
			return fmt.Errorf("FS copy: illegal premise artefact type %T", atf)
		}
	}
	for _, res := range a.Results() {
		switch atf := res.Artefact.(type) {
		case deskkore.Abstract:
		case File:
			dst, err := prj.AbsPath(atf.Path())
			if err != nil {
				return err
			}
			if fsys == nil {
				return fmt.Errorf("FS copy: no source for %s", dst)
			}
			if err := CopyFile(tr, fsys, name, dst, cp.MkDirMode); err != nil {
				return err
			}
		default:
			return fmt.Errorf("FS copy: illegal result artefact type %T", atf)
		}
	}
	return nil
}

// CopyFile copies the file name from fsys to the OS file dst, creating the
// directory of dst if needed. Files from the OS keep their permissions, all
// other files are written with mode 0666 before umask.
func CopyFile(tr *deskkore.Trace, fsys fs.FS, name, dst string, mkDirMode fs.FileMode) error {
	if fsys == nil {
		fsys = osFS{}
	}
	tr.Debug("FS copy: `src` -> `dst`",
		slog.String(`src`, name),
		slog.String(`dst`, dst),
	)
	mode := fs.FileMode(0666)
	if _, ok := fsys.(osFS); ok {
		st, err := os.Stat(name)
		if err != nil {
			return fsErr("stat", name, err)
		}
		if st.IsDir() {
			return &Error{Op: "copy", Path: name, Err: errors.New("is a directory")}
		}
		if name == dst {
			return nil
		}
		mode = st.Mode().Perm()
	}
	if err := os.MkdirAll(filepath.Dir(dst), dirMode(mkDirMode)); err != nil {
		return fsErr("mkdir", filepath.Dir(dst), err)
	}
	r, err := fsys.Open(name)
	if err != nil {
		return fsErr("open", name, err)
	}
	defer r.Close()
	w, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fsErr("create", dst, err)
	}
	_, err = io.Copy(w, r)
	if e := w.Close(); e != nil {
		err = errors.Join(err, e)
	}
	return fsErr("write", dst, err)
}

// osFS opens absolute OS paths. It is not a valid [fs.FS] for [fs.WalkDir]
// and only used internally.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }
