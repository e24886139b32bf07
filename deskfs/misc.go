package deskfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// Artefact is a [deskkore.Artefact] in the OS's filesystem.
type Artefact interface {
	deskkore.Artefact
	Path() string
}

// DefaultDirMode is used to create directories when no mode is configured.
const DefaultDirMode fs.FileMode = 0777

func Stat(a Artefact, in *deskkore.Project) (fs.FileInfo, error) {
	p, err := in.AbsPath(a.Path())
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

// Error is returned when a filesystem operation fails.
type Error struct {
	Op   string
	Path string
	Err  error
}

func fsErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return &Error{Op: op, Path: pe.Path, Err: pe.Err}
	}
	return &Error{Op: op, Path: path, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// RemoveAll removes path and everything it contains. A missing path is not an
// error.
func RemoveAll(tr *deskkore.Trace, path string) error {
	tr.Debug("remove `path`", `path`, path)
	return fsErr("remove", path, os.RemoveAll(path))
}

func dirMode(m fs.FileMode) fs.FileMode {
	if m == 0 {
		return DefaultDirMode
	}
	return m
}
