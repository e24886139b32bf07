package deskfs

import (
	"path/filepath"
	"time"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// File is a regular file. Relative paths are relative to the project
// directory.
type File string

var _ Artefact = File("")

func (f File) Path() string { return string(f) }

func (f File) Name(in *deskkore.Project) string {
	n, _ := in.RelPath(f.Path())
	return filepath.ToSlash(n)
}

func (f File) StateAt(in *deskkore.Project) time.Time {
	st, err := Stat(f, in)
	if err != nil || st.IsDir() {
		return time.Time{}
	}
	return st.ModTime()
}

// Dir is a directory. Relative paths are relative to the project directory.
type Dir string

var _ Artefact = Dir("")

func (d Dir) Path() string { return string(d) }

func (d Dir) Name(in *deskkore.Project) string {
	n, _ := in.RelPath(d.Path())
	return filepath.ToSlash(n) + "/"
}

func (d Dir) StateAt(in *deskkore.Project) time.Time {
	st, err := Stat(d, in)
	if err != nil || !st.IsDir() {
		return time.Time{}
	}
	return st.ModTime()
}
