package deskfs

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// CopyTree copies the directory tree root of fsys into the OS directory dst.
// Directories are created with mkDirMode, existing files are overwritten.
func CopyTree(tr *deskkore.Trace, fsys fs.FS, root, dst string, mkDirMode fs.FileMode) error {
	tr.Debug("FS copy tree: `root` -> `dst`", `root`, root, `dst`, dst)
	return fs.WalkDir(fsys, root, func(name string, e fs.DirEntry, err error) error {
		if err != nil {
			return fsErr("walk", name, err)
		}
		rel := name
		if root != "." {
			rel = name[len(root):]
			if rel != "" && rel[0] == '/' {
				rel = rel[1:]
			}
		}
		target := filepath.Join(dst, filepath.FromSlash(rel))
		if e.IsDir() {
			if err := os.MkdirAll(target, dirMode(mkDirMode)); err != nil {
				return fsErr("mkdir", target, err)
			}
			return nil
		}
		return CopyFile(tr, fsys, path.Clean(name), target, mkDirMode)
	})
}

// Reset removes dir with all its content and creates it again, empty.
func Reset(tr *deskkore.Trace, dir string, mkDirMode fs.FileMode) error {
	if err := RemoveAll(tr, dir); err != nil {
		return err
	}
	tr.Debug("create `directory`", `directory`, dir)
	return fsErr("mkdir", dir, os.MkdirAll(dir, dirMode(mkDirMode)))
}
