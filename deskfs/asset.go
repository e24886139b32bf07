package deskfs

import (
	"io/fs"
	"time"

	"git.fractalqb.de/fractalqb/elmdesk/deskkore"
)

// Asset is a file in a read-only file system, e.g. one embedded into the
// executable. Assets do not change during a build and always exist if the
// file system has the file.
type Asset struct {
	FS   fs.FS
	File string
}

var _ deskkore.Artefact = Asset{}

var assetTime = time.Unix(0, 0)

func (a Asset) Name(*deskkore.Project) string { return "asset:" + a.File }

func (a Asset) StateAt(*deskkore.Project) time.Time {
	if _, err := fs.Stat(a.FS, a.File); err != nil {
		return time.Time{}
	}
	return assetTime
}
