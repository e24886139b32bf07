package manifest

import (
	"path/filepath"
)

// Merge rewrites m for a build from the generated sources directory genSrcDir.
// Relative source directories are resolved against projectDir, absolute ones
// are kept. The order of source directories is preserved and the absolute
// genSrcDir is appended. The package self is removed from the direct
// dependencies if present. Merge returns whether self was removed.
func Merge(m *Manifest, projectDir, genSrcDir, self string) (bool, error) {
	dirs, err := m.SourceDirs()
	if err != nil {
		return false, err
	}
	if projectDir, err = filepath.Abs(projectDir); err != nil {
		return false, err
	}
	if genSrcDir, err = filepath.Abs(genSrcDir); err != nil {
		return false, err
	}
	merged := make([]string, 0, len(dirs)+1)
	for _, d := range dirs {
		d = filepath.FromSlash(d)
		if !filepath.IsAbs(d) {
			d = filepath.Join(projectDir, d)
		}
		merged = append(merged, filepath.Clean(d))
	}
	merged = append(merged, genSrcDir)
	if err = m.SetSourceDirs(merged); err != nil {
		return false, err
	}
	if self == "" {
		return false, nil
	}
	return m.RemoveDirect(self)
}
