package elmdesk

import (
	"path/filepath"
	"runtime"
)

const (
	// CacheDir is the namespace of all generated files relative to the
	// project root.
	CacheDir = "elm-stuff/elm-desktop-app"

	GenDirName   = "gen"
	BuildDirName = "app"

	ManifestFile  = "elm.json"
	GlueSrcDir    = "src"
	BundleFile    = "elm.js"
	BootstrapFile = "index.js"
	ShellFile     = "index.html"
	PackageFile   = "package.json"
	NodeModules   = "node_modules"

	// SelfPackage is the Elm package of the glue modules. The glue modules are
	// built from source, so the package must not be resolved by the compiler.
	SelfPackage = "avh4/elm-desktop-app"

	DefaultEntry = "Main.elm"
)

// Layout computes the paths of a project. All paths are absolute.
type Layout struct {
	root  string
	entry string
}

// NewLayout returns the layout of the project in dir with the entry module
// entry. Relative entries are relative to dir, an empty entry means
// [DefaultEntry].
func NewLayout(dir, entry string) (Layout, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return Layout{}, err
	}
	if entry == "" {
		entry = DefaultEntry
	}
	if !filepath.IsAbs(entry) {
		entry = filepath.Join(root, entry)
	}
	return Layout{root: root, entry: filepath.Clean(entry)}, nil
}

func (l Layout) Root() string { return l.root }

func (l Layout) Entry() string { return l.entry }

// Manifest is the user's elm.json. It is only read.
func (l Layout) Manifest() string { return filepath.Join(l.root, ManifestFile) }

func (l Layout) CacheDir() string { return filepath.Join(l.root, filepath.FromSlash(CacheDir)) }

func (l Layout) GenDir() string { return filepath.Join(l.CacheDir(), GenDirName) }

func (l Layout) GenManifest() string { return filepath.Join(l.GenDir(), ManifestFile) }

func (l Layout) GenSrcDir() string { return filepath.Join(l.GenDir(), GlueSrcDir) }

func (l Layout) BuildDir() string { return filepath.Join(l.CacheDir(), BuildDirName) }

func (l Layout) Bundle() string { return filepath.Join(l.BuildDir(), BundleFile) }

func (l Layout) Bootstrap() string { return filepath.Join(l.BuildDir(), BootstrapFile) }

func (l Layout) Shell() string { return filepath.Join(l.BuildDir(), ShellFile) }

func (l Layout) PackageJSON() string { return filepath.Join(l.BuildDir(), PackageFile) }

// NodeModule returns the install directory of the npm package pkg in the
// build directory.
func (l Layout) NodeModule(pkg string) string {
	return filepath.Join(l.BuildDir(), NodeModules, pkg)
}

// Bin returns the executable that npm installs for the package tool in the
// build directory.
func (l Layout) Bin(tool string) string {
	if runtime.GOOS == "windows" {
		tool += ".cmd"
	}
	return filepath.Join(l.BuildDir(), NodeModules, ".bin", tool)
}
