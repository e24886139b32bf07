// Package glue bundles the Elm modules and Electron files that connect an
// Elm application to the desktop runtime.
//
// The Elm modules form the source tree [SourceRoot]. Some modules of the tree
// have implementations that depend on the build [Target]. Such modules are
// described by a [Variant]. The tree itself holds the implementations for
// [Test].
package glue

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed assets
var assets embed.FS

const (
	// SourceRoot is the directory of the Elm glue modules in [Assets].
	SourceRoot = "src"

	// TemplateJS is the Electron main script in [Assets].
	TemplateJS = "template.js"

	// TemplateHTML is the HTML shell that loads the compiled application.
	TemplateHTML = "template.html"
)

// Assets returns the bundled files.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

type Target int

const (
	// Desktop binds the glue to Electron.
	Desktop Target = iota

	// Test has no runtime bindings, e.g. for elm-test or elm reactor.
	Test
)

var targetNames = []string{"desktop", "test"}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return fmt.Sprintf("Target(%d)", int(t))
	}
	return targetNames[t]
}

func ParseTarget(s string) (Target, error) {
	for i, n := range targetNames {
		if strings.EqualFold(s, n) {
			return Target(i), nil
		}
	}
	return 0, fmt.Errorf("unknown glue target '%s'", s)
}

func (t *Target) UnmarshalText(text []byte) (err error) {
	*t, err = ParseTarget(string(text))
	return err
}

func (t Target) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Variant is a module of the source tree with target specific
// implementations.
type Variant struct {
	// File is the slash separated path relative to [SourceRoot]
	File string

	// Impls maps targets to files in [Assets]. Targets without an entry use
	// File from the source tree.
	Impls map[Target]string
}

// Variants lists all target specific modules.
var Variants = []Variant{
	{
		File: "DesktopApp/Ports.elm",
		Impls: map[Target]string{
			Desktop: "variants/desktop/DesktopApp/Ports.elm",
		},
	},
}

// Impl returns the file in [Assets] that implements v for target t.
func (v Variant) Impl(t Target) string {
	if impl, ok := v.Impls[t]; ok {
		return impl
	}
	return path.Join(SourceRoot, v.File)
}

// Override replaces the file of the source tree with Impl.
type Override struct {
	File string // relative to SourceRoot
	Impl string // in Assets
}

// Select returns the overrides to apply after copying the source tree for
// target t.
func Select(t Target) (ovs []Override) {
	for _, v := range Variants {
		if impl, ok := v.Impls[t]; ok {
			ovs = append(ovs, Override{File: v.File, Impl: impl})
		}
	}
	return ovs
}
