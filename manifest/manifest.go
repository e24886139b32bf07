package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	utilfs "github.com/adnsv/go-utils/fs"
	"golang.org/x/mod/semver"
)

const (
	KeyType         = "type"
	KeySourceDirs   = "source-directories"
	KeyElmVersion   = "elm-version"
	KeyDependencies = "dependencies"
	KeyDirect       = "direct"

	// TypeApplication is the only manifest type that can be built into an
	// executable.
	TypeApplication = "application"

	// ElmVersion is the major and minor compiler version manifests are checked
	// against.
	ElmVersion = "v0.19"
)

// Manifest is a parsed elm.json file.
type Manifest struct {
	// Path the manifest was read from, used for error messages
	Path string

	obj Object
}

// Load reads and parses the manifest file path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse parses data as the manifest read from path. Data must hold exactly
// one JSON object.
func Parse(path string, data []byte) (*Manifest, error) {
	m := &Manifest{Path: path}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := m.obj.decode(dec); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("trailing data at offset %d", dec.InputOffset())}
	}
	return m, nil
}

func (m *Manifest) Object() *Object { return &m.obj }

// Kind returns the manifest's type, e.g. "application". The empty string is
// returned if the type is missing or not a string.
func (m *Manifest) Kind() string {
	s, _ := m.str(KeyType)
	return s
}

// ElmVersion returns the compiler version the manifest requires. The empty
// string is returned if the version is missing or not a string.
func (m *Manifest) ElmVersion() string {
	s, _ := m.str(KeyElmVersion)
	return s
}

// SourceDirs returns the source directories as they are written in the
// manifest.
func (m *Manifest) SourceDirs() ([]string, error) {
	raw, ok := m.obj.Get(KeySourceDirs)
	if !ok {
		return nil, m.invalid(KeySourceDirs, "missing")
	}
	var dirs []string
	if err := json.Unmarshal(raw, &dirs); err != nil || dirs == nil {
		return nil, m.invalid(KeySourceDirs, "not a list of strings")
	}
	return dirs, nil
}

func (m *Manifest) SetSourceDirs(dirs []string) error {
	if dirs == nil {
		dirs = []string{}
	}
	return m.obj.SetValue(KeySourceDirs, dirs)
}

// DirectDeps returns the names of the direct dependencies in document order.
// A manifest without direct dependencies returns nil.
func (m *Manifest) DirectDeps() ([]string, error) {
	deps, direct, err := m.direct()
	if err != nil || deps == nil {
		return nil, err
	}
	return direct.Keys(), nil
}

// RemoveDirect removes the package pkg from the direct dependencies and
// reports whether it was present. Removing an absent package is not an error.
func (m *Manifest) RemoveDirect(pkg string) (bool, error) {
	deps, direct, err := m.direct()
	if err != nil || deps == nil {
		return false, err
	}
	if !direct.Delete(pkg) {
		return false, nil
	}
	raw, err := direct.MarshalJSON()
	if err != nil {
		return false, err
	}
	deps.Set(KeyDirect, raw)
	if raw, err = deps.MarshalJSON(); err != nil {
		return false, err
	}
	m.obj.Set(KeyDependencies, raw)
	return true, nil
}

// Validate checks that m is an application manifest for a compatible compiler
// version.
func (m *Manifest) Validate() error {
	if k := m.Kind(); k != TypeApplication {
		return m.invalid(KeyType, fmt.Sprintf("'%s' is not '%s'", k, TypeApplication))
	}
	v := m.ElmVersion()
	sv := "v" + v
	if !semver.IsValid(sv) {
		return m.invalid(KeyElmVersion, fmt.Sprintf("'%s' is not a version", v))
	}
	if mm := semver.MajorMinor(sv); mm != ElmVersion {
		return m.invalid(KeyElmVersion,
			fmt.Sprintf("'%s' is not compatible with %s", v, ElmVersion[1:]),
		)
	}
	return nil
}

// Marshal returns the compact JSON of m with member order preserved.
func (m *Manifest) Marshal() ([]byte, error) { return m.obj.MarshalJSON() }

// WriteFile writes the compact JSON of m to path. The file is only touched if
// its content changes.
func (m *Manifest) WriteFile(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return utilfs.WriteFileIfChanged(path, data)
}

func (m *Manifest) direct() (deps, direct *Object, err error) {
	d, ok, err := m.obj.Object(KeyDependencies)
	switch {
	case err != nil:
		return nil, nil, m.invalid(KeyDependencies, err.Error())
	case !ok:
		return nil, nil, nil
	}
	dd, ok, err := d.Object(KeyDirect)
	switch {
	case err != nil:
		return nil, nil, m.invalid(KeyDependencies+"."+KeyDirect, err.Error())
	case !ok:
		return nil, nil, nil
	}
	return &d, &dd, nil
}

func (m *Manifest) str(key string) (string, bool) {
	raw, ok := m.obj.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

func (m *Manifest) invalid(field, reason string) *ValidationError {
	return &ValidationError{Path: m.Path, Field: field, Reason: reason}
}

// Equal reports whether m and n have the same members in the same order with
// equal compact JSON values.
func (m *Manifest) Equal(n *Manifest) bool {
	if !slices.Equal(m.obj.keys, n.obj.keys) {
		return false
	}
	a, err := m.Marshal()
	if err != nil {
		return false
	}
	b, err := n.Marshal()
	return err == nil && bytes.Equal(a, b)
}
