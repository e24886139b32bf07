package internal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the configuration file in the project directory.
const ConfigFile = "elm-desktop-app.yaml"

type config struct {
	Elm       string   `yaml:"elm"`
	Npm       string   `yaml:"npm"`
	Entry     string   `yaml:"entry"`
	Platforms []string `yaml:"platforms"`
	Target    string   `yaml:"target"`
	Validate  *bool    `yaml:"validate"`
}

// loadConfig reads file or, if file is empty, the default config file in
// dir. Only the default file may be missing.
func loadConfig(dir, file string) (cfg config, err error) {
	explicit := file != ""
	if !explicit {
		file = filepath.Join(dir, ConfigFile)
	}
	f, err := os.Open(file)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	default:
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", file, err)
	}
	return cfg, nil
}
