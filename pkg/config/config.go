// Package config loads the workspace configuration: the common folder
// location and the ordered project list with per-project
// cyclic-dependency declarations. Configuration is layered with koanf:
// embedded defaults first, then monolink.toml or monolink.yaml at the
// workspace root.
package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	linkerrors "github.com/monolink/monolink/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config is the parsed workspace configuration.
type Config struct {
	// CommonFolder is the shared install folder, relative to the
	// workspace root unless absolute.
	CommonFolder string `koanf:"common_folder"`

	// Projects is the ordered workspace project list. Order is the
	// linking order.
	Projects []ProjectConfig `koanf:"projects"`
}

// ProjectConfig is one workspace project entry.
type ProjectConfig struct {
	// Folder is the project source folder, relative to the workspace
	// root unless absolute.
	Folder string `koanf:"folder"`

	// CyclicDependencyProjects names sibling projects reached through a
	// dependency cycle; they are linked through the central store
	// instead of project-to-project.
	CyclicDependencyProjects []string `koanf:"cyclic_dependency_projects"`
}

// Configuration file names probed at the workspace root, first match
// wins.
var configFileNames = []string{"monolink.toml", "monolink.yaml", "monolink.yml"}

// Load reads the workspace configuration from rootFolder.
func Load(rootFolder string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, linkerrors.Wrap(err, linkerrors.ErrConfigLoad, "failed to load built-in defaults")
	}

	found := false
	for _, name := range configFileNames {
		path := filepath.Join(rootFolder, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		parser := parserFor(name)
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, linkerrors.Wrapf(err, linkerrors.ErrConfigParse, "failed to parse %s", path)
		}
		found = true
		break
	}
	if !found {
		return nil, linkerrors.Newf(linkerrors.ErrConfigLoad,
			"no workspace configuration (monolink.toml or monolink.yaml) found in %s", rootFolder)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, linkerrors.Wrap(err, linkerrors.ErrConfigParse, "invalid workspace configuration")
	}
	for i, p := range cfg.Projects {
		if p.Folder == "" {
			return nil, linkerrors.Newf(linkerrors.ErrConfigValid, "project entry %d has no folder", i)
		}
	}

	return &cfg, nil
}

func parserFor(name string) koanf.Parser {
	if filepath.Ext(name) == ".toml" {
		return toml.Parser()
	}
	return yaml.Parser()
}

// rawBytesProvider implements a koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
