// Package paths provides centralized path handling for monolink. All
// folder layout decisions (where the central store lives, where a
// project's link output goes, where the manifest is written) are made
// here so the rest of the codebase never assembles paths by hand.
package paths

import (
	"os"
	"path/filepath"

	"github.com/monolink/monolink/pkg/errors"
)

// Layout constants. These define monolink's on-disk structure and are
// not user-configurable.
const (
	// NodeModulesDir is the dependency-container folder name.
	NodeModulesDir = "node_modules"

	// BinDir is the shared executables folder inside a node_modules.
	BinDir = ".bin"

	// DefaultCommonDir is the default name of the shared install folder
	// under the workspace root.
	DefaultCommonDir = "common"

	// ManifestFile is the name of the link manifest, written into the
	// common folder after every project has linked.
	ManifestFile = "monolink-links.json"
)

// Paths provides centralized path management for monolink
type Paths interface {
	// RootFolder returns the absolute workspace root.
	RootFolder() string

	// CommonFolder returns the absolute shared install folder.
	CommonFolder() string

	// CommonNodeModules returns the root of the central store.
	CommonNodeModules() string

	// CommonBinFolder returns the shared executables folder of the
	// central store.
	CommonBinFolder() string

	// ProjectFolder resolves a project source folder, which may be
	// declared relative to the workspace root.
	ProjectFolder(folder string) string

	// ProjectNodeModules returns the link output folder for a project
	// source folder.
	ProjectNodeModules(projectFolder string) string

	// ManifestPath returns the absolute path of the link manifest.
	ManifestPath() string
}

type paths struct {
	rootFolder   string
	commonFolder string
}

// New creates a Paths for the given workspace root and common folder.
// commonFolder may be empty (defaults to <root>/common) or relative to
// the root.
func New(rootFolder, commonFolder string) (Paths, error) {
	if rootFolder == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "workspace root not given and working directory unavailable")
		}
		rootFolder = cwd
	}
	absRoot, err := filepath.Abs(rootFolder)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid workspace root %q", rootFolder)
	}

	if commonFolder == "" {
		commonFolder = DefaultCommonDir
	}
	if !filepath.IsAbs(commonFolder) {
		commonFolder = filepath.Join(absRoot, commonFolder)
	}

	return &paths{
		rootFolder:   absRoot,
		commonFolder: commonFolder,
	}, nil
}

func (p *paths) RootFolder() string {
	return p.rootFolder
}

func (p *paths) CommonFolder() string {
	return p.commonFolder
}

func (p *paths) CommonNodeModules() string {
	return filepath.Join(p.commonFolder, NodeModulesDir)
}

func (p *paths) CommonBinFolder() string {
	return filepath.Join(p.commonFolder, NodeModulesDir, BinDir)
}

func (p *paths) ProjectFolder(folder string) string {
	if filepath.IsAbs(folder) {
		return folder
	}
	return filepath.Join(p.rootFolder, folder)
}

func (p *paths) ProjectNodeModules(projectFolder string) string {
	return filepath.Join(p.ProjectFolder(projectFolder), NodeModulesDir)
}

func (p *paths) ManifestPath() string {
	return filepath.Join(p.commonFolder, ManifestFile)
}
