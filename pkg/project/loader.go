// Package project loads workspace project descriptors: the per-project
// package manifest plus the workspace configuration entry that names its
// folder and cyclic-dependency escapes.
package project

import (
	"github.com/monolink/monolink/pkg/config"
	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/logging"
	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/types"
)

// LoadWorkspace builds the full workspace descriptor from the
// configuration: for each configured project folder, the package
// manifest is read, and direct dependency edges naming a compatible
// sibling project are promoted to local-link kind. Project order
// follows the configuration.
func LoadWorkspace(fs types.FS, pth paths.Paths, cfg *config.Config) (*types.Workspace, error) {
	logger := logging.GetLogger("project")

	ws := &types.Workspace{
		RootFolder:   pth.RootFolder(),
		CommonFolder: pth.CommonFolder(),
	}

	seen := make(map[string]string)
	for _, pc := range cfg.Projects {
		folder := pth.ProjectFolder(pc.Folder)
		mf, err := ReadPackageManifest(fs, folder)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrProjectInvalid,
				"cannot read project manifest in %s", folder)
		}
		if prev, dup := seen[mf.Name]; dup {
			return nil, errors.Newf(errors.ErrConfigValid,
				"projects %s and %s both declare package name %q", prev, folder, mf.Name)
		}
		seen[mf.Name] = folder

		cyclics := make(map[string]bool, len(pc.CyclicDependencyProjects))
		for _, name := range pc.CyclicDependencyProjects {
			cyclics[name] = true
		}

		ws.Projects = append(ws.Projects, &types.Project{
			Name:                     mf.Name,
			Version:                  mf.Version,
			SourceFolder:             folder,
			Dependencies:             mf.Dependencies,
			CyclicDependencyProjects: cyclics,
		})
		logger.Debug().Str("project", mf.Name).Str("folder", folder).Msg("Loaded workspace project")
	}

	if len(ws.Projects) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "workspace configuration declares no projects")
	}

	markLocalLinks(ws)

	return ws, nil
}

// markLocalLinks upgrades direct dependency edges to local-link kind
// when they name a sibling project whose current version satisfies the
// declared range. This is the descriptor-time validation that lets the
// linker skip re-checking those edges, so later version bumps of the
// sibling propagate without touching the declaration. Cyclic-declared
// edges keep their kind; they never link locally.
func markLocalLinks(ws *types.Workspace) {
	for _, prj := range ws.Projects {
		for i, dep := range prj.Dependencies {
			if dep.Kind != types.DependencyRegular {
				continue
			}
			if prj.IsCyclicDependency(dep.Name) {
				continue
			}
			sibling := ws.ProjectByName(dep.Name)
			if sibling == nil {
				continue
			}
			if VersionSatisfies(sibling.Version, dep.VersionRange) {
				prj.Dependencies[i].Kind = types.DependencyLocalLink
			}
		}
	}
}
