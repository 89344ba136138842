// Package core wires configuration, workspace discovery, the central
// store, the projector and the materializer into the top-level link and
// unlink operations the command layer calls.
package core

import (
	"github.com/monolink/monolink/pkg/config"
	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/filesystem"
	"github.com/monolink/monolink/pkg/linker"
	"github.com/monolink/monolink/pkg/logging"
	"github.com/monolink/monolink/pkg/manifest"
	"github.com/monolink/monolink/pkg/materialize"
	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/project"
	"github.com/monolink/monolink/pkg/store"
	"github.com/monolink/monolink/pkg/types"
)

// LinkOptions control a Link run.
type LinkOptions struct {
	// RootFolder is the workspace root containing the configuration
	// file. Required.
	RootFolder string

	// Force rebuilds every project's links even when a previous run
	// already completed.
	Force bool

	// FS defaults to the operating system filesystem.
	FS types.FS
}

// LinkResult reports what a Link run did.
type LinkResult struct {
	// Skipped is true when a completed previous run was detected and
	// left in place.
	Skipped bool

	// Projects holds the names of the projects that were linked, in
	// configuration order.
	Projects []string
}

// Link builds and materializes the virtual dependency tree of every
// project in the workspace. When the link manifest from a previous run
// exists and Force is not set, the run is skipped entirely. The
// manifest is written only after every project has been materialized,
// so an interrupted run is never mistaken for a completed one.
func Link(opts LinkOptions) (*LinkResult, error) {
	logger := logging.GetLogger("core")
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	cfg, err := config.Load(opts.RootFolder)
	if err != nil {
		return nil, err
	}
	pth, err := paths.New(opts.RootFolder, cfg.CommonFolder)
	if err != nil {
		return nil, err
	}

	if manifest.Exists(fs, pth.ManifestPath()) && !opts.Force {
		logger.Info().Msg("Links are already up to date, skipping")
		return &LinkResult{Skipped: true}, nil
	}

	// The store load walks the whole central folder, so it runs while
	// the workspace descriptors are parsed.
	storeCh := store.LoadAsync(fs, pth)

	ws, err := project.LoadWorkspace(fs, pth, cfg)
	if err != nil {
		return nil, err
	}

	res := <-storeCh
	if res.Err != nil {
		return nil, res.Err
	}

	man := manifest.New()
	projector := linker.NewProjector(res.Store, ws, man)
	materializer := materialize.New(fs, materialize.DefaultPolicy())

	result := &LinkResult{}
	for _, prj := range ws.Projects {
		vt, root, err := projector.Project(prj)
		if err != nil {
			return nil, err
		}
		if err := materializer.MaterializeProject(vt, root, pth.CommonBinFolder()); err != nil {
			return nil, err
		}
		result.Projects = append(result.Projects, prj.Name)
		logger.Info().Str("project", prj.Name).Msg("Project linked")
	}

	if err := man.Save(fs, pth.ManifestPath()); err != nil {
		return nil, err
	}

	return result, nil
}

// UnlinkOptions control an Unlink run.
type UnlinkOptions struct {
	RootFolder string
	FS         types.FS
}

// Unlink removes every project's link output folder and the link
// manifest, returning the workspace to its unlinked state.
func Unlink(opts UnlinkOptions) error {
	logger := logging.GetLogger("core")
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	cfg, err := config.Load(opts.RootFolder)
	if err != nil {
		return err
	}
	pth, err := paths.New(opts.RootFolder, cfg.CommonFolder)
	if err != nil {
		return err
	}

	for _, pc := range cfg.Projects {
		folder := pth.ProjectNodeModules(pth.ProjectFolder(pc.Folder))
		if err := fs.RemoveAll(folder); err != nil {
			return errors.Wrapf(err, errors.ErrDirRemove, "cannot remove %s", folder)
		}
	}

	if err := fs.RemoveAll(pth.ManifestPath()); err != nil {
		return errors.Wrapf(err, errors.ErrDirRemove, "cannot remove link manifest")
	}

	logger.Info().Int("projects", len(cfg.Projects)).Msg("Workspace unlinked")
	return nil
}
