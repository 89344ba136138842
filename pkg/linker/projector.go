// Package linker builds, per workspace project, the virtual dependency
// tree that the materializer renders to disk. Each dependency edge is
// satisfied either by a direct link to a sibling project's live source
// or by a link into the central store, with cyclic project dependencies
// routed through an isolated subtree so resolution terminates.
package linker

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/monolink/monolink/pkg/depgraph"
	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/logging"
	"github.com/monolink/monolink/pkg/manifest"
	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/project"
	"github.com/monolink/monolink/pkg/store"
	"github.com/monolink/monolink/pkg/types"
)

// Projector walks a project's central-tree dependency subgraph
// breadth-first and grows the project's virtual tree. One Projector
// serves a whole run; each Project call builds a fresh tree.
type Projector struct {
	store     *store.Store
	workspace *types.Workspace
	manifest  *manifest.Manifest
	logger    zerolog.Logger
}

// NewProjector creates a Projector over a loaded store and workspace.
// Local links are recorded into man as they are discovered.
func NewProjector(s *store.Store, ws *types.Workspace, man *manifest.Manifest) *Projector {
	return &Projector{
		store:     s,
		workspace: ws,
		manifest:  man,
		logger:    logging.GetLogger("linker"),
	}
}

// queueItem is one unit of pending traversal work. common is a node in
// the read-only central tree (what to link), local is the corresponding
// node being built in the virtual tree (where to link it), cyclicRoot
// tags items inside a cycle-avoidance subtree with that subtree's root.
type queueItem struct {
	common     depgraph.NodeID
	local      depgraph.NodeID
	cyclicRoot depgraph.NodeID
}

// Project builds the virtual dependency tree for one workspace project
// and returns the tree with its root handle.
func (p *Projector) Project(prj *types.Project) (*depgraph.Tree, depgraph.NodeID, error) {
	done := logging.LogOperationStart(p.logger, "project "+prj.Name)
	defer done()

	common, err := p.store.EnsureProjectNode(prj)
	if err != nil {
		return nil, depgraph.None, err
	}

	vt := depgraph.NewTree()
	root := vt.NewNode(prj.Name, prj.Version)
	rootNode := vt.Node(root)
	rootNode.Dependencies = prj.Dependencies
	rootNode.FolderPath = prj.SourceFolder

	p.manifest.StartProject(prj.Name)

	queue := []queueItem{{common: common, local: root, cyclicRoot: depgraph.None}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		deps := p.store.Tree.Node(item.common).Dependencies
		for _, dep := range deps {
			next, err := p.projectDependency(vt, prj, item, dep)
			if err != nil {
				return nil, depgraph.None, err
			}
			if next != nil {
				queue = append(queue, *next)
			}
		}
	}

	p.logger.Debug().
		Str("project", prj.Name).
		Int("nodes", vt.Len()).
		Msg("Virtual tree built")

	return vt, root, nil
}

// projectDependency handles one dependency edge of a queued item and
// returns the follow-up item when a new central-store node was created.
func (p *Projector) projectDependency(vt *depgraph.Tree, prj *types.Project, item queueItem, dep types.DependencySpec) (*queueItem, error) {
	startingCyclicSubtree := false

	if sibling := p.workspace.ProjectByName(dep.Name); sibling != nil {
		switch {
		case item.cyclicRoot.Valid():
			// Inside a cyclic subtree everything resolves through the
			// central store; linking back to the sibling would recreate
			// the cycle the subtree exists to break.

		case prj.IsCyclicDependency(dep.Name):
			// The node created below becomes the root of a new cyclic
			// subtree.
			startingCyclicSubtree = true

		case dep.Kind != types.DependencyLocalLink && !project.VersionSatisfies(sibling.Version, dep.VersionRange):
			p.logger.Warn().
				Str("project", prj.Name).
				Str("dependency", dep.Name).
				Str("required", dep.VersionRange).
				Str("workspaceVersion", sibling.Version).
				Msg("Workspace project version does not satisfy the requested range, linking to the central store instead")

		default:
			return nil, p.linkToSibling(vt, prj, item, dep, sibling)
		}
	}

	return p.linkToStore(vt, prj, item, dep, startingCyclicSubtree)
}

// linkToSibling satisfies a dependency with a direct link to another
// workspace project's source folder. The sibling's own dependencies are
// already fully linked under its own tree and are not re-walked, so the
// created node has no dependencies and is never enqueued.
func (p *Projector) linkToSibling(vt *depgraph.Tree, prj *types.Project, item queueItem, dep types.DependencySpec, sibling *types.Project) error {
	if vt.Node(item.local).IsRoot() {
		p.manifest.Record(prj.Name, dep.Name)
	}

	res := vt.ResolveOrCreate(item.local, dep.Name, depgraph.None)
	if res.Found.Valid() && vt.Node(res.Found).Version == sibling.Version {
		return nil
	}

	parent := res.ParentForCreate
	if res.Found.Valid() {
		// An ancestor holds a different version; shadow it next to the
		// requester.
		parent = item.local
	}

	id := vt.NewNode(sibling.Name, sibling.Version)
	node := vt.Node(id)
	node.SymlinkTarget = sibling.SourceFolder
	node.FolderPath = filepath.Join(vt.Node(parent).FolderPath, paths.NodeModulesDir, sibling.Name)

	if err := vt.AddChild(parent, id); err != nil {
		return errors.Wrapf(err, errors.ErrInternal,
			"cannot place local link %s in project %s", sibling.Name, prj.Name)
	}

	p.logger.Debug().
		Str("project", prj.Name).
		Str("dependency", dep.Name).
		Msg("Linked to workspace project source")
	return nil
}

// linkToStore satisfies a dependency with a link into the central
// store, creating and enqueueing a new virtual node when no compatible
// one is reachable.
func (p *Projector) linkToStore(vt *depgraph.Tree, prj *types.Project, item queueItem, dep types.DependencySpec, startingCyclicSubtree bool) (*queueItem, error) {
	commonDep := p.store.Tree.Resolve(item.common, dep.Name)
	if !commonDep.Valid() {
		if dep.Kind == types.DependencyOptional {
			p.logger.Warn().
				Str("project", prj.Name).
				Str("dependency", dep.Name).
				Msg("Optional dependency is not installed, skipping")
			return nil, nil
		}
		return nil, errors.Newf(errors.ErrMissingDependency,
			"dependency %q of %q was not found in the central store; run the install step and retry",
			dep.Name, p.store.Tree.Node(item.common).Name)
	}
	commonNode := p.store.Tree.Node(commonDep)

	res := vt.ResolveOrCreate(item.local, dep.Name, item.cyclicRoot)
	if res.Found.Valid() && vt.Node(res.Found).Version == commonNode.Version {
		// Already reachable with the matching version; never
		// re-expanded.
		return nil, nil
	}

	parent := res.ParentForCreate
	if res.Found.Valid() {
		parent = item.local
	}

	storeID, ok := p.store.Index.Get(commonNode.NameAndVersion())
	if !ok {
		return nil, errors.Newf(errors.ErrInternal,
			"package %s is in the central tree but missing from its index", commonNode.NameAndVersion())
	}
	target := p.store.Tree.Node(storeID).FolderPath
	if target == "" {
		return nil, errors.Newf(errors.ErrInternal,
			"package %s has no central store folder to link to", commonNode.NameAndVersion())
	}

	id := vt.NewNode(commonNode.Name, commonNode.Version)
	node := vt.Node(id)
	node.Dependencies = commonNode.Dependencies
	node.SymlinkTarget = target
	node.FolderPath = filepath.Join(vt.Node(parent).FolderPath, paths.NodeModulesDir, commonNode.Name)

	if err := vt.AddChild(parent, id); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal,
			"cannot place %s in project %s", commonNode.NameAndVersion(), prj.Name)
	}

	cyclicRoot := item.cyclicRoot
	if startingCyclicSubtree {
		cyclicRoot = id
	}

	return &queueItem{common: commonDep, local: id, cyclicRoot: cyclicRoot}, nil
}
