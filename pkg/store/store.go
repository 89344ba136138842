// Package store loads the central install tree from disk into the
// in-memory package-tree model and exposes the name@version index over
// it. Loading is the single asynchronous boundary of a linking run:
// everything downstream receives a complete, immutable snapshot.
package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/monolink/monolink/pkg/depgraph"
	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/logging"
	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/project"
	"github.com/monolink/monolink/pkg/types"
	"github.com/rs/zerolog"
)

// Store is a loaded central install tree plus its index. Tree and Index
// are read-only after Load, with one exception: EnsureProjectNode may
// attach fresh project roots under Root.
type Store struct {
	Tree  *depgraph.Tree
	Root  depgraph.NodeID
	Index *depgraph.Index
}

// LoadResult is delivered on the channel returned by LoadAsync.
type LoadResult struct {
	Store *Store
	Err   error
}

// LoadAsync reads the central tree on a separate goroutine and delivers
// the completed snapshot. The channel receives exactly one result.
func LoadAsync(fs types.FS, pth paths.Paths) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		s, err := load(fs, pth)
		ch <- LoadResult{Store: s, Err: err}
	}()
	return ch
}

// Load reads the central tree, waiting for the asynchronous load to
// finish.
func Load(fs types.FS, pth paths.Paths) (*Store, error) {
	res := <-LoadAsync(fs, pth)
	return res.Store, res.Err
}

func load(fs types.FS, pth paths.Paths) (*Store, error) {
	logger := logging.GetLogger("store")
	done := logging.LogOperationStart(logger, "load central tree")
	defer done()

	tree := depgraph.NewTree()

	rootName, rootVersion := "common", "0.0.0"
	if mf, err := project.ReadPackageManifest(fs, pth.CommonFolder()); err == nil {
		rootName, rootVersion = mf.Name, mf.Version
	}
	root := tree.NewNode(rootName, rootVersion)
	tree.Node(root).FolderPath = pth.CommonFolder()

	if err := loadChildren(fs, tree, root, pth.CommonNodeModules(), logger); err != nil {
		return nil, err
	}

	index, err := depgraph.BuildIndex(tree, root)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("packages", index.Len()).Msg("Central tree indexed")

	return &Store{Tree: tree, Root: root, Index: index}, nil
}

// loadChildren scans a node_modules folder and attaches one child per
// installed package. Dot-entries (including .bin) are skipped; scope
// folders (@scope/name) are descended one level.
func loadChildren(fs types.FS, tree *depgraph.Tree, parent depgraph.NodeID, nodeModules string, logger zerolog.Logger) error {
	entries, err := fs.ReadDir(nodeModules)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrStoreLoad, "cannot read install folder %s", nodeModules)
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		folder := filepath.Join(nodeModules, name)
		info, err := fs.Stat(folder)
		if err != nil || !info.IsDir() {
			continue
		}
		if strings.HasPrefix(name, "@") {
			scoped, err := fs.ReadDir(folder)
			if err != nil {
				return errors.Wrapf(err, errors.ErrStoreLoad, "cannot read scope folder %s", folder)
			}
			for _, sub := range scoped {
				if strings.HasPrefix(sub.Name(), ".") {
					continue
				}
				if err := loadPackage(fs, tree, parent, filepath.Join(folder, sub.Name()), logger); err != nil {
					return err
				}
			}
			continue
		}
		if err := loadPackage(fs, tree, parent, folder, logger); err != nil {
			return err
		}
	}

	return nil
}

func loadPackage(fs types.FS, tree *depgraph.Tree, parent depgraph.NodeID, folder string, logger zerolog.Logger) error {
	mf, err := project.ReadPackageManifest(fs, folder)
	if err != nil {
		if os.IsNotExist(err) {
			// Not a package folder, e.g. leftover junk. Skip it.
			logger.Debug().Str("folder", folder).Msg("Skipping folder without a package manifest")
			return nil
		}
		return errors.Wrapf(err, errors.ErrStoreLoad, "cannot read installed package in %s", folder)
	}

	id := tree.NewNode(mf.Name, mf.Version)
	node := tree.Node(id)
	node.FolderPath = folder
	node.Dependencies = mf.Dependencies

	if err := tree.AddChild(parent, id); err != nil {
		return errors.Wrapf(err, errors.ErrStoreLoad, "invalid central tree layout under %s", folder)
	}

	return loadChildren(fs, tree, id, filepath.Join(folder, paths.NodeModulesDir), logger)
}

// EnsureProjectNode returns the central-tree node for a workspace
// project, creating a virtual one under the root when the project is
// not yet reflected in the store. Either way the node's dependency list
// is replaced with the project's declared dependencies, so the
// traversal sees the just-declared state rather than a stale install.
func (s *Store) EnsureProjectNode(p *types.Project) (depgraph.NodeID, error) {
	if id, ok := s.Tree.Child(s.Root, p.Name); ok {
		s.Tree.Node(id).Dependencies = p.Dependencies
		return id, nil
	}

	id := s.Tree.NewNode(p.Name, p.Version)
	node := s.Tree.Node(id)
	node.FolderPath = filepath.Join(s.Tree.Node(s.Root).FolderPath, paths.NodeModulesDir, p.Name)
	node.Dependencies = p.Dependencies
	if err := s.Tree.AddChild(s.Root, id); err != nil {
		return depgraph.None, err
	}
	return id, nil
}
