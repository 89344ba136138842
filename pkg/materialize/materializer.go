// Package materialize renders a completed virtual dependency tree to
// disk as a folder structure of links. Leaf packages become a single
// directory link into the central store (or a sibling project's
// source); packages whose own dependencies were re-pointed become real
// directories with each entry of the target linked individually, plus a
// nested dependency-container folder for their children.
package materialize

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/monolink/monolink/pkg/depgraph"
	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/logging"
	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/types"
)

// Folder deletion and creation are retried because deletion is not
// instantaneous on every platform. Link creation is never retried.
const (
	folderRetries    = 5
	folderRetryDelay = 100 * time.Millisecond
)

// LinkPolicy selects link types per platform. Deterministic given the
// platform.
type LinkPolicy struct {
	// FilesAsHardLinks selects hard links for file entries, used where
	// creating a symbolic link requires elevated privilege. Directories
	// always use directory links.
	FilesAsHardLinks bool
}

// DefaultPolicy returns the policy for the current platform.
func DefaultPolicy() LinkPolicy {
	return platformPolicy()
}

// Materializer writes virtual trees to disk through a types.FS.
type Materializer struct {
	fs     types.FS
	policy LinkPolicy
	logger zerolog.Logger
}

// New creates a Materializer with the given link policy.
func New(fs types.FS, policy LinkPolicy) *Materializer {
	return &Materializer{
		fs:     fs,
		policy: policy,
		logger: logging.GetLogger("materialize"),
	}
}

// MaterializeProject renders one project's virtual tree. The project's
// existing link output folder is deleted entirely and rebuilt. When the
// project has any children and the central store has a shared
// executables folder, that folder is linked into the project's
// dependency container as well.
func (m *Materializer) MaterializeProject(vt *depgraph.Tree, root depgraph.NodeID, commonBinFolder string) error {
	rootNode := vt.Node(root)
	out := filepath.Join(rootNode.FolderPath, paths.NodeModulesDir)

	done := logging.LogOperationStart(m.logger, "materialize "+rootNode.Name)
	defer done()

	if err := m.retryFolderOp(func() error { return m.fs.RemoveAll(out) }); err != nil {
		return errors.Wrapf(err, errors.ErrDirRemove, "cannot remove link output folder %s", out)
	}
	if err := m.retryFolderOp(func() error { return m.fs.MkdirAll(out, 0755) }); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create link output folder %s", out)
	}

	children := vt.Children(root)
	for _, child := range children {
		if err := m.materializeSubtree(vt, child); err != nil {
			return err
		}
	}

	if len(children) > 0 && commonBinFolder != "" {
		if _, err := m.fs.Lstat(commonBinFolder); err == nil {
			if err := m.linkDir(commonBinFolder, filepath.Join(out, paths.BinDir)); err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *Materializer) materializeSubtree(vt *depgraph.Tree, id depgraph.NodeID) error {
	node := vt.Node(id)
	if node.SymlinkTarget == "" {
		return errors.Newf(errors.ErrInternal,
			"package %s has no link target to materialize", node.NameAndVersion())
	}

	children := vt.Children(id)
	if len(children) == 0 {
		// The whole node is shared as a single directory link.
		return m.linkDir(node.SymlinkTarget, node.FolderPath)
	}

	// Some of this node's dependencies were re-pointed, so its folder
	// must be real: every target entry is linked individually and the
	// children get a fresh dependency container.
	if err := m.retryFolderOp(func() error { return m.fs.MkdirAll(node.FolderPath, 0755) }); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create folder for %s", node.NameAndVersion())
	}

	target, err := m.realTarget(node.SymlinkTarget)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"cannot resolve link target for %s", node.NameAndVersion())
	}

	entries, err := m.fs.ReadDir(target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read package folder %s", target)
	}
	for _, entry := range entries {
		if entry.Name() == paths.NodeModulesDir {
			continue
		}
		src := filepath.Join(target, entry.Name())
		dst := filepath.Join(node.FolderPath, entry.Name())

		info, err := m.fs.Stat(src)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src)
		}
		if info.IsDir() {
			err = m.linkDir(src, dst)
		} else {
			err = m.linkFile(src, dst)
		}
		if err != nil {
			return err
		}
	}

	nested := filepath.Join(node.FolderPath, paths.NodeModulesDir)
	if err := m.retryFolderOp(func() error { return m.fs.MkdirAll(nested, 0755) }); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create dependency container %s", nested)
	}

	for _, child := range children {
		if err := m.materializeSubtree(vt, child); err != nil {
			return err
		}
	}

	return nil
}

// realTarget re-derives the real folder behind a target that is itself
// a directory link, since a directory link may not point through
// another directory link on every platform.
func (m *Materializer) realTarget(folder string) (string, error) {
	info, err := m.fs.Lstat(folder)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return folder, nil
	}
	resolved, err := m.fs.Readlink(folder)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(folder), resolved)
	}
	return resolved, nil
}

func (m *Materializer) linkDir(target, path string) error {
	if err := m.fs.Symlink(target, path); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s -> %s", path, target)
	}
	return nil
}

func (m *Materializer) linkFile(target, path string) error {
	var err error
	if m.policy.FilesAsHardLinks {
		err = m.fs.Link(target, path)
	} else {
		err = m.fs.Symlink(target, path)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link file %s -> %s", path, target)
	}
	return nil
}

func (m *Materializer) retryFolderOp(fn func() error) error {
	var err error
	for attempt := 0; attempt < folderRetries; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(folderRetryDelay)
	}
	return err
}
