package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monolink/monolink/pkg/filesystem"
	"github.com/monolink/monolink/pkg/manifest"
	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/testutil"
)

// newWorkspace builds a workspace on disk with a config file, a central
// store and two projects where app-a depends on a store package and on
// its sibling lib-b.
func newWorkspace(t *testing.T) string {
	t.Helper()
	root := testutil.TempDir(t, "workspace")

	testutil.CreateFile(t, root, "monolink.toml", `
[[projects]]
folder = "apps/app-a"

[[projects]]
folder = "libs/lib-b"
`)

	nm := filepath.Join(root, "common", paths.NodeModulesDir)
	testutil.CreateDir(t, root, filepath.Join("common", paths.NodeModulesDir))
	testutil.InstallPackage(t, nm, "foo", "1.5.0")

	testutil.CreateProject(t, root, "apps/app-a", "app-a", "1.0.0",
		testutil.Dep{Name: "foo", Range: "^1.0.0"},
		testutil.Dep{Name: "lib-b", Range: "^2.0.0"})
	testutil.CreateProject(t, root, "libs/lib-b", "lib-b", "2.1.0",
		testutil.Dep{Name: "foo", Range: "^1.0.0"})

	return root
}

func TestLinkEndToEnd(t *testing.T) {
	root := newWorkspace(t)

	result, err := Link(LinkOptions{RootFolder: root})
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, []string{"app-a", "lib-b"}, result.Projects)

	// Store dependency links into the central folder.
	fooLink := filepath.Join(root, "apps", "app-a", paths.NodeModulesDir, "foo")
	assert.True(t, testutil.IsSymlink(t, fooLink))
	assert.Equal(t, filepath.Join(root, "common", paths.NodeModulesDir, "foo"), testutil.ReadLink(t, fooLink))

	// Sibling dependency links into the sibling's source folder.
	libLink := filepath.Join(root, "apps", "app-a", paths.NodeModulesDir, "lib-b")
	assert.True(t, testutil.IsSymlink(t, libLink))
	assert.Equal(t, filepath.Join(root, "libs", "lib-b"), testutil.ReadLink(t, libLink))

	// The manifest records the run and the sibling link.
	man, err := manifest.Load(filesystem.NewOS(), filepath.Join(root, "common", paths.ManifestFile))
	require.NoError(t, err)
	assert.Equal(t, []string{"lib-b"}, man.LocalLinksFor("app-a"))
	assert.Empty(t, man.LocalLinksFor("lib-b"))
}

func TestLinkSkipsWhenAlreadyLinked(t *testing.T) {
	root := newWorkspace(t)

	_, err := Link(LinkOptions{RootFolder: root})
	require.NoError(t, err)

	// Plant a marker so a rebuild would be visible.
	marker := testutil.CreateFile(t, root, filepath.Join("apps", "app-a", paths.NodeModulesDir, "marker"), "x\n")

	result, err := Link(LinkOptions{RootFolder: root})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Empty(t, result.Projects)

	_, err = os.Stat(marker)
	assert.NoError(t, err)
}

func TestLinkForceRebuilds(t *testing.T) {
	root := newWorkspace(t)

	_, err := Link(LinkOptions{RootFolder: root})
	require.NoError(t, err)

	marker := testutil.CreateFile(t, root, filepath.Join("apps", "app-a", paths.NodeModulesDir, "marker"), "x\n")

	result, err := Link(LinkOptions{RootFolder: root, Force: true})
	require.NoError(t, err)
	assert.False(t, result.Skipped)

	_, err = os.Stat(marker)
	assert.True(t, os.IsNotExist(err))
	assert.True(t, testutil.IsSymlink(t, filepath.Join(root, "apps", "app-a", paths.NodeModulesDir, "foo")))
}

func TestLinkFailureLeavesNoManifest(t *testing.T) {
	root := testutil.TempDir(t, "workspace")
	testutil.CreateFile(t, root, "monolink.toml", `
[[projects]]
folder = "apps/app-a"
`)
	testutil.CreateDir(t, root, filepath.Join("common", paths.NodeModulesDir))
	testutil.CreateProject(t, root, "apps/app-a", "app-a", "1.0.0",
		testutil.Dep{Name: "missing", Range: "^1.0.0"})

	_, err := Link(LinkOptions{RootFolder: root})
	require.Error(t, err)

	assert.False(t, manifest.Exists(filesystem.NewOS(), filepath.Join(root, "common", paths.ManifestFile)))
}

func TestUnlink(t *testing.T) {
	root := newWorkspace(t)

	_, err := Link(LinkOptions{RootFolder: root})
	require.NoError(t, err)

	require.NoError(t, Unlink(UnlinkOptions{RootFolder: root}))

	_, err = os.Lstat(filepath.Join(root, "apps", "app-a", paths.NodeModulesDir))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(filepath.Join(root, "libs", "lib-b", paths.NodeModulesDir))
	assert.True(t, os.IsNotExist(err))
	assert.False(t, manifest.Exists(filesystem.NewOS(), filepath.Join(root, "common", paths.ManifestFile)))

	// Linking again after an unlink starts from a clean slate.
	result, err := Link(LinkOptions{RootFolder: root})
	require.NoError(t, err)
	assert.False(t, result.Skipped)
}

func TestLinkMissingConfig(t *testing.T) {
	root := testutil.TempDir(t, "workspace")

	_, err := Link(LinkOptions{RootFolder: root})
	assert.Error(t, err)
}
