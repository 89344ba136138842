package monolink

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monolink/monolink/pkg/paths"
	"github.com/monolink/monolink/pkg/testutil"
)

func testWorkspace(t *testing.T) string {
	t.Helper()
	root := testutil.TempDir(t, "workspace")
	testutil.CreateFile(t, root, "monolink.toml", `
[[projects]]
folder = "apps/app-a"
`)
	nm := filepath.Join(root, "common", paths.NodeModulesDir)
	testutil.CreateDir(t, root, filepath.Join("common", paths.NodeModulesDir))
	testutil.InstallPackage(t, nm, "foo", "1.0.0")
	testutil.CreateProject(t, root, "apps/app-a", "app-a", "1.0.0",
		testutil.Dep{Name: "foo", Range: "^1.0.0"})
	return root
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLinkCmd(t *testing.T) {
	root := testWorkspace(t)

	out, err := runCommand(t, "link", "--root", root)
	require.NoError(t, err)

	assert.Contains(t, out, "Linked 1 project(s).")
	assert.Contains(t, out, "app-a")
	assert.True(t, testutil.IsSymlink(t,
		filepath.Join(root, "apps", "app-a", paths.NodeModulesDir, "foo")))
}

func TestLinkCmdSkipsSecondRun(t *testing.T) {
	root := testWorkspace(t)

	_, err := runCommand(t, "link", "--root", root)
	require.NoError(t, err)

	out, err := runCommand(t, "link", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "already up to date")
}

func TestLinkCmdForce(t *testing.T) {
	root := testWorkspace(t)

	_, err := runCommand(t, "link", "--root", root)
	require.NoError(t, err)

	out, err := runCommand(t, "link", "--root", root, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Linked 1 project(s).")
}

func TestUnlinkCmd(t *testing.T) {
	root := testWorkspace(t)

	_, err := runCommand(t, "link", "--root", root)
	require.NoError(t, err)

	out, err := runCommand(t, "unlink", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Workspace unlinked.")
}

func TestLinkCmdMissingWorkspace(t *testing.T) {
	root := testutil.TempDir(t, "empty")

	_, err := runCommand(t, "link", "--root", root)
	assert.Error(t, err)
}

func TestNoSubcommandFails(t *testing.T) {
	_, err := runCommand(t)
	assert.Error(t, err)
}

func TestLinkCmdRejectsArgs(t *testing.T) {
	_, err := runCommand(t, "link", "extra")
	assert.Error(t, err)
}
