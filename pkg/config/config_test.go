package config

import (
	"testing"

	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadToml(t *testing.T) {
	root := testutil.TempDir(t, "workspace")
	testutil.CreateFile(t, root, "monolink.toml", `
common_folder = "shared"

[[projects]]
folder = "apps/web"

[[projects]]
folder = "libs/core"
cyclic_dependency_projects = ["web"]
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, "shared", cfg.CommonFolder)
	require.Len(t, cfg.Projects, 2)
	assert.Equal(t, "apps/web", cfg.Projects[0].Folder)
	assert.Empty(t, cfg.Projects[0].CyclicDependencyProjects)
	assert.Equal(t, []string{"web"}, cfg.Projects[1].CyclicDependencyProjects)
}

func TestLoadYaml(t *testing.T) {
	root := testutil.TempDir(t, "workspace")
	testutil.CreateFile(t, root, "monolink.yaml", `
projects:
  - folder: apps/web
  - folder: libs/core
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	// common_folder comes from the embedded defaults.
	assert.Equal(t, "common", cfg.CommonFolder)
	require.Len(t, cfg.Projects, 2)
}

func TestLoadTomlWinsOverYaml(t *testing.T) {
	root := testutil.TempDir(t, "workspace")
	testutil.CreateFile(t, root, "monolink.toml", `
common_folder = "from-toml"
[[projects]]
folder = "a"
`)
	testutil.CreateFile(t, root, "monolink.yaml", `
common_folder: from-yaml
projects:
  - folder: b
`)

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "from-toml", cfg.CommonFolder)
}

func TestLoadMissingConfig(t *testing.T) {
	root := testutil.TempDir(t, "workspace")

	_, err := Load(root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadProjectWithoutFolder(t *testing.T) {
	root := testutil.TempDir(t, "workspace")
	testutil.CreateFile(t, root, "monolink.toml", `
[[projects]]
cyclic_dependency_projects = ["x"]
`)

	_, err := Load(root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
