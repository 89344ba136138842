package testutil

import (
	"fmt"
	"strings"
	"testing"
)

// Dep is a name/range pair for building package manifests in tests.
type Dep struct {
	Name  string
	Range string
}

// PackageJSON renders a package.json string with dependencies in the
// given declaration order.
func PackageJSON(name, version string, deps []Dep, optionalDeps []Dep) string {
	var b strings.Builder
	b.WriteString("{\n")
	fmt.Fprintf(&b, "  %q: %q,\n", "name", name)
	fmt.Fprintf(&b, "  %q: %q", "version", version)
	writeBlock := func(key string, entries []Dep) {
		if len(entries) == 0 {
			return
		}
		fmt.Fprintf(&b, ",\n  %q: {\n", key)
		for i, d := range entries {
			fmt.Fprintf(&b, "    %q: %q", d.Name, d.Range)
			if i < len(entries)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("  }")
	}
	writeBlock("dependencies", deps)
	writeBlock("optionalDependencies", optionalDeps)
	b.WriteString("\n}\n")
	return b.String()
}

// InstallPackage creates a package folder with a manifest and a marker
// source file under the given node_modules folder, returning the
// package folder path.
func InstallPackage(t *testing.T, nodeModules, name, version string, deps ...Dep) string {
	t.Helper()

	folder := CreateDir(t, nodeModules, name)
	CreateFile(t, folder, "package.json", PackageJSON(name, version, deps, nil))
	CreateFile(t, folder, "index.js", fmt.Sprintf("module.exports = %q;\n", name+"@"+version))
	return folder
}

// CreateProject creates a workspace project folder with a manifest,
// returning the project folder path.
func CreateProject(t *testing.T, root, folder, name, version string, deps ...Dep) string {
	t.Helper()

	dir := CreateDir(t, root, folder)
	CreateFile(t, dir, "package.json", PackageJSON(name, version, deps, nil))
	return dir
}

// NestedNodeModules returns the node_modules folder inside a package
// folder, creating it if needed.
func NestedNodeModules(t *testing.T, packageFolder string) string {
	t.Helper()
	return CreateDir(t, packageFolder, "node_modules")
}
