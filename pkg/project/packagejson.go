package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/monolink/monolink/pkg/types"
)

// PackageManifestFile is the per-package metadata file name.
const PackageManifestFile = "package.json"

// PackageManifest is the parsed metadata of one package folder.
// Dependencies holds regular entries followed by optional entries, each
// block in declaration order.
type PackageManifest struct {
	Name         string
	Version      string
	Dependencies []types.DependencySpec
}

type rawPackageManifest struct {
	Name                 string          `json:"name"`
	Version              string          `json:"version"`
	Dependencies         json.RawMessage `json:"dependencies"`
	OptionalDependencies json.RawMessage `json:"optionalDependencies"`
}

// ReadPackageManifest reads and parses folder/package.json. Dependency
// declaration order is preserved, which standard map decoding would
// destroy, so the dependency blocks are re-parsed from raw tokens.
func ReadPackageManifest(fs types.FS, folder string) (*PackageManifest, error) {
	path := filepath.Join(folder, PackageManifestFile)
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawPackageManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed %s: %w", path, err)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("%s is missing a package name", path)
	}

	mf := &PackageManifest{
		Name:    raw.Name,
		Version: raw.Version,
	}

	regular, err := parseDependencyBlock(raw.Dependencies, types.DependencyRegular)
	if err != nil {
		return nil, fmt.Errorf("malformed dependencies in %s: %w", path, err)
	}
	optional, err := parseDependencyBlock(raw.OptionalDependencies, types.DependencyOptional)
	if err != nil {
		return nil, fmt.Errorf("malformed optionalDependencies in %s: %w", path, err)
	}
	mf.Dependencies = append(regular, optional...)

	return mf, nil
}

// parseDependencyBlock decodes a {"name": "range", ...} object keeping
// key order.
func parseDependencyBlock(raw json.RawMessage, kind types.DependencyKind) ([]types.DependencySpec, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var deps []types.DependencySpec
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key, got %v", keyTok)
		}
		var versionRange string
		if err := dec.Decode(&versionRange); err != nil {
			return nil, fmt.Errorf("dependency %q has a non-string range: %w", name, err)
		}
		deps = append(deps, types.DependencySpec{
			Name:         name,
			VersionRange: versionRange,
			Kind:         kind,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return deps, nil
}
