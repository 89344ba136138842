// Package manifest accumulates and persists the link manifest: for each
// workspace project, the ordered list of dependency names that were
// satisfied by a direct sibling-project link rather than a central-store
// link. Downstream tooling consumes it for build ordering, and its
// presence on disk marks a completed linking run.
package manifest

import (
	"encoding/json"

	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/types"
)

// Manifest maps project names to declaration-ordered local-link
// dependency names. JSON serialization sorts the project keys, so the
// output bytes are deterministic.
type Manifest struct {
	LocalLinks map[string][]string `json:"localLinks"`
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{
		LocalLinks: make(map[string][]string),
	}
}

// StartProject ensures the project has an entry, so projects without
// any local links still appear with an empty list.
func (m *Manifest) StartProject(project string) {
	if _, ok := m.LocalLinks[project]; !ok {
		m.LocalLinks[project] = []string{}
	}
}

// Record appends a locally-linked dependency name to the project's
// list. Append-only; declaration order is preserved.
func (m *Manifest) Record(project, dependency string) {
	m.StartProject(project)
	m.LocalLinks[project] = append(m.LocalLinks[project], dependency)
}

// LocalLinksFor returns the recorded local links for a project.
func (m *Manifest) LocalLinksFor(project string) []string {
	return m.LocalLinks[project]
}

// Save serializes the manifest to path. It is only called after every
// project has linked successfully.
func (m *Manifest) Save(fs types.FS, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to serialize link manifest")
	}
	data = append(data, '\n')
	if err := fs.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write link manifest to %s", path)
	}
	return nil
}

// Load reads a manifest previously written by Save.
func Load(fs types.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read link manifest from %s", path)
	}
	m := New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "link manifest %s is malformed", path)
	}
	if m.LocalLinks == nil {
		m.LocalLinks = make(map[string][]string)
	}
	return m, nil
}

// Exists reports whether a manifest is present at path. Its presence is
// the completion marker for an unforced re-run.
func Exists(fs types.FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
