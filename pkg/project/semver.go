package project

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionSatisfies reports whether an exact version satisfies a
// declared range (^, ~, comparison sets, exact pins). An empty range
// accepts anything; an unparseable range or version accepts nothing, so
// resolution falls back to the central store.
func VersionSatisfies(version, versionRange string) bool {
	versionRange = strings.TrimSpace(versionRange)
	if versionRange == "" {
		return true
	}

	constraint, err := semver.NewConstraint(versionRange)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}
