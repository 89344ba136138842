package types

// DependencyKind classifies a declared dependency edge.
type DependencyKind int

const (
	// DependencyRegular is an ordinary dependency; missing from the
	// central store is a fatal error.
	DependencyRegular DependencyKind = iota

	// DependencyOptional is skipped with a warning when it cannot be
	// found in the central store.
	DependencyOptional

	// DependencyLocalLink marks a direct dependency of a workspace
	// project root. These are exempt from the version-range check when
	// linking to a sibling project, so version bumps propagate without a
	// regeneration step.
	DependencyLocalLink
)

// String returns a human-readable name for the kind.
func (k DependencyKind) String() string {
	switch k {
	case DependencyRegular:
		return "regular"
	case DependencyOptional:
		return "optional"
	case DependencyLocalLink:
		return "local-link"
	default:
		return "unknown"
	}
}

// DependencySpec is one declared dependency edge of a package or project.
// Declaration order is significant: it is preserved through projection so
// output is deterministic.
type DependencySpec struct {
	Name         string
	VersionRange string
	Kind         DependencyKind
}
