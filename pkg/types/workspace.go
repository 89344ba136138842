package types

// Project describes one workspace project as declared in the workspace
// configuration plus its own package manifest.
type Project struct {
	// Name is the package name, unique within the workspace.
	Name string

	// Version is the exact version the project declares for itself.
	Version string

	// SourceFolder is the absolute path to the project's live source.
	SourceFolder string

	// Dependencies are the project's declared dependencies in
	// declaration order. Direct dependencies carry DependencyLocalLink.
	Dependencies []DependencySpec

	// CyclicDependencyProjects names sibling projects this project
	// depends on through a cycle. Linking routes these through the
	// central store inside an isolated subtree instead of linking
	// project-to-project.
	CyclicDependencyProjects map[string]bool
}

// IsCyclicDependency reports whether depName was declared as a
// cyclic-dependency escape for this project.
func (p *Project) IsCyclicDependency(depName string) bool {
	return p.CyclicDependencyProjects[depName]
}

// Workspace is the full descriptor the linker operates on: an ordered
// project list plus the folder layout.
type Workspace struct {
	// RootFolder is the absolute path to the monorepo root.
	RootFolder string

	// CommonFolder is the absolute path to the shared install folder
	// whose node_modules is the central store.
	CommonFolder string

	// Projects is the ordered list of workspace projects. Order is the
	// processing order.
	Projects []*Project
}

// ProjectByName returns the workspace project with the given package
// name, or nil when no such project exists.
func (w *Workspace) ProjectByName(name string) *Project {
	for _, p := range w.Projects {
		if p.Name == name {
			return p
		}
	}
	return nil
}
