package monolink

// Message constants
const (
	MsgRootShort = "Link workspace projects to a shared dependency store"
	MsgRootLong  = `monolink wires the projects of a monorepo workspace to a single shared
package store. Every project gets its own dependency folder built out of
links, so packages are installed once and shared everywhere, while each
project still sees exactly the dependency versions it declared.`

	MsgLinkShort = "Build dependency links for every project"
	MsgLinkLong  = `Link reads the workspace configuration, computes each project's
dependency tree against the shared store and materializes it as a folder
of links inside the project.

Projects that depend on a sibling project with a compatible version are
linked straight to the sibling's source folder, so local changes are
visible immediately.

When a previous run already completed, link does nothing. Use --force to
rebuild anyway.`
	MsgLinkExample = `  # Link all projects in the current workspace
  monolink link

  # Rebuild links even if they are up to date
  monolink link --force

  # Link a workspace somewhere else
  monolink link --root /path/to/workspace`

	MsgUnlinkShort = "Remove dependency links from every project"
	MsgUnlinkLong  = `Unlink deletes each project's dependency folder and the link record,
returning the workspace to its unlinked state. Run it before a full
reinstall of the shared store.`

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot    = "Workspace root folder (defaults to the current directory)"
	MsgFlagForce   = "Rebuild links even when a previous run completed"

	MsgLinkDone     = "Linked %d project(s).\n"
	MsgLinkSkipped  = "Links are already up to date. Use --force to rebuild.\n"
	MsgUnlinkDone   = "Workspace unlinked.\n"
	MsgProjectsHint = "  %s\n"
)
