// Package depgraph holds the package-tree model the linker operates on:
// an arena-backed tree of package nodes, the name@version index over a
// loaded central store, and the module-loader style upward resolution
// used to place dependencies in a project's virtual tree.
//
// Nodes are addressed by NodeID handles into the owning Tree rather than
// by pointer, so parent back-references are plain indices and the whole
// tree can be dropped at once when a project's projection is finished.
package depgraph
