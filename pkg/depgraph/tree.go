package depgraph

import (
	"github.com/monolink/monolink/pkg/errors"
	"github.com/monolink/monolink/pkg/types"
)

// NodeID is a handle into a Tree's node arena.
type NodeID int32

// None is the absent-node handle.
const None NodeID = -1

// Valid reports whether the handle refers to a node.
func (id NodeID) Valid() bool {
	return id != None
}

// Node is one installed or virtual package instance.
type Node struct {
	// Name and Version identify the package. Version is always an
	// exact, resolved version string.
	Name    string
	Version string

	// Dependencies is the declared dependency list in declaration
	// order. Order is preserved for deterministic output.
	Dependencies []types.DependencySpec

	// FolderPath is where this node's contents live (or will be
	// linked) on disk.
	FolderPath string

	// SymlinkTarget is the folder a link for this node must point to.
	// Empty for a project root, which owns real source.
	SymlinkTarget string

	// Parent is the containing node, None for roots. It is a lookup
	// aid for upward resolution only.
	Parent NodeID

	children   map[string]NodeID
	childOrder []string
}

// NameAndVersion returns the index key for this node.
func (n *Node) NameAndVersion() string {
	return n.Name + "@" + n.Version
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == None
}

// Tree is an arena of package nodes. The central store tree and each
// project's virtual tree are both Trees; they never share nodes.
type Tree struct {
	nodes []Node
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// NewNode allocates a detached node and returns its handle.
func (t *Tree) NewNode(name, version string) NodeID {
	t.nodes = append(t.nodes, Node{
		Name:     name,
		Version:  version,
		Parent:   None,
		children: make(map[string]NodeID),
	})
	return NodeID(len(t.nodes) - 1)
}

// Node returns the node for a handle. The pointer stays valid until the
// next NewNode call, so callers must not hold it across allocations.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddChild attaches child under parent. Sibling names are unique; a
// duplicate name or an already-attached child is an internal error.
func (t *Tree) AddChild(parent, child NodeID) error {
	p := t.Node(parent)
	c := t.Node(child)
	if c.Parent.Valid() {
		return errors.Newf(errors.ErrInternal, "package %s is already attached", c.NameAndVersion())
	}
	if _, exists := p.children[c.Name]; exists {
		return errors.Newf(errors.ErrInternal,
			"package %s already has a child named %q", p.NameAndVersion(), c.Name)
	}
	p.children[c.Name] = child
	p.childOrder = append(p.childOrder, c.Name)
	c.Parent = parent
	return nil
}

// Child returns the direct child of id with the given name.
func (t *Tree) Child(id NodeID, name string) (NodeID, bool) {
	c, ok := t.Node(id).children[name]
	return c, ok
}

// Children returns the direct children of id in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	out := make([]NodeID, 0, len(n.childOrder))
	for _, name := range n.childOrder {
		out = append(out, n.children[name])
	}
	return out
}
