package depgraph

// Resolution is the outcome of an upward lookup. Found is the node that
// can satisfy the request, or None. ParentForCreate is the node under
// which a new node must be created when Found is absent or carries the
// wrong version.
type Resolution struct {
	Found           NodeID
	ParentForCreate NodeID
}

// ResolveOrCreate implements the module-loader nested-lookup contract:
// starting at start (inclusive), walk upward through parent links and
// return the first ancestor whose children contain name. When the walk
// reaches the top without a match, the caller creates the node at start
// itself, as close to the point of need as possible.
//
// stopAt bounds the upward walk: the walk never goes above it. A
// cyclic-dependency subtree passes its root here so resolution inside
// the subtree nests locally instead of re-merging with the outer tree.
// Pass None for an unbounded walk.
func (t *Tree) ResolveOrCreate(start NodeID, name string, stopAt NodeID) Resolution {
	current := start
	for {
		if child, ok := t.Child(current, name); ok {
			return Resolution{Found: child, ParentForCreate: current}
		}
		if current == stopAt || !t.Node(current).Parent.Valid() {
			return Resolution{Found: None, ParentForCreate: start}
		}
		current = t.Node(current).Parent
	}
}

// Resolve performs the same upward lookup without create semantics and
// returns the matching node or None. It is the read-only resolution
// used against the central store tree, where both nested and flattened
// layouts must resolve.
func (t *Tree) Resolve(start NodeID, name string) NodeID {
	current := start
	for {
		if child, ok := t.Child(current, name); ok {
			return child
		}
		parent := t.Node(current).Parent
		if !parent.Valid() {
			return None
		}
		current = parent
	}
}
