package depgraph

import (
	"github.com/monolink/monolink/pkg/errors"
)

// Index is a lookup table over one fully-loaded central store tree,
// keyed by exact name@version. It is built once after the tree loads
// and never mutated, so concurrent readers need no synchronization.
type Index struct {
	tree  *Tree
	byKey map[string]NodeID
}

// BuildIndex flattens the tree reachable from root into a name@version
// mapping. Two distinct nodes with the same key reachable from the same
// root indicate the store is not a proper tree and fail the build.
func BuildIndex(t *Tree, root NodeID) (*Index, error) {
	ix := &Index{
		tree:  t,
		byKey: make(map[string]NodeID),
	}

	queue := []NodeID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		node := t.Node(id)
		key := node.NameAndVersion()
		if existing, ok := ix.byKey[key]; ok && existing != id {
			return nil, errors.Newf(errors.ErrStoreInconsistent,
				"central store contains two distinct copies of %s", key)
		}
		ix.byKey[key] = id

		queue = append(queue, t.Children(id)...)
	}

	return ix, nil
}

// Get returns the node for an exact name@version key.
func (ix *Index) Get(nameAndVersion string) (NodeID, bool) {
	id, ok := ix.byKey[nameAndVersion]
	return id, ok
}

// Len returns the number of indexed packages.
func (ix *Index) Len() int {
	return len(ix.byKey)
}
